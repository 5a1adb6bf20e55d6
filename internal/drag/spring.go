package drag

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// frameRate is the cadence the frame loop is expected to run at. The spring
// is integrated with a fixed step at this rate.
const frameRate = 60

// settleEpsilon is the position/velocity band within which the spring is
// considered to have genuinely reached its target.
const settleEpsilon = 0.05

// settle drives a rendered offset toward a target with a damped spring.
// Starting a new animation while one is running keeps the current velocity so
// retargeting stays smooth.
type settle struct {
	spring  harmonica.Spring
	pos     float64
	vel     float64
	target  float64
	running bool
}

func newSettle(cfg SpringConfig) *settle {
	mass := cfg.Mass
	if mass <= 0 {
		mass = 1
	}
	stiffness := cfg.Stiffness
	if stiffness <= 0 {
		stiffness = 1
	}
	// harmonica expresses springs as angular frequency + damping ratio;
	// convert from the stiffness/damping/mass tuning.
	omega := math.Sqrt(stiffness / mass)
	zeta := cfg.Damping / (2 * math.Sqrt(stiffness*mass))
	return &settle{
		spring: harmonica.NewSpring(harmonica.FPS(frameRate), omega, zeta),
	}
}

// start begins (or retargets) the animation from the given position.
func (s *settle) start(from, to float64) {
	if !s.running {
		s.vel = 0
	}
	s.pos = from
	s.target = to
	s.running = true
}

// cancel stops the animation without reaching the target. A canceled settle
// never reports completion.
func (s *settle) cancel() {
	s.running = false
	s.vel = 0
}

// step advances one frame. done is true only when the target was genuinely
// reached, at which point pos is snapped exactly to it.
func (s *settle) step() (pos float64, done bool) {
	if !s.running {
		return s.pos, false
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < settleEpsilon && math.Abs(s.vel) < settleEpsilon {
		s.pos = s.target
		s.vel = 0
		s.running = false
		return s.pos, true
	}
	return s.pos, false
}
