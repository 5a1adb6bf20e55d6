package drag

import (
	"math"

	"draglist/internal/geom"
)

// velocityDeadZone is the smoothed-velocity magnitude below which no scroll
// is applied, so a decaying velocity doesn't keep nudging the list.
const velocityDeadZone = 0.1

// AutoScroller runs once per frame and scrolls the viewport while a drag
// holds the pointer inside an edge threshold zone. With smoothing enabled the
// applied delta is an exponentially blended velocity rather than the raw
// target, which also decays toward zero between drags so the next drag does
// not start with a leftover jolt.
type AutoScroller struct {
	cfg AutoScrollConfig
	vp  *geom.Viewport

	velocity float64
}

// NewAutoScroller returns a scroller over the given viewport.
func NewAutoScroller(cfg AutoScrollConfig, vp *geom.Viewport) *AutoScroller {
	return &AutoScroller{cfg: cfg, vp: vp}
}

// Idle reports whether the scroller carries no residual velocity.
func (a *AutoScroller) Idle() bool { return a.velocity == 0 }

// Step runs one frame. active is the controller currently tracking the
// pointer, or nil when no drag is in flight.
func (a *AutoScroller) Step(active *Controller) {
	if active == nil || active.state != StateActive {
		a.decay()
		return
	}

	s := active.sess
	relY := s.pointer - a.vp.ScreenTop()
	distTop := relY
	distBottom := a.vp.Height() - relY
	scroll := a.vp.Scroll()
	maxScroll := a.vp.MaxScroll()

	var target float64
	switch {
	case distTop >= 0 && distTop < a.cfg.Threshold && scroll > 0 && a.directionOK(s, -1):
		target = -a.speed(distTop)
	case distBottom >= 0 && distBottom < a.cfg.Threshold && scroll < maxScroll && a.directionOK(s, 1):
		target = a.speed(distBottom)
	}

	delta := target
	if a.cfg.Smoothing > 0 {
		a.velocity += (target - a.velocity) * a.cfg.Smoothing
		if math.Abs(a.velocity) <= velocityDeadZone {
			return
		}
		delta = a.velocity
	}
	if delta == 0 {
		return
	}

	// CommandScroll clamps and updates the tracked offset immediately;
	// recomputing the rendered offset right after keeps the dragged item
	// glued to the finger within this same frame.
	a.vp.CommandScroll(scroll + delta)
	active.refreshOffset()
}

func (a *AutoScroller) decay() {
	if a.velocity == 0 {
		return
	}
	if a.cfg.Smoothing <= 0 {
		a.velocity = 0
		return
	}
	a.velocity += (0 - a.velocity) * a.cfg.Smoothing
	if math.Abs(a.velocity) <= velocityDeadZone {
		a.velocity = 0
	}
}

// speed maps a distance into the threshold zone to a scroll magnitude:
// maximal at the very edge, minimal at the zone boundary, monotonic in
// between, bounded by the configured min/max.
func (a *AutoScroller) speed(dist float64) float64 {
	if a.cfg.Threshold <= 0 {
		return a.cfg.MaxSpeed
	}
	d := dist / a.cfg.Threshold
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}

	var eased float64
	switch a.cfg.Ease {
	case EaseSine:
		eased = (1 - math.Cos((1-d)*math.Pi)) / 2
	default:
		eased = (1 - d) * (1 - d) * (1 - d)
	}
	return a.cfg.MinSpeed + (a.cfg.MaxSpeed-a.cfg.MinSpeed)*eased
}

// directionOK gates a scroll direction on the pointer's own recent motion:
// dragging away from an edge just passed through must not keep scrolling
// toward it.
func (a *AutoScroller) directionOK(s *session, dir int) bool {
	if !a.cfg.DirectionAware {
		return true
	}
	return s.moveDir == dir
}
