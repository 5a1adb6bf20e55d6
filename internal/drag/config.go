// Package drag implements the interaction state machine for a drag-to-reorder
// list: pointer tracking, displacement-to-slot conversion, swap decisions,
// edge auto-scroll, and the spring-driven settle that runs when the pointer
// lets go.
//
// One Controller exists per item but at most one is ever active. A Group ties
// the controllers to a shared position table and viewport and reports the
// finalized order when a settle completes.
package drag

import "time"

// Mode selects how the target slot is derived from the dragged item's
// displacement.
type Mode int

const (
	// ModeFixed assumes uniform item extents: crossing half an extent moves
	// the item one slot in the displacement direction.
	ModeFixed Mode = iota
	// ModeMeasured walks cumulative measured heights and targets the slot
	// containing the dragged item's center.
	ModeMeasured
)

// Ease selects the auto-scroll speed ramp inside the edge threshold zone.
type Ease int

const (
	// EaseCubic ramps speed as (1-d)^3 of the normalized distance into the
	// zone: maximal at the very edge, minimal at the zone boundary.
	EaseCubic Ease = iota
	// EaseSine ramps speed as (1-cos((1-d)*pi))/2.
	EaseSine
)

// SpringConfig tunes the settle animation. The defaults are critically tuned:
// snappy but without overshoot oscillation.
type SpringConfig struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// AutoScrollConfig tunes the per-frame edge auto-scroll loop.
type AutoScrollConfig struct {
	// Threshold is the distance from a viewport edge within which
	// auto-scroll engages.
	Threshold float64
	// MinSpeed and MaxSpeed bound the per-frame scroll delta.
	MinSpeed float64
	MaxSpeed float64
	Ease     Ease
	// Smoothing exponentially blends the applied velocity toward the target
	// each frame. Zero disables smoothing and applies the target directly.
	Smoothing float64
	// DirectionAware suppresses scrolling toward an edge unless the
	// pointer's own recent motion heads the same way.
	DirectionAware bool
	// JitterThreshold is the minimum pointer movement that counts as
	// directional motion.
	JitterThreshold float64
}

// Config collects all interaction tuning for one list.
type Config struct {
	// ActivationDelay is the long-press hold before a touch becomes a drag.
	ActivationDelay time.Duration
	// SwapThreshold is the displacement, as a fraction of the current
	// slot's item extent, past which a swap fires.
	SwapThreshold float64
	Mode          Mode
	Spring        SpringConfig
	AutoScroll    AutoScrollConfig
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		ActivationDelay: 200 * time.Millisecond,
		SwapThreshold:   0.5,
		Mode:            ModeFixed,
		Spring: SpringConfig{
			Stiffness: 350,
			Damping:   40,
			Mass:      1,
		},
		AutoScroll: AutoScrollConfig{
			Threshold:       60,
			MinSpeed:        1,
			MaxSpeed:        10,
			Ease:            EaseCubic,
			Smoothing:       0.15,
			DirectionAware:  false,
			JitterThreshold: 2,
		},
	}
}
