package drag

import (
	"math"
	"testing"
)

func TestSettleReachesTargetWithoutOscillation(t *testing.T) {
	s := newSettle(DefaultConfig().Spring)
	s.start(0, 50)

	var prev float64
	crossed := false
	for i := 0; i < 600; i++ {
		pos, done := s.step()
		// The reference tuning is near-critical: once past the target the
		// spring must not swing back through it.
		if crossed && pos < prev-settleEpsilon && math.Abs(pos-50) > 1 {
			t.Fatalf("oscillation: pos %v after %v on frame %d", pos, prev, i)
		}
		if pos > 50 {
			crossed = true
		}
		prev = pos
		if done {
			if pos != 50 {
				t.Fatalf("done with pos %v, want exact target", pos)
			}
			return
		}
	}
	t.Fatalf("spring never settled")
}

func TestCanceledSettleNeverCompletes(t *testing.T) {
	s := newSettle(DefaultConfig().Spring)
	s.start(0, 50)
	s.step()
	s.cancel()

	for i := 0; i < 10; i++ {
		if _, done := s.step(); done {
			t.Fatalf("canceled settle must not report completion")
		}
	}
}

func TestRetargetKeepsRunning(t *testing.T) {
	s := newSettle(DefaultConfig().Spring)
	s.start(0, 50)
	for i := 0; i < 5; i++ {
		s.step()
	}
	s.start(s.pos, 10) // retarget mid-flight

	for i := 0; i < 600; i++ {
		if pos, done := s.step(); done {
			if pos != 10 {
				t.Fatalf("settled at %v, want 10", pos)
			}
			return
		}
	}
	t.Fatalf("retargeted spring never settled")
}
