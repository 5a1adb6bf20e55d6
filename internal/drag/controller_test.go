package drag

import (
	"testing"

	"draglist/internal/geom"
	"draglist/internal/order"
)

const testExtent = 50

// newTestGroup builds a five-item fixed-extent group with a 200-high viewport
// at screen top 0.
func newTestGroup(t *testing.T) (*Group, *geom.Viewport, *order.Table) {
	t.Helper()
	vp := geom.New()
	vp.ReportLayout(200, 0)
	table := order.NewTable()
	heights := order.NewHeights(testExtent)

	cfg := DefaultConfig()
	cfg.AutoScroll.Smoothing = 0 // deterministic deltas unless a test opts in

	g := NewGroup(cfg, vp, table, heights)
	g.Init([]string{"A", "B", "C", "D", "E"})
	return g, vp, table
}

// runFrames advances the frame loop until the group goes quiescent, failing
// the test if it never does.
func runFrames(t *testing.T, g *Group) {
	t.Helper()
	for i := 0; i < 600; i++ {
		g.Frame()
		if g.Quiescent() {
			return
		}
	}
	t.Fatalf("group never went quiescent")
}

func TestThresholdMonotonicity(t *testing.T) {
	const eps = 1

	// Just under half an extent: never swaps.
	g, _, table := newTestGroup(t)
	c := g.Controller("A")
	c.Activate(10)
	c.Move(10 + testExtent/2 - eps)
	if got := table.Sorted()[0]; got != "A" {
		t.Fatalf("displacement below threshold must not swap, head=%q", got)
	}

	// Just over: always swaps.
	g, _, table = newTestGroup(t)
	c = g.Controller("A")
	c.Activate(10)
	c.Move(10 + testExtent/2 + eps)
	if got := table.Sorted(); got[0] != "B" || got[1] != "A" {
		t.Fatalf("displacement past threshold must swap, got %v", got)
	}
}

func TestEndToEndReorder(t *testing.T) {
	g, _, table := newTestGroup(t)

	var finalized [][]string
	g.SetFinalizeFunc(func(keys []string) {
		finalized = append(finalized, keys)
	})

	c := g.Controller("A")
	if !c.Activate(10) {
		t.Fatalf("activation failed")
	}
	// Drag down past the midpoint of slot 1.
	c.Move(10 + testExtent*0.6)
	if got := table.Sorted(); got[0] != "B" || got[1] != "A" {
		t.Fatalf("expected B,A after crossing midpoint, got %v", got)
	}

	c.Release()
	if c.State() != StateSettling {
		t.Fatalf("expected SETTLING after release, got %v", c.State())
	}
	runFrames(t, g)

	if c.State() != StateIdle {
		t.Fatalf("expected IDLE after settle, got %v", c.State())
	}
	if len(finalized) != 1 {
		t.Fatalf("expected exactly one finalize, got %d", len(finalized))
	}
	want := []string{"B", "A", "C", "D", "E"}
	for i, k := range want {
		if finalized[0][i] != k {
			t.Fatalf("finalized order %v, want %v", finalized[0], want)
		}
	}
	// The settled item rests exactly at its slot offset.
	if c.Offset() != testExtent {
		t.Fatalf("expected settled offset %d, got %v", testExtent, c.Offset())
	}
}

func TestIdempotentSettle(t *testing.T) {
	g, _, _ := newTestGroup(t)

	var finalized [][]string
	g.SetFinalizeFunc(func(keys []string) {
		finalized = append(finalized, keys)
	})

	c := g.Controller("C")
	c.Activate(125)
	c.Move(130) // small wiggle, below threshold
	c.Move(122)
	c.Release()
	runFrames(t, g)

	if len(finalized) != 1 {
		t.Fatalf("expected one finalize, got %d", len(finalized))
	}
	want := []string{"A", "B", "C", "D", "E"}
	for i, k := range want {
		if finalized[0][i] != k {
			t.Fatalf("expected original order back, got %v", finalized[0])
		}
	}
}

func TestSingleActiveDrag(t *testing.T) {
	g, _, _ := newTestGroup(t)

	a := g.Controller("A")
	b := g.Controller("B")
	if !a.Activate(10) {
		t.Fatalf("first activation failed")
	}
	if b.Activate(60) {
		t.Fatalf("second drag must be rejected while another is active")
	}
	if b.State() != StateIdle {
		t.Fatalf("rejected controller must stay idle, got %v", b.State())
	}
}

func TestReleaseWithoutActivationIsNoOp(t *testing.T) {
	g, _, _ := newTestGroup(t)

	c := g.Controller("A")
	c.Release() // tap shorter than the long-press delay
	if c.State() != StateIdle {
		t.Fatalf("expected controller to remain idle, got %v", c.State())
	}
	if !g.Quiescent() {
		t.Fatalf("expected group quiescent after no-op release")
	}
}

func TestPassiveReactionAnimatesDisplacedItemOnly(t *testing.T) {
	g, _, _ := newTestGroup(t)

	a := g.Controller("A")
	b := g.Controller("B")
	c := g.Controller("C")

	a.Activate(10)
	a.Move(10 + testExtent*0.6) // swaps A and B

	if !b.animating() {
		t.Fatalf("displaced item must animate to its new rest offset")
	}
	if c.animating() {
		t.Fatalf("uninvolved item must not react to a swap of other keys")
	}

	a.Release()
	runFrames(t, g)
	if b.Offset() != 0 {
		t.Fatalf("expected B resting at offset 0, got %v", b.Offset())
	}
}

func TestSupersededSettleDoesNotFinalize(t *testing.T) {
	g, _, _ := newTestGroup(t)

	finalizes := 0
	g.SetFinalizeFunc(func([]string) { finalizes++ })

	c := g.Controller("A")
	c.Activate(10)
	c.Move(10 + testExtent*0.6)
	c.Release()

	// A few frames into the settle, grab the same item again.
	g.Frame()
	g.Frame()
	if !c.Activate(40) {
		t.Fatalf("re-activation during settle must succeed")
	}
	if c.State() != StateActive {
		t.Fatalf("expected ACTIVE after re-activation, got %v", c.State())
	}
	if finalizes != 0 {
		t.Fatalf("superseded settle must not finalize")
	}

	c.Release()
	runFrames(t, g)
	if finalizes != 1 {
		t.Fatalf("expected exactly one finalize from the second settle, got %d", finalizes)
	}
}

func TestDraggedOffsetCompensatesScroll(t *testing.T) {
	g, vp, _ := newTestGroup(t)
	vp.ReportContentSize(600)

	c := g.Controller("A")
	c.Activate(10)
	c.Move(30)
	if got := c.Offset(); got != 20 {
		t.Fatalf("expected offset 20 after 20px move, got %v", got)
	}

	// Scroll shifts the content under the stationary finger; the rendered
	// offset must follow so the item stays glued to it.
	vp.CommandScroll(35)
	c.refreshOffset()
	if got := c.Offset(); got != 55 {
		t.Fatalf("expected offset 55 after 35px scroll, got %v", got)
	}
}

func TestTargetClampedAtListEdges(t *testing.T) {
	g, _, table := newTestGroup(t)

	c := g.Controller("A")
	c.Activate(10)
	c.Move(10 - 3*testExtent) // far above the first slot
	if got := table.Sorted()[0]; got != "A" {
		t.Fatalf("dragging past the first slot must have no effect, head=%q", got)
	}

	e := g.Controller("E")
	c.Release()
	runFrames(t, g)
	e.Activate(190)
	e.Move(190 + 3*testExtent) // far below the last slot
	if got := table.Sorted()[4]; got != "E" {
		t.Fatalf("dragging past the last slot must have no effect, tail=%q", got)
	}
}

func TestOneSwapPerPointerUpdate(t *testing.T) {
	g, _, table := newTestGroup(t)

	c := g.Controller("A")
	c.Activate(10)
	// A displacement spanning several slots still yields one swap for this
	// update; the remaining distance converges over subsequent updates.
	c.Move(10 + 2.6*testExtent)
	if got := table.Sorted(); got[0] != "B" || got[1] != "A" {
		t.Fatalf("expected exactly one swap, got %v", got)
	}
	c.Move(10 + 2.6*testExtent)
	if got := table.Sorted(); got[1] != "C" || got[2] != "A" {
		t.Fatalf("expected the next update to take the next slot, got %v", got)
	}
}

func TestInitAbandonsActiveDrag(t *testing.T) {
	g, vp, table := newTestGroup(t)

	c := g.Controller("A")
	c.Activate(10)
	if !vp.ScrollLocked() {
		t.Fatalf("expected scroll locked during drag")
	}

	g.Init([]string{"X", "Y"})
	if g.Dragging() {
		t.Fatalf("re-init must abandon the in-flight drag")
	}
	if vp.ScrollLocked() {
		t.Fatalf("re-init must unlock scrolling")
	}
	if table.Len() != 2 {
		t.Fatalf("expected new collection of 2, got %d", table.Len())
	}
	if g.Controller("A") != nil {
		t.Fatalf("stale controller must be dropped")
	}
}

func TestMeasuredModeTargetsSlotUnderCenter(t *testing.T) {
	vp := geom.New()
	vp.ReportLayout(400, 0)
	table := order.NewTable()
	heights := order.NewHeights(60)
	heights.Measure("a", 50)
	heights.Measure("b", 70)
	heights.Measure("c", 60)

	cfg := DefaultConfig()
	cfg.Mode = ModeMeasured
	cfg.AutoScroll.Smoothing = 0
	g := NewGroup(cfg, vp, table, heights)
	g.Init([]string{"a", "b", "c"})

	c := g.Controller("a")
	c.Activate(0)
	// Move a (extent 50) down so its center (pos+25) lands inside b's range
	// [50,120) and the displacement exceeds half of slot 0's extent.
	c.Move(25 + 30)
	if got := table.Sorted(); got[0] != "b" || got[1] != "a" {
		t.Fatalf("expected a to take b's slot, got %v", got)
	}
	// a now rests at b's old extent boundary: offset(a) target is 70.
	c.Release()
	runFrames(t, g)
	if got := c.Offset(); got != 70 {
		t.Fatalf("expected a settled at 70, got %v", got)
	}
}
