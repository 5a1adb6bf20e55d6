package drag

import "math"

// State is the controller's phase in the drag lifecycle.
type State int

const (
	// StateIdle: resting at the slot's offset, possibly animating toward it
	// after another item's drag displaced this one.
	StateIdle State = iota
	// StateActive: this item is being dragged; its offset tracks the
	// pointer.
	StateActive
	// StateSettling: the pointer let go and the item is springing to its
	// final slot offset.
	StateSettling
)

// session is the reference frame captured when a drag activates. It exists
// only while the drag (and its settle) is in flight.
type session struct {
	initialPointer float64
	initialRest    float64
	initialScroll  float64

	pointer     float64
	prevPointer float64

	// moveDir is the pointer's recent movement direction (-1 up, +1 down,
	// 0 none yet), updated only when movement exceeds the jitter threshold.
	moveDir int
}

// Controller runs the drag state machine for a single item. It is created by
// a Group and shares the group's position table, height table and viewport.
type Controller struct {
	key string
	g   *Group

	state State
	sess  *session

	// pos is the item's current visual offset in content space. It is the
	// value rendering uses, whatever the state.
	pos  float64
	anim *settle

	// animFinalizes marks the running animation as a drag settle: genuine
	// completion fires the group's finalize notification. Passive
	// displacement animations never finalize.
	animFinalizes bool
}

func newController(key string, g *Group) *Controller {
	c := &Controller{
		key:  key,
		g:    g,
		anim: newSettle(g.cfg.Spring),
	}
	c.pos = c.restOffset()
	g.table.Subscribe(key, c.slotChanged)
	return c
}

// Key returns the item key this controller drives.
func (c *Controller) Key() string { return c.key }

// State returns the controller's current phase.
func (c *Controller) State() State { return c.state }

// Dragging reports whether this item is actively tracking the pointer.
func (c *Controller) Dragging() bool { return c.state == StateActive }

// Offset returns the item's current visual offset in content space.
func (c *Controller) Offset() float64 { return c.pos }

// Slot returns the item's current slot. An unknown key reads as slot 0; that
// is a degraded-but-safe default for the brief window before the table is
// initialized for this key, not a behavior callers should rely on.
func (c *Controller) Slot() int {
	slot, ok := c.g.table.Slot(c.key)
	if !ok {
		return 0
	}
	return slot
}

func (c *Controller) restOffset() float64 {
	return c.g.heights.OffsetOf(c.g.table, c.Slot())
}

// Activate enters the ACTIVE state from a recognized long-press at the given
// screen-space pointer coordinate. It returns false when another item's drag
// is already active; only one drag runs at a time.
//
// Re-activating an item that is still settling cancels the in-flight settle
// (which then never fires finalize) and re-enters ACTIVE immediately.
func (c *Controller) Activate(pointerY float64) bool {
	if c.g.active != nil && c.g.active != c {
		return false
	}
	c.anim.cancel()
	c.animFinalizes = false

	// An ancestor may have moved the list since the last layout report
	// (animated sheets do this), so re-read geometry before capturing the
	// reference frame.
	c.g.vp.Remeasure()
	c.g.vp.LockScroll(true)

	rest := c.restOffset()
	c.sess = &session{
		initialPointer: pointerY,
		initialRest:    rest,
		initialScroll:  c.g.vp.Scroll(),
		pointer:        pointerY,
		prevPointer:    pointerY,
	}
	c.pos = rest
	c.state = StateActive
	c.g.active = c
	return true
}

// Move tracks a pointer update while ACTIVE. The rendered offset follows the
// finger exactly, compensating for any scroll since activation; crossing the
// swap threshold exchanges slots with the occupant of the target slot. At
// most one swap happens per update.
func (c *Controller) Move(pointerY float64) {
	if c.state != StateActive {
		return
	}
	s := c.sess
	s.prevPointer = s.pointer
	s.pointer = pointerY

	jitter := c.g.cfg.AutoScroll.JitterThreshold
	switch delta := s.pointer - s.prevPointer; {
	case delta > jitter:
		s.moveDir = 1
	case delta < -jitter:
		s.moveDir = -1
	}

	c.refreshOffset()
	c.maybeSwap()
}

// refreshOffset recomputes the rendered offset from the drag's reference
// frame. Auto-scroll calls this after moving the viewport so the item stays
// glued to the finger within the same frame.
func (c *Controller) refreshOffset() {
	if c.state != StateActive {
		return
	}
	s := c.sess
	c.pos = s.initialRest + (s.pointer - s.initialPointer) + (c.g.vp.Scroll() - s.initialScroll)
}

func (c *Controller) maybeSwap() {
	table, heights := c.g.table, c.g.heights
	slot := c.Slot()
	rest := heights.OffsetOf(table, slot)
	displacement := c.pos - rest

	extent := heights.ExtentOf(table, slot)
	if math.Abs(displacement) <= c.g.cfg.SwapThreshold*extent {
		return
	}

	target := slot
	switch c.g.cfg.Mode {
	case ModeMeasured:
		center := c.pos + heights.Extent(c.key)/2
		target = heights.SlotAt(table, center)
	default:
		if displacement > 0 {
			target = slot + 1
		} else {
			target = slot - 1
		}
		if target < 0 {
			target = 0
		}
		if n := table.Len(); target > n-1 {
			target = n - 1
		}
	}
	if target == slot {
		return
	}

	occupant, ok := table.Key(target)
	if !ok {
		return
	}
	table.Swap(c.key, occupant)
}

// Release ends the gesture (finger lift or system cancellation) and enters
// SETTLING: a spring takes the item from wherever it is to the rest offset of
// its final slot. The ambient scroll gesture is re-enabled immediately.
//
// A release without a preceding activation (a tap shorter than the long-press
// delay) is a no-op.
func (c *Controller) Release() {
	if c.state != StateActive {
		return
	}
	c.g.vp.LockScroll(false)
	c.g.active = nil

	c.state = StateSettling
	c.animFinalizes = true
	c.anim.start(c.pos, c.restOffset())
}

// slotChanged reacts to this item's slot moving underneath it: another item's
// drag swapped it. Only passive (idle) controllers animate; the active
// controller's offset is pointer-driven and a settling controller is already
// heading to its (pre-release) slot.
func (c *Controller) slotChanged(slot int) {
	if c.state != StateIdle {
		return
	}
	c.animFinalizes = false
	c.anim.start(c.pos, c.g.heights.OffsetOf(c.g.table, slot))
}

// frame advances the settle animation one step. It reports whether a drag
// settle genuinely completed this frame.
func (c *Controller) frame() (finalized bool) {
	if !c.anim.running {
		return false
	}
	pos, done := c.anim.step()
	c.pos = pos
	if !done {
		return false
	}
	if c.state == StateSettling {
		c.state = StateIdle
		c.sess = nil
		if c.animFinalizes {
			c.animFinalizes = false
			return true
		}
	}
	return false
}

// refreshRest snaps an idle, non-animating controller to its slot's rest
// offset. Used after height measurements shift the layout under resting
// items.
func (c *Controller) refreshRest() {
	if c.state == StateIdle && !c.anim.running {
		c.pos = c.restOffset()
	}
}

// animating reports whether the settle spring is still running.
func (c *Controller) animating() bool { return c.anim.running }
