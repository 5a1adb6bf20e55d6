package drag

import (
	"draglist/internal/geom"
	"draglist/internal/order"
)

// FinalizeFunc receives the materialized item order after a drag's settle
// completes. It runs on the update loop; the receiver owns the source
// collection and is the only place it gets replaced.
type FinalizeFunc func(keys []string)

// Group ties one list's drag controllers to their shared position table,
// height table and viewport, enforces the single-active-drag rule, and runs
// the per-frame work (auto-scroll plus spring integration).
type Group struct {
	cfg     Config
	vp      *geom.Viewport
	table   *order.Table
	heights *order.Heights

	controllers map[string]*Controller
	active      *Controller
	scroller    *AutoScroller

	onFinalize FinalizeFunc
}

// NewGroup returns a group over the given shared state. Controllers are
// created by Init.
func NewGroup(cfg Config, vp *geom.Viewport, table *order.Table, heights *order.Heights) *Group {
	return &Group{
		cfg:         cfg,
		vp:          vp,
		table:       table,
		heights:     heights,
		controllers: map[string]*Controller{},
		scroller:    NewAutoScroller(cfg.AutoScroll, vp),
	}
}

// SetFinalizeFunc installs the reorder notification target.
func (g *Group) SetFinalizeFunc(fn FinalizeFunc) { g.onFinalize = fn }

// Config returns the group's tuning.
func (g *Group) Config() Config { return g.cfg }

// Init (re)initializes the position table for a new backing collection and
// rebuilds the controller set: stale controllers are dropped, new keys get
// fresh ones, survivors snap to their new rest offsets. Any in-flight drag is
// abandoned; the collection it was reordering no longer exists.
func (g *Group) Init(keys []string) {
	if g.active != nil {
		g.vp.LockScroll(false)
		g.active = nil
	}

	for key, c := range g.controllers {
		g.table.Unsubscribe(key)
		c.anim.cancel()
	}
	g.controllers = make(map[string]*Controller, len(keys))

	g.table.Init(keys)
	for _, key := range keys {
		g.controllers[key] = newController(key, g)
	}
	g.vp.ReportContentSize(g.heights.TotalExtent(g.table))
}

// Controller returns the controller for key, or nil if the key is not part
// of the current collection.
func (g *Group) Controller(key string) *Controller {
	return g.controllers[key]
}

// Active returns the controller currently tracking the pointer, or nil.
func (g *Group) Active() *Controller { return g.active }

// Dragging reports whether any item is in the ACTIVE state.
func (g *Group) Dragging() bool { return g.active != nil }

// Frame runs one tick of the rendering cadence: the auto-scroll step, then
// every controller's spring. If a drag settle completed this frame, the
// finalized order is reported.
func (g *Group) Frame() {
	g.scroller.Step(g.active)

	finalized := false
	for _, c := range g.controllers {
		if c.frame() {
			finalized = true
		}
	}
	if finalized && g.onFinalize != nil {
		g.onFinalize(g.table.Sorted())
	}
}

// Quiescent reports whether the frame loop has nothing left to do: no active
// drag, no running springs, no residual auto-scroll velocity. The embedding
// layer stops scheduling frame ticks once the group is quiescent.
func (g *Group) Quiescent() bool {
	if g.active != nil || !g.scroller.Idle() {
		return false
	}
	for _, c := range g.controllers {
		if c.animating() {
			return false
		}
	}
	return true
}

// Relayout re-derives content extent and resting offsets after height
// measurements changed.
func (g *Group) Relayout() {
	g.vp.ReportContentSize(g.heights.TotalExtent(g.table))
	for _, c := range g.controllers {
		c.refreshRest()
	}
}
