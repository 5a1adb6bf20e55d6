// Package tui renders a reorderable list as a bubbletea component: rows are
// grabbed with a long press, dragged within the viewport (auto-scrolling near
// the edges), and spring back into place when released. The interaction
// semantics live in internal/drag; this package adapts terminal mouse events
// and frame ticks onto them.
package tui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"draglist/internal/drag"
	"draglist/internal/geom"
	"draglist/internal/order"
)

// frameRate is the cadence of the frame loop driving auto-scroll and settle
// springs while a gesture is in flight.
const frameRate = 60

// wheelStep is the ambient scroll distance per wheel event, in rows.
const wheelStep = 3

// ReorderedMsg reports the finalized item order after a drag's settle
// completes. The owning model receives it through the normal update loop and
// is expected to materialize its source collection in this order.
type ReorderedMsg struct {
	Keys []string
}

type longPressMsg struct{ seq int }
type frameMsg struct{ seq int }

// pendingPress is a mouse press that has not yet become a drag: the long
// press timer is running and the pointer has not wandered off.
type pendingPress struct {
	key string
	y   int
	seq int
}

// List is the reorderable list component.
type List struct {
	cfg      drag.Config
	vp       *geom.Viewport
	table    *order.Table
	heights  *order.Heights
	group    *drag.Group
	delegate Delegate

	items map[string]Item

	width     int
	height    int
	screenTop int

	pending  *pendingPress
	pressSeq int
	frameSeq int
	ticking  bool

	finalized []string
}

// NewList returns an empty list using the given tuning and row delegate.
// estimate is the assumed row height until the delegate has measured an item.
func NewList(cfg drag.Config, delegate Delegate, estimate float64) *List {
	vp := geom.New()
	table := order.NewTable()
	heights := order.NewHeights(estimate)

	l := &List{
		cfg:      cfg,
		vp:       vp,
		table:    table,
		heights:  heights,
		group:    drag.NewGroup(cfg, vp, table, heights),
		delegate: delegate,
		items:    map[string]Item{},
	}
	vp.SetMeasureFunc(func() (float64, float64) {
		return float64(l.height), float64(l.screenTop)
	})
	l.group.SetFinalizeFunc(func(keys []string) {
		l.finalized = keys
	})
	return l
}

// SetItems replaces the backing collection. The position table is
// re-initialized in the given order; any in-flight drag is abandoned.
func (l *List) SetItems(items []Item) {
	l.items = make(map[string]Item, len(items))
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key()
		l.items[it.Key()] = it
	}
	l.group.Init(keys)
	l.measure()
}

// SetSize sets the list body's width and height in cells.
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.vp.ReportLayout(float64(height), float64(l.screenTop))
	l.measure()
}

// SetScreenTop records the list body's absolute top row on screen, so mouse
// coordinates and the auto-scroll edge zones line up.
func (l *List) SetScreenTop(top int) {
	l.screenTop = top
	l.vp.ReportLayout(float64(l.height), float64(top))
}

// measure feeds delegate-reported heights into the height table. In fixed
// mode only the estimate is refreshed; per-item measurements are what make
// the variable-height offset math work.
func (l *List) measure() {
	if l.width <= 0 || len(l.items) == 0 {
		return
	}
	if l.cfg.Mode == drag.ModeFixed {
		for _, it := range l.items {
			l.heights.SetEstimate(float64(l.delegate.Height(it, l.width)))
			break
		}
	} else {
		for key, it := range l.items {
			l.heights.Measure(key, float64(l.delegate.Height(it, l.width)))
		}
	}
	l.group.Relayout()
}

// Dragging reports whether a row is currently being dragged.
func (l *List) Dragging() bool { return l.group.Dragging() }

// Keys returns the current visual order.
func (l *List) Keys() []string { return l.table.Sorted() }

// Update handles mouse, long-press and frame messages.
func (l *List) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return l.handleMouse(msg)

	case longPressMsg:
		// The press is a drag only if it survived the activation delay
		// without releasing or wandering.
		if l.pending == nil || l.pending.seq != msg.seq {
			return nil
		}
		key, y := l.pending.key, l.pending.y
		l.pending = nil
		if c := l.group.Controller(key); c != nil && c.Activate(float64(y)) {
			return l.startTicking()
		}
		return nil

	case frameMsg:
		if !l.ticking || msg.seq != l.frameSeq {
			return nil
		}
		l.group.Frame()

		var cmds []tea.Cmd
		if l.finalized != nil {
			keys := l.finalized
			l.finalized = nil
			cmds = append(cmds, func() tea.Msg { return ReorderedMsg{Keys: keys} })
		}
		if l.group.Quiescent() {
			l.ticking = false
		} else {
			cmds = append(cmds, frameCmd(l.frameSeq))
		}
		return tea.Batch(cmds...)
	}
	return nil
}

func (l *List) handleMouse(m tea.MouseMsg) tea.Cmd {
	switch m.Button {
	case tea.MouseButtonWheelUp:
		if !l.vp.ScrollLocked() {
			l.vp.CommandScroll(l.vp.Scroll() - wheelStep)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if !l.vp.ScrollLocked() {
			l.vp.CommandScroll(l.vp.Scroll() + wheelStep)
		}
		return nil
	}

	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft {
			return nil
		}
		key, ok := l.keyAt(m.Y)
		if !ok {
			return nil
		}
		l.pressSeq++
		l.pending = &pendingPress{key: key, y: m.Y, seq: l.pressSeq}
		seq := l.pressSeq
		return tea.Tick(l.cfg.ActivationDelay, func(time.Time) tea.Msg {
			return longPressMsg{seq: seq}
		})

	case tea.MouseActionMotion:
		if c := l.group.Active(); c != nil {
			c.Move(float64(m.Y))
			return l.startTicking()
		}
		if l.pending != nil && absInt(m.Y-l.pending.y) > int(l.cfg.AutoScroll.JitterThreshold) {
			// Moved before the long press fired: an ordinary scroll
			// gesture, not a drag.
			l.pending = nil
		}
		return nil

	case tea.MouseActionRelease:
		// A release without a preceding activation is a plain tap.
		l.pending = nil
		if c := l.group.Active(); c != nil {
			c.Release()
			return l.startTicking()
		}
		return nil
	}
	return nil
}

// keyAt maps an absolute screen row to the item whose extent contains it.
func (l *List) keyAt(y int) (string, bool) {
	rel := y - l.screenTop
	if rel < 0 || rel >= l.height {
		return "", false
	}
	contentY := float64(rel) + l.vp.Scroll()
	if contentY >= l.heights.TotalExtent(l.table) {
		return "", false
	}
	slot := l.heights.SlotAt(l.table, contentY)
	return l.table.Key(slot)
}

func (l *List) startTicking() tea.Cmd {
	if l.ticking {
		return nil
	}
	l.ticking = true
	l.frameSeq++
	return frameCmd(l.frameSeq)
}

func frameCmd(seq int) tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(time.Time) tea.Msg {
		return frameMsg{seq: seq}
	})
}

// View renders the list body. Resting rows are painted first, then anything
// animating, then the dragged row, so the row under the finger always stays
// on top.
func (l *List) View() string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}
	lines := make([]string, l.height)

	var draggedKey string
	if c := l.group.Active(); c != nil {
		draggedKey = c.Key()
	}

	var onTop []string
	for _, key := range l.table.Sorted() {
		c := l.group.Controller(key)
		if c == nil {
			continue
		}
		if key == draggedKey || c.State() == drag.StateSettling {
			onTop = append(onTop, key)
			continue
		}
		l.paint(lines, key, c, false)
	}
	for _, key := range onTop {
		l.paint(lines, key, l.group.Controller(key), key == draggedKey)
	}

	return strings.Join(lines, "\n")
}

func (l *List) paint(lines []string, key string, c *drag.Controller, dragging bool) {
	item := l.items[key]
	if item == nil {
		return
	}
	block := l.delegate.Render(item, c.Slot(), dragging, l.width)
	startRow := int(math.Round(c.Offset() - l.vp.Scroll()))
	for i, row := range strings.Split(block, "\n") {
		y := startRow + i
		if y >= 0 && y < l.height {
			lines[y] = row
		}
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
