// Package geom owns scroll and viewport geometry for one scrollable region.
//
// A Viewport is the single source of truth for the current scroll offset, the
// viewport's height and absolute on-screen top, and the total scrollable
// content extent. Item drag controllers read it continuously and, during
// auto-scroll, command a new offset through it.
package geom

// MeasureFunc re-reads the viewport's height and absolute screen top on
// demand. It is supplied by the embedding UI layer, which knows where the
// region actually ended up after layout.
type MeasureFunc func() (height, screenTop float64)

// ScrollRequestFunc asks the embedding UI layer to move the region to the
// given offset. The Viewport updates its own offset immediately and does not
// wait for the layer's change notification to come back around.
type ScrollRequestFunc func(offset float64)

// Viewport tracks scroll/viewport geometry for one scrollable region.
//
// All methods are plain single-goroutine operations; the Viewport is owned by
// the update loop that drives the widget and is never shared across
// goroutines.
type Viewport struct {
	scroll        float64
	height        float64
	screenTop     float64
	contentHeight float64

	// scrollLocked is set while a drag is active so the ambient scroll
	// gesture (wheel, trackpad) does not fight the drag.
	scrollLocked bool

	measure       MeasureFunc
	requestScroll ScrollRequestFunc

	onScroll []func(offset float64)
}

// New returns an empty viewport. Geometry arrives later via the Report
// methods.
func New() *Viewport {
	return &Viewport{}
}

// SetMeasureFunc installs the on-demand geometry reader used by Remeasure.
func (v *Viewport) SetMeasureFunc(fn MeasureFunc) {
	v.measure = fn
}

// SetScrollRequestFunc installs the hook used by CommandScroll.
func (v *Viewport) SetScrollRequestFunc(fn ScrollRequestFunc) {
	v.requestScroll = fn
}

// ReportScroll records the current scroll offset. Called on every scroll
// event from the embedding layer.
func (v *Viewport) ReportScroll(offset float64) {
	if v.scroll == offset {
		return
	}
	v.scroll = offset
	for _, fn := range v.onScroll {
		fn(offset)
	}
}

// ReportLayout records the viewport's height and absolute on-screen top.
// Called on mount and on resize.
func (v *Viewport) ReportLayout(height, screenTop float64) {
	v.height = height
	v.screenTop = screenTop
}

// ReportContentSize records the total scrollable content height.
func (v *Viewport) ReportContentSize(height float64) {
	v.contentHeight = height
}

// Remeasure forces a fresh read of the viewport's height and screen top.
// Needed when an ancestor has repositioned this region out-of-band (an
// animated sheet, a collapsed header) since the last layout report.
func (v *Viewport) Remeasure() {
	if v.measure == nil {
		return
	}
	height, top := v.measure()
	v.ReportLayout(height, top)
}

// CommandScroll moves the region to the given offset, clamped to the valid
// range. The local offset is updated immediately so that position math in the
// same frame sees the new value; the embedding layer is notified through the
// scroll-request hook.
func (v *Viewport) CommandScroll(offset float64) {
	offset = clamp(offset, 0, v.MaxScroll())
	if offset == v.scroll {
		return
	}
	v.scroll = offset
	if v.requestScroll != nil {
		v.requestScroll(offset)
	}
	for _, fn := range v.onScroll {
		fn(offset)
	}
}

// OnScroll registers a handler invoked whenever the scroll offset changes,
// regardless of whether the change came from ReportScroll or CommandScroll.
func (v *Viewport) OnScroll(fn func(offset float64)) {
	v.onScroll = append(v.onScroll, fn)
}

// LockScroll disables or re-enables the ambient scroll gesture. The embedding
// layer consults ScrollLocked before applying wheel events.
func (v *Viewport) LockScroll(locked bool) {
	v.scrollLocked = locked
}

// ScrollLocked reports whether the ambient scroll gesture is disabled.
func (v *Viewport) ScrollLocked() bool {
	return v.scrollLocked
}

// Scroll returns the current scroll offset.
func (v *Viewport) Scroll() float64 { return v.scroll }

// Height returns the viewport height.
func (v *Viewport) Height() float64 { return v.height }

// ScreenTop returns the viewport's absolute on-screen top coordinate.
func (v *Viewport) ScreenTop() float64 { return v.screenTop }

// ContentHeight returns the total scrollable content height.
func (v *Viewport) ContentHeight() float64 { return v.contentHeight }

// MaxScroll returns the largest valid scroll offset, never negative.
func (v *Viewport) MaxScroll() float64 {
	m := v.contentHeight - v.height
	if m < 0 {
		return 0
	}
	return m
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
