package order

// Heights tracks per-item extents for variable-height lists. Items report
// their rendered size asynchronously; until a measurement arrives the
// configured estimate is used, so offsets are always computable.
//
// Fixed-height lists use a Heights with no measurements: the estimate then is
// the fixed item extent and every code path below degenerates to
// slot * extent arithmetic.
type Heights struct {
	estimate float64
	measured map[string]float64
}

// NewHeights returns a height table with the given estimated item extent.
func NewHeights(estimate float64) *Heights {
	return &Heights{
		estimate: estimate,
		measured: map[string]float64{},
	}
}

// SetEstimate replaces the estimated extent used for unmeasured items.
func (h *Heights) SetEstimate(estimate float64) {
	h.estimate = estimate
}

// Estimate returns the estimated extent for unmeasured items.
func (h *Heights) Estimate() float64 { return h.estimate }

// Measure records the rendered height of one item. It returns true when the
// stored value changed, so callers know a relayout is warranted.
func (h *Heights) Measure(key string, height float64) bool {
	if height <= 0 {
		return false
	}
	if prev, ok := h.measured[key]; ok && prev == height {
		return false
	}
	h.measured[key] = height
	return true
}

// Extent returns the measured height of key, or the estimate if it has not
// reported one yet.
func (h *Heights) Extent(key string) float64 {
	if m, ok := h.measured[key]; ok {
		return m
	}
	return h.estimate
}

// ExtentOf returns the extent of the item currently occupying slot.
func (h *Heights) ExtentOf(t *Table, slot int) float64 {
	key, ok := t.Key(slot)
	if !ok {
		return h.estimate
	}
	return h.Extent(key)
}

// OffsetOf returns the rest offset of the given slot: the summed extents of
// every item occupying a lower slot.
func (h *Heights) OffsetOf(t *Table, slot int) float64 {
	if slot < 0 {
		return 0
	}
	if slot > t.Len() {
		slot = t.Len()
	}
	var off float64
	for s := 0; s < slot; s++ {
		off += h.ExtentOf(t, s)
	}
	return off
}

// TotalExtent returns the summed extents of all items: the scrollable content
// height of the list body.
func (h *Heights) TotalExtent(t *Table) float64 {
	return h.OffsetOf(t, t.Len())
}

// SlotAt returns the slot whose offset range contains the given content-space
// coordinate, clamped to the valid slot range. Used by the variable-height
// drag variant to find the slot under the dragged item's center.
func (h *Heights) SlotAt(t *Table, y float64) int {
	n := t.Len()
	if n == 0 {
		return 0
	}
	var off float64
	for s := 0; s < n; s++ {
		ext := h.ExtentOf(t, s)
		if y < off+ext {
			return s
		}
		off += ext
	}
	return n - 1
}
