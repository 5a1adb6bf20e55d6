// Package order maintains the slot assignment for a reorderable list: a
// bijection from item key to slot index, mutated by swaps while a drag is in
// progress, plus the measured-height table used by variable-height lists.
package order

// Table maps stable item keys to slot indexes. Outside of a single Swap the
// mapping is always a bijection onto {0..N-1}: every slot has exactly one
// occupant and every key exactly one slot.
//
// The Table is derived, disposable interaction state. It is re-initialized
// whenever the backing collection changes and never persisted.
type Table struct {
	slots map[string]int
	keys  []string // slot -> key

	subs map[string][]func(slot int)
}

// NewTable returns an empty table. Call Init before use.
func NewTable() *Table {
	return &Table{
		slots: map[string]int{},
		subs:  map[string][]func(slot int){},
	}
}

// Init assigns slot = index for the given key order, replacing any previous
// assignment. Subscriptions survive re-initialization; keys that are no
// longer present simply stop receiving notifications.
func (t *Table) Init(keys []string) {
	t.slots = make(map[string]int, len(keys))
	t.keys = make([]string, len(keys))
	for i, k := range keys {
		t.slots[k] = i
		t.keys[i] = k
	}
}

// Len returns the number of items in the table.
func (t *Table) Len() int { return len(t.keys) }

// Slot returns the slot currently assigned to key. ok is false when the key
// is not part of the current assignment.
func (t *Table) Slot(key string) (slot int, ok bool) {
	slot, ok = t.slots[key]
	return slot, ok
}

// Key returns the key currently occupying the given slot.
func (t *Table) Key(slot int) (string, bool) {
	if slot < 0 || slot >= len(t.keys) {
		return "", false
	}
	return t.keys[slot], true
}

// Swap exchanges the slots of a and b in one atomic write. Swapping a key
// with itself, or naming a key that is not present, is a no-op: interaction
// code routinely races collection changes, so a stale swap request must not
// crash (see the degraded-read policy on Slot).
func (t *Table) Swap(a, b string) {
	if a == b {
		return
	}
	sa, oka := t.slots[a]
	sb, okb := t.slots[b]
	if !oka || !okb {
		return
	}

	// Both entries change in one step; observers only ever see the
	// mapping before or after, never a duplicated slot.
	t.slots[a] = sb
	t.slots[b] = sa
	t.keys[sa] = b
	t.keys[sb] = a

	t.notify(a, sb)
	t.notify(b, sa)
}

// Sorted returns the keys in slot order. The slice is a copy; callers may
// keep it.
func (t *Table) Sorted() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Subscribe registers a handler invoked when the given key's slot changes due
// to a swap. Handlers fire only for their own key, not for every table write.
func (t *Table) Subscribe(key string, fn func(slot int)) {
	t.subs[key] = append(t.subs[key], fn)
}

// Unsubscribe removes all handlers for the given key.
func (t *Table) Unsubscribe(key string) {
	delete(t.subs, key)
}

func (t *Table) notify(key string, slot int) {
	for _, fn := range t.subs[key] {
		fn(slot)
	}
}
