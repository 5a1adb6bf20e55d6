package order

import (
	"testing"

	"pgregory.net/rapid"
)

func TestSwapExchangesSlots(t *testing.T) {
	tab := NewTable()
	tab.Init([]string{"a", "b", "c"})

	tab.Swap("a", "c")

	if s, _ := tab.Slot("a"); s != 2 {
		t.Fatalf("expected a at slot 2, got %d", s)
	}
	if s, _ := tab.Slot("c"); s != 0 {
		t.Fatalf("expected c at slot 0, got %d", s)
	}
	if got := tab.Sorted(); got[0] != "c" || got[1] != "b" || got[2] != "a" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestSwapSelfAndUnknownAreNoOps(t *testing.T) {
	tab := NewTable()
	tab.Init([]string{"a", "b"})

	tab.Swap("a", "a")
	tab.Swap("a", "nope")
	tab.Swap("nope", "b")

	if got := tab.Sorted(); got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected order unchanged, got %v", got)
	}
}

func TestSubscribeFiresOnlyForOwnKey(t *testing.T) {
	tab := NewTable()
	tab.Init([]string{"a", "b", "c"})

	var aSlots, cSlots []int
	tab.Subscribe("a", func(slot int) { aSlots = append(aSlots, slot) })
	tab.Subscribe("c", func(slot int) { cSlots = append(cSlots, slot) })

	tab.Swap("a", "b")
	if len(aSlots) != 1 || aSlots[0] != 1 {
		t.Fatalf("expected a notified of slot 1, got %v", aSlots)
	}
	if len(cSlots) != 0 {
		t.Fatalf("expected c not notified by a/b swap, got %v", cSlots)
	}
}

func TestSlotUnknownKey(t *testing.T) {
	tab := NewTable()
	tab.Init([]string{"a"})

	if _, ok := tab.Slot("missing"); ok {
		t.Fatalf("expected ok=false for unknown key")
	}
}

func TestInitReplacesAssignment(t *testing.T) {
	tab := NewTable()
	tab.Init([]string{"a", "b"})
	tab.Swap("a", "b")

	tab.Init([]string{"x", "a"})
	if s, ok := tab.Slot("a"); !ok || s != 1 {
		t.Fatalf("expected a reassigned to slot 1, got %d ok=%v", s, ok)
	}
	if _, ok := tab.Slot("b"); ok {
		t.Fatalf("expected b gone after re-init")
	}
}

// The table's image must always be exactly {0..N-1}: no duplicates, no gaps,
// regardless of the swap sequence.
func TestBijectionInvariantUnderRandomSwaps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		keys := make([]string, n)
		for i := range keys {
			keys[i] = string(rune('a' + i))
		}
		tab := NewTable()
		tab.Init(keys)

		steps := rapid.IntRange(0, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			a := rapid.SampledFrom(keys).Draw(rt, "a")
			b := rapid.SampledFrom(keys).Draw(rt, "b")
			tab.Swap(a, b)

			seen := make([]bool, n)
			for _, k := range keys {
				slot, ok := tab.Slot(k)
				if !ok {
					rt.Fatalf("key %q lost its slot", k)
				}
				if slot < 0 || slot >= n {
					rt.Fatalf("slot %d out of range for %q", slot, k)
				}
				if seen[slot] {
					rt.Fatalf("slot %d occupied twice", slot)
				}
				seen[slot] = true
			}
			// Sorted must agree with the map view.
			for slot, k := range tab.Sorted() {
				if got, _ := tab.Slot(k); got != slot {
					rt.Fatalf("Sorted()[%d]=%q disagrees with Slot=%d", slot, k, got)
				}
			}
		}
	})
}
