package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestOrders(t *testing.T) *Orders {
	t.Helper()
	o, err := Open(context.Background(), filepath.Join(t.TempDir(), "orders.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = o.Close() })
	return o
}

func TestSaveAndLoadOrderRoundTrip(t *testing.T) {
	ctx := context.Background()
	o := openTestOrders(t)

	want := []string{"b", "a", "c"}
	if err := o.SaveOrder(ctx, "demo", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := o.LoadOrder(ctx, "demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loaded %v, want %v", got, want)
	}
}

func TestSaveOrderReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	o := openTestOrders(t)

	if err := o.SaveOrder(ctx, "demo", []string{"a", "b"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := o.SaveOrder(ctx, "demo", []string{"b", "a"}); err != nil {
		t.Fatalf("save again: %v", err)
	}
	got, err := o.LoadOrder(ctx, "demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("loaded %v, want latest save", got)
	}
}

func TestLoadOrderMissingList(t *testing.T) {
	o := openTestOrders(t)
	if _, err := o.LoadOrder(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyOrderMergesLiveAndSaved(t *testing.T) {
	cases := []struct {
		name  string
		live  []string
		saved []string
		want  []string
	}{
		{"exact match", []string{"a", "b", "c"}, []string{"c", "a", "b"}, []string{"c", "a", "b"}},
		{"saved has stale key", []string{"a", "b"}, []string{"x", "b", "a"}, []string{"b", "a"}},
		{"live has new key", []string{"a", "b", "c"}, []string{"b", "a"}, []string{"b", "a", "c"}},
		{"no saved order", []string{"a", "b"}, nil, []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyOrder(tc.live, tc.saved); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ApplyOrder(%v, %v) = %v, want %v", tc.live, tc.saved, got, tc.want)
			}
		})
	}
}
