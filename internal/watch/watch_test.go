package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitSignal(t *testing.T, c <-chan struct{}) {
	t.Helper()
	select {
	case <-c:
	case <-time.After(3 * time.Second):
		t.Fatalf("no change notification")
	}
}

func TestNotifiesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	w, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`[{"key":"a"}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitSignal(t, w.C)
}

func TestNotifiesOnCreateOfMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	w, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("create: %v", err)
	}
	waitSignal(t, w.C)
}

func TestIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	w, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	select {
	case <-w.C:
		t.Fatalf("sibling write must not notify")
	case <-time.After(300 * time.Millisecond):
	}
}
