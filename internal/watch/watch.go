// Package watch notifies the demo app when its items file changes on disk so
// the list can reload without restarting.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher delivers a signal on C whenever the watched file is written,
// created or renamed into place. Signals are coalesced: a burst of writes may
// produce a single notification.
type Watcher struct {
	C <-chan struct{}

	fw   *fsnotify.Watcher
	done chan struct{}
}

// New watches the file at path. Editors typically replace files via rename,
// so the parent directory is watched and events filtered by name; the file
// itself does not need to exist yet.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan struct{}, 1)
	w := &Watcher{C: ch, fw: fw, done: make(chan struct{})}

	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
					// A notification is already pending.
				}
			case _, ok := <-fw.Errors:
				if !ok {
					return
				}
				// Watch errors are not actionable here; the next poll of C
				// simply sees nothing.
			}
		}
	}()
	return w, nil
}

// Close stops the watcher and waits for its event loop to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
