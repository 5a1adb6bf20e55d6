package tui

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Debug logging for interactive sessions. The TUI owns the terminal, so
// diagnostics go to the file named by DRAGLIST_DEBUG_LOG instead of stderr.
// Unset means logging is off.

var (
	debugMu   sync.Mutex
	debugFile *os.File
	debugOnce sync.Once
)

func debugLogf(format string, args ...any) {
	debugOnce.Do(func() {
		path := os.Getenv("DRAGLIST_DEBUG_LOG")
		if path == "" {
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		debugFile = f
	})
	if debugFile == nil {
		return
	}
	debugMu.Lock()
	defer debugMu.Unlock()
	fmt.Fprintf(debugFile, "%s "+format+"\n",
		append([]any{time.Now().Format("15:04:05.000")}, args...)...)
}
