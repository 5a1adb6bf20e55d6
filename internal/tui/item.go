package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Item is one reorderable element. Key must be stable and unique within the
// list for as long as the element is present; it is how the position table
// tracks the element across reorders.
type Item interface {
	Key() string
	Title() string
}

// Delegate renders list rows and reports their heights. Height is consulted
// whenever the list is (re)measured; in fixed-extent mode it should return a
// constant.
type Delegate interface {
	// Height returns the item's height in rows for the given width.
	Height(item Item, width int) int
	// Render returns the item's rendered block, exactly Height lines tall.
	Render(item Item, index int, dragging bool, width int) string
}

// DefaultDelegate renders one-line rows with a grab handle, highlighting the
// dragged row.
type DefaultDelegate struct {
	normal   lipgloss.Style
	dragging lipgloss.Style
}

// NewDefaultDelegate returns the standard single-line row delegate.
func NewDefaultDelegate() DefaultDelegate {
	return DefaultDelegate{
		normal:   styleRow,
		dragging: styleDragging,
	}
}

// Height implements Delegate; default rows are always one line.
func (d DefaultDelegate) Height(Item, int) int { return 1 }

// Render implements Delegate.
func (d DefaultDelegate) Render(item Item, index int, dragging bool, width int) string {
	if width < 4 {
		return ""
	}

	handle := styleHandle.Render("≡ ")
	line := fmt.Sprintf("%d. %s", index+1, item.Title())

	contentW := width - xansi.StringWidth(handle)
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	if dragging {
		return handle + d.dragging.Render(line)
	}
	return handle + d.normal.Render(line)
}
