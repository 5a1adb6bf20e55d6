package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `
# draglist

Press and hold a row until it lifts, then drag it to a new position.
Rows part to make room as you go; near the top or bottom edge the list
scrolls on its own, faster the closer you get. Let go and the row
springs into its slot.

## Keys

- ` + "`s`" + ` save the current order
- ` + "`r`" + ` reload items from disk
- ` + "`?`" + ` toggle this help
- ` + "`q`" + ` quit

## Mouse

- Long-press and drag a row to reorder
- Wheel scrolls the list (except while dragging)
- The toolbar buttons are clickable
`

var (
	helpMu       sync.Mutex
	helpRendered string
	helpWidth    int
)

// renderHelp renders the help screen, caching by width. Renderer creation can
// query the terminal, so the fixed light/dark style is picked up front.
func renderHelp(width int) string {
	if width < 10 {
		width = 10
	}
	helpMu.Lock()
	defer helpMu.Unlock()
	if helpRendered != "" && helpWidth == width {
		return helpRendered
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		return helpMarkdown
	}
	helpRendered = out
	helpWidth = width
	return out
}
