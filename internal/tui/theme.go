package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything routes through lipgloss.AdaptiveColor. "Faint" styling is
// applied on dark backgrounds only; faint text on light terminals often
// becomes illegible.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// glamourStyle picks the markdown style matching the terminal background.
func glamourStyle() string {
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	// Chrome: header, toolbar, footer help.
	colorChromeFg lipgloss.TerminalColor = ac("240", "245")

	// Row highlight while an item is being dragged: prominent against the
	// surface in both themes.
	colorDraggingBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorDraggingFg lipgloss.TerminalColor = ac("235", "255")

	// Grab handle shown at the left edge of each row.
	colorHandleFg lipgloss.TerminalColor = ac("245", "240")

	// Toolbar buttons (clickable zones).
	colorButtonFg lipgloss.TerminalColor = ac("235", "252")
	colorButtonBg lipgloss.TerminalColor = ac("253", "237")
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleChrome   = lipgloss.NewStyle().Foreground(colorChromeFg)
	styleHandle   = lipgloss.NewStyle().Foreground(colorHandleFg)
	styleRow      = lipgloss.NewStyle()
	styleDragging = lipgloss.NewStyle().Foreground(colorDraggingFg).Background(colorDraggingBg).Bold(true)
	styleButton   = lipgloss.NewStyle().Foreground(colorButtonFg).Background(colorButtonBg).Padding(0, 1)
	styleFlash    = faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
)
