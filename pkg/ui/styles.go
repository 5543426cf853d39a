package ui

import "github.com/charmbracelet/lipgloss"

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - colors and shared styles for the picker
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorText    = lipgloss.Color("#F8F8F2")
	ColorSubtext = lipgloss.Color("#BFBFBF")
	ColorMuted   = lipgloss.Color("#6272A4")

	// Accents
	ColorPrimary   = lipgloss.Color("#BD93F9")
	ColorHighlight = lipgloss.Color("#FFB86C")
	ColorActive    = lipgloss.Color("#50FA7B")
	ColorWarn      = lipgloss.Color("#F1FA8C")
	ColorError     = lipgloss.Color("#FF5555")
	ColorCursorBg  = lipgloss.Color("#44475A")
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	styleItem = lipgloss.NewStyle().
			Foreground(ColorText)

	styleCursor = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorCursorBg).
			Bold(true)

	styleMatch = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	stylePlaceholder = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)

	styleStatusInfo = lipgloss.NewStyle().
			Foreground(ColorSubtext)

	styleStatusWarn = lipgloss.NewStyle().
			Foreground(ColorWarn)

	styleStatusError = lipgloss.NewStyle().
				Foreground(ColorError)

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	styleFooter = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
