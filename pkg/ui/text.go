package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mattfen/huepick/pkg/search"
)

// truncate shortens s to the given display width, appending an ellipsis.
// Width is measured in terminal cells, not runes, so wide characters in
// theme names don't break alignment.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// highlightLine styles the matched spans of a line. base styles unmatched
// runs; matched runs get the match style.
func highlightLine(text, query string, base lipgloss.Style) string {
	spans := search.HighlightSpans(text, query)
	if len(spans) == 0 {
		return base.Render(text)
	}

	runes := []rune(text)
	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		if sp.Start >= len(runes) {
			break
		}
		end := sp.End
		if end > len(runes) {
			end = len(runes)
		}
		if sp.Start > prev {
			b.WriteString(base.Render(string(runes[prev:sp.Start])))
		}
		b.WriteString(styleMatch.Render(string(runes[sp.Start:end])))
		prev = end
	}
	if prev < len(runes) {
		b.WriteString(base.Render(string(runes[prev:])))
	}
	return b.String()
}
