package ui

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q, want unchanged", got)
	}
	got := truncate("a-very-long-theme-name", 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate = %q, want ellipsis suffix", got)
	}
	if got := truncate("anything", 0); got != "" {
		t.Errorf("truncate to 0 = %q, want empty", got)
	}
}

func TestTruncateWideRunes(t *testing.T) {
	// Full-width characters take two cells each.
	got := truncate("テーマテーマ", 6)
	if got == "テーマテーマ" {
		t.Error("Expected wide string to be truncated at 6 cells")
	}
}

func TestHighlightLineNoMatch(t *testing.T) {
	base := styleItem
	if got := highlightLine("gruvbox", "zz", base); !strings.Contains(got, "gruvbox") {
		t.Errorf("highlightLine dropped text: %q", got)
	}
}

func TestHighlightLinePreservesText(t *testing.T) {
	got := highlightLine("kanagawa-paper-edo", "kpe", styleItem)
	for _, part := range []string{"anagawa-", "aper-", "do"} {
		if !strings.Contains(got, part) {
			t.Errorf("Highlighted output missing %q: %q", part, got)
		}
	}
}
