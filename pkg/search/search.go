// Package search implements the picker's fuzzy matching: a subsequence
// matcher that yields match positions for highlighting, span coalescing, and
// a scope-aware candidate filter.
package search

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/mattfen/huepick/pkg/catalog"
)

// MinHighlightLen is the minimum query length for positional highlighting.
// Shorter queries still filter (by substring) but produce no spans.
const MinHighlightLen = 2

// Positions returns the rune index of each query character found in order
// within text, matching case-insensitively. It returns ok=false when any
// character cannot be found after the previous match position.
func Positions(text, query string) ([]int, bool) {
	if query == "" {
		return nil, false
	}
	lowText := []rune(strings.ToLower(text))
	lowQuery := []rune(strings.ToLower(query))

	positions := make([]int, 0, len(lowQuery))
	start := 0
	for _, q := range lowQuery {
		found := -1
		for i := start; i < len(lowText); i++ {
			if lowText[i] == q {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		positions = append(positions, found)
		start = found + 1
	}
	return positions, true
}

// Span is a half-open [Start, End) run of matched rune columns.
type Span struct {
	Start int
	End   int
}

// MergeSpans coalesces contiguous matched positions into runs, so a
// consecutive match renders as one highlight span rather than one per
// character. Positions must be strictly increasing, as returned by
// Positions.
func MergeSpans(positions []int) []Span {
	if len(positions) == 0 {
		return nil
	}
	spans := []Span{{Start: positions[0], End: positions[0] + 1}}
	for _, p := range positions[1:] {
		last := &spans[len(spans)-1]
		if p == last.End {
			last.End = p + 1
			continue
		}
		spans = append(spans, Span{Start: p, End: p + 1})
	}
	return spans
}

// HighlightSpans returns the coalesced match spans for rendering, or nil
// when the query is too short to highlight or does not match.
func HighlightSpans(text, query string) []Span {
	if len([]rune(query)) < MinHighlightLen {
		return nil
	}
	positions, ok := Positions(text, query)
	if !ok {
		return nil
	}
	return MergeSpans(positions)
}

// Matches reports whether query matches text. Queries below the highlight
// threshold fall back to plain substring matching; longer queries use the
// subsequence matcher.
func Matches(text, query string) bool {
	if query == "" {
		return true
	}
	if len([]rune(query)) < MinHighlightLen {
		return strings.Contains(strings.ToLower(text), strings.ToLower(query))
	}
	_, ok := Positions(text, query)
	return ok
}

// Filter returns the candidates matching query, in their original order.
// When scope is non-empty, candidates are first restricted to those whose
// group path contains the scope name (case-insensitive substring).
func Filter(candidates []catalog.Entry, query, scope string) []catalog.Entry {
	if scope != "" {
		var scoped []catalog.Entry
		for _, c := range candidates {
			if pathContains(c.GroupPath, scope) {
				scoped = append(scoped, c)
			}
		}
		candidates = scoped
	}
	if query == "" {
		return candidates
	}

	if len([]rune(query)) < MinHighlightLen {
		var out []catalog.Entry
		for _, c := range candidates {
			if Matches(c.Name, query) {
				out = append(out, c)
			}
		}
		return out
	}

	// fuzzy.Find ranks by match quality; re-order back to candidate order so
	// the sort engine stays the single authority on ordering.
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	matched := make(map[int]bool)
	for _, m := range fuzzy.Find(query, names) {
		matched[m.Index] = true
	}
	var out []catalog.Entry
	for i, c := range candidates {
		if matched[i] {
			out = append(out, c)
		}
	}
	return out
}

// FilterNames is Filter over bare names with no scope restriction.
func FilterNames(names []string, query string) []string {
	entries := make([]catalog.Entry, len(names))
	for i, n := range names {
		entries[i] = catalog.Entry{Name: n}
	}
	filtered := Filter(entries, query, "")
	out := make([]string, len(filtered))
	for i, e := range filtered {
		out[i] = e.Name
	}
	return out
}

func pathContains(path []string, scope string) bool {
	for _, p := range path {
		if containsFold(p, scope) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// NormalizeQuery trims whitespace and drops control characters that can leak
// in from terminal paste events.
func NormalizeQuery(q string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(q))
}
