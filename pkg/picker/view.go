// Package picker is the core picker state machine: session state, the view
// builder that turns catalog + filters into a line-addressable view, and the
// navigation primitives over it.
package picker

import (
	"fmt"
	"strings"

	"github.com/mattfen/huepick/pkg/catalog"
	"github.com/mattfen/huepick/pkg/search"
	"github.com/mattfen/huepick/pkg/sorting"
)

// Synthetic section names and their collapse keys.
const (
	BookmarksGroup = "Bookmarks"
	RecentGroup    = "Recent"
	ResultsGroup   = "Results"

	CollapseBookmarks = "__bookmarks"
	CollapseRecent    = "__recent"
	CollapseResults   = "__results"
)

// Markers encoded into item line text.
const (
	markActive      = "● "
	markInactive    = "  "
	markBookmarked  = " ★"
	markUnavailable = " ✗"

	iconCollapsed = "▸"
	iconExpanded  = "▾"
)

// LineKind classifies a rendered line.
type LineKind int

const (
	// LineItem is a selectable theme line.
	LineItem LineKind = iota
	// LineHeader is a group or section header.
	LineHeader
	// LinePlaceholder is the non-selectable "nothing to show" line.
	LinePlaceholder
)

// Line is one rendered row. Keeping kind, item name and group path on the
// line itself means cursor-to-meaning mapping never re-parses rendered text.
type Line struct {
	Text        string
	Kind        LineKind
	GroupPath   []string
	ItemName    string
	Depth       int
	CollapseKey string // headers only
}

// Group returns the innermost group name for the line, or "" at top level.
func (l Line) Group() string {
	if len(l.GroupPath) == 0 {
		return ""
	}
	return l.GroupPath[len(l.GroupPath)-1]
}

// ViewState is the fully rebuilt, line-addressable view. It is recomputed on
// every render and never patched incrementally.
type ViewState struct {
	Lines       []Line
	HeaderLines []int
	Cursor      int
}

// ItemAt returns the theme name at a line, or "" for headers and
// placeholders.
func (v *ViewState) ItemAt(line int) string {
	if line < 0 || line >= len(v.Lines) {
		return ""
	}
	if v.Lines[line].Kind != LineItem {
		return ""
	}
	return v.Lines[line].ItemName
}

// Empty reports whether the view holds only the placeholder.
func (v *ViewState) Empty() bool {
	return len(v.Lines) == 0 ||
		(len(v.Lines) == 1 && v.Lines[0].Kind == LinePlaceholder)
}

// viewBuilder accumulates lines during a rebuild.
type viewBuilder struct {
	s     *Session
	lines []Line
}

// buildView recomputes the entire view from current session state and
// restores the cursor to the best-matching position.
func (s *Session) buildView() *ViewState {
	prev := s.view
	var prevLine Line
	prevCursor := -1
	if prev != nil && prev.Cursor >= 0 && prev.Cursor < len(prev.Lines) {
		prevLine = prev.Lines[prev.Cursor]
		prevCursor = prev.Cursor
	}

	b := &viewBuilder{s: s}
	b.addBookmarkSection()
	b.addRecentSection()

	if s.flags.SearchQuery != "" || s.flags.SearchScope != "" {
		b.addSearchResults()
	} else {
		b.addCatalog()
	}

	v := &ViewState{Lines: b.lines}
	if len(v.Lines) == 0 {
		v.Lines = []Line{{Text: "  (no themes)", Kind: LinePlaceholder}}
	}
	for i, l := range v.Lines {
		if l.Kind == LineHeader {
			v.HeaderLines = append(v.HeaderLines, i)
		}
	}

	v.Cursor = s.restoreCursor(v, prevLine, prevCursor)
	return v
}

// restoreCursor picks the new cursor position after a rebuild. Preference
// order: same item in the same group, same item anywhere, same raw line
// clamped, the enclosing group's remembered line, then the top. This
// ordering is what keeps the cursor steady when an unrelated group is
// toggled.
func (s *Session) restoreCursor(v *ViewState, prevLine Line, prevCursor int) int {
	if len(v.Lines) == 0 {
		return 0
	}

	if prevLine.ItemName != "" {
		prevGroup := prevLine.Group()
		for i, l := range v.Lines {
			if l.Kind == LineItem && l.ItemName == prevLine.ItemName && l.Group() == prevGroup {
				return i
			}
		}
		for i, l := range v.Lines {
			if l.Kind == LineItem && l.ItemName == prevLine.ItemName {
				return i
			}
		}
	}

	if prevCursor >= 0 && prevCursor < len(v.Lines) {
		return prevCursor
	}

	if remembered, ok := s.lastCursorByGroup[prevLine.Group()]; ok {
		if remembered >= 0 && remembered < len(v.Lines) {
			return remembered
		}
	}

	if prevCursor >= len(v.Lines) {
		return len(v.Lines) - 1
	}
	return 0
}

// addBookmarkSection emits the synthetic Bookmarks section: header count is
// the total bookmark count, while the listed items honor the search filter.
func (b *viewBuilder) addBookmarkSection() {
	s := b.s
	if s.hideBookmarkGroup {
		return
	}
	total := s.bookmarks.Count(s.scope)
	if total == 0 {
		return
	}
	names := s.filterSectionItems(s.bookmarks.Names(s.scope))
	if len(names) == 0 {
		return
	}

	b.addSectionHeader(BookmarksGroup, CollapseBookmarks, total)
	if s.flags.Collapsed[CollapseBookmarks] {
		return
	}
	for _, name := range names {
		b.addItem(name, []string{BookmarksGroup}, 1)
	}
}

// addRecentSection mirrors the bookmark section, sourced from the history
// stack most-recent-first.
func (b *viewBuilder) addRecentSection() {
	s := b.s
	if s.hideRecentGroup {
		return
	}
	entries := s.hist.RecentFirst()
	if len(entries) == 0 {
		return
	}
	names := s.filterSectionItems(entries)
	if len(names) == 0 {
		return
	}

	b.addSectionHeader(RecentGroup, CollapseRecent, s.hist.Len())
	if s.flags.Collapsed[CollapseRecent] {
		return
	}
	for _, name := range names {
		b.addItem(name, []string{RecentGroup}, 1)
	}
}

// addSearchResults flattens the whole catalog into one Results section;
// grouping is suppressed while a search is active.
func (b *viewBuilder) addSearchResults() {
	s := b.s
	entries := search.Filter(catalog.Entries(s.root()), s.flags.SearchQuery, s.flags.SearchScope)
	entries = s.applyBookmarkFilter(entries)
	names := s.sortNames(entryNames(entries))
	if len(names) == 0 {
		return
	}

	b.addSectionHeader(ResultsGroup, CollapseResults, len(names))
	if s.flags.Collapsed[CollapseResults] {
		return
	}
	for _, name := range names {
		b.addItem(name, []string{ResultsGroup}, 1)
	}
}

// addCatalog renders the catalog natively: one flat list for a flat catalog
// (or when flat view is forced), otherwise nested group headers with their
// leaf items.
func (b *viewBuilder) addCatalog() {
	s := b.s
	root := s.root()
	if root == nil || !root.HasLeaves() {
		return
	}

	if s.flags.FlatView || root.IsLeafGroup() {
		entries := s.applyBookmarkFilter(catalog.Entries(root))
		for _, name := range s.sortNames(entryNames(entries)) {
			b.addItem(name, nil, 0)
		}
		return
	}

	b.addGroupChildren(root, nil, 0)
}

// addGroupChildren emits a group's direct leaf items (sorted and filtered)
// followed by its child groups, recursively.
func (b *viewBuilder) addGroupChildren(node *catalog.Node, path []string, depth int) {
	s := b.s

	var leaves []string
	var groups []*catalog.Node
	for _, c := range node.Children {
		if c.IsLeaf() {
			leaves = append(leaves, c.Name)
		} else if c.HasLeaves() {
			groups = append(groups, c)
		}
	}

	for _, name := range s.sortNames(s.filterGroupItems(leaves, path)) {
		b.addItem(name, path, depth)
	}

	for _, g := range groups {
		childPath := append(append([]string(nil), path...), g.Name)
		visible := b.groupHasVisibleContent(g, childPath)
		if !visible {
			continue
		}

		icon := iconExpanded
		if s.flags.Collapsed[g.Name] {
			icon = iconCollapsed
		}
		text := fmt.Sprintf("%s%s %s (%d)", indent(depth), icon, g.Name, g.LeafCount())
		b.lines = append(b.lines, Line{
			Text:        text,
			Kind:        LineHeader,
			GroupPath:   childPath,
			Depth:       depth,
			CollapseKey: g.Name,
		})

		if !s.flags.Collapsed[g.Name] {
			b.addGroupChildren(g, childPath, depth+1)
		}
	}
}

// groupHasVisibleContent reports whether any item in the subtree survives
// the current filters. Groups that would render zero items never appear.
func (b *viewBuilder) groupHasVisibleContent(node *catalog.Node, path []string) bool {
	s := b.s
	var leaves []string
	for _, c := range node.Children {
		if c.IsLeaf() {
			leaves = append(leaves, c.Name)
		} else if c.HasLeaves() {
			childPath := append(append([]string(nil), path...), c.Name)
			if b.groupHasVisibleContent(c, childPath) {
				return true
			}
		}
	}
	return len(s.filterGroupItems(leaves, path)) > 0
}

func (b *viewBuilder) addSectionHeader(name, collapseKey string, count int) {
	s := b.s
	icon := iconExpanded
	if s.flags.Collapsed[collapseKey] {
		icon = iconCollapsed
	}
	b.lines = append(b.lines, Line{
		Text:        fmt.Sprintf("%s %s (%d)", icon, name, count),
		Kind:        LineHeader,
		GroupPath:   []string{name},
		CollapseKey: collapseKey,
	})
}

// addItem renders one theme line with its availability, bookmark and active
// markers, alias-resolved.
func (b *viewBuilder) addItem(name string, path []string, depth int) {
	s := b.s

	prefix := markInactive
	if name == s.active {
		prefix = markActive
	}
	text := indent(depth) + prefix + s.aliases.Resolve(name)
	if s.bookmarks.Has(name, s.scope) {
		text += markBookmarked
	}
	if !s.avail.IsAvailable(name) {
		text += markUnavailable
	}

	b.lines = append(b.lines, Line{
		Text:      text,
		Kind:      LineItem,
		GroupPath: append([]string(nil), path...),
		ItemName:  name,
		Depth:     depth,
	})
}

// filterSectionItems applies the search filter (but not the scope, which is
// a catalog concept) to a synthetic section's items.
func (s *Session) filterSectionItems(names []string) []string {
	if s.flags.SearchQuery == "" {
		return names
	}
	return search.FilterNames(names, s.flags.SearchQuery)
}

// filterGroupItems applies search, scope and the bookmark-only filter to a
// group's direct leaves.
func (s *Session) filterGroupItems(names []string, path []string) []string {
	entries := make([]catalog.Entry, len(names))
	for i, n := range names {
		entries[i] = catalog.Entry{Name: n, GroupPath: path}
	}
	entries = search.Filter(entries, s.flags.SearchQuery, s.flags.SearchScope)
	entries = s.applyBookmarkFilter(entries)
	return entryNames(entries)
}

func (s *Session) applyBookmarkFilter(entries []catalog.Entry) []catalog.Entry {
	if !s.flags.OnlyBookmarked {
		return entries
	}
	var out []catalog.Entry
	for _, e := range entries {
		if s.bookmarks.Has(e.Name, s.scope) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Session) sortNames(names []string) []string {
	return sorting.Sort(names, sorting.Options{
		Mode:     s.flags.SortMode,
		Reversed: s.flags.SortReversed,
		Disabled: s.flags.SortDisabled,
		Recency:  s.hist.Entries(),
		Usage:    s.usage,
		Custom:   s.customSort,
	})
}

func entryNames(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
