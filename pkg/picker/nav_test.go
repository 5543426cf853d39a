package picker

import "testing"

// navView builds a hand-assembled view: a Bookmarks section followed by two
// catalog groups.
func navView() *ViewState {
	lines := []Line{
		{Kind: LineHeader, GroupPath: []string{BookmarksGroup}, CollapseKey: CollapseBookmarks},
		{Kind: LineItem, ItemName: "nord", GroupPath: []string{BookmarksGroup}, Depth: 1},
		{Kind: LineHeader, GroupPath: []string{"dark"}, CollapseKey: "dark"},
		{Kind: LineItem, ItemName: "gruvbox", GroupPath: []string{"dark"}, Depth: 1},
		{Kind: LineItem, ItemName: "nord", GroupPath: []string{"dark"}, Depth: 1},
		{Kind: LineHeader, GroupPath: []string{"light"}, CollapseKey: "light"},
		{Kind: LineItem, ItemName: "dawn", GroupPath: []string{"light"}, Depth: 1},
	}
	v := &ViewState{Lines: lines}
	for i, l := range lines {
		if l.Kind == LineHeader {
			v.HeaderLines = append(v.HeaderLines, i)
		}
	}
	return v
}

func TestMoveWrapsAround(t *testing.T) {
	v := navView()
	if got := Move(v, 6, 1); got != 0 {
		t.Errorf("Move down from last = %d, want 0", got)
	}
	if got := Move(v, 0, -1); got != 6 {
		t.Errorf("Move up from first = %d, want 6", got)
	}
	if got := Move(v, 1, 2); got != 3 {
		t.Errorf("Move(1, +2) = %d, want 3", got)
	}
}

func TestMoveSkipsPlaceholder(t *testing.T) {
	v := &ViewState{Lines: []Line{{Kind: LinePlaceholder, Text: "(no themes)"}}}
	if got := Move(v, 0, 1); got != 0 {
		t.Errorf("Move on placeholder-only view = %d, want 0", got)
	}
}

func TestHeaderJumps(t *testing.T) {
	v := navView()
	if got := NextHeader(v, 0); got != 2 {
		t.Errorf("NextHeader(0) = %d, want 2", got)
	}
	if got := NextHeader(v, 6); got != 0 {
		t.Errorf("NextHeader past last = %d, want wrap to 0", got)
	}
	if got := PrevHeader(v, 2); got != 0 {
		t.Errorf("PrevHeader(2) = %d, want 0", got)
	}
	if got := PrevHeader(v, 0); got != 5 {
		t.Errorf("PrevHeader at first = %d, want wrap to 5", got)
	}
}

func TestSectionRange(t *testing.T) {
	v := navView()
	start, end, ok := SectionRange(v, BookmarksGroup)
	if !ok || start != 0 || end != 1 {
		t.Errorf("SectionRange = (%d, %d, %v), want (0, 1, true)", start, end, ok)
	}
	if _, _, ok := SectionRange(v, RecentGroup); ok {
		t.Error("Expected missing section to report ok=false")
	}
}

func TestNextMarkedExcludesSection(t *testing.T) {
	v := navView()
	isNord := func(name string) bool { return name == "nord" }

	// From the light group, the scan must wrap past the Bookmarks section
	// and land on the catalog copy of nord.
	if got := NextMarked(v, 6, BookmarksGroup, isNord); got != 4 {
		t.Errorf("NextMarked(6) = %d, want 4", got)
	}
	if got := PrevMarked(v, 2, BookmarksGroup, isNord); got != 4 {
		t.Errorf("PrevMarked(2) = %d, want 4 (wrapped)", got)
	}
}

func TestNextMarkedNoMatchKeepsCursor(t *testing.T) {
	v := navView()
	never := func(string) bool { return false }
	if got := NextMarked(v, 3, BookmarksGroup, never); got != 3 {
		t.Errorf("NextMarked with no match = %d, want cursor 3 unchanged", got)
	}
}

func TestEnterGroup(t *testing.T) {
	v := navView()
	if got := EnterGroup(v, 2); got != 3 {
		t.Errorf("EnterGroup(dark header) = %d, want 3", got)
	}
	if got := EnterGroup(v, 3); got != 3 {
		t.Errorf("EnterGroup on item = %d, want unchanged", got)
	}
}

func TestEnterCollapsedGroupUnchanged(t *testing.T) {
	// A collapsed group header directly followed by a sibling header.
	v := &ViewState{Lines: []Line{
		{Kind: LineHeader, GroupPath: []string{"dark"}},
		{Kind: LineHeader, GroupPath: []string{"light"}},
		{Kind: LineItem, ItemName: "dawn", GroupPath: []string{"light"}, Depth: 1},
	}}
	if got := EnterGroup(v, 0); got != 0 {
		t.Errorf("EnterGroup on collapsed header = %d, want unchanged", got)
	}
}

func TestExitGroup(t *testing.T) {
	v := navView()
	if got := ExitGroup(v, 4); got != 2 {
		t.Errorf("ExitGroup(item in dark) = %d, want 2", got)
	}
	if got := ExitGroup(v, 5); got != 2 {
		t.Errorf("ExitGroup(light header) = %d, want previous header 2", got)
	}
}
