package picker

// Navigation primitives. All functions are pure: they take a ViewState and
// a cursor line and return the new cursor line, leaving state untouched.

// Move steps the cursor by delta lines with wraparound, skipping
// placeholder lines. Headers are navigable.
func Move(v *ViewState, cursor, delta int) int {
	n := len(v.Lines)
	if n == 0 {
		return 0
	}
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	pos := cursor
	for i := 0; i < delta; i++ {
		for range v.Lines {
			pos = wrap(pos+step, n)
			if v.Lines[pos].Kind != LinePlaceholder {
				break
			}
		}
	}
	return pos
}

// NextHeader jumps to the first header line after cursor, wrapping to the
// first header when none follows.
func NextHeader(v *ViewState, cursor int) int {
	if len(v.HeaderLines) == 0 {
		return cursor
	}
	for _, h := range v.HeaderLines {
		if h > cursor {
			return h
		}
	}
	return v.HeaderLines[0]
}

// PrevHeader jumps to the last header line before cursor, wrapping to the
// last header when none precedes.
func PrevHeader(v *ViewState, cursor int) int {
	if len(v.HeaderLines) == 0 {
		return cursor
	}
	for i := len(v.HeaderLines) - 1; i >= 0; i-- {
		if v.HeaderLines[i] < cursor {
			return v.HeaderLines[i]
		}
	}
	return v.HeaderLines[len(v.HeaderLines)-1]
}

// SectionRange returns the contiguous [start, end] line range of a synthetic
// section (its header plus its items), or ok=false when the section is not
// rendered.
func SectionRange(v *ViewState, sectionName string) (start, end int, ok bool) {
	for i, l := range v.Lines {
		if l.Kind == LineHeader && l.Group() == sectionName {
			start = i
			end = i
			for j := i + 1; j < len(v.Lines); j++ {
				if v.Lines[j].Kind == LineItem && v.Lines[j].Group() == sectionName {
					end = j
					continue
				}
				break
			}
			return start, end, true
		}
	}
	return 0, 0, false
}

// NextMarked finds the next line after cursor whose theme satisfies pred,
// excluding the given section's own line range so "next bookmark" from
// inside the Bookmarks section lands on a bookmark elsewhere in the tree.
// The scan wraps around the full line list; cursor is returned unchanged
// when nothing matches.
func NextMarked(v *ViewState, cursor int, sectionName string, pred func(string) bool) int {
	return scanMarked(v, cursor, +1, sectionName, pred)
}

// PrevMarked is NextMarked scanning backward.
func PrevMarked(v *ViewState, cursor int, sectionName string, pred func(string) bool) int {
	return scanMarked(v, cursor, -1, sectionName, pred)
}

func scanMarked(v *ViewState, cursor, step int, sectionName string, pred func(string) bool) int {
	n := len(v.Lines)
	if n == 0 {
		return cursor
	}
	exStart, exEnd, excluded := SectionRange(v, sectionName)

	pos := cursor
	for i := 0; i < n; i++ {
		pos = wrap(pos+step, n)
		if excluded && pos >= exStart && pos <= exEnd {
			continue
		}
		l := v.Lines[pos]
		if l.Kind == LineItem && pred(l.ItemName) {
			return pos
		}
	}
	return cursor
}

// EnterGroup moves from a header line to its first child line. On a
// collapsed or empty header, and on non-header lines, the cursor is
// unchanged.
func EnterGroup(v *ViewState, cursor int) int {
	if cursor < 0 || cursor >= len(v.Lines) {
		return cursor
	}
	l := v.Lines[cursor]
	if l.Kind != LineHeader {
		return cursor
	}
	next := cursor + 1
	if next >= len(v.Lines) {
		return cursor
	}
	child := v.Lines[next]
	if child.Kind == LinePlaceholder {
		return cursor
	}
	// The line after a header belongs to the group only when it sits deeper
	// in the tree (or inside a synthetic section).
	if child.Depth > l.Depth || child.Group() == l.Group() {
		return next
	}
	return cursor
}

// ExitGroup moves from a child line to its enclosing header, and from a
// header line to the previous header. Header-to-header movement is always
// backward, so there is no "enter the group above" ambiguity.
func ExitGroup(v *ViewState, cursor int) int {
	if cursor < 0 || cursor >= len(v.Lines) {
		return cursor
	}
	if v.Lines[cursor].Kind == LineHeader {
		return PrevHeader(v, cursor)
	}
	group := v.Lines[cursor].Group()
	if group == "" {
		return cursor
	}
	for i := cursor - 1; i >= 0; i-- {
		if v.Lines[i].Kind == LineHeader && v.Lines[i].Group() == group {
			return i
		}
	}
	return cursor
}

func wrap(pos, n int) int {
	if n == 0 {
		return 0
	}
	pos %= n
	if pos < 0 {
		pos += n
	}
	return pos
}
