// Package sorting provides the pluggable comparators the picker orders theme
// lists with. All sorts are stable; ties keep original catalog order.
package sorting

import (
	"sort"
	"strings"
)

// Mode selects the active comparator.
type Mode int

const (
	// ModeAlpha sorts case-insensitively by name.
	ModeAlpha Mode = iota
	// ModeRecent sorts by position in the selection history, most recent
	// first. Themes absent from history sort last.
	ModeRecent
	// ModeUsage sorts by descending use count.
	ModeUsage
	// ModeCustom uses a caller-supplied comparator.
	ModeCustom
)

var modeNames = map[Mode]string{
	ModeAlpha:  "alpha",
	ModeRecent: "recent",
	ModeUsage:  "usage",
	ModeCustom: "custom",
}

// String returns the persisted name of the mode.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "alpha"
}

// ParseMode maps a persisted name back to a Mode, defaulting to alpha.
func ParseMode(s string) Mode {
	for m, name := range modeNames {
		if name == s {
			return m
		}
	}
	return ModeAlpha
}

// Next cycles through the built-in modes. Custom is only entered explicitly,
// never by cycling.
func (m Mode) Next() Mode {
	switch m {
	case ModeAlpha:
		return ModeRecent
	case ModeRecent:
		return ModeUsage
	default:
		return ModeAlpha
	}
}

// Comparator reports whether a sorts before b.
type Comparator func(a, b string) bool

// Options carries everything a sort pass needs. Recency is the history
// entries oldest-first (as stored); Usage maps theme name to use count.
type Options struct {
	Mode     Mode
	Reversed bool
	Disabled bool
	Recency  []string
	Usage    map[string]int
	Custom   Comparator
}

// Sort returns items ordered according to opts. The input slice is not
// modified. Disabled bypasses sorting entirely and returns catalog order.
// Reversed reverses the already-sorted output rather than negating the
// comparator, so custom comparators that are not antisymmetric still behave.
func Sort(items []string, opts Options) []string {
	out := append([]string(nil), items...)
	if opts.Disabled {
		return out
	}

	cmp := comparatorFor(opts)
	if cmp != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return cmp(out[i], out[j])
		})
	}
	if opts.Reversed {
		reverse(out)
	}
	return out
}

func comparatorFor(opts Options) Comparator {
	switch opts.Mode {
	case ModeAlpha:
		return func(a, b string) bool {
			return strings.ToLower(a) < strings.ToLower(b)
		}
	case ModeRecent:
		// Entries are stored oldest-first; higher index = more recent.
		rank := make(map[string]int, len(opts.Recency))
		for i, name := range opts.Recency {
			rank[name] = i
		}
		return func(a, b string) bool {
			ra, oka := rank[a]
			rb, okb := rank[b]
			if oka != okb {
				return oka
			}
			if !oka {
				return false
			}
			return ra > rb
		}
	case ModeUsage:
		return func(a, b string) bool {
			return opts.Usage[a] > opts.Usage[b]
		}
	case ModeCustom:
		return opts.Custom
	default:
		return nil
	}
}

func reverse(items []string) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
