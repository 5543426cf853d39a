// Package history implements the bounded undo/redo stack of selected themes.
//
// The stack holds entries oldest-first with a 1-based index (0 = empty).
// The invariant 0 <= index <= len(entries) <= maxSize holds after every
// mutation; Push, Undo, Redo and Jump are the only mutators.
package history

import (
	"errors"
	"fmt"
)

// DefaultMaxSize bounds the stack when no size is configured.
const DefaultMaxSize = 50

// ErrNothingToUndo is returned when the stack has no earlier entry.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is returned when the stack has no later entry.
var ErrNothingToRedo = errors.New("nothing to redo")

// ErrInvalidPosition is returned by Jump for out-of-range positions.
var ErrInvalidPosition = errors.New("invalid history position")

// Stack is a bounded undo/redo stack with editor branch-cut semantics.
type Stack struct {
	entries []string
	index   int // 1-based; 0 when empty
	maxSize int
}

// New creates a stack bounded to maxSize entries. Non-positive sizes fall
// back to DefaultMaxSize.
func New(maxSize int) *Stack {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Stack{maxSize: maxSize}
}

// Push records a new selection. Any redo branch past the current index is
// discarded first; an existing occurrence of name elsewhere in the stack is
// removed (with the index adjusted when the occurrence was at or before it);
// then name is appended and becomes the current entry. When the stack
// overflows, the oldest entry is evicted.
func (s *Stack) Push(name string) {
	if s.index < len(s.entries) {
		s.entries = s.entries[:s.index]
	}

	for i, e := range s.entries {
		if e == name {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			if i < s.index {
				s.index--
			}
			break
		}
	}

	s.entries = append(s.entries, name)
	s.index = len(s.entries)

	if len(s.entries) > s.maxSize {
		s.entries = s.entries[1:]
		s.index--
	}
}

// Undo steps back one entry and returns it.
func (s *Stack) Undo() (string, error) {
	if s.index <= 1 {
		return "", ErrNothingToUndo
	}
	s.index--
	return s.entries[s.index-1], nil
}

// Redo steps forward one entry and returns it.
func (s *Stack) Redo() (string, error) {
	if s.index >= len(s.entries) {
		return "", ErrNothingToRedo
	}
	s.index++
	return s.entries[s.index-1], nil
}

// Jump moves the index directly to a 1-based position and returns the entry
// there.
func (s *Stack) Jump(position int) (string, error) {
	if position < 1 || position > len(s.entries) {
		return "", fmt.Errorf("%w: %d (stack has %d entries)", ErrInvalidPosition, position, len(s.entries))
	}
	s.index = position
	return s.entries[position-1], nil
}

// Current returns the entry at the index, or "" when the stack is empty or
// fully undone.
func (s *Stack) Current() string {
	if s.index < 1 || s.index > len(s.entries) {
		return ""
	}
	return s.entries[s.index-1]
}

// Entries returns a copy of the stack contents, oldest first.
func (s *Stack) Entries() []string {
	return append([]string(nil), s.entries...)
}

// RecentFirst returns a copy of the stack contents, most recent first.
func (s *Stack) RecentFirst() []string {
	out := make([]string, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
	}
	return out
}

// Index returns the 1-based index (0 when empty).
func (s *Stack) Index() int { return s.index }

// Len returns the number of entries.
func (s *Stack) Len() int { return len(s.entries) }

// MaxSize returns the configured bound.
func (s *Stack) MaxSize() int { return s.maxSize }

// Stats summarizes the stack for display.
type Stats struct {
	Depth    int
	Position int
	MaxSize  int
}

// Stats returns a display summary of the stack.
func (s *Stack) Stats() Stats {
	return Stats{Depth: len(s.entries), Position: s.index, MaxSize: s.maxSize}
}

// Snapshot is the persisted form of the stack.
type Snapshot struct {
	Entries []string `json:"entries"`
	Index   int      `json:"index"`
	MaxSize int      `json:"max_size"`
}

// Snapshot captures the stack state for persistence.
func (s *Stack) Snapshot() Snapshot {
	return Snapshot{Entries: s.Entries(), Index: s.index, MaxSize: s.maxSize}
}

// Restore rebuilds a stack from a snapshot, clamping anything out of range
// so a hand-edited or corrupt blob cannot break the invariant.
func Restore(snap Snapshot, maxSize int) *Stack {
	if maxSize <= 0 {
		maxSize = snap.MaxSize
	}
	s := New(maxSize)
	entries := snap.Entries
	if len(entries) > s.maxSize {
		entries = entries[len(entries)-s.maxSize:]
	}
	s.entries = append([]string(nil), entries...)
	s.index = snap.Index
	if s.index > len(s.entries) {
		s.index = len(s.entries)
	}
	if s.index < 0 {
		s.index = 0
	}
	return s
}
