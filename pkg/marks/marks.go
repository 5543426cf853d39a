// Package marks holds the scoped bookmark sets and numbered quick slots.
// Scopes are profile names; the "__global" scope always exists.
package marks

import (
	"errors"
	"sort"
)

// GlobalScope is the distinguished always-present scope.
const GlobalScope = "__global"

// DefaultCapacity bounds each scope's bookmark set when unconfigured.
const DefaultCapacity = 100

// ErrCapacityExceeded is returned when a scope's bookmark set is full.
var ErrCapacityExceeded = errors.New("bookmark capacity exceeded")

// ErrInvalidSlot is returned for quick-slot keys that are not a single
// digit 0-9.
var ErrInvalidSlot = errors.New("invalid quick slot")

// ErrSlotUnassigned is returned when jumping to an empty quick slot.
var ErrSlotUnassigned = errors.New("quick slot unassigned")

// Bookmarks is a capacity-limited set of theme names per scope.
type Bookmarks struct {
	sets     map[string]map[string]bool
	capacity int
}

// NewBookmarks creates an empty store with the given per-scope capacity.
func NewBookmarks(capacity int) *Bookmarks {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bookmarks{
		sets:     map[string]map[string]bool{GlobalScope: {}},
		capacity: capacity,
	}
}

// Toggle flips the bookmark state of name in scope. It returns true when the
// theme is now bookmarked. Adding to a full set fails with
// ErrCapacityExceeded; removal always succeeds, so double-toggle nets to the
// original state.
func (b *Bookmarks) Toggle(name, scope string) (bool, error) {
	set := b.scopeSet(scope)
	if set[name] {
		delete(set, name)
		return false, nil
	}
	if len(set) >= b.capacity {
		return false, ErrCapacityExceeded
	}
	set[name] = true
	return true, nil
}

// Has reports whether name is bookmarked in scope.
func (b *Bookmarks) Has(name, scope string) bool {
	return b.sets[normScope(scope)][name]
}

// Names returns the bookmarked names in scope, sorted for stable display.
func (b *Bookmarks) Names(scope string) []string {
	set := b.sets[normScope(scope)]
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of bookmarks in scope.
func (b *Bookmarks) Count(scope string) int {
	return len(b.sets[normScope(scope)])
}

// Snapshot captures all scopes for persistence.
func (b *Bookmarks) Snapshot() map[string][]string {
	out := make(map[string][]string, len(b.sets))
	for scope := range b.sets {
		out[scope] = b.Names(scope)
	}
	return out
}

// RestoreBookmarks rebuilds a store from a snapshot.
func RestoreBookmarks(snap map[string][]string, capacity int) *Bookmarks {
	b := NewBookmarks(capacity)
	for scope, names := range snap {
		set := b.scopeSet(scope)
		for _, name := range names {
			if len(set) >= b.capacity {
				break
			}
			set[name] = true
		}
	}
	return b
}

func (b *Bookmarks) scopeSet(scope string) map[string]bool {
	scope = normScope(scope)
	set, ok := b.sets[scope]
	if !ok {
		set = make(map[string]bool)
		b.sets[scope] = set
	}
	return set
}

func normScope(scope string) string {
	if scope == "" {
		return GlobalScope
	}
	return scope
}

// QuickSlots maps digit keys to theme names per scope.
type QuickSlots struct {
	slots map[string]map[string]string
}

// NewQuickSlots creates an empty store.
func NewQuickSlots() *QuickSlots {
	return &QuickSlots{slots: map[string]map[string]string{GlobalScope: {}}}
}

// ValidSlot reports whether slot is a single digit 0-9.
func ValidSlot(slot string) bool {
	return len(slot) == 1 && slot[0] >= '0' && slot[0] <= '9'
}

// Assign binds a slot to a theme, overwriting any existing assignment.
func (q *QuickSlots) Assign(slot, name, scope string) error {
	if !ValidSlot(slot) {
		return ErrInvalidSlot
	}
	q.scopeSlots(scope)[slot] = name
	return nil
}

// Clear removes a slot assignment.
func (q *QuickSlots) Clear(slot, scope string) error {
	if !ValidSlot(slot) {
		return ErrInvalidSlot
	}
	delete(q.scopeSlots(scope), slot)
	return nil
}

// Lookup returns the theme assigned to slot. Whether the theme is currently
// visible or available is the caller's concern.
func (q *QuickSlots) Lookup(slot, scope string) (string, error) {
	if !ValidSlot(slot) {
		return "", ErrInvalidSlot
	}
	name, ok := q.scopeSlots(scope)[slot]
	if !ok || name == "" {
		return "", ErrSlotUnassigned
	}
	return name, nil
}

// Snapshot captures all scopes for persistence.
func (q *QuickSlots) Snapshot() map[string]map[string]string {
	out := make(map[string]map[string]string, len(q.slots))
	for scope, slots := range q.slots {
		copied := make(map[string]string, len(slots))
		for k, v := range slots {
			copied[k] = v
		}
		out[scope] = copied
	}
	return out
}

// RestoreQuickSlots rebuilds a store from a snapshot, dropping invalid keys.
func RestoreQuickSlots(snap map[string]map[string]string) *QuickSlots {
	q := NewQuickSlots()
	for scope, slots := range snap {
		for slot, name := range slots {
			if !ValidSlot(slot) || name == "" {
				continue
			}
			q.scopeSlots(scope)[slot] = name
		}
	}
	return q
}

func (q *QuickSlots) scopeSlots(scope string) map[string]string {
	scope = normScope(scope)
	slots, ok := q.slots[scope]
	if !ok {
		slots = make(map[string]string)
		q.slots[scope] = slots
	}
	return slots
}
