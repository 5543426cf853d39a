package marks

import (
	"errors"
	"testing"
)

func TestToggleRoundTrip(t *testing.T) {
	b := NewBookmarks(10)

	added, err := b.Toggle("nord", "")
	if err != nil || !added {
		t.Fatalf("Toggle add = (%v, %v), want (true, nil)", added, err)
	}
	if !b.Has("nord", "") {
		t.Error("Expected 'nord' bookmarked after toggle")
	}

	added, err = b.Toggle("nord", "")
	if err != nil || added {
		t.Fatalf("Toggle remove = (%v, %v), want (false, nil)", added, err)
	}
	if b.Has("nord", "") {
		t.Error("Expected 'nord' unbookmarked after double toggle")
	}
	if b.Count("") != 0 {
		t.Errorf("Count = %d, want 0", b.Count(""))
	}
}

func TestToggleCapacity(t *testing.T) {
	b := NewBookmarks(2)
	if _, err := b.Toggle("a", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Toggle("b", ""); err != nil {
		t.Fatal(err)
	}

	if _, err := b.Toggle("c", ""); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Expected ErrCapacityExceeded, got %v", err)
	}

	// Removal still works at capacity.
	if _, err := b.Toggle("a", ""); err != nil {
		t.Errorf("Remove at capacity failed: %v", err)
	}
	if _, err := b.Toggle("c", ""); err != nil {
		t.Errorf("Add after remove failed: %v", err)
	}
}

func TestScopeIsolation(t *testing.T) {
	b := NewBookmarks(10)
	if _, err := b.Toggle("nord", "work"); err != nil {
		t.Fatal(err)
	}

	if b.Has("nord", "") {
		t.Error("Global scope should not see 'work' bookmark")
	}
	if !b.Has("nord", "work") {
		t.Error("Expected 'nord' in 'work' scope")
	}
}

func TestNamesSorted(t *testing.T) {
	b := NewBookmarks(10)
	for _, name := range []string{"zelda", "alpha", "mid"} {
		if _, err := b.Toggle(name, ""); err != nil {
			t.Fatal(err)
		}
	}
	got := b.Names("")
	want := []string{"alpha", "mid", "zelda"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}
}

func TestBookmarkSnapshotRestore(t *testing.T) {
	b := NewBookmarks(10)
	if _, err := b.Toggle("nord", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Toggle("gruvbox", "work"); err != nil {
		t.Fatal(err)
	}

	restored := RestoreBookmarks(b.Snapshot(), 10)
	if !restored.Has("nord", "") || !restored.Has("gruvbox", "work") {
		t.Error("Restored bookmarks missing entries")
	}
}

func TestQuickSlots(t *testing.T) {
	q := NewQuickSlots()

	if err := q.Assign("3", "theme-x", ""); err != nil {
		t.Fatal(err)
	}
	name, err := q.Lookup("3", "")
	if err != nil || name != "theme-x" {
		t.Fatalf("Lookup(3) = (%q, %v), want ('theme-x', nil)", name, err)
	}

	// Reassignment overwrites.
	if err := q.Assign("3", "theme-y", ""); err != nil {
		t.Fatal(err)
	}
	name, _ = q.Lookup("3", "")
	if name != "theme-y" {
		t.Errorf("Lookup after reassign = %q, want 'theme-y'", name)
	}
}

func TestQuickSlotErrors(t *testing.T) {
	q := NewQuickSlots()

	if err := q.Assign("x", "t", ""); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("Assign('x'): expected ErrInvalidSlot, got %v", err)
	}
	if err := q.Assign("12", "t", ""); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("Assign('12'): expected ErrInvalidSlot, got %v", err)
	}
	if _, err := q.Lookup("7", ""); !errors.Is(err, ErrSlotUnassigned) {
		t.Errorf("Lookup unassigned: expected ErrSlotUnassigned, got %v", err)
	}
}

func TestQuickSlotClear(t *testing.T) {
	q := NewQuickSlots()
	if err := q.Assign("5", "t", ""); err != nil {
		t.Fatal(err)
	}
	if err := q.Clear("5", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Lookup("5", ""); !errors.Is(err, ErrSlotUnassigned) {
		t.Errorf("Expected cleared slot unassigned, got %v", err)
	}
}

func TestRestoreQuickSlotsDropsInvalid(t *testing.T) {
	snap := map[string]map[string]string{
		GlobalScope: {"1": "a", "xx": "b", "2": ""},
	}
	q := RestoreQuickSlots(snap)
	if _, err := q.Lookup("1", ""); err != nil {
		t.Errorf("Valid slot lost in restore: %v", err)
	}
	if _, err := q.Lookup("2", ""); !errors.Is(err, ErrSlotUnassigned) {
		t.Errorf("Empty-name slot should be dropped, got %v", err)
	}
}
