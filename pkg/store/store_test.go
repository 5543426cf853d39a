package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mattfen/huepick/pkg/history"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	st := DefaultState()
	st.SortMode = "usage"
	st.Bookmarks["__global"] = []string{"nord"}
	st.History = history.Snapshot{Entries: []string{"a", "b"}, Index: 2, MaxSize: 50}
	st.Collapsed = []string{"dark"}

	if err := s.Save(st); err != nil {
		t.Fatal(err)
	}

	// A fresh store over the same directory sees the saved state.
	s2, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	got := s2.Load()
	if got.SortMode != "usage" {
		t.Errorf("SortMode = %q, want 'usage'", got.SortMode)
	}
	if len(got.History.Entries) != 2 || got.History.Index != 2 {
		t.Errorf("History = %+v, want 2 entries at index 2", got.History)
	}
	if len(got.Bookmarks["__global"]) != 1 || got.Bookmarks["__global"][0] != "nord" {
		t.Errorf("Bookmarks = %v", got.Bookmarks)
	}
}

func TestDiskStoreMissingStateYieldsDefaults(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	got := s.Load()
	if got.SortMode != "alpha" {
		t.Errorf("SortMode = %q, want default 'alpha'", got.SortMode)
	}
	if got.Bookmarks == nil || got.QuickSlots == nil {
		t.Error("Default state has nil maps")
	}
}

func TestDiskStoreCorruptBlobYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, stateKey), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	got := s.Load()
	if got.SortMode != "alpha" {
		t.Errorf("Corrupt blob should yield defaults, got SortMode=%q", got.SortMode)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Expected error for empty base path")
	}
}

func TestMemStore(t *testing.T) {
	m := &MemStore{}
	if got := m.Load(); got.SortMode != "alpha" {
		t.Errorf("Fresh MemStore should load defaults, got %q", got.SortMode)
	}

	st := DefaultState()
	st.SortMode = "recent"
	if err := m.Save(st); err != nil {
		t.Fatal(err)
	}
	if got := m.Load(); got.SortMode != "recent" {
		t.Errorf("SortMode = %q, want 'recent'", got.SortMode)
	}

	m.FailSaves = true
	if err := m.Save(st); err == nil {
		t.Error("Expected save failure with FailSaves")
	}
}
