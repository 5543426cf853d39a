// Package store persists picker state (history, bookmarks, quick slots,
// sort mode, collapsed groups) as an opaque JSON blob in a diskv store.
//
// The blob is versionless: a decode failure means "use defaults", never a
// fatal error. Writes are best-effort; the in-memory state stays the source
// of truth when a write fails.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"github.com/mattfen/huepick/pkg/history"
	"github.com/mattfen/huepick/pkg/marks"
)

const stateKey = "picker-state"

// State is the persisted schema. The zero value is a valid default state.
type State struct {
	History    history.Snapshot             `json:"history"`
	Bookmarks  map[string][]string          `json:"bookmarks"`
	QuickSlots map[string]map[string]string `json:"quick_slots"`
	SortMode   string                       `json:"sort_mode"`
	Collapsed  []string                     `json:"collapsed"`
}

// DefaultState returns a fresh state with empty stores.
func DefaultState() State {
	return State{
		Bookmarks:  map[string][]string{marks.GlobalScope: {}},
		QuickSlots: map[string]map[string]string{marks.GlobalScope: {}},
		SortMode:   "alpha",
	}
}

// Store is the opaque save/load interface the picker session uses.
type Store interface {
	Load() State
	Save(State) error
}

// DiskStore persists state under a base directory via diskv.
type DiskStore struct {
	d *diskv.Diskv
}

// Open creates a DiskStore rooted at basePath.
func Open(basePath string) (*DiskStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("store: empty base path")
	}
	return &DiskStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024,
	})}, nil
}

// Load reads the persisted state. Any read or decode failure falls back to
// DefaultState; corruption is recoverable by design.
func (s *DiskStore) Load() State {
	data, err := s.d.Read(stateKey)
	if err != nil {
		return DefaultState()
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return DefaultState()
	}
	if st.Bookmarks == nil {
		st.Bookmarks = map[string][]string{marks.GlobalScope: {}}
	}
	if st.QuickSlots == nil {
		st.QuickSlots = map[string]map[string]string{marks.GlobalScope: {}}
	}
	return st
}

// Save writes the state blob. Callers treat failure as a logged warning,
// not an error of the mutation that triggered the save.
func (s *DiskStore) Save(st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode picker state: %w", err)
	}
	if err := s.d.Write(stateKey, data); err != nil {
		return fmt.Errorf("write picker state: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and for running without a state
// directory.
type MemStore struct {
	state State
	set   bool

	// FailSaves makes Save return an error, for exercising the
	// write-failure path.
	FailSaves bool
}

// Load implements Store.
func (m *MemStore) Load() State {
	if !m.set {
		return DefaultState()
	}
	return m.state
}

// Save implements Store.
func (m *MemStore) Save(st State) error {
	if m.FailSaves {
		return fmt.Errorf("save disabled")
	}
	m.state = st
	m.set = true
	return nil
}
