package usage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "state", "usage.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndCounts(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		if err := db.Record("nord"); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Record("gruvbox"); err != nil {
		t.Fatal(err)
	}

	counts, err := db.Counts()
	if err != nil {
		t.Fatal(err)
	}
	if counts["nord"] != 3 {
		t.Errorf("nord count = %d, want 3", counts["nord"])
	}
	if counts["gruvbox"] != 1 {
		t.Errorf("gruvbox count = %d, want 1", counts["gruvbox"])
	}
}

func TestCountsEmptyDB(t *testing.T) {
	db := openTestDB(t)
	counts, err := db.Counts()
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 0 {
		t.Errorf("Fresh db counts = %v, want empty", counts)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "usage.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	db.Close()
}
