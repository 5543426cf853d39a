// Package usage tracks how often each theme has been selected, backing the
// usage sort mode.
package usage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB stores per-theme selection counts in sqlite.
type DB struct {
	db *sql.DB
}

// Open opens or creates the usage database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	udb := &DB{db: db}
	if err := udb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return udb, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS selections (
		theme TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0,
		last_used DATETIME
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

// Record increments the selection count for a theme.
func (d *DB) Record(theme string) error {
	_, err := d.db.Exec(`
		INSERT INTO selections (theme, count, last_used)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(theme) DO UPDATE SET
			count = count + 1,
			last_used = CURRENT_TIMESTAMP`, theme)
	if err != nil {
		return fmt.Errorf("record selection: %w", err)
	}
	return nil
}

// Counts returns the use count for every known theme.
func (d *DB) Counts() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT theme, count FROM selections`)
	if err != nil {
		return nil, fmt.Errorf("query selections: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var theme string
		var count int
		if err := rows.Scan(&theme, &count); err != nil {
			return nil, fmt.Errorf("scan selection row: %w", err)
		}
		counts[theme] = count
	}
	return counts, rows.Err()
}
