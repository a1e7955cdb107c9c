// Package store persists per-project note collections and view state in
// SQLite, keyed by (project id, field) so projects never observe each
// other's data, plus a single global current-project record.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS project_state (
	project_id TEXT NOT NULL,
	field      TEXT NOT NULL,
	value      TEXT NOT NULL,
	PRIMARY KEY (project_id, field)
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Per-project state fields.
const (
	fieldNotes     = "notes"
	fieldSelected  = "selected-note"
	fieldTagFilter = "tag-filter"
	fieldZoom      = "zoom-level"
)

const settingCurrentProject = "current-project"

// Store wraps a sql.DB with project-state operations.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// getField returns the stored value for (projectID, field). The second
// return is false when the value is absent or unreadable.
func (s *Store) getField(projectID, field string) (string, bool) {
	var v string
	err := s.conn.QueryRow(
		`SELECT value FROM project_state WHERE project_id = ? AND field = ?`,
		projectID, field).Scan(&v)
	if err != nil {
		return "", false
	}
	return v, true
}

func (s *Store) setField(projectID, field, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO project_state (project_id, field, value)
		VALUES (?, ?, ?)
		ON CONFLICT(project_id, field) DO UPDATE SET value = excluded.value
	`, projectID, field, value)
	if err != nil {
		return fmt.Errorf("store: set %s/%s: %w", projectID, field, err)
	}
	return nil
}

func (s *Store) deleteField(projectID, field string) error {
	if _, err := s.conn.Exec(
		`DELETE FROM project_state WHERE project_id = ? AND field = ?`,
		projectID, field); err != nil {
		return fmt.Errorf("store: delete %s/%s: %w", projectID, field, err)
	}
	return nil
}

func (s *Store) getSetting(key string) (string, bool) {
	var v string
	if err := s.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v); err != nil {
		return "", false
	}
	return v, true
}

func (s *Store) setSetting(key, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("store: set setting %s: %w", key, err)
	}
	return nil
}
