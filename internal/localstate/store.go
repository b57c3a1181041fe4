// Package localstate is a small embedded key→JSON-blob store, the server-side
// stand-in for the admin UI's browser local storage. Writes are unconditional
// upserts: the conflict policy is last-write-wins, with no merging and no
// versioning. That is acceptable for the data kept here (notification read
// markers, table status overrides, UI preferences).
package localstate

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Well-known keys. Kept verbatim from the admin UI so existing exports stay
// readable.
const (
	KeyNotificationRead     = "eaterno-notification-read"
	KeyTableStatusOverrides = "table-status-overrides"
	KeySidebarExpanded      = "sidebarExpanded"
)

// ErrNotFound is returned by Get for keys that were never written.
var ErrNotFound = errors.New("localstate: key not found")

// Store is a SQLite-backed key-value store. Safe for concurrent use; SQLite
// serializes the writes.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path. Use ":memory:" for an
// ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &Store{db: db}, nil
}

// Get unmarshals the blob stored under key into v.
func (s *Store) Get(key string, v any) error {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %q: %w", key, err)
	}
	if err := json.Unmarshal(blob, v); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// Put stores v as JSON under key, replacing any previous value.
func (s *Store) Put(key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, blob, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
