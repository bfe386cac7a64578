package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"memory-palace/internal/logger"
)

// LayoutKey is the fixed key holding the serialized object list.
const LayoutKey = "memory-objects"

// schema contains the DDL executed on every open. IF NOT EXISTS makes it
// safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS layout (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements Store on a local SQLite database in WAL mode.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens (or creates) the database at dbPath, enables WAL mode and a
// busy timeout, and creates the layout table if it does not exist.
func Open(dbPath string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite supports a single writer; one connection avoids SQLITE_BUSY
	// contention between pooled connections that each need their own PRAGMAs.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteStore{db: db, log: log}, nil
}

// Save serializes records into one versioned document and overwrites the
// layout key wholesale. It never merges with what was there before.
func (s *SQLiteStore) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(document{Version: DocumentVersion, Objects: records})
	if err != nil {
		return fmt.Errorf("store: marshal layout: %w", err)
	}
	const q = `
		INSERT INTO layout (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.Exec(q, LayoutKey, data); err != nil {
		return fmt.Errorf("store: save layout: %w", err)
	}
	return nil
}

// Load reads the layout key. An absent key is a first run, not an error.
// A malformed or unknown-version document is logged and treated as no prior
// data so the registry starts empty rather than half-populated.
func (s *SQLiteStore) Load() ([]Record, error) {
	var data []byte
	err := s.db.QueryRow("SELECT value FROM layout WHERE key = ?", LayoutKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load layout: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logf("store: discarding malformed layout: %v", err)
		return nil, nil
	}
	if doc.Version != DocumentVersion {
		s.logf("store: discarding layout with unknown version %d", doc.Version)
		return nil, nil
	}
	return doc.Objects, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Logf(format, args...)
	}
}
