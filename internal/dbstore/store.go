// Package dbstore seeds and inspects the sales-agent application
// database. The bootstrap creates the directory; this store creates the
// SQLite file inside it and the system_config table the application
// reads its runtime settings from.
package dbstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Well-known system_config keys written by `bootz db init`.
const (
	KeySchemaVersion = "schema_version"
	KeyNLPModel      = "nlp_model"

	SchemaVersion = "1"
)

// Store wraps the application SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// system_config schema exists. The parent directory must already exist;
// creating it is the bootstrap's job, not the store's.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("open app db: %w", err)
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS system_config (
	key TEXT PRIMARY KEY,
	value TEXT,
	description TEXT,
	updated_at TEXT NOT NULL
)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize system_config schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Seed writes the bootstrap-owned settings. Idempotent: existing keys
// are overwritten with the current values.
func (s *Store) Seed(model string) error {
	seeds := []struct {
		key, value, description string
	}{
		{KeySchemaVersion, SchemaVersion, "config schema version written at deploy time"},
		{KeyNLPModel, model, "spaCy model the NLP service loads"},
	}
	for _, seed := range seeds {
		if err := s.Set(seed.key, seed.value, seed.description); err != nil {
			return err
		}
	}
	return nil
}

// Set upserts one configuration entry.
func (s *Store) Set(key, value, description string) error {
	_, err := s.db.Exec(
		`INSERT INTO system_config (key, value, description, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		 value = excluded.value,
		 description = excluded.description,
		 updated_at = excluded.updated_at`,
		key, value, description,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set config %s: %w", key, err)
	}
	return nil
}

// Get reads one configuration value. The bool is false when the key is
// absent.
func (s *Store) Get(key string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRow(`SELECT value FROM system_config WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query config %s: %w", key, err)
	}
	return value.String, true, nil
}

// ConfigCount reports how many system_config rows exist, used by the
// status report.
func (s *Store) ConfigCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM system_config`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count config rows: %w", err)
	}
	return n, nil
}

// openDB opens a SQLite database with standard pragmas (WAL mode, busy timeout).
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return db, nil
}
