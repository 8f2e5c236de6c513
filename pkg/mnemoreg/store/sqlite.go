package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLite persists entries to a SQLite database.
// Values are JSON-encoded at rest, so V must be representable in JSON.
// It is suitable for single-process production use.
type SQLite[V any] struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// Compile-time interface check.
var _ Store[any] = (*SQLite[any])(nil)

// NewSQLite creates a new SQLite-backed store.
// The path should be a file path (e.g., "./registry.db") or ":memory:" for testing.
func NewSQLite[V any](path string) (*SQLite[V], error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps ":memory:" databases coherent and avoids
	// SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLite[V]{db: db}, nil
}

// Set implements Store.
func (s *SQLite[V]) Set(key string, value V, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	return s.setLocked(key, value, description)
}

func (s *SQLite[V]) setLocked(key string, value V, description string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for key %q: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO entries (key, value, description)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			description = excluded.description
	`, key, string(encoded), description)
	if err != nil {
		return fmt.Errorf("set entry: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLite[V]) Get(key string) (Entry[V], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Entry[V]{}, ErrStoreClosed
	}

	var encoded, description string
	err := s.db.QueryRow(`
		SELECT value, description FROM entries WHERE key = ?
	`, key).Scan(&encoded, &description)

	if err == sql.ErrNoRows {
		return Entry[V]{}, ErrNotFound
	}
	if err != nil {
		return Entry[V]{}, fmt.Errorf("get entry: %w", err)
	}

	var value V
	if err := json.Unmarshal([]byte(encoded), &value); err != nil {
		return Entry[V]{}, fmt.Errorf("decode value for key %q: %w", key, err)
	}
	return Entry[V]{Value: value, Description: description}, nil
}

// Delete implements Store.
func (s *SQLite[V]) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *SQLite[V]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	return nil
}

// Update implements Store.
func (s *SQLite[V]) Update(entries map[string]Entry[V]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	for k, e := range entries {
		if err := s.setLocked(k, e.Value, e.Description); err != nil {
			return err
		}
	}
	return nil
}

// Keys implements Store.
func (s *SQLite[V]) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT key FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	return keys, nil
}

// Len implements Store.
func (s *SQLite[V]) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Contains implements Store.
func (s *SQLite[V]) Contains(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrStoreClosed
	}

	var one int
	err := s.db.QueryRow(`SELECT 1 FROM entries WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check entry: %w", err)
	}
	return true, nil
}

// Snapshot implements Store.
func (s *SQLite[V]) Snapshot() (map[string]Entry[V], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT key, value, description FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("snapshot entries: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Entry[V])
	for rows.Next() {
		var key, encoded, description string
		if err := rows.Scan(&key, &encoded, &description); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		var value V
		if err := json.Unmarshal([]byte(encoded), &value); err != nil {
			return nil, fmt.Errorf("decode value for key %q: %w", key, err)
		}
		out[key] = Entry[V]{Value: value, Description: description}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// Close implements Store.
func (s *SQLite[V]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
