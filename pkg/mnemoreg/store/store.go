// Package store provides pluggable key/value storage backends for the registry.
package store

import "errors"

// Entry is one stored association: a value plus an optional description.
// An empty Description means no description was attached.
type Entry[V any] struct {
	Value       V
	Description string
}

// Store holds key -> (value, description) associations for a registry.
// Implementations must be safe for concurrent use.
//
// Stores perform no key validation; the registry owns the key-shape and
// existence rules and layers its own errors on top.
type Store[V any] interface {
	// Set inserts or overwrites the entry for key.
	Set(key string, value V, description string) error

	// Get retrieves the entry for key.
	// Returns ErrNotFound if the key is absent.
	Get(key string) (Entry[V], error)

	// Delete removes key if present.
	// Returns nil (not an error) if the key is absent.
	Delete(key string) error

	// Clear removes all entries.
	Clear() error

	// Update bulk-sets multiple entries, each overwritten unconditionally.
	Update(entries map[string]Entry[V]) error

	// Keys returns all keys. Order is unspecified.
	Keys() ([]string, error)

	// Len returns the number of entries.
	Len() (int, error)

	// Contains reports whether key is present.
	Contains(key string) (bool, error)

	// Snapshot returns a full copy of the key set and entries.
	// Entry values are shared with the store, not deep-copied.
	Snapshot() (map[string]Entry[V], error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a key has no entry.
	ErrNotFound = errors.New("entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("store closed")
)
