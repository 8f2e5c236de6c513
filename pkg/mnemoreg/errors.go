package mnemoreg

import (
	"errors"
	"fmt"
)

// Sentinel errors for key validation.
var (
	// ErrAlreadyRegistered indicates a write targeted a key that exists
	// while the overwrite policy or operation requires absence.
	ErrAlreadyRegistered = errors.New("key already registered")

	// ErrNotRegistered indicates a read or delete targeted a key that
	// must exist but does not.
	ErrNotRegistered = errors.New("key not registered")

	// ErrEmptyKey indicates a key was the empty string.
	ErrEmptyKey = errors.New("key cannot be empty")

	// ErrWhitespaceKey indicates a key contained a whitespace character.
	ErrWhitespaceKey = errors.New("key cannot contain whitespace")
)

// Sentinel errors for construction.
var (
	// ErrNilLock indicates WithLock was given a nil locker.
	ErrNilLock = errors.New("lock must not be nil")

	// ErrNilStore indicates WithStore was given a nil store.
	ErrNilStore = errors.New("store must not be nil")

	// ErrInvalidStore indicates WithStore was given a store whose value type
	// does not match the registry's.
	ErrInvalidStore = errors.New("store value type mismatch")

	// ErrInvalidPolicy indicates an overwrite policy outside the enumerated range.
	ErrInvalidPolicy = errors.New("invalid overwrite policy")

	// ErrInvalidLogLevel indicates a log level outside the valid range.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// KeyError wraps a key validation or resolution failure with its context.
type KeyError struct {
	// Key is the offending key.
	Key string
	// Op is the operation that failed (e.g., "register", "lookup", "delete").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("registry %s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *KeyError) Unwrap() error {
	return e.Err
}

// EncodeError wraps a failure to serialize the registry to text.
type EncodeError struct {
	// Format is the target encoding ("json" or "yaml").
	Format string
	// Err is the underlying codec error.
	Err error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode registry to %s: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError wraps a failure to parse external text into a registry.
type DecodeError struct {
	// Format is the source encoding ("json" or "yaml").
	Format string
	// Err is the underlying codec error.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode registry from %s: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StoreError wraps a storage backend failure with the operation that hit it.
type StoreError struct {
	// Op is the registry operation that failed (e.g., "set", "snapshot").
	Op string
	// Err is the underlying store error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("registry store %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StoreError) Unwrap() error {
	return e.Err
}
