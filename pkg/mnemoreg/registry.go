package mnemoreg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"

	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg/observability"
	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg/store"
)

// Registry is a thread-safe, string-keyed container mapping names to
// values with optional per-entry descriptions. It is a building block
// for plugin-style registration: register a handler under a name, look
// it up later.
//
// All operations are serialized by a single lock owned by the registry.
// Stored values themselves are shared with callers; only the key and
// description bookkeeping is protected.
type Registry[V any] struct {
	mu      sync.Locker
	store   store.Store[V]
	policy  OverwritePolicy
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	id      string
}

// New creates a registry.
//
// With no options it uses a fresh in-memory store, a fresh mutex, the
// Forbid overwrite policy, and no diagnostics. See the With* options
// for construction errors.
func New[V any](opts ...Option) (*Registry[V], error) {
	s := defaultSettings()
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return nil, err
		}
	}

	var st store.Store[V]
	if s.store != nil {
		typed, ok := s.store.(store.Store[V])
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrInvalidStore, s.store)
		}
		st = typed
	} else {
		st = store.NewMemory[V]()
	}

	lock := s.lock
	if lock == nil {
		lock = &sync.Mutex{}
	}

	logger := s.logger
	if s.logLevel != nil {
		base := logger
		if base == nil {
			base = slog.Default()
		}
		logger = slog.New(observability.NewLevelHandler(*s.logLevel, base.Handler()))
	}

	id := uuid.NewString()
	return &Registry[V]{
		mu:      lock,
		store:   st,
		policy:  s.policy,
		logger:  observability.EnrichLogger(logger, id),
		metrics: s.metrics,
		spans:   s.spans,
		id:      id,
	}, nil
}

// ID returns the registry's instance identifier, carried on all
// diagnostic output.
func (r *Registry[V]) ID() string {
	return r.id
}

// Policy returns the registry's overwrite policy.
func (r *Registry[V]) Policy() OverwritePolicy {
	return r.policy
}

// Register stores value under key with a description and returns the
// value unchanged, so registration composes with initialization:
//
//	handler, err := reg.Register("gzip", newGzipHandler(), "gzip content codec")
//
// An empty description is replaced with an auto-generated one naming the
// value's type. Under the Forbid policy an existing key fails with
// ErrAlreadyRegistered; Warn logs each overwrite and proceeds.
func (r *Registry[V]) Register(key string, value V, description string) (V, error) {
	if description == "" {
		description = autoDescription(value)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return value, r.setLocked("register", key, value, description)
}

// Provide calls produce and registers its result under key, returning
// the produced value. It is the closure-producing counterpart of
// Register for callers wiring a registry into constructor chains.
func Provide[V any](r *Registry[V], key, description string, produce func() V) (V, error) {
	return r.Register(key, produce(), description)
}

// Set stores value under key. Direct assignment never attaches a
// description. Policy rules are the same as Register's.
func (r *Registry[V]) Set(key string, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setLocked("set", key, value, "")
}

// Lookup returns the value stored under key. A key that is absent fails
// with ErrNotRegistered, as does a present key holding a nil value: the
// strict accessor cannot distinguish the two. Use Get to read back a
// stored nil.
func (r *Registry[V]) Lookup(key string) (V, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(key)
}

// Get returns the value stored under key, or def if the key is absent.
// Unlike Lookup it performs no key validation and never fails.
func (r *Registry[V]) Get(key string, def V) V {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(key, def)
}

// Delete removes the entry under key. An absent key fails with
// ErrNotRegistered.
func (r *Registry[V]) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteLocked(key)
}

// Clear removes all entries.
func (r *Registry[V]) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearLocked()
}

// Contains reports whether key has an entry. Advisory: no key validation.
func (r *Registry[V]) Contains(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.containsLocked(key)
}

// Len returns the number of entries.
func (r *Registry[V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lenLocked()
}

// Keys returns a snapshot of the current key set. The snapshot is taken
// under the lock but is safe to consume without it; concurrent mutation
// does not affect the returned slice. Order is unspecified.
func (r *Registry[V]) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keysLocked()
}

// Snapshot returns a point-in-time view of every entry, each wrapped in
// an Item carrying its description. Later registry mutation does not
// change which keys appear in the result, but mutable value contents
// are shared, not deep-copied.
func (r *Registry[V]) Snapshot() (map[string]Item[V], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// ToMap returns a snapshot reduced to key -> value; descriptions are
// dropped.
func (r *Registry[V]) ToMap() (map[string]V, error) {
	snap, err := r.Snapshot()
	if err != nil {
		return nil, err
	}
	out := make(map[string]V, len(snap))
	for k, it := range snap {
		out[k] = it.Value()
	}
	return out, nil
}

// Update merges data into the registry, validating each key and
// enforcing the overwrite policy per key. Validation of the whole batch
// happens before any write, so a failed Update leaves the registry
// unchanged.
func (r *Registry[V]) Update(data map[string]V) error {
	entries := make(map[string]store.Entry[V], len(data))
	for k, v := range data {
		entries[k] = store.Entry[V]{Value: v}
	}
	return r.UpdateEntries(entries)
}

// UpdateEntries is Update for entries carrying descriptions.
func (r *Registry[V]) UpdateEntries(entries map[string]store.Entry[V]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(entries)
}

// Clone exports the registry's full state into a new registry with a
// fresh lock. The clone inherits the overwrite policy unless an option
// overrides it; it never shares a lock or store with its source.
func (r *Registry[V]) Clone(opts ...Option) (*Registry[V], error) {
	r.mu.Lock()
	snap, err := r.store.Snapshot()
	r.mu.Unlock()
	if err != nil {
		return nil, &StoreError{Op: "clone", Err: err}
	}
	opts = append([]Option{WithOverwritePolicy(r.policy)}, opts...)
	return FromEntries(snap, opts...)
}

// Close releases the storage backend. Operations after Close fail with
// the store's closed error.
func (r *Registry[V]) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Close()
}

// FromMap creates a new registry bulk-loaded from data. Bulk load goes
// straight to the store: it bypasses key validation and the overwrite
// policy, unlike Update. Options apply to the new registry.
func FromMap[V any](data map[string]V, opts ...Option) (*Registry[V], error) {
	entries := make(map[string]store.Entry[V], len(data))
	for k, v := range data {
		entries[k] = store.Entry[V]{Value: v}
	}
	return FromEntries(entries, opts...)
}

// FromEntries is FromMap for entries carrying descriptions. On a failed
// load the new registry is not returned and its store is closed, an
// injected WithStore backend included.
func FromEntries[V any](entries map[string]store.Entry[V], opts ...Option) (*Registry[V], error) {
	r, err := New[V](opts...)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Update(entries); err != nil {
		if closeErr := r.store.Close(); closeErr != nil {
			observability.LogStoreError(r.logger, "close", closeErr)
		}
		return nil, &StoreError{Op: "load", Err: err}
	}
	observability.LogLoad(r.logger, "entries", len(entries))
	return r, nil
}

// Locked implementations. Callers must hold r.mu; Tx reuses these so a
// bulk section composes operations without re-acquiring the lock.

func (r *Registry[V]) setLocked(op, key string, value V, description string) error {
	if err := checkKeyShape(op, key); err != nil {
		return err
	}
	present, err := r.store.Contains(key)
	if err != nil {
		return &StoreError{Op: op, Err: err}
	}
	if present {
		if r.policy == Forbid {
			return &KeyError{Key: key, Op: op, Err: ErrAlreadyRegistered}
		}
		if r.policy == Warn {
			observability.LogOverwrite(r.logger, key)
		}
	}
	if err := r.store.Set(key, value, description); err != nil {
		return &StoreError{Op: op, Err: err}
	}
	r.metrics.RecordRegister(context.Background(), present)
	observability.LogRegister(r.logger, key, fmt.Sprintf("%T", value))
	return nil
}

func (r *Registry[V]) lookupLocked(key string) (V, error) {
	var zero V
	if err := checkKeyShape("lookup", key); err != nil {
		return zero, err
	}
	e, err := r.store.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		r.metrics.RecordLookup(context.Background(), false)
		return zero, &KeyError{Key: key, Op: "lookup", Err: ErrNotRegistered}
	}
	if err != nil {
		return zero, &StoreError{Op: "lookup", Err: err}
	}
	// A present key holding a nil value reads as unregistered here.
	if isNilValue(e.Value) {
		r.metrics.RecordLookup(context.Background(), false)
		return zero, &KeyError{Key: key, Op: "lookup", Err: ErrNotRegistered}
	}
	r.metrics.RecordLookup(context.Background(), true)
	return e.Value, nil
}

func (r *Registry[V]) getLocked(key string, def V) V {
	e, err := r.store.Get(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			observability.LogStoreError(r.logger, "get", err)
		}
		return def
	}
	return e.Value
}

func (r *Registry[V]) deleteLocked(key string) error {
	if err := checkKeyShape("delete", key); err != nil {
		return err
	}
	present, err := r.store.Contains(key)
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	if !present {
		return &KeyError{Key: key, Op: "delete", Err: ErrNotRegistered}
	}
	if err := r.store.Delete(key); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	r.metrics.RecordDelete(context.Background())
	observability.LogDelete(r.logger, key)
	return nil
}

func (r *Registry[V]) clearLocked() error {
	if err := r.store.Clear(); err != nil {
		return &StoreError{Op: "clear", Err: err}
	}
	observability.LogClear(r.logger)
	return nil
}

func (r *Registry[V]) containsLocked(key string) bool {
	present, err := r.store.Contains(key)
	if err != nil {
		observability.LogStoreError(r.logger, "contains", err)
		return false
	}
	return present
}

func (r *Registry[V]) lenLocked() int {
	n, err := r.store.Len()
	if err != nil {
		observability.LogStoreError(r.logger, "len", err)
		return 0
	}
	return n
}

func (r *Registry[V]) keysLocked() []string {
	keys, err := r.store.Keys()
	if err != nil {
		observability.LogStoreError(r.logger, "keys", err)
		return nil
	}
	return keys
}

func (r *Registry[V]) snapshotLocked() (map[string]Item[V], error) {
	snap, err := r.store.Snapshot()
	if err != nil {
		return nil, &StoreError{Op: "snapshot", Err: err}
	}
	out := make(map[string]Item[V], len(snap))
	for k, e := range snap {
		out[k] = NewItem(e.Value, e.Description)
	}
	return out, nil
}

func (r *Registry[V]) updateLocked(entries map[string]store.Entry[V]) error {
	// Validate the whole batch before writing anything.
	overwritten := make(map[string]bool)
	for k := range entries {
		if err := checkKeyShape("update", k); err != nil {
			return err
		}
		present, err := r.store.Contains(k)
		if err != nil {
			return &StoreError{Op: "update", Err: err}
		}
		if present {
			if r.policy == Forbid {
				return &KeyError{Key: k, Op: "update", Err: ErrAlreadyRegistered}
			}
			overwritten[k] = true
		}
	}
	if err := r.store.Update(entries); err != nil {
		return &StoreError{Op: "update", Err: err}
	}
	for k, e := range entries {
		if overwritten[k] && r.policy == Warn {
			observability.LogOverwrite(r.logger, k)
		}
		r.metrics.RecordRegister(context.Background(), overwritten[k])
		observability.LogRegister(r.logger, k, fmt.Sprintf("%T", e.Value))
	}
	return nil
}

// autoDescription is the default description for entries registered
// without one.
func autoDescription(value any) string {
	return fmt.Sprintf("registered value of type %T", value)
}

// checkKeyShape rejects empty and whitespace-containing keys.
func checkKeyShape(op, key string) error {
	if key == "" {
		return &KeyError{Key: key, Op: op, Err: ErrEmptyKey}
	}
	if strings.ContainsFunc(key, unicode.IsSpace) {
		return &KeyError{Key: key, Op: op, Err: ErrWhitespaceKey}
	}
	return nil
}

// isNilValue reports whether v is nil through its dynamic type.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
