package store

import "sync"

// Memory is an in-memory store backed by a plain map.
// It is the default backend for a fresh registry. Data is lost when the
// process exits.
type Memory[V any] struct {
	mu     sync.RWMutex
	data   map[string]Entry[V]
	closed bool
}

// Compile-time interface check.
var _ Store[any] = (*Memory[any])(nil)

// NewMemory creates a new empty in-memory store.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{
		data: make(map[string]Entry[V]),
	}
}

// Set implements Store.
func (m *Memory[V]) Set(key string, value V, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.data[key] = Entry[V]{Value: value, Description: description}
	return nil
}

// Get implements Store.
func (m *Memory[V]) Get(key string) (Entry[V], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Entry[V]{}, ErrStoreClosed
	}

	e, ok := m.data[key]
	if !ok {
		return Entry[V]{}, ErrNotFound
	}
	return e, nil
}

// Delete implements Store.
func (m *Memory[V]) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, key)
	return nil
}

// Clear implements Store.
func (m *Memory[V]) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.data = make(map[string]Entry[V])
	return nil
}

// Update implements Store.
func (m *Memory[V]) Update(entries map[string]Entry[V]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	for k, e := range entries {
		m.data[k] = e
	}
	return nil
}

// Keys implements Store.
func (m *Memory[V]) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Len implements Store.
func (m *Memory[V]) Len() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	return len(m.data), nil
}

// Contains implements Store.
func (m *Memory[V]) Contains(key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrStoreClosed
	}

	_, ok := m.data[key]
	return ok, nil
}

// Snapshot implements Store.
func (m *Memory[V]) Snapshot() (map[string]Entry[V], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	out := make(map[string]Entry[V], len(m.data))
	for k, e := range m.data {
		out[k] = e
	}
	return out, nil
}

// Close implements Store.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}
