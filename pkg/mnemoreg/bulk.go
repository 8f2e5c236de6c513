package mnemoreg

import (
	"context"
	"time"

	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg/observability"
	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg/store"
)

// Tx composes registry operations inside a bulk critical section.
// It exposes the same operations as Registry but runs them against the
// lock the enclosing Bulk call already holds, so a section never
// deadlocks on itself.
//
// A Tx is only valid for the duration of the Bulk callback that
// produced it; do not retain it.
type Tx[V any] struct {
	r *Registry[V]
}

// Bulk runs fn as a single critical section: the registry's lock is
// held for the whole callback, so no other operation interleaves.
// The lock is released on every exit path, including a panic in fn.
// An error returned by fn propagates unchanged.
//
//	err := reg.Bulk(func(tx *mnemoreg.Tx[int]) error {
//	    if err := tx.Set("a", 1); err != nil {
//	        return err
//	    }
//	    return tx.Set("b", 2)
//	})
func (r *Registry[V]) Bulk(fn func(*Tx[V]) error) error {
	return r.BulkContext(context.Background(), fn)
}

// BulkContext is Bulk with a caller-supplied context for tracing.
// The context does not cancel the section; lock acquisition blocks
// indefinitely.
func (r *Registry[V]) BulkContext(ctx context.Context, fn func(*Tx[V]) error) (err error) {
	ctx, span := r.spans.StartBulkSpan(ctx, r.id)
	start := time.Now()
	r.mu.Lock()
	defer func() {
		r.mu.Unlock()
		elapsed := time.Since(start)
		r.metrics.RecordBulk(ctx, elapsed)
		r.spans.EndSpanWithError(span, err)
		observability.LogBulkEnd(r.logger, float64(elapsed.Milliseconds()), err)
	}()
	return fn(&Tx[V]{r: r})
}

// Register is Registry.Register inside the held section.
func (tx *Tx[V]) Register(key string, value V, description string) (V, error) {
	if description == "" {
		description = autoDescription(value)
	}
	return value, tx.r.setLocked("register", key, value, description)
}

// Set is Registry.Set inside the held section.
func (tx *Tx[V]) Set(key string, value V) error {
	return tx.r.setLocked("set", key, value, "")
}

// Lookup is Registry.Lookup inside the held section.
func (tx *Tx[V]) Lookup(key string) (V, error) {
	return tx.r.lookupLocked(key)
}

// Get is Registry.Get inside the held section.
func (tx *Tx[V]) Get(key string, def V) V {
	return tx.r.getLocked(key, def)
}

// Delete is Registry.Delete inside the held section.
func (tx *Tx[V]) Delete(key string) error {
	return tx.r.deleteLocked(key)
}

// Clear is Registry.Clear inside the held section.
func (tx *Tx[V]) Clear() error {
	return tx.r.clearLocked()
}

// Contains is Registry.Contains inside the held section.
func (tx *Tx[V]) Contains(key string) bool {
	return tx.r.containsLocked(key)
}

// Len is Registry.Len inside the held section.
func (tx *Tx[V]) Len() int {
	return tx.r.lenLocked()
}

// Keys is Registry.Keys inside the held section.
func (tx *Tx[V]) Keys() []string {
	return tx.r.keysLocked()
}

// Snapshot is Registry.Snapshot inside the held section.
func (tx *Tx[V]) Snapshot() (map[string]Item[V], error) {
	return tx.r.snapshotLocked()
}

// Update is Registry.Update inside the held section.
func (tx *Tx[V]) Update(data map[string]V) error {
	entries := make(map[string]store.Entry[V], len(data))
	for k, v := range data {
		entries[k] = store.Entry[V]{Value: v}
	}
	return tx.r.updateLocked(entries)
}

// UpdateEntries is Registry.UpdateEntries inside the held section.
func (tx *Tx[V]) UpdateEntries(entries map[string]store.Entry[V]) error {
	return tx.r.updateLocked(entries)
}
