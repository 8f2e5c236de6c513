/*
Package mnemoreg provides a thread-safe, string-keyed registry for
plugin-style registration.

# Overview

A Registry maps non-empty, whitespace-free string keys to values of a
single type, with an optional human-readable description per entry. It
is process-local state: a building block for "register a handler under
a name" patterns, not a distributed or persistent store.

The interesting parts are the mutation protocol, the overwrite policy,
and the locking discipline. Every operation is serialized by a single
lock owned by the registry; readers observe a consistent snapshot as of
some serialization point.

# Basic Usage

	reg, err := mnemoreg.New[http.Handler]()
	if err != nil {
	    log.Fatal(err)
	}

	if _, err := reg.Register("health", healthHandler, "liveness probe"); err != nil {
	    log.Fatal(err)
	}

	h, err := reg.Lookup("health")
	if err != nil {
	    log.Fatal(err)
	}

# Overwrite Policy

Writes to existing keys are governed by a policy fixed at construction:

  - Forbid (default): the write fails with ErrAlreadyRegistered
  - Allow: the write silently replaces the entry
  - Warn: the write replaces the entry and logs a warning

	reg, _ := mnemoreg.New[int](mnemoreg.WithOverwritePolicy(mnemoreg.Allow))
	reg.Set("x", 10)
	reg.Set("x", 20) // ok, x == 20

# Keys

Keys must be non-empty strings with no whitespace. Violations fail with
a *KeyError wrapping ErrEmptyKey or ErrWhitespaceKey before anything is
written, so a failed mutation leaves the registry exactly as it was.

# Strict and Forgiving Reads

Lookup requires the key to exist; it also reports ErrNotRegistered for
a present key holding a nil value, which makes a registered nil
indistinguishable from an unregistered key. Get takes a default and
never fails, and reads back stored nils as they are:

	v, err := reg.Lookup("missing") // *KeyError wrapping ErrNotRegistered
	v = reg.Get("missing", fallback) // fallback

# Bulk Sections

Bulk composes several operations into one critical section. The lock is
held for the whole callback and released on every exit path, including
panics; errors from the callback propagate unchanged:

	err := reg.Bulk(func(tx *mnemoreg.Tx[int]) error {
	    if err := tx.Set("a", 1); err != nil {
	        return err
	    }
	    return tx.Set("b", 2)
	})

# Serialization

ToJSON and FromJSON round-trip the registry through a plain JSON object
({"a": 1}); ToYAML and FromYAML do the same in YAML. Descriptions are
not serialized. FromJSON, FromYAML, FromMap and FromEntries bulk-load
through the store and bypass both key validation and the overwrite
policy; Update, in contrast, enforces the policy per key. The asymmetry
is deliberate: loading reconstructs a registry, updating merges into a
live one.

# Storage Backends

The registry delegates storage to a store.Store implementation. The
default is an in-memory map; store.NewSQLite persists entries to a
SQLite database with values JSON-encoded at rest:

	st, err := store.NewSQLite[string]("./registry.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer st.Close()

	reg, err := mnemoreg.New[string](mnemoreg.WithStore(st))

# Observability

Diagnostics are opt-in: WithLogger/WithLogLevel for structured slog
output, WithMetrics for OpenTelemetry counters and histograms, and
WithTracing for spans around bulk sections and codec operations. Each
registry carries its own logger handle and instance id; there is no
process-wide mutable logging state.

# Thread Safety

  - Registry is safe for concurrent use; all operations are serialized
  - Keys() and Snapshot() return copies safe to consume without the lock
  - Stored values are shared with callers, not copied; the registry
    protects only key and description bookkeeping
  - Bulk sections may call any Tx operation without self-deadlock

# Subpackages

  - store: storage backends (memory, SQLite)
  - config: building registry options from YAML/JSON configuration
  - observability: logging, metrics, and tracing helpers
*/
package mnemoreg
