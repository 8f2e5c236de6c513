package mnemoreg

import (
	"log/slog"
	"sync"

	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg/observability"
	"github.com/mnemoreg/mnemoreg/pkg/mnemoreg/store"
)

// settings holds construction-time configuration for a registry.
type settings struct {
	lock     sync.Locker
	logger   *slog.Logger
	logLevel *slog.Level
	policy   OverwritePolicy
	// store is a store.Store[V]; held as any so Option stays non-generic.
	// New asserts the concrete type and fails with ErrInvalidStore on mismatch.
	store   any
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// defaultSettings returns the default registry configuration.
func defaultSettings() settings {
	return settings{
		policy:  Forbid,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a registry at construction time.
type Option func(*settings) error

// WithLock supplies an external lock to guard the registry.
// The lock must not be nil and must not be shared with callers that
// re-enter registry operations while holding it.
//
// Default: a fresh sync.Mutex owned by the registry.
func WithLock(l sync.Locker) Option {
	return func(s *settings) error {
		if l == nil {
			return ErrNilLock
		}
		s.lock = l
		return nil
	}
}

// WithLogger supplies a structured logger for registry diagnostics.
// A nil logger disables logging.
//
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		s.logger = logger
		return nil
	}
}

// WithLogLevel sets the minimum level for registry diagnostics and
// enables logging if no logger was supplied (slog.Default is used).
// Levels outside [slog.LevelDebug, slog.LevelError] are rejected
// with ErrInvalidLogLevel.
func WithLogLevel(level slog.Level) Option {
	return func(s *settings) error {
		if level < slog.LevelDebug || level > slog.LevelError {
			return ErrInvalidLogLevel
		}
		s.logLevel = &level
		return nil
	}
}

// WithOverwritePolicy sets the policy for writes to existing keys.
// Values outside the enumerated range are rejected with ErrInvalidPolicy.
//
// Default: Forbid.
func WithOverwritePolicy(p OverwritePolicy) Option {
	return func(s *settings) error {
		if !p.Valid() {
			return ErrInvalidPolicy
		}
		s.policy = p
		return nil
	}
}

// WithStore supplies a storage backend. The store's value type must match
// the registry's; New fails with ErrInvalidStore otherwise.
//
// Default: a fresh in-memory store.
func WithStore[V any](st store.Store[V]) Option {
	return func(s *settings) error {
		if st == nil {
			return ErrNilStore
		}
		s.store = st
		return nil
	}
}

// WithMetrics supplies a metrics recorder for registry operations.
//
// Default: no metrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *settings) error {
		if m == nil {
			m = observability.NoopMetrics{}
		}
		s.metrics = m
		return nil
	}
}

// WithTracing supplies a span manager for bulk sections and codec operations.
//
// Default: no tracing.
func WithTracing(sm observability.SpanManager) Option {
	return func(s *settings) error {
		if sm == nil {
			sm = observability.NoopSpanManager{}
		}
		s.spans = sm
		return nil
	}
}
