// Package observability provides production-grade observability features
// for mnemoreg: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// EnrichLogger adds registry context to a logger.
// Returns a new logger with a registry_id field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "reg-123")
//	enriched.Info("registered") // includes registry_id
func EnrichLogger(logger *slog.Logger, registryID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("registry_id", registryID),
	)
}

// LogRegister logs a successful registration.
func LogRegister(logger *slog.Logger, key, valueType string) {
	if logger == nil {
		return
	}
	logger.Debug("registered",
		slog.String("key", key),
		slog.String("value_type", valueType),
	)
}

// LogOverwrite logs an overwrite of an existing key.
// Emitted at warn level when the Warn policy allows the write through.
func LogOverwrite(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Warn("overwriting existing key",
		slog.String("key", key),
	)
}

// LogDelete logs entry removal.
func LogDelete(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("deleted",
		slog.String("key", key),
	)
}

// LogClear logs removal of all entries.
func LogClear(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("registry cleared")
}

// LogBulkEnd logs completion of a bulk critical section.
func LogBulkEnd(logger *slog.Logger, durationMs float64, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Error("bulk section failed",
			slog.Float64("duration_ms", durationMs),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("bulk section completed",
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLoad logs a bulk load from an external representation.
func LogLoad(logger *slog.Logger, format string, entries int) {
	if logger == nil {
		return
	}
	logger.Debug("registry loaded",
		slog.String("format", format),
		slog.Int("entries", entries),
	)
}

// LogStoreError logs a storage backend failure on an advisory operation.
func LogStoreError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Error("store operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}

// levelHandler filters records below a minimum level before delegating.
type levelHandler struct {
	level   slog.Leveler
	handler slog.Handler
}

// NewLevelHandler wraps h so only records at or above level are emitted.
func NewLevelHandler(level slog.Leveler, h slog.Handler) slog.Handler {
	return &levelHandler{level: level, handler: h}
}

// Enabled implements slog.Handler.
func (h *levelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, handler: h.handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, handler: h.handler.WithGroup(name)}
}
