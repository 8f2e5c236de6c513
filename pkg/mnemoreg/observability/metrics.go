package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegister records a write, noting whether it overwrote an existing key.
	RecordRegister(ctx context.Context, overwrote bool)

	// RecordLookup records a strict lookup and whether it resolved.
	RecordLookup(ctx context.Context, found bool)

	// RecordDelete records an entry removal.
	RecordDelete(ctx context.Context)

	// RecordBulk records a completed bulk critical section with its duration.
	RecordBulk(ctx context.Context, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations metric.Int64Counter
	overwrites    metric.Int64Counter
	lookups       metric.Int64Counter
	lookupMisses  metric.Int64Counter
	deletes       metric.Int64Counter
	bulkLatency   metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("mnemoreg")

	registrations, err := meter.Int64Counter("mnemoreg.registrations",
		metric.WithDescription("Number of entries written"),
	)
	if err != nil {
		return nil, err
	}

	overwrites, err := meter.Int64Counter("mnemoreg.overwrites",
		metric.WithDescription("Number of writes that replaced an existing entry"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter("mnemoreg.lookups",
		metric.WithDescription("Number of strict lookups"),
	)
	if err != nil {
		return nil, err
	}

	lookupMisses, err := meter.Int64Counter("mnemoreg.lookup.misses",
		metric.WithDescription("Number of strict lookups that failed to resolve"),
	)
	if err != nil {
		return nil, err
	}

	deletes, err := meter.Int64Counter("mnemoreg.deletes",
		metric.WithDescription("Number of entries removed"),
	)
	if err != nil {
		return nil, err
	}

	bulkLatency, err := meter.Float64Histogram("mnemoreg.bulk.latency_ms",
		metric.WithDescription("Bulk critical section duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations: registrations,
		overwrites:    overwrites,
		lookups:       lookups,
		lookupMisses:  lookupMisses,
		deletes:       deletes,
		bulkLatency:   bulkLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordRegister implements MetricsRecorder.
func (m *otelMetrics) RecordRegister(ctx context.Context, overwrote bool) {
	m.registrations.Add(ctx, 1)
	if overwrote {
		m.overwrites.Add(ctx, 1)
	}
}

// RecordLookup implements MetricsRecorder.
func (m *otelMetrics) RecordLookup(ctx context.Context, found bool) {
	m.lookups.Add(ctx, 1)
	if !found {
		m.lookupMisses.Add(ctx, 1)
	}
}

// RecordDelete implements MetricsRecorder.
func (m *otelMetrics) RecordDelete(ctx context.Context) {
	m.deletes.Add(ctx, 1)
}

// RecordBulk implements MetricsRecorder.
func (m *otelMetrics) RecordBulk(ctx context.Context, duration time.Duration) {
	m.bulkLatency.Record(ctx, float64(duration.Milliseconds()))
}
