package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the mnemoreg tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("mnemoreg")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartBulkSpan starts a span covering a bulk critical section.
	// Returns the context with span and the span itself.
	StartBulkSpan(ctx context.Context, registryID string) (context.Context, trace.Span)

	// StartCodecSpan starts a span for an encode or decode operation.
	// op names the operation (e.g., "encode_json", "decode_yaml").
	StartCodecSpan(ctx context.Context, op string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartBulkSpan starts a span covering a bulk critical section.
func (m *otelSpanManager) StartBulkSpan(ctx context.Context, registryID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mnemoreg.bulk",
		trace.WithAttributes(
			attribute.String("registry.id", registryID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartCodecSpan starts a span for an encode or decode operation.
func (m *otelSpanManager) StartCodecSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mnemoreg."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
