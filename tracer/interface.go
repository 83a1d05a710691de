package tracer

import (
	"context"
)

// Tracer starts spans and converts trace context to and from string maps.
// GetCarrier is what the live events client uses to stamp record headers.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
	GetCarrier(ctx context.Context) map[string]string
	SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context
}

// Span is the subset of an OpenTelemetry span the relay uses.
type Span interface {
	End()
	// SetAttributes accepts string, bool, int, int64 and float64 values;
	// anything else is recorded with fmt.Sprint.
	SetAttributes(attrs map[string]interface{})
	// RecordError records err and marks the span as failed.
	RecordError(err error)
}
