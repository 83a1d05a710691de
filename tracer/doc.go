// Package tracer provides OpenTelemetry tracing for the relay.
//
// NewClient installs an SDK tracer provider and the W3C trace-context plus
// baggage propagator. With Config.EnableExport spans are batched to an OTLP
// HTTP collector; without it they are only used for propagation.
//
// The relay starts a span per accepted HTTP request and the live events
// client copies GetCarrier(ctx) into the headers of the queued record, so
// consumers of the topic can continue the trace:
//
//	ctx, span := t.StartSpan(ctx, "live_events.post")
//	defer span.End()
//	headers := t.GetCarrier(ctx) // {"traceparent": "00-...-01"}
//
// On the consuming side SetCarrierOnContext turns the headers back into a
// parent context.
//
// FXModule provides *TracerClient and Tracer and shuts the provider down on
// stop.
package tracer
