package liveevents

import (
	"context"
	"time"
)

// Producer is the broker client the dispatcher hands batches to.
//
// Produce buffers a record locally and must not block on the network.
// Deliver flushes everything buffered so far and may block until the broker
// acknowledges or the context expires. Errors from either call are caught by
// the dispatcher; they never stop it.
//
// *kafka.KafkaClient and *redis.Producer implement this interface.
type Producer interface {
	Produce(value []byte, topic, partitionKey string, headers map[string]string) error
	Deliver(ctx context.Context) error
}

// Stats is a statsd-style metrics sink.
//
// *metrics.StatsSink implements this interface on top of Prometheus.
type Stats interface {
	// Increment adds one to the named counter.
	Increment(name string, tags map[string]string)

	// Timing records a duration under the given name.
	Timing(name string, d time.Duration, tags map[string]string)
}

// CarrierSource extracts propagation headers (for example W3C traceparent)
// from a context. *tracer.TracerClient implements this interface.
type CarrierSource interface {
	GetCarrier(ctx context.Context) map[string]string
}

// Poster is what request handlers depend on to publish events.
// *Client implements it.
type Poster interface {
	PostEvent(ctx context.Context, ev Event) error
}
