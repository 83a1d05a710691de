package liveevents

import (
	"context"
)

// Client is the entry point request-handling code uses to publish events.
// It builds the envelope, attaches trace propagation headers and hands the
// result to the AsyncWorker. It never blocks on the broker.
type Client struct {
	worker *AsyncWorker
	logger Logger
	tracer CarrierSource
}

// NewClient creates a Client that posts to the given worker.
func NewClient(worker *AsyncWorker) *Client {
	return &Client{worker: worker}
}

// WithLogger attaches a logger and returns the client for chaining.
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithTracer attaches a propagation carrier source. When set, the trace
// context of every posted event travels with it as record headers.
func (c *Client) WithTracer(tracer CarrierSource) *Client {
	c.tracer = tracer
	return c
}

// PostEvent builds an envelope from ev and queues it for delivery.
//
// It returns ErrInvalidEvent when the event has no name, ErrQueueFull when
// the queue is at capacity and ErrRecordTooLarge when the serialized record
// exceeds the size limit. Delivery itself happens later and its failures are
// only logged and counted.
func (c *Client) PostEvent(ctx context.Context, ev Event) error {
	env, err := NewEnvelope(ev)
	if err != nil {
		if c.logger != nil {
			c.logger.WarnWithContext(ctx, "Dropping live event without a name", err, nil)
		}
		return err
	}

	var headers map[string]string
	if c.tracer != nil {
		if carrier := c.tracer.GetCarrier(ctx); len(carrier) > 0 {
			headers = carrier
		}
	}

	if err := c.worker.push(ctx, env, env.PartitionKey(), headers); err != nil {
		if c.logger != nil {
			c.logger.DebugWithContext(ctx, "Live event rejected", err, map[string]interface{}{
				"event": ev.Name,
			})
		}
		return err
	}
	return nil
}

// Ready reports whether the underlying worker is dispatching.
func (c *Client) Ready() bool {
	return !c.worker.Stopped()
}
