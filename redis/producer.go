package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Produce encodes the record as a msgpack Frame and buffers it.
func (p *Producer) Produce(value []byte, topic, partitionKey string, headers map[string]string) error {
	start := time.Now()
	if topic == "" {
		topic = p.cfg.Topic
	}

	data, err := msgpack.Marshal(&Frame{
		Key:          partitionKey,
		Headers:      headers,
		Value:        value,
		ProducedAtMs: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.observe("produce", topic, partitionKey, start, ErrProducerClosed, 0)
		return ErrProducerClosed
	}
	p.pending = append(p.pending, pendingFrame{listKey: p.ListKey(topic), data: data, size: len(value)})
	p.mu.Unlock()

	p.observe("produce", topic, partitionKey, start, nil, int64(len(value)))
	return nil
}

// Deliver pushes all buffered frames in one pipeline, trimming each touched
// list to MaxListLength when configured. The buffer is cleared either way.
func (p *Producer) Deliver(ctx context.Context) error {
	start := time.Now()

	p.mu.Lock()
	batch := p.pending
	p.pending = nil
	closed := p.closed
	p.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	if closed {
		return &DeliveryError{Code: classify(ErrProducerClosed), Err: ErrProducerClosed}
	}

	var size int64
	touched := make(map[string]struct{})
	pipe := p.client.Pipeline()
	for _, f := range batch {
		pipe.RPush(ctx, f.listKey, f.data)
		touched[f.listKey] = struct{}{}
		size += int64(f.size)
	}
	if p.cfg.MaxListLength > 0 {
		for key := range touched {
			pipe.LTrim(ctx, key, -p.cfg.MaxListLength, -1)
		}
	}

	_, err := pipe.Exec(ctx)
	p.observe("deliver", p.cfg.Topic, "", start, err, size)
	if err != nil {
		if p.logger != nil {
			p.logger.WarnWithContext(ctx, "Redis delivery failed", err, map[string]interface{}{
				"records": len(batch),
			})
		}
		return &DeliveryError{Code: classify(err), Err: err}
	}
	return nil
}

// Pending returns the number of buffered records.
func (p *Producer) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
