package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// Produce buffers a message for the next Deliver call. It never touches the
// network. An empty topic falls back to Config.Topic.
//
// Example:
//
//	_ = client.Produce(payload, "live-events", "user-42", map[string]string{
//		"traceparent": carrier["traceparent"],
//	})
//	if err := client.Deliver(ctx); err != nil {
//		log.Printf("delivery failed: %v", err)
//	}
func (k *KafkaClient) Produce(value []byte, topic, partitionKey string, headers map[string]string) error {
	start := time.Now()
	if topic == "" {
		topic = k.cfg.Topic
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(partitionKey),
		Value: value,
	}
	if len(headers) > 0 {
		msg.Headers = make([]kafka.Header, 0, len(headers))
		for key, val := range headers {
			msg.Headers = append(msg.Headers, kafka.Header{Key: key, Value: []byte(val)})
		}
	}

	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		k.observeOperation("produce", topic, partitionKey, time.Since(start), ErrWriterClosed, 0)
		return ErrWriterClosed
	}
	k.pending = append(k.pending, msg)
	k.mu.Unlock()

	k.observeOperation("produce", topic, partitionKey, time.Since(start), nil, int64(len(value)))
	return nil
}

// Deliver writes every buffered message in a single WriteMessages call and
// clears the buffer, whatever the outcome. Failures are returned as
// *DeliveryError carrying a short code for metrics.
func (k *KafkaClient) Deliver(ctx context.Context) error {
	start := time.Now()

	k.mu.Lock()
	batch := k.pending
	k.pending = nil
	closed := k.closed
	k.mu.Unlock()

	var deliverErr error
	var size int64
	defer func() {
		k.observeOperation("deliver", k.cfg.Topic, "", time.Since(start), deliverErr, size)
	}()

	if len(batch) == 0 {
		return nil
	}
	for _, msg := range batch {
		size += int64(len(msg.Value))
	}

	if closed {
		deliverErr = &DeliveryError{Code: errorCode(ErrWriterClosed), Err: ErrWriterClosed}
		return deliverErr
	}

	if err := k.writer.WriteMessages(ctx, batch...); err != nil {
		deliverErr = k.newDeliveryError(err)
		k.logWarn(ctx, "Kafka delivery failed", map[string]interface{}{
			"messages": len(batch),
			"error":    err.Error(),
		})
		return deliverErr
	}
	return nil
}

// Pending returns the number of messages buffered since the last Deliver.
func (k *KafkaClient) Pending() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.pending)
}

func (k *KafkaClient) newDeliveryError(err error) *DeliveryError {
	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) {
		for _, e := range writeErrs {
			if e != nil {
				return &DeliveryError{Code: errorCode(k.TranslateError(e)), Err: err}
			}
		}
	}
	return &DeliveryError{Code: errorCode(k.TranslateError(err)), Err: err}
}
