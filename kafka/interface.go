package kafka

import "context"

// Client is the interface of the buffering Kafka producer.
//
// This interface is implemented by the concrete *KafkaClient type.
type Client interface {
	// Produce buffers a message locally. It does not block on the network.
	Produce(value []byte, topic, partitionKey string, headers map[string]string) error

	// Deliver writes all buffered messages and waits for the acknowledgement
	// required by Config.RequiredAcks, or for ctx to expire.
	Deliver(ctx context.Context) error

	// Pending returns the number of buffered messages.
	Pending() int

	// TranslateError converts a kafka-go error into one of the package's
	// sentinel errors when it recognizes it.
	TranslateError(err error) error

	// IsRetryableError checks if an error can be retried.
	IsRetryableError(err error) bool

	// IsPermanentError checks if an error is permanent.
	IsPermanentError(err error) bool

	// IsAuthenticationError checks if an error is authentication-related.
	IsAuthenticationError(err error) bool

	// GracefulShutdown flushes buffered messages and closes the writer.
	GracefulShutdown()
}
