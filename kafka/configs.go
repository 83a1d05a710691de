package kafka

import (
	"context"
	"time"
)

// Config defines the configuration for the Kafka producer.
// It covers the connection, delivery guarantees, batching and security.
type Config struct {
	// Brokers is a list of Kafka broker addresses.
	Brokers []string `envconfig:"KAFKA_BROKERS"`

	// Topic is the fallback topic for messages produced without one.
	Topic string `envconfig:"KAFKA_TOPIC"`

	// ClientID is sent to the brokers with every request.
	// Default: "live-events"
	ClientID string `envconfig:"KAFKA_CLIENT_ID"`

	// RequiredAcks controls how many replicas must acknowledge a write.
	// Use RequireNone (0), RequireOne (1), or RequireAll (-1).
	// Default: RequireAll
	RequiredAcks int `envconfig:"KAFKA_REQUIRED_ACKS"`

	// WriteTimeout is the timeout for write operations.
	// Default: 10s
	WriteTimeout time.Duration `envconfig:"KAFKA_WRITE_TIMEOUT"`

	// Async enables fire-and-forget writes. Deliver returns once the messages
	// are handed to the writer; broker errors are only logged.
	Async bool `envconfig:"KAFKA_ASYNC"`

	// BatchSize is the maximum number of messages the writer groups into a
	// single request.
	// Default: 100
	BatchSize int `envconfig:"KAFKA_BATCH_SIZE"`

	// BatchTimeout is how long the writer waits to fill a batch.
	// Default: 10ms, since Deliver already hands over complete batches.
	BatchTimeout time.Duration `envconfig:"KAFKA_BATCH_TIMEOUT"`

	// CompressionCodec is one of "gzip", "snappy", "lz4", "zstd" or empty.
	CompressionCodec string `envconfig:"KAFKA_COMPRESSION_CODEC"`

	// MaxAttempts is the number of attempts the writer makes per batch.
	// Default: 10
	MaxAttempts int `envconfig:"KAFKA_MAX_ATTEMPTS"`

	// AllowAutoTopicCreation lets the writer create missing topics.
	AllowAutoTopicCreation bool `envconfig:"KAFKA_ALLOW_AUTO_TOPIC_CREATION"`

	// TLS configuration for secure connections, read from KAFKA_TLS_*
	TLS TLSConfig `envconfig:"KAFKA_TLS"`

	// SASL configuration for authentication, read from KAFKA_SASL_*
	SASL SASLConfig `envconfig:"KAFKA_SASL"`
}

// Logger is the subset of logger.Logger used by the Kafka client.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// TLSConfig defines TLS/SSL configuration for secure connections.
type TLSConfig struct {
	Enabled            bool   `envconfig:"ENABLED"`
	CACertPath         string `envconfig:"CA_CERT_PATH"`
	ClientCertPath     string `envconfig:"CLIENT_CERT_PATH"`
	ClientKeyPath      string `envconfig:"CLIENT_KEY_PATH"`
	InsecureSkipVerify bool   `envconfig:"INSECURE_SKIP_VERIFY"`
}

// SASLConfig defines SASL authentication configuration.
type SASLConfig struct {
	Enabled bool `envconfig:"ENABLED"`

	// Mechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
	Mechanism string `envconfig:"MECHANISM"`

	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"` //nolint:gosec
}

// Default values for configuration
const (
	DefaultClientID     = "live-events"
	DefaultRequiredAcks = -1 // WaitForAll
	DefaultBatchSize    = 100
	DefaultBatchTimeout = 10 * time.Millisecond
	DefaultMaxAttempts  = 10
	DefaultWriteTimeout = 10 * time.Second

	RequireNone = 0  // Fire-and-forget (no acknowledgment)
	RequireOne  = 1  // Wait for leader only
	RequireAll  = -1 // Wait for all in-sync replicas (most durable)
)
