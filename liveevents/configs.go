package liveevents

import (
	"context"
	"time"
)

// Config defines the configuration for the live events pipeline.
// Zero values are replaced with the defaults below when the worker is created.
type Config struct {
	// Topic is the broker topic every event is published to.
	// Required.
	Topic string `envconfig:"LIVE_EVENTS_TOPIC"`

	// MaxQueueSize is the maximum number of records held in memory.
	// Pushes beyond this are rejected rather than blocked.
	// Default: 5000
	MaxQueueSize int `envconfig:"LIVE_EVENTS_MAX_QUEUE_SIZE"`

	// RecordSizeLimit is the largest serialized record (envelope bytes plus
	// partition key bytes) accepted by Push.
	// Default: 1,000,000 bytes
	RecordSizeLimit int `envconfig:"LIVE_EVENTS_RECORD_SIZE_LIMIT"`

	// BatchByteThreshold bounds the cumulative size of one delivered batch.
	// A batch always contains at least one record, even when that record
	// alone exceeds the threshold.
	// Default: 5,000,000 bytes
	BatchByteThreshold int `envconfig:"LIVE_EVENTS_BATCH_BYTE_THRESHOLD"`

	// DeliveryTimeout bounds a single Deliver call on the producer.
	// Default: 30s
	DeliveryTimeout time.Duration `envconfig:"LIVE_EVENTS_DELIVERY_TIMEOUT"`

	// StatsPrefix is prepended to the per-event counters
	// (<prefix>.sends, <prefix>.send_errors, <prefix>.queue_full_errors).
	// Default: "live_events.events"
	StatsPrefix string `envconfig:"LIVE_EVENTS_STATS_PREFIX"`
}

// Logger is the subset of logger.Logger used by this package.
type Logger interface {
	// DebugWithContext logs a debug-level message with trace context.
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultMaxQueueSize       = 5000
	DefaultRecordSizeLimit    = 1_000_000
	DefaultBatchByteThreshold = 5_000_000
	DefaultDeliveryTimeout    = 30 * time.Second
	DefaultStatsPrefix        = "live_events.events"

	// RetryLimit is the default number of attempts a broker transport makes
	// per batch. The dispatcher itself never retries; a batch that still
	// fails is dropped.
	RetryLimit = 3

	// PutRecordsTimer names the timing reported around produce+deliver.
	PutRecordsTimer = "live_events.put_records"

	// UnknownEventTag tags records whose envelope carries no event name.
	UnknownEventTag = "event_name_not_found"
)

func (c Config) withDefaults() Config {
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = DefaultMaxQueueSize
	}
	if c.RecordSizeLimit <= 0 {
		c.RecordSizeLimit = DefaultRecordSizeLimit
	}
	if c.BatchByteThreshold <= 0 {
		c.BatchByteThreshold = DefaultBatchByteThreshold
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = DefaultDeliveryTimeout
	}
	if c.StatsPrefix == "" {
		c.StatsPrefix = DefaultStatsPrefix
	}
	return c
}
