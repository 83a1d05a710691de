package redis

import (
	"context"
	"time"
)

// Config defines the configuration for the Redis list producer.
type Config struct {
	// URL is a redis:// or rediss:// URL. When set it takes precedence over
	// Addr, Password and DB.
	URL string `envconfig:"REDIS_URL"`

	// Addr is the host:port of the Redis server.
	Addr string `envconfig:"REDIS_ADDR"`

	Password string `envconfig:"REDIS_PASSWORD"` //nolint:gosec
	DB       int    `envconfig:"REDIS_DB"`

	// Topic is the fallback topic for records produced without one.
	Topic string `envconfig:"REDIS_TOPIC"`

	// KeyPrefix is prepended to the topic to form the list key.
	// Default: "live_events:"
	KeyPrefix string `envconfig:"REDIS_KEY_PREFIX"`

	// MaxListLength caps each list; older entries are trimmed on delivery.
	// Zero disables trimming.
	MaxListLength int64 `envconfig:"REDIS_MAX_LIST_LENGTH"`

	// DialTimeout bounds connection setup.
	// Default: 5s
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT"`
}

// Logger is the subset of logger.Logger used by the producer.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultKeyPrefix   = "live_events:"
	DefaultDialTimeout = 5 * time.Second
)
