package httpserver

import (
	"context"
	"time"
)

const (
	DefaultAddress         = ":8080"
	DefaultMaxBodyBytes    = 2 << 20
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	// RequestIDHeader is echoed on every response; a fresh UUID is used when
	// the caller does not send one.
	RequestIDHeader = "X-Request-ID"

	// APIKeyHeader carries the shared secret when Config.APIKeys is set.
	APIKeyHeader = "X-API-Key"
)

// Config controls the HTTP relay in front of the live events client.
type Config struct {
	// Address is the listen address.
	Address string `yaml:"address" envconfig:"HTTP_ADDRESS" default:":8080"`

	// MaxBodyBytes caps request bodies; larger bodies get 413 before the
	// event is built. The serialized record limit is enforced separately by
	// the worker.
	MaxBodyBytes int64 `yaml:"max_body_bytes" envconfig:"HTTP_MAX_BODY_BYTES"`

	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"HTTP_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"HTTP_SHUTDOWN_TIMEOUT"`

	// APIKeys, when non-empty, is the set of keys accepted on
	// POST /v1/events. Health endpoints stay public.
	APIKeys []string `yaml:"api_keys" envconfig:"HTTP_API_KEYS"`

	// Mode is the gin mode: release, debug or test.
	Mode string `yaml:"mode" envconfig:"HTTP_MODE" default:"release"`
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
	return c
}

// Logger is the logging surface the relay needs. *logger.LoggerClient
// satisfies it.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
