package logger

// Accepted values of Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls the relay's zap logger.
type Config struct {
	// Level is the minimum level written: debug, info, warning or error.
	// Anything else falls back to info.
	Level string `yaml:"level" envconfig:"LOGGER_LEVEL" default:"info"`

	// EnableTracing adds trace_id and span_id to entries logged with a
	// context that carries a recording span.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName is written as the "service" field of every entry.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME" default:"live-events"`

	// CallerSkip is the number of wrapper frames hidden from the reported
	// caller. Values below 1 are treated as 1.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOGGER_CALLER_SKIP"`
}
