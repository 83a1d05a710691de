package tracer

// Config controls the OpenTelemetry tracer provider of the relay.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME" default:"live-events"`

	// AppEnv is recorded as deployment.environment and environment.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV" default:"development"`

	// EnableExport ships spans to an OTLP HTTP collector. Without it spans
	// are still created, so trace context keeps propagating into record
	// headers.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint overrides the collector host:port. Empty leaves the
	// exporter to OTEL_EXPORTER_OTLP_ENDPOINT or its default.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE"`
}
