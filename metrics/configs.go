package metrics

// Default listen addresses of the two metrics endpoints.
const (
	DefaultSystemMetricsAddress      = ":9090"
	DefaultApplicationMetricsAddress = ":9091"
)

// DefaultServiceName labels every series when Config.ServiceName is empty.
const DefaultServiceName = "live-events"

// Config controls the two Prometheus endpoints exposed by the relay.
//
// The system endpoint carries Go runtime, process and build info collectors.
// The application endpoint carries the live events counters and timers
// recorded through StatsSink and OperationObserver.
type Config struct {
	// SystemMetricsAddress is the listen address of the system endpoint.
	// nil selects DefaultSystemMetricsAddress, a pointer to "" disables it.
	SystemMetricsAddress *string `yaml:"system_metrics_address" envconfig:"METRICS_SYSTEM_ADDRESS"`

	// ApplicationMetricsAddress is the listen address of the application
	// endpoint. nil selects DefaultApplicationMetricsAddress, a pointer to ""
	// disables it; stats are then recorded but never exported.
	ApplicationMetricsAddress *string `yaml:"application_metrics_address" envconfig:"METRICS_APPLICATION_ADDRESS"`

	// ServiceName is attached as the constant "service" label.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME" default:"live-events"`
}

// Ptr returns a pointer to s, handy for disabling an endpoint:
//
//	metrics.Config{SystemMetricsAddress: metrics.Ptr("")}
func Ptr(s string) *string {
	return &s
}

func resolveAddress(addr *string, fallback string) string {
	if addr == nil {
		return fallback
	}
	return *addr
}
