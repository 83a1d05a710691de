package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns two Prometheus registries, each served by its own HTTP server:
// system collectors on SystemServer and relay metrics on ApplicationServer.
// Either server is nil when its address is configured as "".
type Metrics struct {
	SystemServer      *http.Server
	ApplicationServer *http.Server

	SystemRegistry *prometheus.Registry

	// ApplicationRegistry holds everything created through Create*,
	// StatsSink and OperationObserver. It exists even when the application
	// endpoint is disabled so that recording never needs a nil check.
	ApplicationRegistry *prometheus.Registry

	// registerer wraps ApplicationRegistry with the service label.
	registerer prometheus.Registerer
}

// NewMetrics builds the registries and servers described by cfg. Servers are
// not started; RegisterMetricsLifecycle does that.
func NewMetrics(cfg Config) *Metrics {
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	serviceLabel := prometheus.Labels{"service": cfg.ServiceName}
	m := &Metrics{}

	if addr := resolveAddress(cfg.SystemMetricsAddress, DefaultSystemMetricsAddress); addr != "" {
		registry := prometheus.NewRegistry()
		prometheus.WrapRegistererWith(serviceLabel, registry).MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)

		m.SystemRegistry = registry
		m.SystemServer = &http.Server{
			Addr:    addr,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}
	}

	m.ApplicationRegistry = prometheus.NewRegistry()
	m.registerer = prometheus.WrapRegistererWith(serviceLabel, m.ApplicationRegistry)

	if addr := resolveAddress(cfg.ApplicationMetricsAddress, DefaultApplicationMetricsAddress); addr != "" {
		m.ApplicationServer = &http.Server{
			Addr:    addr,
			Handler: promhttp.HandlerFor(m.ApplicationRegistry, promhttp.HandlerOpts{}),
		}
	}

	return m
}

// register adds c to the application registry. When an identical collector
// is already registered the existing one is returned instead, so adapters
// built twice on the same Metrics share their series.
func (m *Metrics) register(c prometheus.Collector) (prometheus.Collector, error) {
	if err := m.registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector, nil
		}
		return nil, err
	}
	return c, nil
}
