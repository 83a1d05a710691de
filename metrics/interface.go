package metrics

// MetricsCollector creates application metrics without exposing Prometheus
// types. *Metrics implements it; every metric lands on the application
// registry and carries the service label.
type MetricsCollector interface {
	// CreateCounter registers a monotonically increasing counter.
	//
	//   c := m.CreateCounter("relay_requests_total", "Relay requests", []string{"status"})
	//   c.WithLabelValues("202").Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateHistogram registers a histogram; nil buckets select
	// prometheus.DefBuckets.
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram

	// CreateGauge registers a gauge that can go up and down.
	CreateGauge(name, help string, labels []string) Gauge

	// CreateGaugeFunc registers a gauge whose value is read from fn at
	// scrape time, e.g. the current dispatch queue length.
	CreateGaugeFunc(name, help string, fn func() float64)
}
