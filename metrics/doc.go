// Package metrics exposes the relay's Prometheus metrics on two endpoints.
//
// # Dual Endpoint Design
//
// The system endpoint (default :9090) serves Go runtime, process and build
// info collectors. The application endpoint (default :9091) serves only the
// series recorded by the relay itself. Both registries attach a constant
// "service" label. Either endpoint is disabled by configuring its address as
// an empty string:
//
//	m := metrics.NewMetrics(metrics.Config{
//		SystemMetricsAddress: metrics.Ptr(""),
//		ServiceName:          "live-events",
//	})
//
// # Adapters
//
// StatsSink implements liveevents.Stats. The dispatcher reports statsd-style
// names and tags; the sink turns them into Prometheus series:
//
//	live_events.events.sends             counter  live_events_events_sends_total{event}
//	live_events.events.send_errors       counter  live_events_events_send_errors_total{event,error_code}
//	live_events.events.queue_full_errors counter  live_events_events_queue_full_errors_total{event,reason}
//	live_events.put_records              timer    live_events_put_records_seconds
//
// OperationObserver implements observability.Observer and records the
// produce and deliver reports of the kafka and redis adapters as
// operation_duration_seconds, operation_errors_total and operation_bytes_total.
//
// # Custom Metrics
//
// MetricsCollector creates further application metrics without importing
// Prometheus:
//
//	rejected := m.CreateCounter("relay_rejected_total", "Rejected events", []string{"status"})
//	rejected.WithLabelValues("413").Inc()
//
//	m.CreateGaugeFunc("live_events_queue_length", "Records waiting for dispatch",
//		func() float64 { return float64(worker.QueueLength()) })
//
// # FX Module Integration
//
// FXModule provides *Metrics, MetricsCollector, *StatsSink as
// liveevents.Stats and *OperationObserver as observability.Observer, and
// serves both endpoints between OnStart and OnStop. It needs a logger.Logger
// and a Config:
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config { return cfg }),
//	)
//
// All types in this package are safe for concurrent use.
package metrics
