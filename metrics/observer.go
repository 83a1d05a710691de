package metrics

import (
	"github.com/aalemi-dev/live-events/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// OperationObserver exports observability.OperationContext reports from the
// broker adapters as Prometheus series:
//
//	operation_duration_seconds{component,operation,resource}
//	operation_errors_total{component,operation,resource}
//	operation_bytes_total{component,operation,resource}
//
// SubResource (the partition key) is not a label; its cardinality is unbounded.
type OperationObserver struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	bytes    *prometheus.CounterVec
}

var operationLabels = []string{"component", "operation", "resource"}

// NewOperationObserver registers the operation series on m. Building a second
// observer on the same Metrics reuses the registered series.
func NewOperationObserver(m *Metrics) (*OperationObserver, error) {
	duration, err := m.register(newHistogramVec("operation_duration_seconds", "Duration of broker operations", operationLabels, nil))
	if err != nil {
		return nil, err
	}
	errs, err := m.register(newCounterVec("operation_errors_total", "Failed broker operations", operationLabels))
	if err != nil {
		return nil, err
	}
	bytes, err := m.register(newCounterVec("operation_bytes_total", "Bytes handled by broker operations", operationLabels))
	if err != nil {
		return nil, err
	}

	return &OperationObserver{
		duration: duration.(*prometheus.HistogramVec),
		errors:   errs.(*prometheus.CounterVec),
		bytes:    bytes.(*prometheus.CounterVec),
	}, nil
}

// ObserveOperation implements observability.Observer.
func (o *OperationObserver) ObserveOperation(op observability.OperationContext) {
	lvs := []string{op.Component, op.Operation, op.Resource}

	o.duration.WithLabelValues(lvs...).Observe(op.Duration.Seconds())
	if op.Error != nil {
		o.errors.WithLabelValues(lvs...).Inc()
	}
	if op.Size > 0 {
		o.bytes.WithLabelValues(lvs...).Add(float64(op.Size))
	}
}
