package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counter is a cumulative metric. Label values are bound with
// WithLabelValues before incrementing.
type Counter interface {
	WithLabelValues(lvs ...string) Counter
	Inc()
	// Add panics on negative values, like the underlying Prometheus counter.
	Add(val float64)
}

// Gauge is a metric that can move in both directions.
type Gauge interface {
	WithLabelValues(lvs ...string) Gauge
	Set(val float64)
	Inc()
	Dec()
	Add(val float64)
	Sub(val float64)
}

// Histogram tracks a distribution of observations.
type Histogram interface {
	WithLabelValues(lvs ...string) Observer
	Observe(val float64)
}

// Observer records a single observation.
type Observer interface {
	Observe(val float64)
}

type counterVec struct {
	vec *prometheus.CounterVec
}

func (c *counterVec) WithLabelValues(lvs ...string) Counter {
	return &counter{c: c.vec.WithLabelValues(lvs...)}
}

// Inc and Add on the vector itself address the series with no label values.
func (c *counterVec) Inc()            { c.vec.WithLabelValues().Inc() }
func (c *counterVec) Add(val float64) { c.vec.WithLabelValues().Add(val) }

type counter struct {
	c prometheus.Counter
}

// WithLabelValues on a bound counter returns the counter unchanged.
func (c *counter) WithLabelValues(lvs ...string) Counter { return c }
func (c *counter) Inc()                                  { c.c.Inc() }
func (c *counter) Add(val float64)                       { c.c.Add(val) }

type gaugeVec struct {
	vec *prometheus.GaugeVec
}

func (g *gaugeVec) WithLabelValues(lvs ...string) Gauge {
	return &gauge{g: g.vec.WithLabelValues(lvs...)}
}

func (g *gaugeVec) Set(val float64) { g.vec.WithLabelValues().Set(val) }
func (g *gaugeVec) Inc()            { g.vec.WithLabelValues().Inc() }
func (g *gaugeVec) Dec()            { g.vec.WithLabelValues().Dec() }
func (g *gaugeVec) Add(val float64) { g.vec.WithLabelValues().Add(val) }
func (g *gaugeVec) Sub(val float64) { g.vec.WithLabelValues().Sub(val) }

type gauge struct {
	g prometheus.Gauge
}

func (g *gauge) WithLabelValues(lvs ...string) Gauge { return g }
func (g *gauge) Set(val float64)                     { g.g.Set(val) }
func (g *gauge) Inc()                                { g.g.Inc() }
func (g *gauge) Dec()                                { g.g.Dec() }
func (g *gauge) Add(val float64)                     { g.g.Add(val) }
func (g *gauge) Sub(val float64)                     { g.g.Sub(val) }

type histogramVec struct {
	vec *prometheus.HistogramVec
}

func (h *histogramVec) WithLabelValues(lvs ...string) Observer {
	return h.vec.WithLabelValues(lvs...)
}

func (h *histogramVec) Observe(val float64) { h.vec.WithLabelValues().Observe(val) }
