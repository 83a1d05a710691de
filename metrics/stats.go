package metrics

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsSink records statsd-style counters and timers as Prometheus series on
// the application registry. It satisfies liveevents.Stats.
//
// Dotted names are flattened to underscores; counters get a "_total" suffix
// and timers become "_seconds" histograms:
//
//	live_events.events.sends     -> live_events_events_sends_total
//	live_events.put_records      -> live_events_put_records_seconds
//
// The label set of a series is fixed by the tags of its first use. Later
// calls fill missing labels with "" and drop unknown tags.
type StatsSink struct {
	m *Metrics

	mu         sync.Mutex
	counters   map[string]*statVec[*prometheus.CounterVec]
	histograms map[string]*statVec[*prometheus.HistogramVec]
}

type statVec[V any] struct {
	labels []string
	vec    V
}

// NewStatsSink returns a sink recording into m.
func NewStatsSink(m *Metrics) *StatsSink {
	return &StatsSink{
		m:          m,
		counters:   make(map[string]*statVec[*prometheus.CounterVec]),
		histograms: make(map[string]*statVec[*prometheus.HistogramVec]),
	}
}

// Increment adds one to the counter derived from name.
func (s *StatsSink) Increment(name string, tags map[string]string) {
	s.mu.Lock()
	sv, ok := s.counters[name]
	if !ok {
		labels := labelNames(tags)
		metric := MetricName(name) + "_total"
		vec := newCounterVec(metric, "Count of "+name, labels)
		if c, err := s.m.register(vec); err == nil {
			vec = c.(*prometheus.CounterVec)
		}
		sv = &statVec[*prometheus.CounterVec]{labels: labels, vec: vec}
		s.counters[name] = sv
	}
	s.mu.Unlock()

	sv.vec.WithLabelValues(labelValues(sv.labels, tags)...).Inc()
}

// Timing observes d, in seconds, on the histogram derived from name.
func (s *StatsSink) Timing(name string, d time.Duration, tags map[string]string) {
	s.mu.Lock()
	sv, ok := s.histograms[name]
	if !ok {
		labels := labelNames(tags)
		metric := MetricName(name) + "_seconds"
		vec := newHistogramVec(metric, "Duration of "+name, labels, nil)
		if c, err := s.m.register(vec); err == nil {
			vec = c.(*prometheus.HistogramVec)
		}
		sv = &statVec[*prometheus.HistogramVec]{labels: labels, vec: vec}
		s.histograms[name] = sv
	}
	s.mu.Unlock()

	sv.vec.WithLabelValues(labelValues(sv.labels, tags)...).Observe(d.Seconds())
}

// MetricName turns a statsd name into a valid Prometheus metric name.
func MetricName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// labelNames returns the sorted tag keys usable as label names. "service" is
// skipped because the registry already attaches it.
func labelNames(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for k := range tags {
		if name := MetricName(k); name != "" && name != "service" && !strings.HasPrefix(name, "__") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return slices.Compact(names)
}

func labelValues(labels []string, tags map[string]string) []string {
	values := make([]string, len(labels))
	for k, v := range tags {
		name := MetricName(k)
		if i := sort.SearchStrings(labels, name); i < len(labels) && labels[i] == name {
			values[i] = v
		}
	}
	return values
}
