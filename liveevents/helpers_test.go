package liveevents

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type producedRecord struct {
	Value        []byte
	Topic        string
	PartitionKey string
	Headers      map[string]string
}

// fakeProducer buffers on Produce and moves the buffer to delivered on a
// successful Deliver, like the real adapters.
type fakeProducer struct {
	mu         sync.Mutex
	pending    []producedRecord
	delivered  [][]producedRecord
	deliverErr []error // consumed one per Deliver call
	panicOn    string  // Produce panics for this partition key
}

func (p *fakeProducer) Produce(value []byte, topic, partitionKey string, headers map[string]string) error {
	if p.panicOn != "" && partitionKey == p.panicOn {
		panic("producer exploded")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, producedRecord{
		Value:        append([]byte(nil), value...),
		Topic:        topic,
		PartitionKey: partitionKey,
		Headers:      headers,
	})
	return nil
}

func (p *fakeProducer) Deliver(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	batch := p.pending
	p.pending = nil

	if len(p.deliverErr) > 0 {
		err := p.deliverErr[0]
		p.deliverErr = p.deliverErr[1:]
		if err != nil {
			return err
		}
	}
	if len(batch) > 0 {
		p.delivered = append(p.delivered, batch)
	}
	return nil
}

func (p *fakeProducer) batches() [][]producedRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]producedRecord(nil), p.delivered...)
}

func (p *fakeProducer) all() []producedRecord {
	var out []producedRecord
	for _, b := range p.batches() {
		out = append(out, b...)
	}
	return out
}

type statCall struct {
	Name string
	Tags map[string]string
}

type fakeStats struct {
	mu         sync.Mutex
	increments []statCall
	timings    []string
}

func (s *fakeStats) Increment(name string, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.increments = append(s.increments, statCall{Name: name, Tags: tags})
}

func (s *fakeStats) Timing(name string, d time.Duration, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timings = append(s.timings, name)
}

func (s *fakeStats) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.increments {
		if c.Name == name {
			n++
		}
	}
	return n
}

func (s *fakeStats) calls(name string) []statCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []statCall
	for _, c := range s.increments {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

type codedError struct{ code string }

func (e *codedError) Error() string     { return "delivery failed: " + e.code }
func (e *codedError) ErrorCode() string { return e.code }

type staticCarrier map[string]string

func (c staticCarrier) GetCarrier(ctx context.Context) map[string]string { return c }

func newTestWorker(cfg Config, p Producer) *AsyncWorker {
	if cfg.Topic == "" {
		cfg.Topic = "live-events"
	}
	w, err := NewAsyncWorker(cfg, p)
	if err != nil {
		panic(err)
	}
	return w
}

// rawRecord builds a queued record of the given accounted size with a tiny
// payload, so batching can be tested without allocating megabytes.
func rawRecord(key string, totalBytes int) *Record {
	return &Record{
		Data:         []byte(`{"k":"` + key + `"}`),
		PartitionKey: key,
		TotalBytes:   totalBytes,
		StatsPrefix:  DefaultStatsPrefix,
		Tags:         map[string]string{"event": "raw"},
	}
}

func decodeBody(data []byte) map[string]interface{} {
	var out struct {
		Body map[string]interface{} `json:"body"`
	}
	_ = json.Unmarshal(data, &out)
	return out.Body
}

func keysOf(batch []producedRecord) []string {
	keys := make([]string, 0, len(batch))
	for _, r := range batch {
		keys = append(keys, r.PartitionKey)
	}
	return keys
}
