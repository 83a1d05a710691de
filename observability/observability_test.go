package observability_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aalemi-dev/live-events/observability"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, ctx)
}

func TestNoOpObserver(t *testing.T) {
	var obs observability.Observer = observability.NewNoOpObserver()
	obs.ObserveOperation(observability.OperationContext{Component: "kafka", Operation: "deliver"})
}

func TestRecordingObserver_Concurrent(t *testing.T) {
	rec := &recordingObserver{}
	var obs observability.Observer = rec

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs.ObserveOperation(observability.OperationContext{
				Component:   "kafka",
				Operation:   "produce",
				Resource:    "live-events",
				SubResource: "user-1",
				Duration:    time.Millisecond,
				Size:        42,
			})
		}()
	}
	wg.Wait()

	if len(rec.ops) != 8 {
		t.Fatalf("expected 8 reports, got %d", len(rec.ops))
	}
	if rec.ops[0].Resource != "live-events" || rec.ops[0].Size != 42 {
		t.Errorf("unexpected report %+v", rec.ops[0])
	}
}
