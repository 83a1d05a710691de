package liveevents

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// AsyncWorker owns the in-memory queue and the single dispatcher goroutine
// that drains it into batches for the Producer.
//
// Lifecycle: Stopped -> Running (Start) -> Draining (Stop) -> Stopped.
// Push is safe for concurrent use at any point of the lifecycle.
type AsyncWorker struct {
	cfg      Config
	producer Producer
	queue    *recordQueue

	// optional collaborators, nil means disabled
	logger        Logger
	stats         Stats
	onWorkUnitEnd func()

	running atomic.Bool

	// lifecycleMu serializes Start and Stop.
	lifecycleMu sync.Mutex

	// doneMu guards done, which is closed when the dispatcher exits.
	doneMu sync.Mutex
	done   chan struct{}
}

// NewAsyncWorker creates a worker for the given configuration and producer.
// The worker is not started; call Start.
//
// Example:
//
//	client, err := kafka.NewClient(kafkaCfg)
//	if err != nil {
//		return err
//	}
//	worker, err := liveevents.NewAsyncWorker(liveevents.Config{Topic: "live-events"}, client)
//	if err != nil {
//		return err
//	}
//	worker.Start()
//	defer worker.Stop()
func NewAsyncWorker(cfg Config, producer Producer) (*AsyncWorker, error) {
	if producer == nil {
		return nil, fmt.Errorf("%w: producer is required", ErrInvalidConfig)
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}

	return &AsyncWorker{
		cfg:      cfg.withDefaults(),
		producer: producer,
		queue:    newRecordQueue(),
	}, nil
}

// WithLogger attaches a logger and returns the worker for chaining.
func (w *AsyncWorker) WithLogger(logger Logger) *AsyncWorker {
	w.logger = logger
	return w
}

// WithStats attaches a statsd-style sink and returns the worker for chaining.
func (w *AsyncWorker) WithStats(stats Stats) *AsyncWorker {
	w.stats = stats
	return w
}

// WithOnWorkUnitEnd registers a hook run after every dispatcher iteration,
// successful or not. Tests use it to wait for the dispatcher.
func (w *AsyncWorker) WithOnWorkUnitEnd(hook func()) *AsyncWorker {
	w.onWorkUnitEnd = hook
	return w
}

// Push serializes the envelope and queues it for delivery.
// An empty partition key is replaced with a random UUID.
//
// Push never blocks. It returns false, logs and counts a queue_full_errors
// when the queue is at MaxQueueSize or the record is larger than
// RecordSizeLimit.
func (w *AsyncWorker) Push(env Envelope, partitionKey string) bool {
	return w.push(context.Background(), env, partitionKey, nil) == nil
}

func (w *AsyncWorker) push(ctx context.Context, env Envelope, partitionKey string, headers map[string]string) error {
	if partitionKey == "" {
		partitionKey = uuid.NewString()
	}

	eventTag := env.EventName()
	if eventTag == "" {
		eventTag = UnknownEventTag
	}
	tags := map[string]string{"event": eventTag}

	rec, err := w.newRecord(env, partitionKey, tags, headers)
	if err == nil && !w.queue.tryPush(rec, w.cfg.MaxQueueSize) {
		err = ErrQueueFull
	}
	if err != nil {
		w.logError(ctx, "Error queueing job for live event", err, map[string]interface{}{
			"event":         eventTag,
			"partition_key": partitionKey,
			"queue_length":  w.queue.size(),
		})
		w.increment(w.cfg.StatsPrefix+".queue_full_errors", map[string]string{
			"event":  eventTag,
			"reason": rejectReason(err),
		})
		return err
	}
	return nil
}

func (w *AsyncWorker) newRecord(env Envelope, partitionKey string, tags, headers map[string]string) (*Record, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize envelope: %w", err)
	}

	total := len(data) + len(partitionKey)
	if total > w.cfg.RecordSizeLimit {
		return nil, fmt.Errorf("%w: %d bytes > %d", ErrRecordTooLarge, total, w.cfg.RecordSizeLimit)
	}

	return &Record{
		Data:         data,
		PartitionKey: partitionKey,
		TotalBytes:   total,
		StatsPrefix:  w.cfg.StatsPrefix,
		Tags:         tags,
		Headers:      headers,
	}, nil
}

// QueueLength returns the number of items currently queued.
func (w *AsyncWorker) QueueLength() int {
	return w.queue.size()
}

// Start launches the dispatcher goroutine. It is a no-op while running.
func (w *AsyncWorker) Start() {
	w.lifecycleMu.Lock()
	defer w.lifecycleMu.Unlock()

	if w.running.Load() {
		return
	}

	done := make(chan struct{})
	w.doneMu.Lock()
	w.done = done
	w.doneMu.Unlock()

	w.running.Store(true)
	go w.run(done)

	w.logInfo(context.Background(), "Live events async worker started", map[string]interface{}{
		"topic":          w.cfg.Topic,
		"max_queue_size": w.cfg.MaxQueueSize,
	})
}

// Stop drains the queue and waits for the dispatcher to exit. Every record
// queued before Stop has been handed to the producer when it returns.
// Stop is a no-op when the worker was never started or is already stopped.
func (w *AsyncWorker) Stop() {
	w.lifecycleMu.Lock()
	defer w.lifecycleMu.Unlock()

	if w.Stopped() {
		return
	}

	ctx := context.Background()
	w.logInfo(ctx, "Draining live events queue", map[string]interface{}{
		"queue_length": w.queue.size(),
	})

	w.running.Store(false)
	// wakes a dispatcher blocked on an empty queue
	w.queue.pushStop()

	w.doneMu.Lock()
	done := w.done
	w.doneMu.Unlock()
	<-done
	w.queue.dropStops()

	w.logInfo(ctx, "Live events async worker stopped", nil)
}

// Stopped reports whether the dispatcher was never started or has exited.
func (w *AsyncWorker) Stopped() bool {
	w.doneMu.Lock()
	done := w.done
	w.doneMu.Unlock()

	if done == nil {
		return true
	}
	select {
	case <-done:
		return true
	default:
		return false
	}
}

// run is the dispatcher loop. It exits only once the running flag is off and
// the queue is empty, so a graceful stop never drops buffered records.
func (w *AsyncWorker) run(done chan struct{}) {
	defer close(done)

	for {
		if !w.running.Load() && w.queue.size() == 0 {
			return
		}

		first := w.queue.pop()
		w.dispatch(w.collectBatch(first))

		if w.onWorkUnitEnd != nil {
			w.onWorkUnitEnd()
		}
	}
}

// collectBatch grows a batch from the records available right now, without
// waiting for more. A record that would take the batch over the byte
// threshold goes back to the head of the queue for the next cycle.
func (w *AsyncWorker) collectBatch(first queueItem) []*Record {
	if first.stop {
		return nil
	}

	batch := []*Record{first.record}
	total := first.record.TotalBytes

	for total < w.cfg.BatchByteThreshold {
		item, ok := w.queue.tryPop()
		if !ok || item.stop {
			break
		}
		if total+item.record.TotalBytes > w.cfg.BatchByteThreshold {
			w.queue.pushFront(item)
			break
		}
		batch = append(batch, item.record)
		total += item.record.TotalBytes
	}

	return batch
}

// dispatch sends one batch and absorbs any failure, panics included.
func (w *AsyncWorker) dispatch(records []*Record) {
	if len(records) == 0 {
		return
	}

	ctx := context.Background()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			w.logError(ctx, "Exception making LiveEvents async call", err, map[string]interface{}{
				"frame": firstFrame(debug.Stack()),
			})
			w.processFailure(ctx, records, err)
		}
	}()

	if err := w.sendEvents(ctx, records); err != nil {
		w.logError(ctx, "Exception making LiveEvents async call", err, map[string]interface{}{
			"records": len(records),
		})
		w.processFailure(ctx, records, err)
		return
	}

	for _, rec := range records {
		w.increment(rec.StatsPrefix+".sends", rec.Tags)
	}
}

func (w *AsyncWorker) sendEvents(ctx context.Context, records []*Record) error {
	start := time.Now()
	defer func() {
		w.timing(PutRecordsTimer, time.Since(start), nil)
	}()

	for _, rec := range records {
		if err := w.producer.Produce(rec.Data, w.cfg.Topic, rec.PartitionKey, rec.Headers); err != nil {
			return fmt.Errorf("failed to produce record: %w", err)
		}
	}

	deliverCtx, cancel := context.WithTimeout(ctx, w.cfg.DeliveryTimeout)
	defer cancel()

	if err := w.producer.Deliver(deliverCtx); err != nil {
		return fmt.Errorf("failed to deliver records: %w", err)
	}
	return nil
}

func (w *AsyncWorker) processFailure(ctx context.Context, records []*Record, err error) {
	code := errorCode(err)
	for _, rec := range records {
		w.logError(ctx, "Error posting event", err, map[string]interface{}{
			"event":         rec.Tags["event"],
			"partition_key": rec.PartitionKey,
			"error_code":    code,
		})
		w.logDebug(ctx, "Failed event data", map[string]interface{}{
			"data": string(rec.Data),
		})

		tags := make(map[string]string, len(rec.Tags)+1)
		for k, v := range rec.Tags {
			tags[k] = v
		}
		tags["error_code"] = code
		w.increment(rec.StatsPrefix+".send_errors", tags)
	}
}

// firstFrame returns the first stack line below the runtime and this
// package's recovery frames.
func firstFrame(stack []byte) string {
	lines := strings.Split(string(stack), "\n")
	for i := 1; i+1 < len(lines); i += 2 {
		fn := strings.TrimSpace(lines[i])
		if strings.HasPrefix(fn, "runtime/debug.") || strings.HasPrefix(fn, "panic(") ||
			strings.Contains(fn, "liveevents.(*AsyncWorker).dispatch") {
			continue
		}
		return fn + " " + strings.TrimSpace(lines[i+1])
	}
	return ""
}

func (w *AsyncWorker) increment(name string, tags map[string]string) {
	if w.stats != nil {
		w.stats.Increment(name, tags)
	}
}

func (w *AsyncWorker) timing(name string, d time.Duration, tags map[string]string) {
	if w.stats != nil {
		w.stats.Timing(name, d, tags)
	}
}

func (w *AsyncWorker) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if w.logger != nil {
		w.logger.DebugWithContext(ctx, msg, nil, fields)
	}
}

func (w *AsyncWorker) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if w.logger != nil {
		w.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (w *AsyncWorker) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if w.logger != nil {
		w.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
