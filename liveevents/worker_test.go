package liveevents

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aalemi-dev/live-events/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*logger.LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.LoggerClient{Zap: zap.New(core)}, logs
}

func mustEnvelope(t *testing.T, name string, payload interface{}) Envelope {
	t.Helper()
	env, err := NewEnvelope(Event{Name: name, Payload: payload})
	require.NoError(t, err)
	return env
}

func TestNewAsyncWorker_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewAsyncWorker(Config{Topic: "t"}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewAsyncWorker(Config{}, &fakeProducer{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewAsyncWorker_Defaults(t *testing.T) {
	t.Parallel()

	w := newTestWorker(Config{}, &fakeProducer{})
	assert.Equal(t, DefaultMaxQueueSize, w.cfg.MaxQueueSize)
	assert.Equal(t, DefaultRecordSizeLimit, w.cfg.RecordSizeLimit)
	assert.Equal(t, DefaultBatchByteThreshold, w.cfg.BatchByteThreshold)
	assert.Equal(t, DefaultDeliveryTimeout, w.cfg.DeliveryTimeout)
	assert.Equal(t, DefaultStatsPrefix, w.cfg.StatsPrefix)
}

func TestAsyncWorker_DeliversInOrderBeforeStopReturns(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{}
	stats := &fakeStats{}
	w := newTestWorker(Config{Topic: "live-events"}, producer).WithStats(stats)

	const n = 200
	for i := 0; i < n; i++ {
		require.True(t, w.Push(mustEnvelope(t, "page_viewed", map[string]interface{}{"seq": i}), fmt.Sprint(i)))
	}

	w.Start()
	w.Stop()

	records := producer.all()
	require.Len(t, records, n)
	for i, r := range records {
		assert.Equal(t, "live-events", r.Topic)
		assert.Equal(t, fmt.Sprint(i), r.PartitionKey)
		assert.EqualValues(t, i, decodeBody(r.Value)["seq"])
	}
	assert.Equal(t, n, stats.count(DefaultStatsPrefix+".sends"))
	assert.Equal(t, 0, w.QueueLength())
	assert.True(t, w.Stopped())
}

func TestAsyncWorker_PushAssignsUUIDKey(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{}
	w := newTestWorker(Config{}, producer)
	require.True(t, w.Push(mustEnvelope(t, "e", nil), ""))

	w.Start()
	w.Stop()

	records := producer.all()
	require.Len(t, records, 1)
	assert.Len(t, records[0].PartitionKey, 36)
}

func TestAsyncWorker_RejectsOversizedRecord(t *testing.T) {
	t.Parallel()

	stats := &fakeStats{}
	log, logs := newObservedLogger()
	w := newTestWorker(Config{RecordSizeLimit: 100}, &fakeProducer{}).WithStats(stats).WithLogger(log)

	ok := w.Push(mustEnvelope(t, "big", strings.Repeat("x", 200)), "k")
	assert.False(t, ok)
	assert.Equal(t, 0, w.QueueLength())

	calls := stats.calls(DefaultStatsPrefix + ".queue_full_errors")
	require.Len(t, calls, 1)
	assert.Equal(t, "big", calls[0].Tags["event"])
	assert.Equal(t, "record_too_large", calls[0].Tags["reason"])
	assert.Equal(t, 1, logs.FilterMessage("Error queueing job for live event").Len())
}

func TestAsyncWorker_RejectsWhenQueueFull(t *testing.T) {
	t.Parallel()

	stats := &fakeStats{}
	w := newTestWorker(Config{MaxQueueSize: 3}, &fakeProducer{}).WithStats(stats)

	for i := 0; i < 3; i++ {
		require.True(t, w.Push(mustEnvelope(t, "e", i), "k"))
	}
	assert.False(t, w.Push(mustEnvelope(t, "e", 3), "k"))
	assert.Equal(t, 3, w.QueueLength())

	calls := stats.calls(DefaultStatsPrefix + ".queue_full_errors")
	require.Len(t, calls, 1)
	assert.Equal(t, "queue_full", calls[0].Tags["reason"])
}

func TestAsyncWorker_ConcurrentPushersRespectLimit(t *testing.T) {
	t.Parallel()

	w := newTestWorker(Config{MaxQueueSize: 500}, &fakeProducer{})
	env := mustEnvelope(t, "e", nil)

	var mu sync.Mutex
	accepted := 0
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if w.Push(env, "") {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 500, accepted)
	assert.Equal(t, 500, w.QueueLength())
}

func TestAsyncWorker_BatchesByByteThreshold(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{}
	w := newTestWorker(Config{}, producer)

	require.True(t, w.queue.tryPush(rawRecord("4M", 4_000_000), DefaultMaxQueueSize))
	require.True(t, w.queue.tryPush(rawRecord("2M", 2_000_000), DefaultMaxQueueSize))
	require.True(t, w.queue.tryPush(rawRecord("0.5M", 500_000), DefaultMaxQueueSize))

	w.Start()
	w.Stop()

	batches := producer.batches()
	require.Len(t, batches, 2)
	assert.Equal(t, []string{"4M"}, keysOf(batches[0]))
	assert.Equal(t, []string{"2M", "0.5M"}, keysOf(batches[1]))
}

func TestAsyncWorker_OversizedFirstRecordStillSent(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{}
	w := newTestWorker(Config{BatchByteThreshold: 10}, producer)

	require.True(t, w.queue.tryPush(rawRecord("huge", 50), DefaultMaxQueueSize))
	require.True(t, w.queue.tryPush(rawRecord("small", 5), DefaultMaxQueueSize))

	w.Start()
	w.Stop()

	batches := producer.batches()
	require.Len(t, batches, 2)
	assert.Equal(t, []string{"huge"}, keysOf(batches[0]))
	assert.Equal(t, []string{"small"}, keysOf(batches[1]))
}

func TestAsyncWorker_DeliveryFailureDropsBatchAndContinues(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{deliverErr: []error{&codedError{code: "leader_not_available"}}}
	stats := &fakeStats{}
	log, logs := newObservedLogger()

	units := make(chan struct{}, 16)
	w := newTestWorker(Config{}, producer).
		WithStats(stats).
		WithLogger(log).
		WithOnWorkUnitEnd(func() { units <- struct{}{} })

	w.Start()
	defer w.Stop()

	require.True(t, w.Push(mustEnvelope(t, "lost", nil), "a"))
	waitForUnit(t, units)

	require.True(t, w.Push(mustEnvelope(t, "kept", nil), "b"))
	waitForUnit(t, units)

	records := producer.all()
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].PartitionKey)

	errs := stats.calls(DefaultStatsPrefix + ".send_errors")
	require.Len(t, errs, 1)
	assert.Equal(t, "lost", errs[0].Tags["event"])
	assert.Equal(t, "leader_not_available", errs[0].Tags["error_code"])
	assert.Equal(t, 1, stats.count(DefaultStatsPrefix+".sends"))

	assert.Equal(t, 1, logs.FilterMessage("Exception making LiveEvents async call").Len())
	assert.Equal(t, 1, logs.FilterMessage("Error posting event").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed event data").Len())
}

func TestAsyncWorker_RecoversFromProducerPanic(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{panicOn: "boom"}
	stats := &fakeStats{}
	log, logs := newObservedLogger()
	w := newTestWorker(Config{}, producer).WithStats(stats).WithLogger(log)

	require.True(t, w.Push(mustEnvelope(t, "e", nil), "boom"))
	w.Start()
	w.Stop()

	require.True(t, w.Push(mustEnvelope(t, "e", nil), "fine"))
	w.Start()
	w.Stop()

	records := producer.all()
	require.Len(t, records, 1)
	assert.Equal(t, "fine", records[0].PartitionKey)

	errs := stats.calls(DefaultStatsPrefix + ".send_errors")
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown", errs[0].Tags["error_code"])

	entries := logs.FilterMessage("Exception making LiveEvents async call").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "producer exploded")
}

func TestAsyncWorker_ReportsPutRecordsTiming(t *testing.T) {
	t.Parallel()

	stats := &fakeStats{}
	w := newTestWorker(Config{}, &fakeProducer{}).WithStats(stats)
	require.True(t, w.Push(mustEnvelope(t, "e", nil), "k"))

	w.Start()
	w.Stop()

	assert.Equal(t, []string{PutRecordsTimer}, stats.timings)
}

func TestAsyncWorker_Lifecycle(t *testing.T) {
	t.Parallel()

	w := newTestWorker(Config{}, &fakeProducer{})
	assert.True(t, w.Stopped())

	// Stop before Start returns immediately.
	w.Stop()
	assert.True(t, w.Stopped())

	w.Start()
	w.Start()
	assert.False(t, w.Stopped())

	w.Stop()
	assert.True(t, w.Stopped())
	w.Stop()

	w.Start()
	assert.False(t, w.Stopped())
	w.Stop()
	assert.True(t, w.Stopped())
	assert.Equal(t, 0, w.QueueLength())
}

func TestAsyncWorker_PushWhileStoppedIsKeptForNextStart(t *testing.T) {
	t.Parallel()

	producer := &fakeProducer{}
	w := newTestWorker(Config{}, producer)

	w.Start()
	w.Stop()

	require.True(t, w.Push(mustEnvelope(t, "late", nil), "k"))
	assert.Equal(t, 1, w.QueueLength())
	assert.Empty(t, producer.all())

	w.Start()
	w.Stop()
	assert.Len(t, producer.all(), 1)
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("failed to deliver records: %w", &codedError{code: "timeout"})
	assert.Equal(t, "timeout", errorCode(wrapped))
	assert.Equal(t, "unknown", errorCode(errors.New("plain")))
}

func waitForUnit(t *testing.T, units <-chan struct{}) {
	t.Helper()
	select {
	case <-units:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatcher did not finish a work unit")
	}
}
