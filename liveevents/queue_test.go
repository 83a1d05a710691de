package liveevents

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQueue_FIFOAndPushFront(t *testing.T) {
	t.Parallel()

	q := newRecordQueue()
	require.True(t, q.tryPush(rawRecord("a", 1), 10))
	require.True(t, q.tryPush(rawRecord("b", 1), 10))

	first, ok := q.tryPop()
	require.True(t, ok)
	assert.Equal(t, "a", first.record.PartitionKey)

	q.pushFront(first)
	assert.Equal(t, 2, q.size())

	assert.Equal(t, "a", q.pop().record.PartitionKey)
	assert.Equal(t, "b", q.pop().record.PartitionKey)

	_, ok = q.tryPop()
	assert.False(t, ok)
}

func TestRecordQueue_LimitHoldsUnderContention(t *testing.T) {
	t.Parallel()

	const limit = 100
	q := newRecordQueue()

	var accepted atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if q.tryPush(rawRecord("k", 1), limit) {
					accepted.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(limit), accepted.Load())
	assert.Equal(t, limit, q.size())
}

func TestRecordQueue_PopBlocksUntilPush(t *testing.T) {
	t.Parallel()

	q := newRecordQueue()
	got := make(chan queueItem, 1)
	go func() { got <- q.pop() }()

	select {
	case <-got:
		t.Fatal("pop returned on an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	q.pushStop()
	select {
	case item := <-got:
		assert.True(t, item.stop)
	case <-time.After(time.Second):
		t.Fatal("pop did not wake up")
	}
}

func TestRecordQueue_StopIgnoresLimit(t *testing.T) {
	t.Parallel()

	q := newRecordQueue()
	require.True(t, q.tryPush(rawRecord("a", 1), 1))
	assert.False(t, q.tryPush(rawRecord("b", 1), 1))

	q.pushStop()
	assert.Equal(t, 2, q.size())

	q.dropStops()
	assert.Equal(t, 1, q.size())
	assert.Equal(t, "a", q.pop().record.PartitionKey)
}
