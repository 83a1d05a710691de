package liveevents

import "sync"

// Record is an accepted, serialized event waiting for delivery.
// It is never mutated after it is queued.
type Record struct {
	Data         []byte
	PartitionKey string
	TotalBytes   int
	StatsPrefix  string
	Tags         map[string]string
	Headers      map[string]string
}

// queueItem is either a record or the stop marker posted by Stop.
type queueItem struct {
	record *Record
	stop   bool
}

// recordQueue is a FIFO shared by many producers and a single consumer.
//
// tryPush checks the length and appends under the same lock, so the
// configured maximum holds under any number of concurrent pushers.
// pop blocks on a condition variable while the queue is empty.
type recordQueue struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	items    []queueItem
}

func newRecordQueue() *recordQueue {
	q := &recordQueue{}
	q.nonEmpty = sync.NewCond(&q.mu)
	return q
}

// tryPush appends rec unless the queue already holds limit items.
func (q *recordQueue) tryPush(rec *Record, limit int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) >= limit {
		return false
	}
	q.items = append(q.items, queueItem{record: rec})
	q.nonEmpty.Signal()
	return true
}

// pushStop appends the stop marker regardless of the length limit.
func (q *recordQueue) pushStop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, queueItem{stop: true})
	q.nonEmpty.Signal()
}

// pushFront returns an item to the head of the queue, ahead of everything
// that arrived after it.
func (q *recordQueue) pushFront(item queueItem) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, queueItem{})
	copy(q.items[1:], q.items)
	q.items[0] = item
	q.nonEmpty.Signal()
}

// pop removes the oldest item, waiting while the queue is empty.
func (q *recordQueue) pop() queueItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		q.nonEmpty.Wait()
	}
	return q.shift()
}

// tryPop removes the oldest item if there is one.
func (q *recordQueue) tryPop() (queueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return queueItem{}, false
	}
	return q.shift(), true
}

func (q *recordQueue) shift() queueItem {
	item := q.items[0]
	q.items[0] = queueItem{}
	q.items = q.items[1:]
	return item
}

func (q *recordQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// dropStops removes stop markers left behind when the dispatcher exited
// before reaching them.
func (q *recordQueue) dropStops() {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	for _, item := range q.items {
		if !item.stop {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = queueItem{}
	}
	q.items = kept
}
