package observability

import "time"

// Observer receives a report after every broker operation. Implementations
// must be safe for concurrent use and must not block; they are called on the
// dispatch path.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one finished operation.
type OperationContext struct {
	// Component names the adapter: "kafka" or "redis".
	Component string

	// Operation is "produce" for a buffered record or "deliver" for a
	// flushed batch.
	Operation string

	// Resource is the topic.
	Resource string

	// SubResource is the partition key for produce, empty for deliver.
	SubResource string

	Duration time.Duration

	// Error is nil on success.
	Error error

	// Size is the payload size in bytes: one record for produce, the whole
	// batch for deliver.
	Size int64

	// Metadata holds adapter specific extras. May be nil.
	Metadata map[string]interface{}
}
