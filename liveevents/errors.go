package liveevents

import "errors"

var (
	// ErrInvalidEvent is returned when an event has no name.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrQueueFull is returned when the in-memory queue already holds
	// MaxQueueSize records.
	ErrQueueFull = errors.New("live events queue is full")

	// ErrRecordTooLarge is returned when a serialized record exceeds
	// RecordSizeLimit.
	ErrRecordTooLarge = errors.New("record exceeds size limit")

	// ErrInvalidConfig is returned when the worker cannot be built from the
	// given configuration.
	ErrInvalidConfig = errors.New("invalid config")
)

// rejectReason maps a push error to the "reason" tag of the
// queue_full_errors counter.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrQueueFull):
		return "queue_full"
	case errors.Is(err, ErrRecordTooLarge):
		return "record_too_large"
	default:
		return "serialization"
	}
}

// errorCode extracts a short code from a delivery error for the
// send_errors counter. Producers attach one by returning an error with a
// ErrorCode() string method somewhere in its chain.
func errorCode(err error) string {
	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) {
		if code := coded.ErrorCode(); code != "" {
			return code
		}
	}
	return "unknown"
}
