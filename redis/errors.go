package redis

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidConfig is returned when neither URL nor Addr is set, or the
	// topic is missing.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrConnectionFailed is returned when the server cannot be reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrProducerClosed is returned when producing after Close.
	ErrProducerClosed = errors.New("producer closed")
)

// DeliveryError is returned by Deliver. Code classifies the failure for
// send_errors metrics.
type DeliveryError struct {
	Code string
	Err  error
}

func (e *DeliveryError) Error() string {
	return "redis delivery failed (" + e.Code + "): " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// ErrorCode returns the failure classification.
func (e *DeliveryError) ErrorCode() string { return e.Code }

func classify(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, ErrProducerClosed):
		return "producer_closed"
	case errors.Is(err, context.DeadlineExceeded), strings.Contains(msg, "timeout"):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "dial"):
		return "connection_failed"
	case strings.HasPrefix(msg, "oom"):
		return "out_of_memory"
	case strings.HasPrefix(msg, "wrongtype"):
		return "wrong_type"
	default:
		return "unknown"
	}
}
