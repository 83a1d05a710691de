package httpserver

import (
	"errors"
	"net/http"

	"github.com/aalemi-dev/live-events/liveevents"
)

var (
	// ErrInvalidConfig is returned by NewServer when no poster is given.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrServerStarted is returned by Start on a running server.
	ErrServerStarted = errors.New("server already started")
)

// statusFor maps a PostEvent error to the response status and the short
// error string put in the body.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, liveevents.ErrInvalidEvent):
		return http.StatusBadRequest, "invalid_event"
	case errors.Is(err, liveevents.ErrRecordTooLarge):
		return http.StatusRequestEntityTooLarge, "record_too_large"
	case errors.Is(err, liveevents.ErrQueueFull):
		return http.StatusServiceUnavailable, "queue_full"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
