package logger_test

import (
	"context"
	"errors"

	"github.com/aalemi-dev/live-events/logger"
)

func ExampleNewLoggerClient() {
	log := logger.NewLoggerClient(logger.Config{
		Level:       logger.Info,
		ServiceName: "live-events",
	})

	log.Info("relay started", nil, map[string]interface{}{
		"topic": "live-events",
	})
}

func ExampleLoggerClient_ErrorWithContext() {
	log := logger.NewLoggerClient(logger.Config{
		Level:         logger.Info,
		ServiceName:   "live-events",
		EnableTracing: true,
	})

	log.ErrorWithContext(context.Background(), "Error posting event", errors.New("request timed out"), map[string]interface{}{
		"error_code": "request_timed_out",
	})
}

// A relay wrapper around LoggerClient reports its own caller with CallerSkip 2.
func Example_callerSkip() {
	log := logger.NewLoggerClient(logger.Config{
		Level:      logger.Debug,
		CallerSkip: 2,
	})

	log.Debug("wrapped call", nil)
}
