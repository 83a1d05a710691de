// Package logger provides the zap-backed structured logger of the relay.
//
// Entries are JSON on stderr with ISO8601 timestamps, capital level names,
// the caller, and pid/service fields. Every method takes an optional error and
// field maps:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "live-events"})
//	log.Warn("Error queueing job for live event", liveevents.ErrQueueFull, map[string]interface{}{
//		"event": "page_view",
//	})
//
// With Config.EnableTracing the WithContext methods add trace_id and span_id
// from the recording OpenTelemetry span in the context.
//
// Packages that log declare their own narrow Logger interface
// (InfoWithContext, WarnWithContext, ...) which *LoggerClient satisfies, so
// they never import this package.
//
// FXModule provides *LoggerClient and Logger from an injected Config and
// syncs zap on stop.
package logger
