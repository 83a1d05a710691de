// Package httpserver is the HTTP front door of the live events relay.
//
// Services that cannot link the liveevents client post events over HTTP:
//
//	POST /v1/events
//	{"event_name": "page_view", "payload": {...}, "context": {"user_id": 42}}
//
// The body is turned into a liveevents.Event and handed to the Poster, which
// only queues it. The response reflects the queueing outcome, never the
// broker delivery:
//
//	202  queued
//	400  malformed JSON, missing event_name or a bad time
//	401  API keys are configured and X-API-Key does not match
//	413  body over MaxBodyBytes or record over the worker size limit
//	503  dispatch queue full
//
// GET /health always answers 200; GET /ready answers 503 once the worker is
// stopped. Every response carries X-Request-ID. With a tracer attached each
// request gets a span whose context ends up in the record headers.
package httpserver
