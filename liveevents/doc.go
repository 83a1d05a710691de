// Package liveevents publishes domain events to a message broker off the
// request path.
//
// Request-handling code calls Client.PostEvent. The event is normalized into
// an Envelope ({"attributes": {...}, "body": ...}), serialized, and pushed onto
// a bounded in-memory queue. A single dispatcher goroutine drains the queue
// into size-bounded batches and hands them to a Producer (Kafka or Redis).
//
// # Limits
//
// Pushes never block. A push is rejected when the queue already holds
// Config.MaxQueueSize records or when the serialized record (envelope plus
// partition key) is larger than Config.RecordSizeLimit. Batches stay under
// Config.BatchByteThreshold except that a batch always takes its oldest
// record.
//
// # Delivery
//
// Delivery is at-most-once. A batch that fails to produce or deliver is
// logged, counted under <prefix>.send_errors and dropped; the dispatcher keeps
// going. Records are delivered in push order.
//
// # Lifecycle
//
//	worker, err := liveevents.NewAsyncWorker(cfg, producer)
//	if err != nil {
//	    return err
//	}
//	worker.WithLogger(log).WithStats(stats)
//	worker.Start()
//	defer worker.Stop() // drains everything queued so far
//
//	client := liveevents.NewClient(worker)
//	err = client.PostEvent(ctx, liveevents.Event{
//	    Name:    "course_created",
//	    Payload: map[string]interface{}{"course_id": 42},
//	    Context: map[string]interface{}{"user_id": 7},
//	})
//
// With fx, use FXModule; it starts the worker on application start and stops
// it on shutdown.
//
// # Metrics
//
// With a Stats sink attached the worker reports:
//
//	<prefix>.sends              per delivered record, tag event
//	<prefix>.send_errors        per dropped record, tags event, error_code
//	<prefix>.queue_full_errors  per rejected push, tags event, reason
//	live_events.put_records     timing of produce+deliver per batch
package liveevents
