// Package kafka provides a buffering Kafka producer used as the broker
// adapter of the live events pipeline.
//
// The client separates buffering from delivery. Produce appends a message
// to an in-memory buffer and returns immediately; Deliver writes the whole
// buffer with a single WriteMessages call and blocks until the brokers
// acknowledge it (or the context expires). The live events dispatcher calls
// Produce once per record and Deliver once per batch.
//
// Core Features:
//   - Per-message topic, key and headers
//   - CRC32 key balancing, so records with the same partition key land on
//     the same partition
//   - Configurable acks, compression, batching and async mode
//   - TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512)
//   - Error translation to package sentinels and *DeliveryError codes
//   - Optional observability.Observer notifications for produce and deliver
//   - fx module with graceful shutdown
//
// # Direct Usage
//
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "live-events",
//	})
//	if err != nil {
//		return err
//	}
//	defer client.GracefulShutdown()
//
//	_ = client.Produce([]byte(`{"attributes":{},"body":{}}`), "", "user-1", nil)
//	if err := client.Deliver(ctx); err != nil {
//		var de *kafka.DeliveryError
//		if errors.As(err, &de) {
//			log.Printf("delivery failed with code %s", de.Code)
//		}
//	}
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		kafka.FXModule,
//		fx.Provide(func() kafka.Config { return cfg }),
//	)
//
// # Error Handling
//
// Deliver failures come back as *DeliveryError. Its Code is derived from the
// translated sentinel ("leader_not_available", "request_timed_out", ...) or
// "unknown", and errors.Is matches the sentinel:
//
//	if errors.Is(err, kafka.ErrLeaderNotAvailable) {
//		// transient, the next batch will likely succeed
//	}
//
// # Async Mode
//
// With Config.Async set the writer does not wait for the brokers; Deliver
// returns once the messages are queued in kafka-go. Broker failures are then
// only logged through the attached Logger.
package kafka
