package kafka

import (
	"context"

	"github.com/aalemi-dev/live-events/observability"
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the Kafka producer.
//
// The module provides:
// 1. *KafkaClient (concrete type) for direct use
// 2. Client interface for dependency injection
// 3. Lifecycle management for graceful shutdown
//
// To feed the live events worker, expose the client as liveevents.Producer:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    fx.Provide(func(k *kafka.KafkaClient) liveevents.Producer { return k }),
//	    liveevents.FXModule,
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClientWithDI, // Provides *KafkaClient
		// Also provide the Client interface
		fx.Annotate(
			func(k *KafkaClient) Client { return k },
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Kafka client
type KafkaParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a new Kafka client using dependency injection.
// The optional logger and observer are attached when present.
func NewClientWithDI(params KafkaParams) (*KafkaClient, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		client.logger = params.Logger
	}
	if params.Observer != nil {
		client.observer = params.Observer
	}

	return client, nil
}

// KafkaLifecycleParams groups the dependencies needed for Kafka lifecycle management
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *KafkaClient
}

// RegisterKafkaLifecycle registers the Kafka client with the fx lifecycle system.
// On stop it flushes whatever is still buffered and closes the writer.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params.Client.logInfo(ctx, "Kafka producer started", map[string]interface{}{
				"brokers": params.Client.cfg.Brokers,
				"topic":   params.Client.cfg.Topic,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Client.logInfo(ctx, "Shutting down Kafka producer", nil)
			params.Client.GracefulShutdown()
			return nil
		},
	})
}

// GracefulShutdown delivers any buffered messages and closes the writer.
// It is safe to call more than once. Errors are logged, not returned, since
// they cannot be handled at this stage of shutdown.
func (k *KafkaClient) GracefulShutdown() {
	k.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), k.cfg.WriteTimeout)
		defer cancel()

		if k.Pending() > 0 {
			if err := k.Deliver(ctx); err != nil {
				k.logWarn(ctx, "Failed to flush Kafka buffer on shutdown", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		k.mu.Lock()
		k.closed = true
		k.mu.Unlock()

		k.logInfo(ctx, "Closing Kafka producer", nil)
		if err := k.writer.Close(); err != nil {
			k.logWarn(ctx, "Failed to close Kafka writer", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})
}
