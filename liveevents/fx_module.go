package liveevents

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the AsyncWorker, the Client and the Poster interface,
// and ties the dispatcher to the application lifecycle.
//
// List it after the module that provides the Producer (kafka.FXModule or
// redis.FXModule). fx runs OnStop hooks in reverse order, so the worker
// drains its queue before the producer is closed.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    kafka.FXModule,
//	    liveevents.FXModule,
//	    fx.Provide(func() liveevents.Config { return cfg }),
//	)
var FXModule = fx.Module("liveevents",
	fx.Provide(
		NewAsyncWorkerWithDI,
		NewClientWithDI,
		fx.Annotate(
			func(c *Client) Poster { return c },
			fx.As(new(Poster)),
		),
	),
	fx.Invoke(RegisterLiveEventsLifecycle),
)

// LiveEventsParams groups the dependencies needed to create the worker.
type LiveEventsParams struct {
	fx.In

	Config   Config
	Producer Producer
	Logger   Logger        `optional:"true"`
	Stats    Stats         `optional:"true"`
	Tracer   CarrierSource `optional:"true"`
}

// NewAsyncWorkerWithDI builds the worker from injected dependencies.
func NewAsyncWorkerWithDI(params LiveEventsParams) (*AsyncWorker, error) {
	worker, err := NewAsyncWorker(params.Config, params.Producer)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		worker.WithLogger(params.Logger)
	}
	if params.Stats != nil {
		worker.WithStats(params.Stats)
	}
	return worker, nil
}

// NewClientWithDI builds the Client on top of the injected worker.
func NewClientWithDI(worker *AsyncWorker, params LiveEventsParams) *Client {
	client := NewClient(worker)
	if params.Logger != nil {
		client.WithLogger(params.Logger)
	}
	if params.Tracer != nil {
		client.WithTracer(params.Tracer)
	}
	return client
}

// RegisterLiveEventsLifecycle starts the dispatcher with the application and
// drains it on shutdown.
func RegisterLiveEventsLifecycle(lc fx.Lifecycle, worker *AsyncWorker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			worker.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			worker.Stop()
			return nil
		},
	})
}
