package httpserver

import (
	"context"

	"github.com/aalemi-dev/live-events/liveevents"
	"github.com/aalemi-dev/live-events/metrics"
	"github.com/aalemi-dev/live-events/tracer"
	"go.uber.org/fx"
)

// FXModule provides the relay *Server and serves it for the lifetime of the
// application. It needs a Config and a liveevents.Poster; logger, readiness,
// tracer and metrics are picked up when provided.
//
//	app := fx.New(
//	    kafka.FXModule,
//	    liveevents.FXModule,
//	    httpserver.FXModule,
//	    fx.Provide(func(c *liveevents.Client) httpserver.Readiness { return c }),
//	)
var FXModule = fx.Module("httpserver",
	fx.Provide(NewServerWithDI),
	fx.Invoke(RegisterHTTPServerLifecycle),
)

// HTTPServerParams groups the dependencies of the relay.
type HTTPServerParams struct {
	fx.In

	Config    Config
	Poster    liveevents.Poster
	Logger    Logger                   `optional:"true"`
	Readiness Readiness                `optional:"true"`
	Tracer    tracer.Tracer            `optional:"true"`
	Metrics   metrics.MetricsCollector `optional:"true"`
}

// NewServerWithDI builds the relay from injected dependencies.
func NewServerWithDI(params HTTPServerParams) (*Server, error) {
	s, err := NewServer(params.Config, params.Poster)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		s.WithLogger(params.Logger)
	}
	if params.Readiness != nil {
		s.WithReadiness(params.Readiness)
	}
	if params.Tracer != nil {
		s.WithTracer(params.Tracer)
	}
	if params.Metrics != nil {
		s.WithMetrics(params.Metrics)
	}
	return s, nil
}

// RegisterHTTPServerLifecycle starts listening on start and drains
// in-flight requests on stop. Listed after liveevents.FXModule, the relay
// stops taking events before the worker drains its queue.
func RegisterHTTPServerLifecycle(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	})
}
