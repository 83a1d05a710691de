package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/aalemi-dev/live-events/liveevents"
	"github.com/aalemi-dev/live-events/logger"
	"github.com/aalemi-dev/live-events/observability"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// FXModule provides *Metrics, MetricsCollector, the StatsSink (also as
// liveevents.Stats) and the OperationObserver (also as
// observability.Observer), and runs both metrics servers for the lifetime of
// the application.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config { return cfg }),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) MetricsCollector { return m },
			fx.As(new(MetricsCollector)),
		),
		NewStatsSink,
		fx.Annotate(
			func(s *StatsSink) liveevents.Stats { return s },
			fx.As(new(liveevents.Stats)),
		),
		NewOperationObserver,
		fx.Annotate(
			func(o *OperationObserver) observability.Observer { return o },
			fx.As(new(observability.Observer)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle serves the enabled endpoints in the background on
// start and shuts them down on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log logger.Logger) {
	servers := map[string]*http.Server{
		"system":      m.SystemServer,
		"application": m.ApplicationServer,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for name, srv := range servers {
				if srv == nil {
					continue
				}
				go func() {
					log.Info("Starting metrics server", nil, map[string]interface{}{
						"endpoint": name,
						"address":  srv.Addr,
					})
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("Metrics server failed", err, map[string]interface{}{"endpoint": name})
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var g errgroup.Group
			for name, srv := range servers {
				if srv == nil {
					continue
				}
				g.Go(func() error {
					log.Info("Shutting down metrics server", nil, map[string]interface{}{"endpoint": name})
					if err := srv.Shutdown(ctx); err != nil {
						log.Error("Error shutting down metrics server", err, map[string]interface{}{"endpoint": name})
						return err
					}
					return nil
				})
			}
			return g.Wait()
		},
	})
}
