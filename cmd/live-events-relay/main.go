// Command live-events-relay accepts live events over HTTP and publishes them
// to Kafka or Redis through the asynchronous live events worker.
//
// Configuration comes from the environment; see the envconfig tags of each
// package config. The minimal Kafka setup is
//
//	KAFKA_BROKERS=localhost:9092 LIVE_EVENTS_TOPIC=live-events live-events-relay
package main

import (
	"log"

	"github.com/aalemi-dev/live-events/httpserver"
	"github.com/aalemi-dev/live-events/kafka"
	"github.com/aalemi-dev/live-events/liveevents"
	"github.com/aalemi-dev/live-events/logger"
	"github.com/aalemi-dev/live-events/metrics"
	"github.com/aalemi-dev/live-events/redis"
	"github.com/aalemi-dev/live-events/tracer"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	app := fx.New(append(options(cfg),
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),
	)...)
	app.Run()
}

// options assembles the application. Module order matters for shutdown:
// fx stops in reverse, so the HTTP relay stops taking events first, then the
// worker drains its queue, then the producer flushes and closes.
func options(cfg config) []fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg.Logger, cfg.Metrics, cfg.Tracer, cfg.LiveEvents, cfg.HTTP),

		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,

		fx.Provide(
			func(l *logger.LoggerClient) liveevents.Logger { return l },
			func(l *logger.LoggerClient) httpserver.Logger { return l },
			func(t *tracer.TracerClient) liveevents.CarrierSource { return t },
			func(c *liveevents.Client) httpserver.Readiness { return c },
		),
	}

	switch cfg.Broker {
	case brokerRedis:
		opts = append(opts,
			fx.Supply(cfg.Redis),
			fx.Provide(
				func(l *logger.LoggerClient) redis.Logger { return l },
				func(p *redis.Producer) liveevents.Producer { return p },
			),
			redis.FXModule,
		)
	default:
		opts = append(opts,
			fx.Supply(cfg.Kafka),
			fx.Provide(
				func(l *logger.LoggerClient) kafka.Logger { return l },
				func(k *kafka.KafkaClient) liveevents.Producer { return k },
			),
			kafka.FXModule,
		)
	}

	return append(opts,
		liveevents.FXModule,
		httpserver.FXModule,
		fx.Invoke(registerQueueGauge),
	)
}

// registerQueueGauge exposes the dispatch queue length on the application
// metrics endpoint.
func registerQueueGauge(m *metrics.Metrics, w *liveevents.AsyncWorker) {
	m.CreateGaugeFunc("live_events_queue_length", "Records waiting for dispatch", func() float64 {
		return float64(w.QueueLength())
	})
}
