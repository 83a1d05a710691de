package redis

import (
	"context"

	"github.com/aalemi-dev/live-events/observability"
	"go.uber.org/fx"
)

// FXModule provides the Redis list producer and closes it on shutdown.
//
//	app := fx.New(
//	    redis.FXModule,
//	    fx.Provide(func(p *redis.Producer) liveevents.Producer { return p }),
//	    liveevents.FXModule,
//	)
var FXModule = fx.Module("redis",
	fx.Provide(NewProducerWithDI),
	fx.Invoke(RegisterRedisLifecycle),
)

// RedisParams groups the dependencies needed to create the producer.
type RedisParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewProducerWithDI creates the producer from injected dependencies.
func NewProducerWithDI(params RedisParams) (*Producer, error) {
	p, err := NewProducer(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		p.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		p.WithObserver(params.Observer)
	}
	return p, nil
}

// RegisterRedisLifecycle pings the server on start and closes the pool on stop.
func RegisterRedisLifecycle(lc fx.Lifecycle, p *Producer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Ping(ctx); err != nil {
				return err
			}
			if p.logger != nil {
				p.logger.InfoWithContext(ctx, "Redis producer connected", nil, map[string]interface{}{
					"list": p.ListKey(""),
				})
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return p.Close()
		},
	})
}
