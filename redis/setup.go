package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aalemi-dev/live-events/observability"
	goredis "github.com/go-redis/redis/v8"
)

// Frame is the msgpack document stored for each record.
type Frame struct {
	Key          string            `msgpack:"key"`
	Headers      map[string]string `msgpack:"headers,omitempty"`
	Value        []byte            `msgpack:"value"`
	ProducedAtMs int64             `msgpack:"produced_at_ms"`
}

type pendingFrame struct {
	listKey string
	data    []byte
	size    int
}

// Producer appends records to Redis lists, one list per topic.
// It implements liveevents.Producer: Produce buffers, Deliver pipelines the
// buffered RPUSH commands in a single round trip.
type Producer struct {
	cfg      Config
	client   goredis.UniversalClient
	logger   Logger
	observer observability.Observer

	mu      sync.Mutex
	pending []pendingFrame
	closed  bool
}

// NewProducer creates a Producer from the configuration. It does not
// contact the server; use Ping to check connectivity.
func NewProducer(cfg Config) (*Producer, error) {
	if cfg.URL == "" && cfg.Addr == "" {
		return nil, fmt.Errorf("%w: url or addr is required", ErrInvalidConfig)
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}

	var opts *goredis.Options
	if cfg.URL != "" {
		parsed, err := goredis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse redis URL: %v", ErrInvalidConfig, err)
		}
		opts = parsed
	} else {
		opts = &goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	opts.DialTimeout = cfg.DialTimeout

	return NewProducerWithClient(cfg, goredis.NewClient(opts)), nil
}

// NewProducerWithClient wraps an existing client, e.g. a cluster client.
func NewProducerWithClient(cfg Config, client goredis.UniversalClient) *Producer {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	return &Producer{cfg: cfg, client: client}
}

// WithLogger attaches a logger and returns the producer for chaining.
func (p *Producer) WithLogger(logger Logger) *Producer {
	p.logger = logger
	return p
}

// WithObserver attaches an observer notified of every deliver call.
func (p *Producer) WithObserver(observer observability.Observer) *Producer {
	p.observer = observer
	return p
}

// ListKey returns the Redis key records for topic are appended to.
func (p *Producer) ListKey(topic string) string {
	if topic == "" {
		topic = p.cfg.Topic
	}
	return p.cfg.KeyPrefix + topic
}

// Ping checks that the server is reachable.
func (p *Producer) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	return nil
}

// Close releases the connection pool. Buffered records are not delivered.
func (p *Producer) Close() error {
	p.mu.Lock()
	p.closed = true
	dropped := len(p.pending)
	p.pending = nil
	p.mu.Unlock()

	if dropped > 0 && p.logger != nil {
		p.logger.WarnWithContext(context.Background(), "Dropping undelivered Redis records on close", nil, map[string]interface{}{
			"records": dropped,
		})
	}
	return p.client.Close()
}

func (p *Producer) observe(operation, topic, partitionKey string, start time.Time, err error, size int64) {
	if p.observer != nil {
		p.observer.ObserveOperation(observability.OperationContext{
			Component:   "redis",
			Operation:   operation,
			Resource:    topic,
			SubResource: partitionKey,
			Duration:    time.Since(start),
			Error:       err,
			Size:        size,
		})
	}
}
