package main

import (
	"fmt"
	"strings"

	"github.com/aalemi-dev/live-events/httpserver"
	"github.com/aalemi-dev/live-events/kafka"
	"github.com/aalemi-dev/live-events/liveevents"
	"github.com/aalemi-dev/live-events/logger"
	"github.com/aalemi-dev/live-events/metrics"
	"github.com/aalemi-dev/live-events/redis"
	"github.com/aalemi-dev/live-events/tracer"
	"github.com/kelseyhightower/envconfig"
)

const (
	brokerKafka = "kafka"
	brokerRedis = "redis"
)

// config is everything the relay reads from the environment. Each package
// config carries its own envconfig tags, so they are processed one by one
// with no prefix.
type config struct {
	Broker     string
	Logger     logger.Config
	Metrics    metrics.Config
	Tracer     tracer.Config
	LiveEvents liveevents.Config
	HTTP       httpserver.Config
	Kafka      kafka.Config
	Redis      redis.Config
}

type relayConfig struct {
	// Broker selects the producer adapter: kafka or redis.
	Broker string `envconfig:"RELAY_BROKER" default:"kafka"`
}

func loadConfig() (config, error) {
	var relay relayConfig
	var cfg config

	targets := []interface{}{
		&relay, &cfg.Logger, &cfg.Metrics, &cfg.Tracer,
		&cfg.LiveEvents, &cfg.HTTP, &cfg.Kafka, &cfg.Redis,
	}
	for _, target := range targets {
		if err := envconfig.Process("", target); err != nil {
			return config{}, fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	cfg.Broker = strings.ToLower(strings.TrimSpace(relay.Broker))

	switch cfg.Broker {
	case brokerKafka:
		cfg.LiveEvents.Topic = firstNonEmpty(cfg.LiveEvents.Topic, cfg.Kafka.Topic)
		cfg.Kafka.Topic = firstNonEmpty(cfg.Kafka.Topic, cfg.LiveEvents.Topic)
		if cfg.Kafka.MaxAttempts == 0 {
			cfg.Kafka.MaxAttempts = liveevents.RetryLimit
		}
	case brokerRedis:
		cfg.LiveEvents.Topic = firstNonEmpty(cfg.LiveEvents.Topic, cfg.Redis.Topic)
		cfg.Redis.Topic = firstNonEmpty(cfg.Redis.Topic, cfg.LiveEvents.Topic)
	default:
		return config{}, fmt.Errorf("unsupported RELAY_BROKER %q, want %s or %s", relay.Broker, brokerKafka, brokerRedis)
	}

	if cfg.LiveEvents.Topic == "" {
		return config{}, fmt.Errorf("LIVE_EVENTS_TOPIC is required")
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
