package redis

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aalemi-dev/live-events/observability"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func newTestProducer(t *testing.T, cfg Config) (*Producer, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cfg.Addr = mr.Addr()
	if cfg.Topic == "" {
		cfg.Topic = "live-events"
	}
	p, err := NewProducer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, mr
}

func decodeFrames(t *testing.T, raw []string) []Frame {
	t.Helper()
	frames := make([]Frame, 0, len(raw))
	for _, r := range raw {
		var f Frame
		require.NoError(t, msgpack.Unmarshal([]byte(r), &f))
		frames = append(frames, f)
	}
	return frames
}

func TestNewProducer_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewProducer(Config{Topic: "t"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewProducer(Config{Addr: "localhost:6379"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewProducer(Config{URL: "not a url://", Topic: "t"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewProducer_FromURL(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	p, err := NewProducer(Config{URL: "redis://" + mr.Addr() + "/0", Topic: "live-events"})
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	require.NoError(t, p.Ping(context.Background()))
}

func TestProducer_ProduceDeliver(t *testing.T) {
	t.Parallel()

	p, mr := newTestProducer(t, Config{})
	ctx := context.Background()

	require.NoError(t, p.Produce([]byte(`{"n":1}`), "", "user-1", map[string]string{"traceparent": "tp"}))
	require.NoError(t, p.Produce([]byte(`{"n":2}`), "", "user-2", nil))
	require.NoError(t, p.Produce([]byte(`{"n":3}`), "other", "user-3", nil))
	assert.Equal(t, 3, p.Pending())
	assert.False(t, mr.Exists("live_events:live-events"))

	require.NoError(t, p.Deliver(ctx))
	assert.Equal(t, 0, p.Pending())

	raw, err := mr.List("live_events:live-events")
	require.NoError(t, err)
	frames := decodeFrames(t, raw)
	require.Len(t, frames, 2)
	assert.Equal(t, "user-1", frames[0].Key)
	assert.Equal(t, []byte(`{"n":1}`), frames[0].Value)
	assert.Equal(t, "tp", frames[0].Headers["traceparent"])
	assert.NotZero(t, frames[0].ProducedAtMs)
	assert.Equal(t, "user-2", frames[1].Key)

	other, err := mr.List("live_events:other")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestProducer_TrimsToMaxListLength(t *testing.T) {
	t.Parallel()

	p, mr := newTestProducer(t, Config{MaxListLength: 2, KeyPrefix: "le:"})
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, p.Produce([]byte(key), "", key, nil))
	}
	require.NoError(t, p.Deliver(ctx))

	frames := decodeFrames(t, mustList(t, mr, "le:live-events"))
	require.Len(t, frames, 2)
	assert.Equal(t, "b", frames[0].Key)
	assert.Equal(t, "c", frames[1].Key)
}

func TestProducer_DeliverErrorIsCoded(t *testing.T) {
	t.Parallel()

	p, mr := newTestProducer(t, Config{})
	require.NoError(t, mr.Set("live_events:live-events", "not a list"))

	require.NoError(t, p.Produce([]byte("x"), "", "k", nil))
	err := p.Deliver(context.Background())

	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "wrong_type", de.ErrorCode())
	assert.Equal(t, 0, p.Pending())
}

func TestProducer_ServerDown(t *testing.T) {
	t.Parallel()

	p, mr := newTestProducer(t, Config{})
	mr.Close()

	assert.ErrorIs(t, p.Ping(context.Background()), ErrConnectionFailed)

	require.NoError(t, p.Produce([]byte("x"), "", "k", nil))
	var de *DeliveryError
	require.True(t, errors.As(p.Deliver(context.Background()), &de))
	assert.NotEmpty(t, de.Code)
}

func TestProducer_ProduceAfterClose(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	p := NewProducerWithClient(Config{Topic: "live-events"}, goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	require.NoError(t, p.Close())

	assert.ErrorIs(t, p.Produce([]byte("x"), "", "k", nil), ErrProducerClosed)
	assert.NoError(t, p.Deliver(context.Background()))
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(op observability.OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func TestProducer_Observer(t *testing.T) {
	t.Parallel()

	p, _ := newTestProducer(t, Config{})
	obs := &recordingObserver{}
	p.WithObserver(obs)

	require.NoError(t, p.Produce([]byte("12345"), "", "user-1", nil))
	require.NoError(t, p.Deliver(context.Background()))

	require.Len(t, obs.ops, 2)
	assert.Equal(t, "produce", obs.ops[0].Operation)
	assert.Equal(t, "redis", obs.ops[0].Component)
	assert.Equal(t, "live-events", obs.ops[0].Resource)
	assert.Equal(t, "user-1", obs.ops[0].SubResource)
	assert.Equal(t, int64(5), obs.ops[0].Size)

	assert.Equal(t, "deliver", obs.ops[1].Operation)
	assert.Equal(t, int64(5), obs.ops[1].Size)
	assert.NoError(t, obs.ops[1].Error)
}

func TestFXModule(t *testing.T) {
	mr := miniredis.RunT(t)

	var producer *Producer
	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config { return Config{Addr: mr.Addr(), Topic: "live-events"} }),
		fx.Populate(&producer),
	)
	app.RequireStart()

	require.NoError(t, producer.Produce([]byte("x"), "", "k", nil))
	require.NoError(t, producer.Deliver(context.Background()))
	assert.Len(t, mustList(t, mr, "live_events:live-events"), 1)

	app.RequireStop()
}

func mustList(t *testing.T, mr *miniredis.Miniredis, key string) []string {
	t.Helper()
	list, err := mr.List(key)
	require.NoError(t, err)
	return list
}
