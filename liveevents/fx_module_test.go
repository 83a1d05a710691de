package liveevents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestFXModule_DrainsOnStop(t *testing.T) {
	producer := &fakeProducer{}
	stats := &fakeStats{}

	var poster Poster
	var worker *AsyncWorker

	app := fxtest.New(t,
		FXModule,
		fx.Provide(
			func() Config { return Config{Topic: "live-events"} },
			fx.Annotate(func() *fakeProducer { return producer }, fx.As(new(Producer))),
			fx.Annotate(func() *fakeStats { return stats }, fx.As(new(Stats))),
		),
		fx.Populate(&poster, &worker),
	)

	app.RequireStart()
	assert.False(t, worker.Stopped())

	require.NoError(t, poster.PostEvent(context.Background(), Event{Name: "fx_event", PartitionKey: "k"}))

	app.RequireStop()
	assert.True(t, worker.Stopped())

	records := producer.all()
	require.Len(t, records, 1)
	assert.Equal(t, "k", records[0].PartitionKey)
	assert.Equal(t, 1, stats.count(DefaultStatsPrefix+".sends"))
}

func TestFXModule_InvalidConfig(t *testing.T) {
	app := fx.New(
		FXModule,
		fx.NopLogger,
		fx.Provide(
			func() Config { return Config{} },
			fx.Annotate(func() *fakeProducer { return &fakeProducer{} }, fx.As(new(Producer))),
		),
		fx.Invoke(func(*AsyncWorker) {}),
	)
	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "topic is required")
}
