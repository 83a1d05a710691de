package liveevents

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 13, 0, 0, 123456789, time.FixedZone("CET", 3600))

	env, err := NewEnvelope(Event{
		Name:    "course_created",
		Payload: map[string]interface{}{"course_id": 42},
		Time:    at,
		Context: map[string]interface{}{
			"user_id":             7,
			"root_account_id":     "1",
			"compact_live_events": true,
			"event_name":          "overridden",
		},
	})
	require.NoError(t, err)

	attrs := env.Attributes()
	assert.Equal(t, "course_created", attrs["event_name"])
	assert.Equal(t, "2024-05-01T12:00:00.123Z", attrs["event_time"])
	assert.Equal(t, "1", attrs["root_account_id"])
	assert.NotContains(t, attrs, "compact_live_events")
	assert.Equal(t, "7", env.PartitionKey())
	assert.Equal(t, "course_created", env.EventName())
	assert.Equal(t, map[string]interface{}{"course_id": 42}, env.Body())
}

func TestNewEnvelope_MissingName(t *testing.T) {
	t.Parallel()

	_, err := NewEnvelope(Event{Payload: "x"})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestNewEnvelope_DefaultsTimeToNow(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC().Truncate(time.Millisecond)
	env, err := NewEnvelope(Event{Name: "ping"})
	require.NoError(t, err)

	parsed, err := time.Parse(EventTimeFormat, env.Attributes()["event_time"].(string))
	require.NoError(t, err)
	assert.False(t, parsed.Before(before))
	assert.WithinDuration(t, time.Now(), parsed, 5*time.Second)
}

func TestNewEnvelope_PartitionKey(t *testing.T) {
	t.Parallel()

	t.Run("explicit key wins", func(t *testing.T) {
		t.Parallel()
		env, err := NewEnvelope(Event{
			Name:         "e",
			PartitionKey: "account-1",
			Context:      map[string]interface{}{"user_id": 7},
		})
		require.NoError(t, err)
		assert.Equal(t, "account-1", env.PartitionKey())
	})

	t.Run("numeric user id", func(t *testing.T) {
		t.Parallel()
		env, err := NewEnvelope(Event{Name: "e", Context: map[string]interface{}{"user_id": float64(123)}})
		require.NoError(t, err)
		assert.Equal(t, "123", env.PartitionKey())
	})

	t.Run("string user id", func(t *testing.T) {
		t.Parallel()
		env, err := NewEnvelope(Event{Name: "e", Context: map[string]interface{}{"user_id": "u-9"}})
		require.NoError(t, err)
		assert.Equal(t, "u-9", env.PartitionKey())
	})

	fallbacks := map[string]map[string]interface{}{
		"no context":    nil,
		"nil user id":   {"user_id": nil},
		"empty user id": {"user_id": ""},
	}
	for name, ctx := range fallbacks {
		ctx := ctx
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for i := 0; i < 50; i++ {
				env, err := NewEnvelope(Event{Name: "e", Context: ctx})
				require.NoError(t, err)
				n, err := strconv.Atoi(env.PartitionKey())
				require.NoError(t, err)
				assert.GreaterOrEqual(t, n, 0)
				assert.Less(t, n, 1000)
			}
		})
	}
}

func TestNewEnvelope_DoesNotAliasContext(t *testing.T) {
	t.Parallel()

	ctx := map[string]interface{}{"user_id": 1}
	env, err := NewEnvelope(Event{Name: "e", Context: ctx})
	require.NoError(t, err)

	ctx["user_id"] = 2
	ctx["extra"] = true
	attrs := env.Attributes()
	assert.Equal(t, 1, attrs["user_id"])
	assert.NotContains(t, attrs, "extra")

	attrs["event_name"] = "mutated"
	assert.Equal(t, "e", env.EventName())
}

func TestEnvelope_MarshalJSON(t *testing.T) {
	t.Parallel()

	env, err := NewEnvelope(Event{
		Name:         "grade_changed",
		Payload:      map[string]interface{}{"score": 9.5},
		Time:         time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC),
		PartitionKey: "k",
	})
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"attributes": {"event_name": "grade_changed", "event_time": "2024-01-02T03:04:05.006Z"},
		"body": {"score": 9.5}
	}`, string(data))
	assert.NotContains(t, string(data), `"k"`)
}
