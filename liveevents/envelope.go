package liveevents

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// EventTimeFormat is ISO-8601 with millisecond precision. Times are
// converted to UTC before formatting, so the zone renders as "Z".
const EventTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// attributeDenylist holds context keys that control compaction upstream and
// must not travel with the event.
var attributeDenylist = map[string]struct{}{
	"compact_live_events": {},
}

// Event is a domain event as produced by request-handling code.
type Event struct {
	// Name identifies the event, e.g. "course_created". Required.
	Name string

	// Payload becomes the envelope body. Any JSON-serializable value.
	Payload interface{}

	// Time is when the event happened. Defaults to now.
	Time time.Time

	// Context carries request metadata (user_id, root_account_id, ...).
	// Merged into the envelope attributes.
	Context map[string]interface{}

	// PartitionKey overrides partition key resolution.
	PartitionKey string
}

// Envelope is the normalized, serializable form of an Event.
// It is immutable once built; accessors return copies.
type Envelope struct {
	attributes   map[string]interface{}
	body         interface{}
	partitionKey string
}

type envelopeJSON struct {
	Attributes map[string]interface{} `json:"attributes"`
	Body       interface{}            `json:"body"`
}

// NewEnvelope builds an Envelope from an Event.
//
// Denylisted context keys are dropped, the remaining context is copied into
// the attributes and event_name/event_time are set on top. The partition key
// is the explicit one, else the stringified context user_id, else a random
// number in [0,1000).
func NewEnvelope(ev Event) (Envelope, error) {
	if ev.Name == "" {
		return Envelope{}, fmt.Errorf("%w: event name is required", ErrInvalidEvent)
	}

	at := ev.Time
	if at.IsZero() {
		at = time.Now()
	}

	attrs := make(map[string]interface{}, len(ev.Context)+2)
	for k, v := range ev.Context {
		if _, denied := attributeDenylist[k]; denied {
			continue
		}
		attrs[k] = v
	}
	attrs["event_name"] = ev.Name
	attrs["event_time"] = at.UTC().Format(EventTimeFormat)

	return Envelope{
		attributes:   attrs,
		body:         ev.Payload,
		partitionKey: resolvePartitionKey(ev.PartitionKey, ev.Context),
	}, nil
}

func resolvePartitionKey(explicit string, ctx map[string]interface{}) string {
	if explicit != "" {
		return explicit
	}
	if userID, ok := ctx["user_id"]; ok && userID != nil {
		if key := stringify(userID); key != "" {
			return key
		}
	}
	return strconv.Itoa(rand.IntN(1000))
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// Attributes returns a copy of the envelope attributes.
func (e Envelope) Attributes() map[string]interface{} {
	out := make(map[string]interface{}, len(e.attributes))
	for k, v := range e.attributes {
		out[k] = v
	}
	return out
}

// Body returns the event payload.
func (e Envelope) Body() interface{} {
	return e.body
}

// PartitionKey returns the key resolved when the envelope was built.
func (e Envelope) PartitionKey() string {
	return e.partitionKey
}

// EventName returns attributes.event_name, or "" when missing.
func (e Envelope) EventName() string {
	name, _ := e.attributes["event_name"].(string)
	return name
}

// MarshalJSON renders {"attributes": {...}, "body": ...}.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelopeJSON{Attributes: e.attributes, Body: e.body})
}
