// Package redis provides a Redis list producer for the live events pipeline.
//
// Each record becomes a msgpack-encoded Frame appended with RPUSH to the list
// KeyPrefix+topic. Consumers pop frames with LPOP/BLPOP and decode them with
// msgpack.Unmarshal into a Frame; Frame.Value holds the JSON envelope.
//
//	p, err := redis.NewProducer(redis.Config{Addr: "localhost:6379", Topic: "live-events"})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	_ = p.Produce(envelopeJSON, "", "user-1", nil)
//	err = p.Deliver(ctx) // one pipelined round trip
package redis
