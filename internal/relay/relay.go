package relay

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pinboard/internal/event"
	"pinboard/internal/observability"
)

const channelName = "pinboard:events"

// Relay mirrors broadcast events between instances over Redis pub/sub,
// so clients connected to one instance still see mutations served by
// another. Best effort, like the hub itself: a publish failure is
// logged and dropped.
type Relay struct {
	client     *redis.Client
	instanceID string
}

type envelope struct {
	Origin string          `json:"origin"`
	Event  json.RawMessage `json:"event"`
}

func New(client *redis.Client, instanceID string) *Relay {
	return &Relay{client: client, instanceID: instanceID}
}

// Publish implements event.Sink.
func (r *Relay) Publish(ctx context.Context, evt event.Event) {
	log := observability.GetLogger(ctx)

	payload, err := evt.Marshal()
	if err != nil {
		log.Error("relay: failed to encode event", zap.String("event", evt.Name), zap.Error(err))
		return
	}

	env, err := json.Marshal(envelope{Origin: r.instanceID, Event: payload})
	if err != nil {
		log.Error("relay: failed to encode envelope", zap.Error(err))
		return
	}

	if err := r.client.Publish(ctx, channelName, env).Err(); err != nil {
		log.Error("relay: publish failed", zap.String("event", evt.Name), zap.Error(err))
	}
}

// Subscribe forwards events published by other instances to handler.
// Events originating from this instance are skipped; the local hub
// already delivered them.
func (r *Relay) Subscribe(ctx context.Context, handler func(payload []byte)) {
	pubsub := r.client.Subscribe(ctx, channelName)

	go func() {
		log := observability.GetLogger(ctx)
		log.Info("relay: subscribed", zap.String("channel", channelName))
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				log.Info("relay: subscription loop stopping: context canceled")
				return
			case msg, ok := <-ch:
				if !ok {
					log.Warn("relay: pubsub channel closed")
					return
				}

				var env envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					log.Error("relay: failed to decode envelope", zap.Error(err))
					continue
				}
				if env.Origin == r.instanceID {
					continue
				}
				handler(env.Event)
			}
		}
	}()
}
