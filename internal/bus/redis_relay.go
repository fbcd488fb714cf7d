package bus

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/drashti611/gowear-frontend/pkg/logger"
)

const relayChannel = "gowear:collections"

// RedisRelay fans signals out to other gateway instances. A message is
// "<instance>|<namespace>"; an instance ignores its own messages.
type RedisRelay struct {
	hub      *Hub
	client   *redis.Client
	instance string
}

func NewRedisRelay(hub *Hub, client *redis.Client) *RedisRelay {
	return &RedisRelay{hub: hub, client: client, instance: uuid.NewString()}
}

func (r *RedisRelay) Publish(ns string) {
	r.hub.Publish(ns)

	ctx := context.Background()
	if err := r.client.Publish(ctx, relayChannel, r.instance+"|"+ns).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("ns", ns).Msg("bus_relay_publish_failed")
	}
}

// Run re-publishes remote signals locally until ctx is done. ready, when
// non-nil, is closed once the subscription is active.
func (r *RedisRelay) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := r.client.Subscribe(ctx, relayChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			origin, ns, found := strings.Cut(msg.Payload, "|")
			if !found || ns == "" || origin == r.instance {
				continue
			}
			r.hub.Publish(ns)
		}
	}
}
