package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gowear:kv:"

// Redis keeps one hash per namespace and refreshes its TTL on every write.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, ns, key string) (string, bool, error) {
	if ns == "" {
		return "", false, ErrNoNamespace
	}
	v, err := r.client.HGet(ctx, redisKeyPrefix+ns, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, ns, key, value string) error {
	if ns == "" {
		return ErrNoNamespace
	}
	hk := redisKeyPrefix + ns
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, hk, key, value)
	if r.ttl > 0 {
		pipe.Expire(ctx, hk, r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Redis) Delete(ctx context.Context, ns string, keys ...string) error {
	if ns == "" {
		return ErrNoNamespace
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.HDel(ctx, redisKeyPrefix+ns, keys...).Err()
}
