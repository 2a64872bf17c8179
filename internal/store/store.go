// Package store is the durable client-side state of the dashboard: one key
// for the operator session, one for the notification feed. It mirrors the
// browser dashboard's storage layout and semantics: writes are best-effort
// and never fatal, reads degrade to "nothing stored" on corruption.
package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	redisclient "github.com/zabava/dashboard-go/internal/redis"
)

// KV is the minimal key-value surface the stores need. Satisfied by the
// redis-backed implementation below and by in-memory fakes in tests.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, key string) error
}

type redisKV struct {
	client *redisclient.Client
}

func NewRedisKV(client *redisclient.Client) KV {
	return &redisKV{client: client}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisKV) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *redisKV) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
