package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-storefront"
	"github.com/redis/go-redis/v9"
)

var _ storefront.TokenStore = (*Redis)(nil)

// Redis keeps the token under prefix:key. A positive ttl lets Redis drop
// stale tokens on its own.
type Redis struct {
	rdb redis.UniversalClient
	key string
	ttl time.Duration
}

// NewRedis returns a Redis backed store
func NewRedis(rdb redis.UniversalClient, prefix, key string, ttl time.Duration) *Redis {
	if key == "" {
		key = DefaultKey
	}
	if prefix != "" {
		key = prefix + ":" + key
	}
	return &Redis{rdb: rdb, key: key, ttl: ttl}
}

// Key is the full redis key
func (r *Redis) Key() string {
	return r.key
}

func (r *Redis) Get(ctx context.Context) (string, error) {
	token, err := r.rdb.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (r *Redis) Set(ctx context.Context, token string) error {
	return r.rdb.Set(ctx, r.key, token, r.ttl).Err()
}

func (r *Redis) Remove(ctx context.Context) error {
	return r.rdb.Del(ctx, r.key).Err()
}
