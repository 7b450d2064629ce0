package redis

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// FeedCacheRedis stores rendered feed pages in Redis with a TTL.
type FeedCacheRedis struct {
	Client *redis.Client
	Prefix string
}

func NewFeedCacheRedis(client *redis.Client) *FeedCacheRedis {
	return &FeedCacheRedis{
		Client: client,
		Prefix: "yatube:",
	}
}

func (r *FeedCacheRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *FeedCacheRedis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, r.Prefix+key, value, ttl).Err()
}
