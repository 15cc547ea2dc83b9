package rediscache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Cache stores rendered reply text in Redis so that several bot instances can
// share one result cache. TTL is enforced by Redis; the strict capacity bound
// of the in-memory backend is left to Redis' own eviction policy.
type Cache struct {
	c *redis.Client
}

func New(addr string) *Cache {
	return &Cache{
		c: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

func (r *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.c.Get(ctx, replyKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "redis get")
	}
	return val, true, nil
}

func (r *Cache) Set(ctx context.Context, key, text string, ttl time.Duration) error {
	if err := r.c.Set(ctx, replyKey(key), text, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func replyKey(id string) string {
	return "reply:" + id
}
