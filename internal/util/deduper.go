package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Deduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDeduper(rdb *redis.Client, ttl time.Duration) *Deduper {
	return &Deduper{rdb: rdb, ttl: ttl}
}

// AcquireOnce tries to acquire a dedup lock for a handler + key pair.
// Returns true if this is the first time the key is processed, false on a
// duplicate. On redis errors it returns true: processing twice is safer
// than silently dropping work.
func (d *Deduper) AcquireOnce(ctx context.Context, handler, key string) bool {
	redisKey := fmt.Sprintf("dedup:%s:%s", handler, key)

	ok, err := d.rdb.SetNX(ctx, redisKey, 1, d.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}
