package data

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeCountKey = "offers:active_count"
const activeCountTTL = 60 * time.Second

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// CachedActiveCount serves the public live-offer count through a short-lived
// redis cache. Redis being down degrades to hitting the database, never to
// an error.
func CachedActiveCount(ctx context.Context, rdb *redis.Client, fetch func(context.Context) (int64, error)) (int64, error) {
	if rdb != nil {
		if val, err := rdb.Get(ctx, activeCountKey).Result(); err == nil {
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				return n, nil
			}
		}
	}

	n, err := fetch(ctx)
	if err != nil {
		return 0, err
	}

	if rdb != nil {
		if err := rdb.Set(ctx, activeCountKey, strconv.FormatInt(n, 10), activeCountTTL).Err(); err != nil {
			log.Printf("failed to cache active count: %v", err)
		}
	}
	return n, nil
}
