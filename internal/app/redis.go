package app

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/shipregistry/config"
	"github.com/redis/go-redis/v9"
)

// InitRedis creates the client behind the ship lookup cache.
//
// The client is returned even when the initial ping fails: the cache falls
// through to storage on every Redis error, so an unreachable Redis degrades
// latency, not correctness. Short timeouts keep that fallback fast.
func InitRedis(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  500 * time.Millisecond,
		ReadTimeout:  250 * time.Millisecond,
		WriteTimeout: 250 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return rdb, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
	}
	return rdb, nil
}

// redisOpener is overridden in tests.
var redisOpener = InitRedis
