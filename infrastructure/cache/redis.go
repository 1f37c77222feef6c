package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "messages:"

// RedisCountCache shares cached counts between service instances.
type RedisCountCache struct {
	client *redis.Client
}

func NewRedisCountCache(addr, password string, db int) *RedisCountCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCountCache{client: rdb}
}

func (c *RedisCountCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCountCache) GetCount(ctx context.Context, key string) (int64, bool, error) {
	value, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("cached count %q: %w", key, err)
	}
	return count, true, nil
}

func (c *RedisCountCache) SetCount(ctx context.Context, key string, count int64, ttl time.Duration) error {
	return c.client.Set(ctx, redisKeyPrefix+key, count, ttl).Err()
}

func (c *RedisCountCache) Close() error {
	return c.client.Close()
}
