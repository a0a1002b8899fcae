package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const lookupCachePrefix = "catalog-editor:lookups:"

// RedisLookupCache keeps lookup results in Redis for a fixed TTL
type RedisLookupCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLookupCache creates a RedisLookupCache
func NewRedisLookupCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLookupCache {
	return &RedisLookupCache{redis: client, ttl: ttl, logger: logger}
}

// Get loads key into dest and reports whether it was found
func (c *RedisLookupCache) Get(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.redis.Get(ctx, lookupCachePrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("lookup cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("failed to unmarshal cached lookup", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores value under key
func (c *RedisLookupCache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to marshal lookup for cache", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, lookupCachePrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("lookup cache write failed", zap.String("key", key), zap.Error(err))
	}
}
