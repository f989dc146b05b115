package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"matehub/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const profileKeyPrefix = "mate:profile:"

// RedisProfileCache stores public mate profiles in Redis. Every failure is
// logged and treated as a miss.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisProfileCache returns a cache on client, or nil when client is nil.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProfileCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisProfileCache{client: client, ttl: ttl, logger: logger}
}

func profileKey(mateID string) string {
	return profileKeyPrefix + mateID
}

func (c *RedisProfileCache) Get(ctx context.Context, mateID string) (*models.MateProfile, bool) {
	data, err := c.client.Get(ctx, profileKey(mateID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("profile cache read failed", zap.String("mateId", mateID), zap.Error(err))
		}
		return nil, false
	}
	var p models.MateProfile
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn("profile cache entry corrupt", zap.String("mateId", mateID), zap.Error(err))
		return nil, false
	}
	return &p, true
}

func (c *RedisProfileCache) Set(ctx context.Context, profile *models.MateProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, profileKey(profile.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("profile cache write failed", zap.String("mateId", profile.ID), zap.Error(err))
	}
}

func (c *RedisProfileCache) Invalidate(ctx context.Context, mateID string) {
	if err := c.client.Del(ctx, profileKey(mateID)).Err(); err != nil {
		c.logger.Warn("profile cache invalidate failed", zap.String("mateId", mateID), zap.Error(err))
	}
}
