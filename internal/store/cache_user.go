package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/redis/go-redis/v9"
)

const userCacheKeyPrefix = "user:"

func userCacheKey(email string) string {
	return userCacheKeyPrefix + email
}

// redisUserCache stores JSON snapshots of users under "user:<email>".
type redisUserCache struct {
	client redis.Cmdable
	logger *logger.Logger
}

// NewRedisUserCache constructs a [UserCache] over client.
func NewRedisUserCache(client redis.Cmdable, logger *logger.Logger) UserCache {
	logger.Debug().Msg("creating redis user cache")
	return &redisUserCache{
		client: client,
		logger: logger,
	}
}

// Get returns the cached snapshot. A missing key is a miss, not an error.
func (c *redisUserCache) Get(ctx context.Context, email string) (models.CachedUser, bool, error) {
	data, err := c.client.Get(ctx, userCacheKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.CachedUser{}, false, nil
		}
		return models.CachedUser{}, false, fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	var user models.CachedUser
	if err = json.Unmarshal(data, &user); err != nil {
		return models.CachedUser{}, false, fmt.Errorf("%w: %w", ErrCacheCorrupted, err)
	}

	return user, true, nil
}

func (c *redisUserCache) Set(ctx context.Context, email string, user models.CachedUser, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("error encoding cached user: %w", err)
	}

	if err = c.client.Set(ctx, userCacheKey(email), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	return nil
}

// Invalidate drops the snapshot. Invalidating a missing key succeeds.
func (c *redisUserCache) Invalidate(ctx context.Context, email string) error {
	if err := c.client.Del(ctx, userCacheKey(email)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	return nil
}

// noopUserCache is used when Redis is not configured: every lookup misses.
type noopUserCache struct{}

func NewNoopUserCache() UserCache {
	return noopUserCache{}
}

func (noopUserCache) Get(context.Context, string) (models.CachedUser, bool, error) {
	return models.CachedUser{}, false, nil
}

func (noopUserCache) Set(context.Context, string, models.CachedUser, time.Duration) error {
	return nil
}

func (noopUserCache) Invalidate(context.Context, string) error {
	return nil
}
