package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitError signals a creation cooldown hit; the handler converts it to
// a 429 with a Retry-After header.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// CheckAndSetRateLimit atomically acquires a per-user cooldown slot. A nil
// client disables limiting entirely.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID uint, action string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:user:%d:%s", userID, action)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, userID uint, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	key := fmt.Sprintf("rate_limit:user:%d:%s", userID, action)
	return rdb.TTL(ctx, key).Result()
}

func ClearRateLimit(ctx context.Context, rdb *redis.Client, userID uint, action string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:user:%d:%s", userID, action)
	_, err := rdb.Del(ctx, key).Result()
	return err
}

func checkCreationCooldown(ctx context.Context, rdb *redis.Client, userID uint, action string, limit time.Duration) error {
	allowed, err := CheckAndSetRateLimit(ctx, rdb, userID, action, limit)
	if err != nil {
		return fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, rdb, userID, action)
		return &RateLimitError{
			Message:    fmt.Sprintf("you are doing that too fast, please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}
	return nil
}
