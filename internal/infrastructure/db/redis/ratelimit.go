package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements fixed-window request counting backed by Redis.
// Key format: ratelimit:<bucket>:<client>:<window_start>
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow increments the counter for the caller's current window and reports
// whether the request is within limit. The first hit in a window sets the
// key's expiry, so stale windows clean themselves up.
func (l *RateLimiter) Allow(ctx context.Context, bucket, client string, limit int64, window time.Duration) (bool, error) {
	key := l.key(bucket, client, window)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= limit, nil
}

func (l *RateLimiter) key(bucket, client string, window time.Duration) string {
	windowStart := time.Now().Unix() / int64(window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%s:%d", bucket, client, windowStart)
}
