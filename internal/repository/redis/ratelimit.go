package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const limiterKeyPrefix = "rl:user:"

// RateLimiter counts requests in fixed windows. Each window gets its own
// counter key, so a counter never outlives the window it belongs to and no
// expiry race can carry counts across windows.
type RateLimiter struct {
	client *Client
	limit  int64
	window time.Duration
}

// NewRateLimiter creates a limiter allowing requestsPerMinute plus burst
// requests in each one-minute window.
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  int64(requestsPerMinute + burst),
		window: time.Minute,
	}
}

// Allow records one request for the caller and reports whether it fits the
// current window. Returns (allowed, remaining, windowEnd, error).
func (r *RateLimiter) Allow(ctx context.Context, callerID string) (bool, int, time.Time, error) {
	windowStart := time.Now().Truncate(r.window)
	key := r.key(callerID, windowStart)

	pipe := r.client.rdb.Pipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to count request: %w", err)
	}

	remaining := r.limit - count.Val()
	if remaining < 0 {
		remaining = 0
	}

	return count.Val() <= r.limit, int(remaining), windowStart.Add(r.window), nil
}

// Reset clears the caller's counter for the current window
func (r *RateLimiter) Reset(ctx context.Context, callerID string) error {
	windowStart := time.Now().Truncate(r.window)
	return r.client.rdb.Del(ctx, r.key(callerID, windowStart)).Err()
}

func (r *RateLimiter) key(callerID string, windowStart time.Time) string {
	return limiterKeyPrefix + callerID + ":" + strconv.FormatInt(windowStart.Unix(), 10)
}
