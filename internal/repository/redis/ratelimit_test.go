package redis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterKeyIsWindowScoped(t *testing.T) {
	limiter := NewRateLimiter(nil, 100, 20)

	window := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	key := limiter.key("user-1", window)

	assert.True(t, strings.HasPrefix(key, limiterKeyPrefix))
	assert.Equal(t, key, limiter.key("user-1", window))

	// A new window or a different caller lands on a different counter
	assert.NotEqual(t, key, limiter.key("user-1", window.Add(time.Minute)))
	assert.NotEqual(t, key, limiter.key("user-2", window))
}

func TestRateLimiterBudgetIncludesBurst(t *testing.T) {
	limiter := NewRateLimiter(nil, 100, 20)
	assert.Equal(t, int64(120), limiter.limit)
	assert.Equal(t, time.Minute, limiter.window)
}
