package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIPRateLimiter_ClampsNonPositiveBudget(t *testing.T) {
	// A zero budget used to divide by zero when computing the refill rate.
	for _, budget := range []int{0, -5} {
		limiter := NewIPRateLimiter(budget)
		require.NotNil(t, limiter)

		allowed, err := limiter.Allow(context.Background(), "203.0.113.7")
		assert.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(context.Background(), "203.0.113.7")
		assert.NoError(t, err)
		assert.False(t, allowed)
	}
}

func TestTokenBucketLimiter_EnforcesBudgetPerKey(t *testing.T) {
	limiter := NewTokenBucketLimiter(2, time.Minute)

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(context.Background(), "alice")
		assert.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(context.Background(), "alice")
	assert.NoError(t, err)
	assert.False(t, allowed)

	// An exhausted budget for one key does not affect another.
	allowed, err = limiter.Allow(context.Background(), "bob")
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestTokenBucketLimiter_RefillsOverTime(t *testing.T) {
	limiter := NewTokenBucketLimiter(1, 10*time.Millisecond)

	allowed, err := limiter.Allow(context.Background(), "alice")
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "alice")
	assert.NoError(t, err)
	assert.False(t, allowed)

	time.Sleep(25 * time.Millisecond)

	allowed, err = limiter.Allow(context.Background(), "alice")
	assert.NoError(t, err)
	assert.True(t, allowed)
}
