package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Unlimited(t *testing.T) {
	limiter := NewRateLimiter(0)

	for i := 0; i < 10; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}
}

func TestRateLimiter_Throttles(t *testing.T) {
	limiter := NewRateLimiter(20)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(context.Background()))
	}

	// Burst of one: the second and third requests wait ~50ms each.
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestRateLimiter_BackoffRespectsContext(t *testing.T) {
	limiter := NewRateLimiter(0)
	limiter.RecordRateLimited(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_RecordDefaultBackoff(t *testing.T) {
	limiter := NewRateLimiter(1)
	limiter.RecordRateLimited(0)

	assert.WithinDuration(t, time.Now().Add(DefaultRetryAfter), limiter.RetryAt(), time.Second)
}
