package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchLimiter(t *testing.T) {
	t.Run("AllowsBurstThenLimits", func(t *testing.T) {
		limiter := New(5, 10)

		for i := 0; i < 10; i++ {
			assert.True(t, limiter.Allow(), "burst token %d should be available", i)
		}
		assert.False(t, limiter.Allow(), "tokens beyond the burst should be rejected")
	})

	t.Run("RaisesBurstToSustainedRate", func(t *testing.T) {
		// A burst below the sustained rate is raised to it, so the bucket
		// starts with requestsPerSecond tokens.
		limiter := New(10, 5)

		for i := 0; i < 10; i++ {
			assert.True(t, limiter.Allow(), "raised-burst token %d should be available", i)
		}
		assert.False(t, limiter.Allow(), "tokens beyond the raised burst should be rejected")
	})

	t.Run("ZeroRateIsUnlimited", func(t *testing.T) {
		limiter := New(0, 0)

		for i := 0; i < 1000; i++ {
			require.True(t, limiter.Allow())
		}
	})

	t.Run("WaitRespectsCancellation", func(t *testing.T) {
		limiter := New(1, 1)
		require.True(t, limiter.Allow()) // drain the bucket

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx)
		assert.Error(t, err)
	})

	t.Run("TokensRefillOverTime", func(t *testing.T) {
		limiter := New(100, 1)
		require.True(t, limiter.Allow())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		// One token refills within ~10ms at 100/s; Wait must return well
		// before the context deadline.
		require.NoError(t, limiter.Wait(ctx))
	})
}
