package server_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-login-relay/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRateLimiterConfig(t *testing.T) {
	cfg := server.DefaultRateLimiterConfig(120)

	assert.InDelta(t, 2.0, float64(cfg.Rate), 1e-9)
	assert.Equal(t, 120, cfg.Burst)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, 10*time.Minute, cfg.IdleTimeout)
}

func TestRateLimiterPerKey(t *testing.T) {
	rl := server.NewRateLimiter(server.DefaultRateLimiterConfig(3))
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("203.0.113.1"), "request %d", i)
	}
	assert.False(t, rl.Allow("203.0.113.1"))
	assert.True(t, rl.Allow("203.0.113.2"))
	assert.Equal(t, 2, rl.Len())
	assert.Equal(t, 20, rl.RetryAfterSeconds())
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	rl := server.NewRateLimiter(server.DefaultRateLimiterConfig(60))
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := server.NewRateLimiter(server.RateLimiterConfig{
		Rate:            1,
		Burst:           1,
		CleanupInterval: 10 * time.Millisecond,
		IdleTimeout:     time.Millisecond,
	})
	defer rl.Stop()

	rl.Allow("203.0.113.1")
	require.Eventually(t, func() bool { return rl.Len() == 0 }, time.Second, 5*time.Millisecond)
}
