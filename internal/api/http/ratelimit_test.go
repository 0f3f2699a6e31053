package http

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medikita/platform/internal/config"
)

func TestRateLimiterBurstThenThrottle(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{AuthPerMinute: 60, AuthBurst: 3})

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("10.0.0.1"), "request %d should fit the burst", i)
	}
	assert.False(t, rl.allow("10.0.0.1"))
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{AuthPerMinute: 60, AuthBurst: 1})

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"))
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{})

	// default burst admits at least one request
	assert.True(t, rl.allow("10.0.0.1"))
}
