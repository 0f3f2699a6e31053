package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/medikita/platform/internal/config"
	apperrors "github.com/medikita/platform/pkg/util"
)

// RateLimiter applies a per-client-IP token bucket to the auth endpoints.
// Entries idle for an hour are dropped on the next sweep.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*ipLimiter
	lastSeen time.Time
}

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter builds the limiter from config.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	perMinute := cfg.AuthPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	burst := cfg.AuthBurst
	if burst <= 0 {
		burst = 10
	}
	return &RateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		limiters: make(map[string]*ipLimiter),
	}
}

// Handle rejects callers that exceed their bucket.
func (rl *RateLimiter) Handle(c *fiber.Ctx) error {
	if !rl.allow(c.IP()) {
		return apperrors.NewDomainError("RATE_LIMITED", "too many requests", fiber.StatusTooManyRequests, nil)
	}
	return c.Next()
}

func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSeen) > time.Hour {
		for key, entry := range rl.limiters {
			if now.Sub(entry.lastAccess) > time.Hour {
				delete(rl.limiters, key)
			}
		}
		rl.lastSeen = now
	}

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = now
	return entry.limiter.Allow()
}
