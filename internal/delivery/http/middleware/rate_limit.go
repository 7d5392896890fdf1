package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles per client IP. It fronts the webhook
// endpoints, where the gateway retries aggressively on any non-2xx.
type RateLimitMiddleware struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rateLimiterEntry
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const rateLimiterIdleEviction = 10 * time.Minute

func NewRateLimitMiddleware(perSecond float64, burst int) *RateLimitMiddleware {
	if perSecond <= 0 {
		perSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &RateLimitMiddleware{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rateLimiterEntry),
	}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !m.allow(c.IP()) {
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}
		return c.Next()
	}
}

func (m *RateLimitMiddleware) allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	e, ok := m.limiters[ip]
	if !ok {
		e = &rateLimiterEntry{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.limiters[ip] = e
		m.evictIdleLocked(now)
	}
	e.lastSeen = now
	return e.limiter.Allow()
}

func (m *RateLimitMiddleware) evictIdleLocked(now time.Time) {
	for ip, e := range m.limiters {
		if now.Sub(e.lastSeen) > rateLimiterIdleEviction {
			delete(m.limiters, ip)
		}
	}
}
