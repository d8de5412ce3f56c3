package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Counter counts hits per key within a fixed window and returns the count
// including the current hit.
type Counter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

type MemoryCounter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	count int64
	start time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (m *MemoryCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now, window)

	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) > window {
		b = &bucket{start: now}
		m.buckets[key] = b
	}

	b.count++
	return b.count, nil
}

// sweep drops expired buckets, at most once per window.
func (m *MemoryCounter) sweep(now time.Time, window time.Duration) {
	if now.Sub(m.lastSweep) <= window {
		return
	}
	for key, b := range m.buckets {
		if now.Sub(b.start) > window {
			delete(m.buckets, key)
		}
	}
	m.lastSweep = now
}

// RateLimiter rejects requests once a client IP exceeds limit hits within
// window. Counter failures let the request through.
func RateLimiter(counter Counter, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			count, err := counter.Increment(c.Request().Context(), key, window)
			if err != nil {
				log.Warn().Err(err).Str("client", key).Msg("rate limiter counter unavailable")
				return next(c)
			}

			if count > int64(limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
