package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter implements a simple per-key fixed-window rate limiter for
// single-node deployments and tests.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	now      func() time.Time
}

// visitor tracks request counts within the current window for a single key.
type visitor struct {
	count       int
	windowStart time.Time
}

// NewMemoryLimiter creates a limiter allowing limit requests per key within
// window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Allow reports whether key has not exceeded its limit in the current
// window. It also opportunistically drops stale entries so the map does not
// grow unbounded.
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if len(l.visitors) > 10000 {
		l.cleanupLocked(now)
	}

	v, exists := l.visitors[key]
	if !exists || now.Sub(v.windowStart) > l.window {
		l.visitors[key] = &visitor{count: 1, windowStart: now}
		return true, nil
	}
	v.count++
	return v.count <= l.limit, nil
}

func (l *MemoryLimiter) cleanupLocked(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.windowStart) > l.window {
			delete(l.visitors, key)
		}
	}
}
