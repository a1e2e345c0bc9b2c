package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter is an injected capability so handlers can be tested without a real
// clock or a process-wide map.
type Limiter interface {
	Allow(key string) bool
}

// KeyedLimiter keeps one token bucket per key (typically the client IP).
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewKeyedLimiter(r rate.Limit, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     r,
		burst:    burst,
	}
}

func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// Unlimited allows everything; used in tests and when limiting is disabled.
type Unlimited struct{}

func (Unlimited) Allow(string) bool { return true }
