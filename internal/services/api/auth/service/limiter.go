package service

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiter hands out one token bucket per client key
// idle buckets expire with the cache
type limiter struct {
	mu      sync.Mutex
	buckets *cache.Cache
	rps     rate.Limit
	burst   int
}

func newLimiter(rps float64, burst int) *limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &limiter{
		buckets: cache.New(10*time.Minute, 5*time.Minute),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// Allow takes a token for key; a nil limiter allows everything
func (l *limiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.buckets.Get(key); ok {
		l.buckets.SetDefault(key, v)
		return v.(*rate.Limiter).Allow()
	}
	b := rate.NewLimiter(l.rps, l.burst)
	l.buckets.SetDefault(key, b)
	return b.Allow()
}
