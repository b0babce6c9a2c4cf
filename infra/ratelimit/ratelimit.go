package ratelimit

import (
	"sync"
	"taskhub/bizerror"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// ClientLimiters hands out one token bucket per client, idle buckets expire from the cache.
type ClientLimiters struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters *cache.Cache
}

func NewClientLimiters(rps float64, burst int, idle time.Duration) *ClientLimiters {
	return &ClientLimiters{
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: cache.New(idle, idle),
	}
}

func (l *ClientLimiters) Get(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, found := l.limiters.Get(client); found {
		l.limiters.SetDefault(client, v)
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	l.limiters.SetDefault(client, limiter)
	return limiter
}

// RateLimiting rejects requests over the client's budget with 429, clients are keyed by ip.
func RateLimiting(limiters *ClientLimiters) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiters.Get(c.ClientIP()).Allow() {
			panic(bizerror.ErrTooManyRequests)
		}
		c.Next()
	}
}
