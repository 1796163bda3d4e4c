package handler

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const defaultRateBurst = 3

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateLimiter returns nil when perMinute is not positive, which disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		return nil
	}
	burst := defaultRateBurst
	if perMinute < burst {
		burst = perMinute
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

// Allow reports whether key may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	return l.get(key).Allow()
}

func (l *RateLimiter) get(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[key]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok = l.limiters[key]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(l.limit, l.burst)
	l.limiters[key] = limiter
	return limiter
}

// Middleware rejects callers over their budget with 429. Loopback peers
// are the landing server itself, already limited per visitor at /waitlist.
// The exemption looks at the socket address, and a request relayed by a
// trusted proxy on the same host is limited like any other client.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if selfCall(c.RemoteIP(), client) {
			c.Next()
			return
		}
		if !l.Allow(client) {
			c.Header("Retry-After", "60")
			respondErrorCode(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", "rate_limited", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func selfCall(peer, client string) bool {
	ip := net.ParseIP(peer)
	return ip != nil && ip.IsLoopback() && peer == client
}

// RateLimit guards the public submission endpoint.
func (a *API) RateLimit() gin.HandlerFunc {
	return a.limiter.Middleware()
}
