package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/apistry/contract-gateway/internal/http/response"
	"github.com/apistry/contract-gateway/internal/observability"
)

// RateLimiter admits up to maxRequests per client address over a rolling
// window. Each client gets a token bucket refilled at maxRequests/window with
// burst capacity maxRequests.
type RateLimiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests < 1 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limit:     rate.Limit(float64(maxRequests) / window.Seconds()),
		burst:     maxRequests,
		window:    window,
		clients:   make(map[string]*clientBucket),
		lastSweep: time.Now(),
	}
}

func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Drop buckets idle for a full window so the map stays bounded.
	if now.Sub(rl.lastSweep) > rl.window {
		for k, b := range rl.clients {
			if now.Sub(b.lastSeen) > rl.window {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.clients[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// RetryAfter reports the seconds until the client's next permitted request,
// consuming one token when the request is admitted. A zero return means the
// request may proceed.
func (rl *RateLimiter) RetryAfter(key string) int {
	res := rl.bucket(key).Reserve()
	if !res.OK() {
		return int(math.Ceil(rl.window.Seconds()))
	}
	delay := res.Delay()
	if delay == 0 {
		return 0
	}
	res.Cancel()
	secs := int(math.Ceil(delay.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Middleware rejects over-quota requests with a 429 and a retry hint. This is
// the only backpressure in the system; there is no queueing.
func (rl *RateLimiter) Middleware(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		retryAfter := rl.RetryAfter(c.ClientIP())
		if retryAfter > 0 {
			route := c.FullPath()
			if route == "" {
				route = c.Request.URL.Path
			}
			m.RateLimited(route)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.RetryLater(c, retryAfter)
			c.Abort()
			return
		}
		c.Next()
	}
}
