package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipregistry/internal/domain/dto"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

// allow records a request from ip and reports whether it fits the budget.
// Idle clients are swept when their window has passed.
func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) > rl.window {
		cl = &client{windowStart: now}
		rl.clients[ip] = cl
	}
	cl.count++

	if len(rl.clients) > 1024 {
		for k, v := range rl.clients {
			if now.Sub(v.windowStart) > rl.window {
				delete(rl.clients, k)
			}
		}
	}
	return cl.count <= rl.limit
}

// RateLimiter limits the number of requests per client IP within a fixed window.
//
// Behavior:
//   - Allows up to limit requests per window (the service default is 60 per minute).
//   - Identifies clients by their IP address.
//   - A limit <= 0 disables limiting.
//   - If limit exceeded, returns HTTP 429 Too Many Requests.
//
// Each call returns a limiter with its own state, so routers never share counters.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"message": "rate limit exceeded", "timestamp": "..."}
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
