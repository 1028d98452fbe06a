package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"firsgate/internal/config"
)

const maxTrackedClients = 10000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client key.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	perMin  int
}

// NewRateLimiter creates a limiter allowing perMinute requests per client,
// with bursts up to burst (perMinute when burst is not positive).
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = perMinute
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		perMin:  perMinute,
	}
}

func (r *RateLimiter) get(key string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.clients) >= maxTrackedClients {
		for k, cl := range r.clients {
			if now.Sub(cl.lastSeen) > time.Minute {
				delete(r.clients, k)
			}
		}
	}
	cl, ok := r.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// Allow consumes one token for key and reports whether it was available,
// along with the whole tokens left.
func (r *RateLimiter) Allow(key string) (bool, int) {
	now := time.Now()
	lim := r.get(key, now)
	ok := lim.AllowN(now, 1)
	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return ok, remaining
}

// RateLimit enforces per-client request limits. Clients are keyed by their
// API credential, or by IP when they present none.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.PerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(cfg.PerMinute, cfg.Burst)
	return func(c *gin.Context) {
		key := c.GetString(ContextKeyClientID)
		if key == "" {
			key = c.ClientIP()
		}
		ok, remaining := limiter.Allow(key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.perMin))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
		if !ok {
			abort(c, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
			return
		}
		c.Next()
	}
}
