package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// rateLimitConfig defines per-client limiting parameters.
type rateLimitConfig struct {
	perWindow int
	window    time.Duration
	burst     int
}

// authRateLimit guards login/register against brute forcing.
var authRateLimit = rateLimitConfig{perWindow: 10, window: time.Minute, burst: 10}

// staleAfter controls when an idle client's limiter is dropped.
const staleAfter = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newRateLimitMiddleware returns a Gin middleware applying cfg per client IP.
func newRateLimitMiddleware(cfg rateLimitConfig) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)
	limit := rate.Limit(float64(cfg.perWindow) / cfg.window.Seconds())

	return func(c *gin.Context) {
		now := time.Now()

		mu.Lock()
		cl, ok := clients[c.ClientIP()]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(limit, cfg.burst)}
			clients[c.ClientIP()] = cl
		}
		cl.lastSeen = now

		// Opportunistic cleanup of idle clients; the map stays small.
		for ip, entry := range clients {
			if now.Sub(entry.lastSeen) > staleAfter {
				delete(clients, ip)
			}
		}
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
