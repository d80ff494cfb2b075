package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/common"
	"github.com/osa911/hostelhub/internal/utils"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second per client IP
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

type clientLimiters struct {
	mu       sync.Mutex
	config   RateLimitConfig
	limiters map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (l *clientLimiters) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// forget idle clients once the table grows
	if len(l.limiters) > 10000 {
		for k, v := range l.limiters {
			if now.Sub(v.lastSeen) > 10*time.Minute {
				delete(l.limiters, k)
			}
		}
	}

	cl, ok := l.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.config.RPS), l.config.Burst)}
		l.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// RateLimitMiddleware limits each client IP to the configured rate
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	clients := &clientLimiters{config: config, limiters: make(map[string]*clientLimiter)}

	return func(c *gin.Context) {
		limiter := clients.get(utils.GetRealIP(c), time.Now())

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RPS))
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(
				common.ErrCodeTooManyRequests, "Rate limit exceeded. Please try again later.", nil))
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}
