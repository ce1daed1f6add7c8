package middleware

import (
	"net/http"
	"sync"

	"github.com/doctorsportal/portal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterStore keeps one token bucket per caller key.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(s.rps), s.burst)
		s.limiters[key] = lim
	}
	return lim
}

// callerKey prefers the verified email when an earlier middleware stored
// one, otherwise the client IP.
func callerKey(c *gin.Context) string {
	if email := c.GetString(EmailKey); email != "" {
		return "email:" + email
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// RateLimitMiddleware enforces an in-process token bucket per caller.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	store := &limiterStore{limiters: make(map[string]*rate.Limiter), rps: rps, burst: burst}
	return func(c *gin.Context) {
		if !store.get(callerKey(c)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
