package sink

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"business-registration/internal/common/errors"
)

// limiterStore keeps one token bucket per client IP.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLimiterStore(limit rate.Limit, burst int) *limiterStore {
	return &limiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[ip]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.limiters[ip] = l
	}
	return l
}

// rateLimit rejects a client once its bucket is empty.
func rateLimit(store *limiterStore, handler *errors.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			handler.Respond(c, errors.NewRateLimitedError(ip))
			return
		}
		c.Next()
	}
}
