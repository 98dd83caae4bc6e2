package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"blogcms/internal/config"
)

// если карта разрослась, сбрасываем ее целиком: дешевле, чем вести TTL
// по каждому адресу
const limiterCacheMax = 10000

type limiterCache struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newLimiterCache(rps float64, burst int) *limiterCache {
	return &limiterCache{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache) get(key string) *rate.Limiter {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, ok := lc.limiters[key]; ok {
		return limiter
	}

	if len(lc.limiters) >= limiterCacheMax {
		lc.limiters = make(map[string]*rate.Limiter)
	}

	limiter := rate.NewLimiter(lc.rps, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// RateLimitMiddleware - общий для всех маршрутов лимит запросов по IP
func RateLimitMiddleware(cfg *config.Config) Middleware {
	cache := newLimiterCache(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cache.get(clientIP(r)).Allow() {
				writeError(w, "Слишком много запросов", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
