package middleware

import (
	"net/http"
	"sync"
	"time"
)

type window struct {
	count   int
	startAt time.Time
}

// RateLimiter is a fixed-window per-client limiter for the auth endpoints.
// Windows are keyed by remote address; RealIP runs earlier in the chain so
// the key is the originating client, not a proxy hop.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
	}

	go rl.evictExpired()

	return rl
}

func (rl *RateLimiter) evictExpired() {
	for {
		time.Sleep(rl.period)
		rl.mu.Lock()
		for key, w := range rl.windows {
			if time.Since(w.startAt) > rl.period {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}

// allow counts a request against the caller's current window and reports
// whether it stays within the limit.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || time.Since(w.startAt) > rl.period {
		rl.windows[key] = &window{count: 1, startAt: time.Now()}
		return true
	}

	w.count++
	return w.count <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
