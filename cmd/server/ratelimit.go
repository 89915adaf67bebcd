package main

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type trackedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// sessionRateLimiter keeps one token bucket per returning session. Requests
// without a valid session cookie share a bucket per client address, so
// dropping the cookie does not reset the limit.
type sessionRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*trackedLimiter
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

func newSessionRateLimiter(rps float64, burst int) *sessionRateLimiter {
	return &sessionRateLimiter{
		limiters: make(map[string]*trackedLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *sessionRateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	tl, ok := rl.limiters[key]
	if !ok {
		tl = &trackedLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[key] = tl
	}
	tl.lastSeen = now
	return tl.limiter.AllowN(now, 1)
}

// evictIdle drops buckets that have not been used within limiterIdleTTL.
func (rl *sessionRateLimiter) evictIdle() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-limiterIdleTTL)
	evicted := 0
	for key, tl := range rl.limiters {
		if tl.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			evicted++
		}
	}
	return evicted
}

// run evicts idle buckets until ctx is done.
func (rl *sessionRateLimiter) run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *sessionRateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(limiterKey(r)) {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func limiterKey(r *http.Request) string {
	id := sessionFromContext(r.Context())
	if id == "" || sessionIssued(r.Context()) {
		return "ip:" + clientIP(r)
	}
	return "session:" + id
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
