package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionRateLimiter_EvictsIdleBuckets(t *testing.T) {
	rl := newSessionRateLimiter(1, 1)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))

	clock = clock.Add(limiterIdleTTL + time.Second)
	assert.True(t, rl.allow("b"))
	assert.Equal(t, 1, rl.evictIdle())
	assert.Len(t, rl.limiters, 1)
}

func TestSessionRateLimiter_FallsBackToClientIP(t *testing.T) {
	rl := newSessionRateLimiter(0.001, 1)
	h := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5678"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}
