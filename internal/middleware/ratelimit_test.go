// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func allow(t *testing.T, l Limiter, key string) bool {
	t.Helper()
	ok, err := l.Allow(context.Background(), key)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	return ok
}

func TestMemoryLimiterAllow(t *testing.T) {
	rl := NewMemoryLimiter(3, time.Second)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !allow(t, rl, "test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if allow(t, rl, "test-ip") {
		t.Error("4th request should be rate-limited")
	}
	if !allow(t, rl, "other-ip") {
		t.Error("different IP should be allowed")
	}
}

func TestMemoryLimiterWindowExpiry(t *testing.T) {
	rl := NewMemoryLimiter(2, 100*time.Millisecond)
	defer rl.Stop()

	allow(t, rl, "test-ip")
	allow(t, rl, "test-ip")
	if allow(t, rl, "test-ip") {
		t.Error("should be rate-limited")
	}

	time.Sleep(150 * time.Millisecond)

	if !allow(t, rl, "test-ip") {
		t.Error("should be allowed after window expires")
	}
}

func TestMemoryLimiterCleanup(t *testing.T) {
	rl := NewMemoryLimiter(1, 10*time.Millisecond)
	defer rl.Stop()

	allow(t, rl, "idle")
	time.Sleep(20 * time.Millisecond)
	rl.cleanup()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if _, ok := rl.clients["idle"]; ok {
		t.Error("idle client should be removed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewMemoryLimiter(2, time.Second)
	defer rl.Stop()

	next, _ := okHandler()
	h := RateLimit(rl)(next)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 2; i++ {
		if rr := do(); rr.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want 200", i+1, rr.Code)
		}
	}
	rr := do()
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("got status %d, want 429", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Error("api 429 should use the JSON envelope")
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("valkey down")
}

func TestRateLimitFailsOpen(t *testing.T) {
	captureLog(t)
	next, called := okHandler()
	RateLimit(failingLimiter{})(next).ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/api/contact", nil))
	if !*called {
		t.Error("limiter failure should let the request through")
	}
}

func TestClientIP(t *testing.T) {
	tests := map[string]string{
		"10.0.0.1:5555":    "10.0.0.1",
		"[2001:db8::1]:80": "2001:db8::1",
		"10.0.0.2":         "10.0.0.2",
	}
	for addr, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		if got := clientIP(req); got != want {
			t.Errorf("clientIP(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestValkeyLimiter(t *testing.T) {
	addr := os.Getenv("VALKEY_HOST")
	if addr == "" {
		addr = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr + ":" + port, DB: 15})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	l := NewValkeyLimiter(client, "test-"+uuid.NewString()[:8], 2, time.Minute)
	if !allow(t, l, "1.2.3.4") || !allow(t, l, "1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if allow(t, l, "1.2.3.4") {
		t.Error("third request should be limited")
	}
	if !allow(t, l, "5.6.7.8") {
		t.Error("other client should pass")
	}
}
