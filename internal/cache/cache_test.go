// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	client, err := ConnectValkey(envOr("VALKEY_HOST", "localhost"), envOr("VALKEY_PORT", "6379"), "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"/api/jobs", "/api/jobs"},
		{"/api/jobs?page=2&country=Japan", "/api/jobs?country=Japan&page=2"},
		{"/api/jobs?country=Japan&page=2", "/api/jobs?country=Japan&page=2"},
		{"/api/faqs?c=b&c=a", "/api/faqs?c=a,b"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.url, nil)
		if got := Key(r); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestResponseCacheSetAndGet(t *testing.T) {
	c := NewResponseCache(testValkeyClient(t), time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "/api/company"); ok {
		t.Error("expected cache miss")
	}

	c.Set(ctx, "/api/company", []byte(`{"name":"KH"}`))

	data, ok := c.Get(ctx, "/api/company")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(data) != `{"name":"KH"}` {
		t.Errorf("data mismatch: got %q", data)
	}
}

func TestResponseCacheInvalidateAll(t *testing.T) {
	c := NewResponseCache(testValkeyClient(t), time.Minute)
	ctx := context.Background()

	for _, key := range []string{"/api/a", "/api/b", "/api/c"} {
		c.Set(ctx, key, []byte("x"))
	}
	c.InvalidateAll(ctx)

	for _, key := range []string{"/api/a", "/api/b", "/api/c"} {
		if _, ok := c.Get(ctx, key); ok {
			t.Errorf("expected miss for %q after InvalidateAll", key)
		}
	}
}

func TestMiddleware(t *testing.T) {
	c := NewResponseCache(testValkeyClient(t), time.Minute)

	calls := 0
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":0}`))
	}))

	for i, want := range []string{"MISS", "HIT"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/offices", nil))
		if got := rr.Header().Get(HeaderCache); got != want {
			t.Errorf("request %d: X-Cache = %q, want %q", i+1, got, want)
		}
		if rr.Body.String() != `{"count":0}` {
			t.Errorf("request %d: body %q", i+1, rr.Body.String())
		}
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestMiddleware_SkipsErrorsAndWrites(t *testing.T) {
	c := NewResponseCache(testValkeyClient(t), time.Minute)

	calls := 0
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "nope", http.StatusNotFound)
	}))

	for range 2 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/contact", nil))
	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
}

func TestMiddleware_NilCachePassesThrough(t *testing.T) {
	var c *ResponseCache
	called := false
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	if !called {
		t.Error("expected pass-through")
	}
}

func TestNewResponseCacheDefaultTTL(t *testing.T) {
	c := NewResponseCache(nil, 0)
	if c.ttl != DefaultTTL {
		t.Errorf("expected DefaultTTL (%v), got %v", DefaultTTL, c.ttl)
	}
}
