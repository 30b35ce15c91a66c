// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces cached API responses in Valkey.
	keyPrefix = "api:"

	// DefaultTTL is how long a response stays cached.
	DefaultTTL = 5 * time.Minute

	// HeaderCache reports HIT or MISS to clients.
	HeaderCache = "X-Cache"
)

// ResponseCache stores successful public GET responses in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache returns a cache backed by client. A zero ttl uses DefaultTTL.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get returns the cached body for key.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.WarnContext(ctx, "response cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores body under key for the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if err := c.client.Set(ctx, keyPrefix+key, body, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "response cache set error", "key", key, "error", err)
	}
}

// InvalidateAll drops every cached response. Any admin write calls this
// since list, detail and aggregate endpoints overlap.
func (c *ResponseCache) InvalidateAll(ctx context.Context) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			slog.WarnContext(ctx, "response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.WarnContext(ctx, "response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.InfoContext(ctx, "response cache cleared", "deleted", deleted)
	}
}

// Key derives the cache key of a request from its path and sorted query.
func Key(r *http.Request) string {
	q := r.URL.Query()
	if len(q) == 0 {
		return r.URL.Path
	}
	names := make([]string, 0, len(q))
	for name := range q {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(r.URL.Path)
	for i, name := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		vals := q[name]
		sort.Strings(vals)
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strings.Join(vals, ","))
	}
	return b.String()
}

// recorder captures a response while passing it through.
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Middleware serves GET requests from the cache and stores 200 responses.
// A nil cache passes everything through.
func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}
		key := Key(r)
		if body, ok := c.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(HeaderCache, "HIT")
			w.Write(body)
			return
		}

		w.Header().Set(HeaderCache, "MISS")
		rec := &recorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == http.StatusOK {
			c.Set(r.Context(), key, rec.body.Bytes())
		}
	})
}
