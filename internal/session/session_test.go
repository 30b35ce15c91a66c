// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"khrm/internal/models"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{keyPrefix + "*", statePrefix + "*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
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

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("expected session cookie to be set")
	return nil
}

func TestSessionCreateAndGet(t *testing.T) {
	store := NewStore(testValkeyClient(t), true)
	ctx := context.Background()
	w := httptest.NewRecorder()

	data := &Data{
		UserID:      uuid.New(),
		Email:       "staff@session.local",
		DisplayName: "Staff",
		Role:        models.RoleEditor,
		Provider:    models.AuthGoogle,
	}

	id, err := store.Create(ctx, w, data)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != idLength*2 {
		t.Errorf("session id length: got %d, want %d", len(id), idLength*2)
	}

	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if !cookie.Secure {
		t.Error("expected Secure cookie for secure store")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	got, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected session data, got nil")
	}
	if got.UserID != data.UserID || got.Role != models.RoleEditor || got.Provider != models.AuthGoogle {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	store := NewStore(testValkeyClient(t), false)

	got, err := store.Get(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || got != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", got, err)
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	store := NewStore(testValkeyClient(t), false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "nope"})

	got, err := store.Get(context.Background(), req)
	if err != nil || got != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", got, err)
	}
}

func TestSessionUpdate(t *testing.T) {
	store := NewStore(testValkeyClient(t), false)
	ctx := context.Background()
	w := httptest.NewRecorder()

	data := &Data{UserID: uuid.New(), Email: "a@b.c", Role: models.RoleAdmin}
	if _, err := store.Create(ctx, w, data); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, w))

	data.TwoFADone = true
	if err := store.Update(ctx, req, data); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := store.Get(ctx, req)
	if got == nil || !got.TwoFADone {
		t.Error("expected TwoFADone after update")
	}

	if err := store.Update(ctx, httptest.NewRequest(http.MethodGet, "/", nil), data); err == nil {
		t.Error("expected error updating without a cookie")
	}
}

func TestSessionDestroy(t *testing.T) {
	store := NewStore(testValkeyClient(t), false)
	ctx := context.Background()
	w := httptest.NewRecorder()

	if _, err := store.Create(ctx, w, &Data{UserID: uuid.New()}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, w))

	w2 := httptest.NewRecorder()
	if err := store.Destroy(ctx, w2, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if c := sessionCookie(t, w2); c.MaxAge >= 0 {
		t.Errorf("expected expired cookie, MaxAge=%d", c.MaxAge)
	}

	got, _ := store.Get(ctx, req)
	if got != nil {
		t.Error("expected nil session after destroy")
	}
}

func TestOAuthStateSingleUse(t *testing.T) {
	store := NewStore(testValkeyClient(t), false)
	ctx := context.Background()

	if err := store.SaveState(ctx, "state-1"); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	ok, err := store.ConsumeState(ctx, "state-1")
	if err != nil || !ok {
		t.Fatalf("first consume: ok=%v err=%v", ok, err)
	}
	ok, _ = store.ConsumeState(ctx, "state-1")
	if ok {
		t.Error("state must not be reusable")
	}
	ok, _ = store.ConsumeState(ctx, "")
	if ok {
		t.Error("empty state must be rejected")
	}
}
