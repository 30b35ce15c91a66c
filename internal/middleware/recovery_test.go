// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func panicking() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

func TestRecoverer_Page(t *testing.T) {
	captureLog(t)
	rr := httptest.NewRecorder()
	Recoverer(panicking()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Internal Server Error") {
		t.Errorf("body: %q", rr.Body.String())
	}
}

func TestRecoverer_API(t *testing.T) {
	buf := captureLog(t)
	rr := httptest.NewRecorder()
	Recoverer(panicking()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"success":false`) {
		t.Errorf("expected envelope, got %q", rr.Body.String())
	}
	if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected panic log, got %s", buf.String())
	}
}

func TestRecoverer_NoPanic(t *testing.T) {
	next, called := okHandler()
	rr := httptest.NewRecorder()
	Recoverer(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if !*called || rr.Code != http.StatusOK {
		t.Errorf("expected pass-through, got %d", rr.Code)
	}
}

func TestRecoverer_AbortHandlerRepanics(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
