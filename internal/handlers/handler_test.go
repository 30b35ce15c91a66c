// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Integration tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"khrm/internal/adminmenu"
	"khrm/internal/database"
	"khrm/internal/mailer"
	"khrm/internal/middleware"
	"khrm/internal/models"
	"khrm/internal/render"
	"khrm/internal/session"
	"khrm/internal/storage"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "khrm")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "khrm")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// fakeNotifier records notifications instead of queueing them.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []mailer.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n mailer.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
}

func (f *fakeNotifier) last() (mailer.Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return mailer.Notification{}, false
	}
	return f.sent[len(f.sent)-1], true
}

// fakeFiles keeps uploads in memory and records removals.
type fakeFiles struct {
	mu      sync.Mutex
	puts    map[string][]byte
	removed []string
	err     error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{puts: make(map[string][]byte)}
}

func (f *fakeFiles) Put(_ context.Context, kind storage.Kind, filename string, body io.Reader, size int64) (*storage.Stored, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	key := kind.Prefix + "/" + uuid.NewString() + "-" + filename
	f.mu.Lock()
	f.puts[key] = data
	f.mu.Unlock()

	st := &storage.Stored{Key: key, ContentType: "application/pdf", Size: int64(len(data))}
	if !kind.Private {
		st.URL = "https://files.test/" + key
	}
	return st, nil
}

func (f *fakeFiles) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.test/" + key, nil
}

func (f *fakeFiles) Remove(_ context.Context, ref string, private bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	bucket := "public"
	if private {
		bucket = "private"
	}
	f.removed = append(f.removed, bucket+":"+ref)
	return nil
}

func (f *fakeFiles) removals() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}

// fakeCache counts invalidations.
type fakeCache struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeCache) InvalidateAll(context.Context) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeCache) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB       *sql.DB
	Stores   *Stores
	Files    *fakeFiles
	Notifier *fakeNotifier
	Cache    *fakeCache
	API      *API
	Admin    *Admin
}

// newTestEnv creates a complete test environment backed by PostgreSQL.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	env := newEnv(t, NewStores(db))
	env.DB = db
	return env
}

// newEnv wires handlers around stores. Tests that never reach the database
// pass NewStores(nil).
func newEnv(t *testing.T, stores *Stores) *testEnv {
	t.Helper()

	renderer, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	menu, err := adminmenu.Default()
	if err != nil {
		t.Fatalf("adminmenu.Default: %v", err)
	}

	files := newFakeFiles()
	notifier := &fakeNotifier{}
	cache := &fakeCache{}
	return &testEnv{
		Stores:   stores,
		Files:    files,
		Notifier: notifier,
		Cache:    cache,
		API:      NewAPI(stores, files, notifier, "https://khrm.test/"),
		Admin:    NewAdmin(renderer, stores, menu, files, cache),
	}
}

// adminRouter mounts the admin API the way the router does, minus
// authentication, with sess injected into every request.
func (e *testEnv) adminRouter(sess *session.Data) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithSession(r.Context(), sess)))
		})
	})
	r.Route("/admin/api", e.Admin.APIRoutes)
	return r
}

// testSession creates a completed session for role.
func testSession(role models.Role) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "staff@khrm.test",
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   true,
	}
}

// withURLParam adds a chi URL parameter to a request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withSession attaches sess to the request context.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), sess))
}

// jsonRequest builds a request with v encoded as the JSON body.
func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	var body io.Reader = http.NoBody
	if v != nil {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes a JSON response body into a value of type T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

// errorFields returns the field errors of an error envelope.
func errorFields(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var env struct {
		Error struct {
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope %q: %v", rec.Body.String(), err)
	}
	return env.Error.Details
}
