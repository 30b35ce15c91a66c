// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"khrm/internal/models"
	"khrm/internal/respond"
	"khrm/internal/storage"
	"khrm/internal/store"
)

func TestStoreError_Mapping(t *testing.T) {
	tests := []struct {
		err   error
		code  int
		field string
	}{
		{fmt.Errorf("create job: %w", store.ErrSlugTaken), http.StatusConflict, "slug"},
		{store.ErrSlugExhausted, http.StatusConflict, ""},
		{store.ErrSingletonExists, http.StatusConflict, ""},
		{fmt.Errorf("create branch: %w", store.ErrDuplicate), http.StatusConflict, ""},
		{fmt.Errorf("create client: %w", store.ErrMissingReference), http.StatusBadRequest, ""},
		{fmt.Errorf("set status: %w", store.ErrInvalidStatus), http.StatusBadRequest, "status"},
		{store.ErrNotObject, http.StatusBadRequest, "content"},
		{storage.ErrDisabled, http.StatusServiceUnavailable, ""},
		{fmt.Errorf("%w: 9 bytes", storage.ErrTooLarge), http.StatusRequestEntityTooLarge, ""},
		{storage.ErrType, http.StatusUnsupportedMediaType, ""},
		{errors.New("connection reset"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			storeError(rec, httptest.NewRequest(http.MethodPost, "/admin/api/jobs", nil), tt.err)

			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if tt.field != "" {
				if fields := errorFields(t, rec); fields[tt.field] == "" {
					t.Errorf("no %q detail in %s", tt.field, rec.Body.String())
				}
			}
			if strings.Contains(rec.Body.String(), "connection reset") {
				t.Error("internal error leaked to client")
			}
		})
	}
}

func TestPathID(t *testing.T) {
	id := uuid.New()

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/offices/x", nil), "id", id.String())
	got, ok := pathID(rec, req)
	if !ok || got != id {
		t.Errorf("pathID = %v, %v; want %v, true", got, ok, id)
	}

	rec = httptest.NewRecorder()
	req = withURLParam(httptest.NewRequest(http.MethodGet, "/api/offices/x", nil), "id", "not-a-uuid")
	if _, ok := pathID(rec, req); ok {
		t.Error("malformed id accepted")
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPageRequest(t *testing.T) {
	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, models.DefaultPageSize},
		{"?page=3&page_size=10", 3, 10},
		{"?page=-2&page_size=0", 1, models.DefaultPageSize},
		{"?page=x&page_size=5000", 1, models.MaxPageSize},
	}
	for _, tt := range tests {
		got := pageRequest(httptest.NewRequest(http.MethodGet, "/api/jobs"+tt.query, nil))
		if got.Page != tt.page || got.PageSize != tt.pageSize {
			t.Errorf("%q: got %+v, want page=%d size=%d", tt.query, got, tt.page, tt.pageSize)
		}
	}
}

func TestBoolParam(t *testing.T) {
	for query, want := range map[string]bool{
		"?featured=true": true,
		"?featured=1":    true,
		"?featured=YES":  true,
		"?featured=no":   false,
		"?featured=":     false,
		"":               false,
	} {
		r := httptest.NewRequest(http.MethodGet, "/api/jobs"+query, nil)
		if got := boolParam(r, "featured"); got != want {
			t.Errorf("%q: got %v, want %v", query, got, want)
		}
	}
}

func TestIDParam(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/api/jobs?category_id="+id.String()+"&client_id=nope", nil)
	if got := idParam(r, "category_id"); got == nil || *got != id {
		t.Errorf("category_id = %v, want %s", got, id)
	}
	if got := idParam(r, "client_id"); got != nil {
		t.Errorf("malformed client_id = %v, want nil", got)
	}
	if got := idParam(r, "industry_id"); got != nil {
		t.Errorf("missing industry_id = %v, want nil", got)
	}
}

func TestFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/company", nil)

	rec := httptest.NewRecorder()
	if found[models.Company](rec, req, nil, nil) || rec.Code != http.StatusNotFound {
		t.Errorf("nil record: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	if found[models.Company](rec, req, nil, errors.New("boom")) || rec.Code != http.StatusInternalServerError {
		t.Errorf("error: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	if !found(rec, req, &models.Company{}, nil) {
		t.Error("present record reported missing")
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{"))

	var v map[string]any
	if decodeJSON(rec, req, &v) {
		t.Fatal("malformed body accepted")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestList_NilBecomesEmpty(t *testing.T) {
	got := list[models.FAQ](nil)
	if got == nil || len(got) != 0 {
		t.Errorf("list(nil) = %#v", got)
	}
}

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		in, want string
		bad      bool
	}{
		{"", "", false},
		{"Hello World", "hello-world", false},
		{"already-ok", "already-ok", false},
		{"!!!", "!!!", true},
	}
	for _, tt := range tests {
		fe := respond.FieldErrors{}
		s := tt.in
		normalizeSlug(&s, fe)
		if s != tt.want {
			t.Errorf("normalizeSlug(%q) = %q, want %q", tt.in, s, tt.want)
		}
		if _, bad := fe["slug"]; bad != tt.bad {
			t.Errorf("normalizeSlug(%q) error = %v, want %v", tt.in, bad, tt.bad)
		}
	}
}
