// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"khrm/internal/models"
	"khrm/internal/respond"
	"khrm/internal/storage"
	"khrm/internal/store"
)

// maxJSONBody caps admin and public JSON request bodies.
const maxJSONBody = 1 << 20

// decodeJSON reads the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Malformed JSON body.", err.Error())
		return false
	}
	return true
}

// pathID parses the {id} URL parameter. A malformed id cannot name any
// record, so it answers 404.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, r)
		return uuid.Nil, false
	}
	return id, true
}

// pageRequest reads ?page= and ?page_size=, clamped to the API limits.
func pageRequest(r *http.Request) models.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))
	return models.NewPageRequest(page, size)
}

// boolParam reports whether query parameter name is set to a true value.
func boolParam(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// idParam parses the query parameter name as a UUID. Missing or malformed
// values give nil.
func idParam(r *http.Request, name string) *uuid.UUID {
	id, err := uuid.Parse(r.URL.Query().Get(name))
	if err != nil {
		return nil
	}
	return &id
}

// found writes the error or 404 for a store lookup and reports whether v
// can be used.
func found[T any](w http.ResponseWriter, r *http.Request, v *T, err error) bool {
	if err != nil {
		respond.Internal(w, r, err)
		return false
	}
	if v == nil {
		respond.NotFound(w, r)
		return false
	}
	return true
}

// storeError maps store and storage sentinels onto API errors.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrSlugTaken):
		respond.Error(w, r, http.StatusConflict, "Slug already in use.",
			respond.FieldErrors{"slug": "Another record already uses this slug."})
	case errors.Is(err, store.ErrSlugExhausted):
		respond.Error(w, r, http.StatusConflict, "Could not assign a unique slug, please retry.", nil)
	case errors.Is(err, store.ErrSingletonExists):
		respond.Error(w, r, http.StatusConflict, "Record already exists.", nil)
	case errors.Is(err, store.ErrDuplicate):
		respond.Error(w, r, http.StatusConflict, "Record already exists.", nil)
	case errors.Is(err, store.ErrMissingReference):
		respond.Error(w, r, http.StatusBadRequest, "Referenced record does not exist.", nil)
	case errors.Is(err, store.ErrInvalidStatus):
		respond.Invalid(w, r, respond.FieldErrors{"status": "Invalid status."})
	case errors.Is(err, store.ErrNotObject):
		respond.Invalid(w, r, respond.FieldErrors{"content": "Must be a JSON object."})
	case errors.Is(err, storage.ErrDisabled):
		respond.Error(w, r, http.StatusServiceUnavailable, "File uploads are not available.", nil)
	case errors.Is(err, storage.ErrTooLarge):
		respond.Error(w, r, http.StatusRequestEntityTooLarge, "File too large.", nil)
	case errors.Is(err, storage.ErrType):
		respond.Error(w, r, http.StatusUnsupportedMediaType, "File type not allowed.", nil)
	default:
		respond.Internal(w, r, err)
	}
}

// list wraps a plain slice so list endpoints always encode an array.
func list[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
