// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"khrm/internal/respond"
	"khrm/internal/slug"
)

// resource is the JSON CRUD surface of one entity type. Operations left
// nil are not routed.
type resource[T any] struct {
	admin *Admin

	list   func(r *http.Request) (any, error)
	find   func(ctx context.Context, id uuid.UUID) (*T, error)
	create func(ctx context.Context, v *T) (*T, error)
	update func(ctx context.Context, v *T) error
	remove func(ctx context.Context, id uuid.UUID) (bool, error)

	// setID pins the record id from the URL over whatever the body says.
	setID func(v *T, id uuid.UUID)
	// prepare normalises v before validation and may add field errors.
	prepare func(r *http.Request, v *T, fe respond.FieldErrors)
	// file names the stored object removed along with a deleted record.
	file func(v *T) (ref string, private bool)
}

func (res resource[T]) routes(r chi.Router) {
	r.Get("/", res.List)
	if res.create != nil {
		r.Post("/", res.Create)
	}
	r.Get("/{id}", res.Get)
	if res.update != nil {
		r.Put("/{id}", res.Update)
		r.Patch("/{id}", res.Update)
	}
	if res.remove != nil {
		r.Delete("/{id}", res.Delete)
	}
}

func (res resource[T]) List(w http.ResponseWriter, r *http.Request) {
	out, err := res.list(r)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, out)
}

func (res resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := res.find(r.Context(), id)
	if found(w, r, v, err) {
		respond.JSON(w, r, http.StatusOK, v)
	}
}

func (res resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	v := new(T)
	if !decodeJSON(w, r, v) || !res.check(w, r, v) {
		return
	}
	created, err := res.create(r.Context(), v)
	if err != nil {
		storeError(w, r, err)
		return
	}
	res.admin.invalidate(r.Context())
	respond.JSON(w, r, http.StatusCreated, created)
}

// Update applies the body on top of the stored record, so omitted fields
// keep their values.
func (res resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	v, err := res.find(ctx, id)
	if !found(w, r, v, err) {
		return
	}
	if !decodeJSON(w, r, v) {
		return
	}
	res.setID(v, id)
	if !res.check(w, r, v) {
		return
	}
	if err := res.update(ctx, v); err != nil {
		storeError(w, r, err)
		return
	}
	res.admin.invalidate(ctx)

	updated, err := res.find(ctx, id)
	if found(w, r, updated, err) {
		respond.JSON(w, r, http.StatusOK, updated)
	}
}

func (res resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	var v *T
	if res.file != nil {
		var err error
		v, err = res.find(ctx, id)
		if !found(w, r, v, err) {
			return
		}
	}
	deleted, err := res.remove(ctx, id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if !deleted {
		respond.NotFound(w, r)
		return
	}
	if v != nil {
		ref, private := res.file(v)
		res.admin.removeFile(ctx, ref, private)
	}
	res.admin.invalidate(ctx)
	w.WriteHeader(http.StatusNoContent)
}

// check runs prepare and the struct tag validation, answering 400 with
// every field error found.
func (res resource[T]) check(w http.ResponseWriter, r *http.Request, v *T) bool {
	fe := respond.FieldErrors{}
	if res.prepare != nil {
		res.prepare(r, v, fe)
	}
	for field, msg := range fieldErrors(v) {
		fe.Add(field, msg)
	}
	if len(fe) > 0 {
		respond.Invalid(w, r, fe)
		return false
	}
	return true
}

// normalizeSlug canonicalises a staff-typed slug. A slug that normalises
// to nothing is an error rather than a silent regeneration.
func normalizeSlug(s *string, fe respond.FieldErrors) {
	if *s == "" {
		return
	}
	n := slug.Normalize(*s)
	if n == "" {
		fe.Add("slug", "Use letters, digits and hyphens.")
		return
	}
	*s = n
}
