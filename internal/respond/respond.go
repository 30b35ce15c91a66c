// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package respond writes JSON responses in the API's shared shape. Errors
// always use the envelope {"success": false, "error": {"message", "details"}}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorBody is the error half of the envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the body of every API error response.
type Envelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode json response", "path", r.URL.Path, "error", err)
	}
}

// Error writes the error envelope. details may be nil.
func Error(w http.ResponseWriter, r *http.Request, status int, message string, details any) {
	JSON(w, r, status, Envelope{Error: ErrorBody{Message: message, Details: details}})
}

// FieldErrors collects per-field validation messages.
type FieldErrors map[string]string

// Add records msg for field unless the field already has one.
func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

// Invalid writes a 400 with the field messages as details.
func Invalid(w http.ResponseWriter, r *http.Request, fields FieldErrors) {
	Error(w, r, http.StatusBadRequest, "Validation failed.", fields)
}

// NotFound writes a 404 envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, r, http.StatusNotFound, "Not found.", nil)
}

// Internal logs err and writes a 500 envelope without leaking it.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	Error(w, r, http.StatusInternalServerError, "Internal server error.", nil)
}

// IsAPI reports whether r targets a JSON endpoint rather than an HTML page.
func IsAPI(r *http.Request) bool {
	p := r.URL.Path
	return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/admin/api/")
}
