// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf})

	log.Info("hello", "key", "value")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "value", rec["key"])
}

func TestNew_ProductionDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf})

	log.Debug("noise")

	assert.Empty(t, buf.String())
}

func TestNew_DevelopmentWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Dev: true, Output: &buf})

	log.Debug("visible", "n", 1)

	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "n=1")
}

func TestRequestIDExtractor(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf}, RequestID)

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "req-42")
	log.InfoContext(ctx, "with id")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "req-42", rec["request_id"])
}

func TestRequestIDExtractor_Absent(t *testing.T) {
	_, ok := RequestID(context.Background())
	assert.False(t, ok)
}

func TestDecorator_DropsNilExtractors(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandlerDecorator(slog.NewJSONHandler(&buf, nil), nil, RequestID, nil)

	d, ok := h.(*handlerDecorator)
	require.True(t, ok)
	assert.Len(t, d.extractors, 1)
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := newMultiHandler(
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h).With("svc", "khrm")

	log.Info("info only")
	log.Error("both")

	assert.Contains(t, a.String(), "info only")
	assert.Contains(t, a.String(), "both")
	assert.NotContains(t, b.String(), "info only")
	assert.Contains(t, b.String(), `"svc":"khrm"`)
}
