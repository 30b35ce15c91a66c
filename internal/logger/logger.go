// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package logger builds the process-wide slog logger. Development gets a
// readable text handler; production gets JSON. When a Sentry DSN is
// configured, warnings and errors are forwarded to Sentry as well.
package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Options configures New.
type Options struct {
	Dev         bool
	SentryDSN   string
	Environment string
	Release     string
	Output      io.Writer
}

// New creates the application logger. Context extractors add request-scoped
// attributes (request ID, user) to every record regardless of destination.
func New(opts Options, extractors ...ContextExtractor) *slog.Logger {
	base := baseHandler(opts)

	if opts.SentryDSN == "" {
		return slog.New(NewHandlerDecorator(base, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.SentryDSN,
		Environment: opts.Environment,
		Release:     opts.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("sentry init failed, logging to stdout only", "error", err)
		return slog.New(NewHandlerDecorator(base, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(NewHandlerDecorator(newMultiHandler(base, sentryHandler), extractors...))
}

// Flush waits for buffered Sentry events. Safe to call when Sentry was
// never initialised.
func Flush() {
	sentry.Flush(2 * time.Second)
}

func baseHandler(opts Options) slog.Handler {
	out := opts.Output
	if out == nil {
		out = stdout
	}
	if opts.Dev {
		return slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
}
