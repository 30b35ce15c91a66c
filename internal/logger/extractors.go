// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package logger

import (
	"context"
	"log/slog"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID adds the chi request ID under "request_id".
func RequestID(ctx context.Context) (slog.Attr, bool) {
	id := chimw.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}
