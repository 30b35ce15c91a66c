// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	"khrm/internal/mailer"
)

// NotifyArgs carries one staff notification.
type NotifyArgs struct {
	Notification mailer.Notification `json:"notification"`
}

// Kind implements river.JobArgs.
func (NotifyArgs) Kind() string { return "notify_staff" }

// InsertOpts implements river.JobArgsWithInsertOpts.
func (NotifyArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: 5}
}

// NotifyWorker emails a notification to the configured staff addresses.
type NotifyWorker struct {
	river.WorkerDefaults[NotifyArgs]
	sender     mailer.Sender
	recipients []string
}

// Work implements river.Worker.
func (w *NotifyWorker) Work(ctx context.Context, job *river.Job[NotifyArgs]) error {
	if len(w.recipients) == 0 {
		slog.DebugContext(ctx, "notification dropped, no recipients", "kind", job.Args.Notification.Kind)
		return nil
	}
	email, err := mailer.Build(job.Args.Notification, w.recipients)
	if err != nil {
		return river.JobCancel(err)
	}
	return w.sender.Send(ctx, email)
}

// CloseExpiredArgs triggers the deadline sweep.
type CloseExpiredArgs struct{}

// Kind implements river.JobArgs.
func (CloseExpiredArgs) Kind() string { return "close_expired_jobs" }

// CloseExpiredWorker closes open jobs whose deadline has passed.
type CloseExpiredWorker struct {
	river.WorkerDefaults[CloseExpiredArgs]
	expirer Expirer
	now     func() time.Time
}

// Work implements river.Worker.
func (w *CloseExpiredWorker) Work(ctx context.Context, _ *river.Job[CloseExpiredArgs]) error {
	n, err := w.expirer.CloseExpired(ctx, w.now())
	if err != nil {
		return err
	}
	if n > 0 {
		slog.InfoContext(ctx, "closed expired jobs", "count", n)
	}
	return nil
}
