// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package jobs runs background work on River: staff notification emails
// and the periodic sweep that closes jobs past their deadline.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/robfig/cron/v3"

	"khrm/internal/mailer"
)

// Expirer closes open jobs whose application deadline is before today.
type Expirer interface {
	CloseExpired(ctx context.Context, today time.Time) (int64, error)
}

// Config wires the runner to its collaborators.
type Config struct {
	Sender        mailer.Sender
	Recipients    []string
	Expirer       Expirer
	CloseSchedule string // five-field cron expression
	Logger        *slog.Logger
}

// Runner owns the River client.
type Runner struct {
	client *river.Client[pgx.Tx]
	logger *slog.Logger
}

// Migrate applies River's own schema migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("river migrator: %w", err)
	}
	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return fmt.Errorf("river migrate: %w", err)
	}
	for _, v := range res.Versions {
		slog.Info("river migration applied", "version", v.Version)
	}
	return nil
}

// New builds a runner. Jobs may be enqueued before Start.
func New(pool *pgxpool.Pool, cfg Config) (*Runner, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Sender == nil {
		cfg.Sender = mailer.Noop{}
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &NotifyWorker{sender: cfg.Sender, recipients: cfg.Recipients})

	var periodic []*river.PeriodicJob
	if cfg.Expirer != nil {
		schedule, err := ParseSchedule(cfg.CloseSchedule)
		if err != nil {
			return nil, fmt.Errorf("jobs: invalid close schedule %q: %w", cfg.CloseSchedule, err)
		}
		river.AddWorker(workers, &CloseExpiredWorker{expirer: cfg.Expirer, now: time.Now})
		periodic = append(periodic, river.NewPeriodicJob(
			schedule,
			func() (river.JobArgs, *river.InsertOpts) {
				return CloseExpiredArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		))
	}

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers:      workers,
		PeriodicJobs: periodic,
		Logger:       cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("jobs: create client: %w", err)
	}
	return &Runner{client: client, logger: cfg.Logger}, nil
}

// Start begins working jobs.
func (r *Runner) Start(ctx context.Context) error {
	if err := r.client.Start(ctx); err != nil {
		return fmt.Errorf("jobs: start: %w", err)
	}
	r.logger.Info("job runner started")
	return nil
}

// Stop waits for running jobs to finish.
func (r *Runner) Stop(ctx context.Context) error {
	if err := r.client.Stop(ctx); err != nil {
		return fmt.Errorf("jobs: stop: %w", err)
	}
	r.logger.Info("job runner stopped")
	return nil
}

// Notify enqueues a staff notification. Failures are logged, never
// returned, so a broken queue does not lose the submission itself.
func (r *Runner) Notify(ctx context.Context, n mailer.Notification) {
	if _, err := r.client.Insert(ctx, NotifyArgs{Notification: n}, nil); err != nil {
		slog.ErrorContext(ctx, "enqueue notification failed", "kind", n.Kind, "error", err)
	}
}

// cronSchedule adapts a robfig/cron schedule to River.
type cronSchedule struct {
	schedule cron.Schedule
}

func (c *cronSchedule) Next(t time.Time) time.Time {
	return c.schedule.Next(t)
}

// ParseSchedule parses a standard five-field cron expression.
func ParseSchedule(expr string) (river.PeriodicSchedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	s, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &cronSchedule{schedule: s}, nil
}
