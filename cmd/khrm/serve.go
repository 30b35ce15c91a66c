// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"khrm/internal/adminmenu"
	"khrm/internal/cache"
	"khrm/internal/database"
	"khrm/internal/handlers"
	"khrm/internal/jobs"
	"khrm/internal/mailer"
	"khrm/internal/middleware"
	"khrm/internal/oauth"
	"khrm/internal/render"
	"khrm/internal/router"
	"khrm/internal/session"
	"khrm/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and the job runner",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db, database.DefaultSeed); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	pool, err := database.ConnectPool(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect job pool: %w", err)
	}
	defer pool.Close()
	if err := jobs.Migrate(ctx, pool); err != nil {
		return err
	}

	valkey, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return fmt.Errorf("connect to valkey: %w", err)
	}
	defer valkey.Close()

	secure := !cfg.IsDev()
	sessions := session.NewStore(valkey, secure)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		return fmt.Errorf("initialize template renderer: %w", err)
	}

	menu, err := adminmenu.Load(cfg.AdminMenuFile)
	if err != nil {
		return err
	}

	stores := handlers.NewStores(db)

	var files handlers.FileStore
	client, err := storage.New(storage.Config{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBucket:  cfg.S3BucketPublic,
		PrivateBucket: cfg.S3BucketPrivate,
		PublicURL:     cfg.S3PublicURL,
	})
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if client != nil {
		files = client
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3BucketPublic,
			"private_bucket", cfg.S3BucketPrivate,
		)
	} else {
		slog.Warn("s3 storage not configured, uploads disabled")
	}

	var google *oauth.Google
	if cfg.GoogleSSOEnabled() {
		google, err = oauth.NewGoogle(oauth.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
		})
		if err != nil {
			return fmt.Errorf("initialize google sso: %w", err)
		}
	} else {
		slog.Warn("google sso not configured, password sign-in only")
	}

	runner, err := jobs.New(pool, jobs.Config{
		Sender:        mailer.New(cfg.ResendAPIKey, cfg.MailFrom),
		Recipients:    cfg.NotifyEmails,
		Expirer:       stores.Jobs,
		CloseSchedule: cfg.JobsCloseSchedule,
		Logger:        slog.Default(),
	})
	if err != nil {
		return err
	}

	responses := cache.NewResponseCache(valkey, cache.DefaultTTL)
	limiter := middleware.NewValkeyLimiter(valkey, "forms", cfg.PublicRateLimit, time.Minute)

	api := handlers.NewAPI(stores, files, runner, cfg.BaseURL)
	admin := handlers.NewAdmin(renderer, stores, menu, files, responses)
	auth := handlers.NewAuth(renderer, sessions, stores.Users, stores.AllowedEmails, google)

	r := router.New(sessions, api, admin, auth, router.Options{
		Secure:  secure,
		Cache:   responses.Middleware,
		Limiter: limiter,
	})

	if err := runner.Start(ctx); err != nil {
		return err
	}

	// WriteTimeout covers multipart uploads of the largest document kind.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := runner.Stop(shutdownCtx); err != nil {
		slog.Error("job runner stop failed", "error", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
