// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command khrm runs the recruitment agency CMS: the public JSON API, the
// staff back-office and the background job runner. Maintenance commands
// (migrations, seeding, the SSO allow-list) share the same binary.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"khrm/internal/config"
	"khrm/internal/database"
	"khrm/internal/logger"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "khrm",
	Short:         "Recruitment agency CMS server",
	Long:          "khrm serves the public site API and the staff back-office.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		slog.SetDefault(logger.New(logger.Options{
			Dev:         cfg.IsDev(),
			SentryDSN:   cfg.SentryDSN,
			Environment: cfg.Env,
			Release:     version,
		}, logger.RequestID))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, allowEmailCmd, menuCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// openDB connects to PostgreSQL and applies pending migrations.
func openDB() (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}
