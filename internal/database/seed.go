// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SeedOptions controls what Seed creates.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	// AllowedEmails are added to the SSO allow-list if missing.
	AllowedEmails []string
}

// DefaultSeed is the development seed: a local break-glass admin.
var DefaultSeed = SeedOptions{
	AdminEmail:    "admin@khrm.local",
	AdminPassword: "admin",
}

// Seed populates the database with the records the back-office needs to
// be usable. Every step only inserts when its table is empty, so Seed is
// safe to run on every start. The admin is prompted to set up 2FA on first
// login (totp_enabled = false).
func Seed(db *sql.DB, opts SeedOptions) error {
	if err := seedAdmin(db, opts); err != nil {
		return err
	}
	if err := seedCompany(db); err != nil {
		return err
	}
	if err := seedJapanLanding(db); err != nil {
		return err
	}
	for _, email := range opts.AllowedEmails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		_, err := db.Exec(`
			INSERT INTO allowed_emails (email) VALUES ($1)
			ON CONFLICT (LOWER(email)) DO NOTHING
		`, email)
		if err != nil {
			return fmt.Errorf("seed allowed email: %w", err)
		}
	}
	return nil
}

func seedAdmin(db *sql.DB, opts SeedOptions) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, provider, totp_enabled)
		VALUES ($1, $2, $3, 'admin', 'password', FALSE)
	`, opts.AdminEmail, string(hash), "Admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with break-glass admin", "email", opts.AdminEmail)
	return nil
}

func seedCompany(db *sql.DB) error {
	_, err := db.Exec(`
		INSERT INTO company (name) VALUES ('KH Recruitment')
		ON CONFLICT (singleton) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}
	return nil
}

func seedJapanLanding(db *sql.DB) error {
	_, err := db.Exec(`
		INSERT INTO japan_landing (content) VALUES ('{}'::jsonb)
		ON CONFLICT (singleton) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("seed japan landing: %w", err)
	}
	return nil
}
