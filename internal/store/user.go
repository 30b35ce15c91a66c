// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"khrm/internal/models"
)

// UserStore handles all staff account database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, password_hash, display_name, role, provider,
	totp_secret, totp_enabled, last_login_at, created_at, updated_at`

func scanUser(sc scanner) (*models.User, error) {
	var u models.User
	err := sc.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role, &u.Provider,
		&u.TOTPSecret, &u.TOTPEnabled, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail retrieves a user by email, case-insensitively. Returns nil if not found.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne(ctx, s.db, scanUser, "user by email",
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, strings.TrimSpace(email))
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return findOne(ctx, s.db, scanUser, "user by id",
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// List returns all users ordered by creation date.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	return findAll(ctx, s.db, scanUser, "users",
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
}

// Create inserts a password account with a bcrypt-hashed password.
func (s *UserStore) Create(ctx context.Context, email, password, displayName string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, display_name, role, provider)
		VALUES ($1, $2, $3, $4, 'password')
		RETURNING `+userColumns,
		email, string(hash), displayName, role,
	))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// ProvisionSSO returns the account for an SSO-verified email, creating an
// admin account on first sign-in. Concurrent first logins converge on the
// same row.
func (s *UserStore) ProvisionSSO(ctx context.Context, email, displayName string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, display_name, role, provider)
		VALUES ($1, $2, 'admin', 'google')
		ON CONFLICT (LOWER(email)) DO UPDATE
			SET display_name = CASE WHEN users.display_name = '' THEN EXCLUDED.display_name ELSE users.display_name END
		RETURNING `+userColumns,
		strings.TrimSpace(email), displayName,
	))
	if err != nil {
		return nil, fmt.Errorf("provision sso user: %w", err)
	}
	return u, nil
}

// TouchLogin records a successful sign-in.
func (s *UserStore) TouchLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("touch login: %w", err)
	}
	return nil
}

// SetRole changes a user's role.
func (s *UserStore) SetRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("set role %q: %w", role, ErrInvalidStatus)
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2
	`, role, userID)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// SetTOTPSecret saves the TOTP secret for a user (during 2FA setup).
func (s *UserStore) SetTOTPSecret(ctx context.Context, userID uuid.UUID, secret string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = $1, updated_at = NOW() WHERE id = $2
	`, secret, userID)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

// EnableTOTP marks 2FA as active for a user (after successful code verification).
func (s *UserStore) EnableTOTP(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// ResetTOTP clears the TOTP secret and disables 2FA for a user.
// The user will be forced to set up 2FA again on their next login.
func (s *UserStore) ResetTOTP(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = NULL, totp_enabled = FALSE, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("reset totp: %w", err)
	}
	return nil
}

// Delete removes a user by ID.
func (s *UserStore) Delete(ctx context.Context, userID uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "users", userID)
}

// CheckPassword verifies a plaintext password against the user's stored hash.
// SSO-only accounts never match.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	if !user.HasPassword() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// AllowedEmailStore manages the Google SSO allow-list.
type AllowedEmailStore struct {
	db *sql.DB
}

// NewAllowedEmailStore creates a new AllowedEmailStore.
func NewAllowedEmailStore(db *sql.DB) *AllowedEmailStore {
	return &AllowedEmailStore{db: db}
}

const allowedEmailColumns = `id, email, created_at, updated_at`

func scanAllowedEmail(sc scanner) (*models.AllowedEmail, error) {
	var a models.AllowedEmail
	if err := sc.Scan(&a.ID, &a.Email, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// IsAllowed reports whether email is on the allow-list, ignoring case.
func (s *AllowedEmailStore) IsAllowed(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	var ok bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM allowed_emails WHERE LOWER(email) = LOWER($1))
	`, email).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check allowed email: %w", err)
	}
	return ok, nil
}

// List returns every allowed email alphabetically.
func (s *AllowedEmailStore) List(ctx context.Context) ([]models.AllowedEmail, error) {
	return findAll(ctx, s.db, scanAllowedEmail, "allowed emails",
		`SELECT `+allowedEmailColumns+` FROM allowed_emails ORDER BY LOWER(email)`)
}

// Add inserts email. Adding an address already present in any case is a
// no-op that returns the existing row.
func (s *AllowedEmailStore) Add(ctx context.Context, email string) (*models.AllowedEmail, error) {
	email = strings.TrimSpace(email)
	a, err := scanAllowedEmail(s.db.QueryRowContext(ctx, `
		INSERT INTO allowed_emails (email) VALUES ($1)
		ON CONFLICT (LOWER(email)) DO UPDATE SET updated_at = allowed_emails.updated_at
		RETURNING `+allowedEmailColumns, email))
	if err != nil {
		return nil, fmt.Errorf("add allowed email: %w", err)
	}
	return a, nil
}

// Remove deletes email from the allow-list, ignoring case.
func (s *AllowedEmailStore) Remove(ctx context.Context, email string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM allowed_emails WHERE LOWER(email) = LOWER($1)`, strings.TrimSpace(email))
	if err != nil {
		return false, fmt.Errorf("remove allowed email: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemoveByID deletes an allow-list entry by id.
func (s *AllowedEmailStore) RemoveByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "allowed_emails", id)
}
