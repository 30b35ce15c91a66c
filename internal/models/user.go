// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a staff member's permission level in the back-office.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// Allows reports whether a user holding r satisfies a requirement of need.
// Admin satisfies everything; editor satisfies only editor requirements.
func (r Role) Allows(need Role) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleEditor:
		return need == RoleEditor
	default:
		return false
	}
}

// AuthProvider records how a staff account was created.
type AuthProvider string

const (
	AuthPassword AuthProvider = "password"
	AuthGoogle   AuthProvider = "google"
)

// User represents a back-office staff account.
type User struct {
	ID           uuid.UUID    `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // empty for SSO-only accounts
	DisplayName  string       `json:"display_name"`
	Role         Role         `json:"role"`
	Provider     AuthProvider `json:"provider"`
	TOTPSecret   *string      `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool         `json:"totp_enabled"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Needs2FASetup returns true if the user has not completed 2FA enrollment.
// All users must set up 2FA on their first login.
func (u *User) Needs2FASetup() bool {
	return !u.TOTPEnabled
}

// HasPassword reports whether the account can use the local password form.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// AllowedEmail is one entry of the Google SSO allow-list.
type AllowedEmail struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
