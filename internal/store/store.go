// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all agency entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
// Lookups return (nil, nil) when the row does not exist.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"khrm/internal/slug"
)

var (
	// ErrSingletonExists is returned when creating a second row of a
	// single-row table such as the company profile.
	ErrSingletonExists = errors.New("record already exists")

	// ErrSlugTaken is returned when an explicitly chosen slug belongs to
	// another record.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrSlugExhausted is returned when concurrent writers keep winning the
	// race for every generated slug.
	ErrSlugExhausted = errors.New("could not assign a unique slug")

	// ErrInvalidStatus is returned for status values outside the workflow.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNotObject is returned when an opaque JSON document is not an object.
	ErrNotObject = errors.New("document must be a JSON object")

	// ErrDuplicate is returned when a value that must be unique, such as a
	// branch country, is already taken.
	ErrDuplicate = errors.New("duplicate value")

	// ErrMissingReference is returned when a record points at a parent
	// that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	maxSlugAttempts     = 10
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// slugOracle answers whether candidate is used by a row of table other
// than exclude. table is always a package constant.
func slugOracle(db *sql.DB, table string, exclude uuid.UUID) slug.Oracle {
	q := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE slug = $1 AND id <> $2)`
	return func(ctx context.Context, candidate string) (bool, error) {
		var taken bool
		if err := db.QueryRowContext(ctx, q, candidate, exclude).Scan(&taken); err != nil {
			return false, fmt.Errorf("check %s slug: %w", table, err)
		}
		return taken, nil
	}
}

// saveWithSlug assigns a slug for the record and hands it to write. The
// oracle check and the write are not atomic, so when write trips the
// table's unique slug constraint a fresh slug is assigned and write is
// retried. An explicit slug that collides is reported as ErrSlugTaken.
func saveWithSlug(ctx context.Context, db *sql.DB, table string, id uuid.UUID,
	title, existing string, write func(slug string) error,
) (string, error) {
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		s, err := slug.Assign(ctx, title, existing, slugOracle(db, table, id))
		if err != nil {
			return "", err
		}

		err = write(s)
		if err == nil {
			return s, nil
		}
		if !isSlugConflict(err, table) {
			return "", err
		}
		if existing != "" {
			return "", ErrSlugTaken
		}
		slog.Warn("slug taken concurrently, reassigning",
			"table", table, "slug", s, "attempt", attempt)
	}
	return "", ErrSlugExhausted
}

// isSlugConflict reports whether err is the unique violation on table's
// slug constraint.
func isSlugConflict(err error, table string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == table+"_slug_key"
}

// isUniqueViolation reports whether err is any unique constraint failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// constraintError translates unique and foreign key violations into the
// package's sentinel errors. Other errors pass through unchanged.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return ErrDuplicate
	case foreignKeyViolation:
		return ErrMissingReference
	}
	return err
}

// deleteByID removes one row and reports whether it existed.
func deleteByID(ctx context.Context, db *sql.DB, table string, id uuid.UUID) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", table, err)
	}
	return n > 0, nil
}

// count runs a COUNT(*) style query.
func count(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// findOne runs query and scans a single row with scan. A missing row
// yields (nil, nil).
func findOne[T any](ctx context.Context, db *sql.DB, scan func(scanner) (*T, error), what, query string, args ...any) (*T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", what, err)
	}
	return v, nil
}

// findAll runs query and scans every row with scan.
func findAll[T any](ctx context.Context, db *sql.DB, scan func(scanner) (*T, error), what, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}
