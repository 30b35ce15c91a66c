// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	w.add("j.country = $%d", "Japan")
	w.raw("j.status = 'open'")
	w.add("(j.title ILIKE $%[1]d OR j.location ILIKE $%[1]d)", "%weld%")

	assert.Equal(t,
		" WHERE j.country = $1 AND j.status = 'open' AND (j.title ILIKE $2 OR j.location ILIKE $2)",
		w.String())
	assert.Equal(t, []any{"Japan", "%weld%"}, w.args)

	suffix, args := w.limit(20, 40)
	assert.Equal(t, " LIMIT $3 OFFSET $4", suffix)
	assert.Equal(t, []any{"Japan", "%weld%", 20, 40}, args)
	assert.Len(t, w.args, 2, "limit must not mutate the filter args")
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%welder%", likePattern(" welder "))
	assert.Equal(t, `%100\%\_x\\%`, likePattern(`100%_x\`))
}

func TestIsSlugConflict(t *testing.T) {
	conflict := &pgconn.PgError{Code: "23505", ConstraintName: "jobs_slug_key"}
	wrapped := fmt.Errorf("insert: %w", conflict)

	assert.True(t, isSlugConflict(conflict, "jobs"))
	assert.True(t, isSlugConflict(wrapped, "jobs"))
	assert.False(t, isSlugConflict(conflict, "industries"))
	assert.False(t, isSlugConflict(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_idx"}, "jobs"))
	assert.False(t, isSlugConflict(&pgconn.PgError{Code: "23503", ConstraintName: "jobs_slug_key"}, "jobs"))
	assert.False(t, isSlugConflict(errors.New("boom"), "jobs"))

	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestConstraintError(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_branches_country"})
	missing := &pgconn.PgError{Code: "23503", ConstraintName: "clients_industry_id_fkey"}
	other := errors.New("boom")

	assert.ErrorIs(t, constraintError(unique), ErrDuplicate)
	assert.ErrorIs(t, constraintError(missing), ErrMissingReference)
	assert.Equal(t, other, constraintError(other))
	assert.NoError(t, constraintError(nil))
}
