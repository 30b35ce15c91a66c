// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"khrm/internal/models"
)

// JapanStore manages the Japan landing document and its programmes.
type JapanStore struct {
	db *sql.DB
}

// NewJapanStore returns a new JapanStore.
func NewJapanStore(db *sql.DB) *JapanStore {
	return &JapanStore{db: db}
}

func scanLanding(sc scanner) (*models.JapanLanding, error) {
	var (
		l   models.JapanLanding
		raw []byte
	)
	if err := sc.Scan(&l.ID, &raw, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Content = json.RawMessage(raw)
	return &l, nil
}

// Landing returns the landing document. Returns nil if it was never seeded.
func (s *JapanStore) Landing(ctx context.Context) (*models.JapanLanding, error) {
	return findOne(ctx, s.db, scanLanding, "japan landing",
		`SELECT id, content, created_at, updated_at FROM japan_landing LIMIT 1`)
}

// PutLanding replaces the landing content, creating the row on first use.
// content must be a JSON object.
func (s *JapanStore) PutLanding(ctx context.Context, content json.RawMessage) (*models.JapanLanding, error) {
	if !isJSONObject(content) {
		return nil, fmt.Errorf("put japan landing: %w", ErrNotObject)
	}
	l, err := scanLanding(s.db.QueryRowContext(ctx, `
		INSERT INTO japan_landing (content) VALUES ($1::jsonb)
		ON CONFLICT (singleton) DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
		RETURNING id, content, created_at, updated_at`, string(content)))
	if err != nil {
		return nil, fmt.Errorf("put japan landing: %w", err)
	}
	return l, nil
}

const programColumns = `id, program_type, subtitle, slug, overview, training_duration, target_level,
	objective, image_url, details, is_active, created_at, updated_at`

func scanProgram(sc scanner) (*models.JapanProgram, error) {
	var (
		p       models.JapanProgram
		details []byte
	)
	err := sc.Scan(&p.ID, &p.ProgramType, &p.Subtitle, &p.Slug, &p.Overview, &p.TrainingDuration,
		&p.TargetLevel, &p.Objective, &p.ImageURL, &details, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Details = json.RawMessage(details)
	return &p, nil
}

// Programs returns the programmes; activeOnly restricts to public ones.
func (s *JapanStore) Programs(ctx context.Context, activeOnly bool) ([]models.JapanProgram, error) {
	return findAll(ctx, s.db, scanProgram, "japan programs", `
		SELECT `+programColumns+` FROM japan_programs
		WHERE ($1 = FALSE OR is_active) ORDER BY program_type, subtitle`, activeOnly)
}

// FindProgram retrieves a programme. Returns nil if not found.
func (s *JapanStore) FindProgram(ctx context.Context, id uuid.UUID) (*models.JapanProgram, error) {
	return findOne(ctx, s.db, scanProgram, "japan program",
		`SELECT `+programColumns+` FROM japan_programs WHERE id = $1`, id)
}

// FindActiveProgramBySlug retrieves an active programme. Returns nil if not found.
func (s *JapanStore) FindActiveProgramBySlug(ctx context.Context, slug string) (*models.JapanProgram, error) {
	return findOne(ctx, s.db, scanProgram, "japan program by slug",
		`SELECT `+programColumns+` FROM japan_programs WHERE slug = $1 AND is_active`, slug)
}

// CreateProgram inserts a programme. Its slug derives from the programme
// type and subtitle.
func (s *JapanStore) CreateProgram(ctx context.Context, p *models.JapanProgram) (*models.JapanProgram, error) {
	details := detailsOrEmpty(p.Details)
	var created *models.JapanProgram
	_, err := saveWithSlug(ctx, s.db, "japan_programs", uuid.Nil, p.SlugSource(), p.Slug, func(slug string) error {
		var err error
		created, err = scanProgram(s.db.QueryRowContext(ctx, `
			INSERT INTO japan_programs (program_type, subtitle, slug, overview, training_duration,
				target_level, objective, image_url, details, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10)
			RETURNING `+programColumns,
			p.ProgramType, p.Subtitle, slug, p.Overview, p.TrainingDuration,
			p.TargetLevel, p.Objective, p.ImageURL, details, p.IsActive))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create japan program: %w", err)
	}
	return created, nil
}

// UpdateProgram overwrites a programme.
func (s *JapanStore) UpdateProgram(ctx context.Context, p *models.JapanProgram) error {
	details := detailsOrEmpty(p.Details)
	assigned, err := saveWithSlug(ctx, s.db, "japan_programs", p.ID, p.SlugSource(), p.Slug, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE japan_programs SET program_type = $1, subtitle = $2, slug = $3, overview = $4,
				training_duration = $5, target_level = $6, objective = $7, image_url = $8,
				details = $9::jsonb, is_active = $10, updated_at = NOW()
			WHERE id = $11`,
			p.ProgramType, p.Subtitle, slug, p.Overview, p.TrainingDuration,
			p.TargetLevel, p.Objective, p.ImageURL, details, p.IsActive, p.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update japan program: %w", err)
	}
	p.Slug = assigned
	return nil
}

// DeleteProgram removes a programme.
func (s *JapanStore) DeleteProgram(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "japan_programs", id)
}

func isJSONObject(raw json.RawMessage) bool {
	var m map[string]json.RawMessage
	return json.Unmarshal(raw, &m) == nil && m != nil
}

func detailsOrEmpty(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "{}"
	}
	return string(raw)
}
