// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"khrm/internal/models"
)

// FAQStore manages frequently asked questions.
type FAQStore struct {
	db *sql.DB
}

// NewFAQStore returns a new FAQStore.
func NewFAQStore(db *sql.DB) *FAQStore {
	return &FAQStore{db: db}
}

const faqColumns = `id, category, question, answer, display_order, is_active, created_at, updated_at`

func scanFAQ(sc scanner) (*models.FAQ, error) {
	var f models.FAQ
	err := sc.Scan(&f.ID, &f.Category, &f.Question, &f.Answer, &f.DisplayOrder, &f.IsActive,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns questions grouped by category and display order. An empty
// category matches all.
func (s *FAQStore) List(ctx context.Context, category string, activeOnly bool) ([]models.FAQ, error) {
	w := &where{}
	if activeOnly {
		w.raw("is_active")
	}
	if category != "" {
		w.add("category = $%d", category)
	}
	return findAll(ctx, s.db, scanFAQ, "faqs",
		`SELECT `+faqColumns+` FROM faqs`+w.String()+` ORDER BY category, display_order, question`, w.args...)
}

// FindByID retrieves a question. Returns nil if not found.
func (s *FAQStore) FindByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	return findOne(ctx, s.db, scanFAQ, "faq", `SELECT `+faqColumns+` FROM faqs WHERE id = $1`, id)
}

// Create inserts a question.
func (s *FAQStore) Create(ctx context.Context, f *models.FAQ) (*models.FAQ, error) {
	if f.Category == "" {
		f.Category = "general"
	}
	created, err := scanFAQ(s.db.QueryRowContext(ctx, `
		INSERT INTO faqs (category, question, answer, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+faqColumns,
		f.Category, f.Question, f.Answer, f.DisplayOrder, f.IsActive))
	if err != nil {
		return nil, fmt.Errorf("create faq: %w", err)
	}
	return created, nil
}

// Update overwrites a question.
func (s *FAQStore) Update(ctx context.Context, f *models.FAQ) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE faqs SET category = $1, question = $2, answer = $3, display_order = $4,
			is_active = $5, updated_at = NOW()
		WHERE id = $6`,
		f.Category, f.Question, f.Answer, f.DisplayOrder, f.IsActive, f.ID)
	if err != nil {
		return fmt.Errorf("update faq: %w", err)
	}
	return nil
}

// Delete removes a question.
func (s *FAQStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "faqs", id)
}

// PolicyStore manages the legal pages.
type PolicyStore struct {
	db *sql.DB
}

// NewPolicyStore returns a new PolicyStore.
func NewPolicyStore(db *sql.DB) *PolicyStore {
	return &PolicyStore{db: db}
}

const policyColumns = `id, kind, title, slug, content, is_active, created_at, updated_at`

func scanPolicy(sc scanner) (*models.Policy, error) {
	var p models.Policy
	err := sc.Scan(&p.ID, &p.Kind, &p.Title, &p.Slug, &p.Content, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every policy version, newest first.
func (s *PolicyStore) List(ctx context.Context) ([]models.Policy, error) {
	return findAll(ctx, s.db, scanPolicy, "policies",
		`SELECT `+policyColumns+` FROM policies ORDER BY kind, updated_at DESC`)
}

// Current returns the newest active policy of kind. Returns nil if none.
func (s *PolicyStore) Current(ctx context.Context, kind models.PolicyKind) (*models.Policy, error) {
	return findOne(ctx, s.db, scanPolicy, "current policy", `
		SELECT `+policyColumns+` FROM policies
		WHERE kind = $1 AND is_active ORDER BY updated_at DESC LIMIT 1`, kind)
}

// FindByID retrieves a policy. Returns nil if not found.
func (s *PolicyStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	return findOne(ctx, s.db, scanPolicy, "policy", `SELECT `+policyColumns+` FROM policies WHERE id = $1`, id)
}

// Create inserts a policy version.
func (s *PolicyStore) Create(ctx context.Context, p *models.Policy) (*models.Policy, error) {
	if !p.Kind.Valid() {
		return nil, fmt.Errorf("create policy: %w: %q", ErrInvalidStatus, p.Kind)
	}
	var created *models.Policy
	_, err := saveWithSlug(ctx, s.db, "policies", uuid.Nil, p.Title, p.Slug, func(slug string) error {
		var err error
		created, err = scanPolicy(s.db.QueryRowContext(ctx, `
			INSERT INTO policies (kind, title, slug, content, is_active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+policyColumns,
			p.Kind, p.Title, slug, p.Content, p.IsActive))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create policy: %w", err)
	}
	return created, nil
}

// Update overwrites a policy version.
func (s *PolicyStore) Update(ctx context.Context, p *models.Policy) error {
	if !p.Kind.Valid() {
		return fmt.Errorf("update policy: %w: %q", ErrInvalidStatus, p.Kind)
	}
	assigned, err := saveWithSlug(ctx, s.db, "policies", p.ID, p.Title, p.Slug, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE policies SET kind = $1, title = $2, slug = $3, content = $4, is_active = $5,
				updated_at = NOW()
			WHERE id = $6`,
			p.Kind, p.Title, slug, p.Content, p.IsActive, p.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	p.Slug = assigned
	return nil
}

// Delete removes a policy version.
func (s *PolicyStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "policies", id)
}
