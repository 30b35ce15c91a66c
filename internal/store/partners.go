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

// ClientStore manages the employers the agency recruits for.
type ClientStore struct {
	db *sql.DB
}

// NewClientStore returns a new ClientStore.
func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

// ClientFilter narrows a client listing. Zero values match everything.
type ClientFilter struct {
	IndustryID   *uuid.UUID
	Country      string
	FeaturedOnly bool
	Limit        int
}

const clientSelect = `
	SELECT c.id, c.name, c.logo_url, c.website, c.industry_id, COALESCE(i.name, ''),
	       c.country, c.is_featured, c.display_order, c.created_at, c.updated_at
	FROM clients c
	LEFT JOIN industries i ON i.id = c.industry_id`

func scanClient(sc scanner) (*models.Client, error) {
	var c models.Client
	err := sc.Scan(
		&c.ID, &c.Name, &c.LogoURL, &c.Website, &c.IndustryID, &c.IndustryName,
		&c.Country, &c.IsFeatured, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns clients matching f, ordered for display.
func (s *ClientStore) List(ctx context.Context, f ClientFilter) ([]models.Client, error) {
	w := &where{}
	if f.IndustryID != nil {
		w.add("c.industry_id = $%d", *f.IndustryID)
	}
	if f.Country != "" {
		w.add("LOWER(c.country) = LOWER($%d)", f.Country)
	}
	if f.FeaturedOnly {
		w.raw("c.is_featured")
	}
	query := clientSelect + w.String() + ` ORDER BY c.display_order, c.name`
	args := w.args
	if f.Limit > 0 {
		var suffix string
		suffix, args = w.limit(f.Limit, 0)
		query += suffix
	}
	return findAll(ctx, s.db, scanClient, "clients", query, args...)
}

// FindByID retrieves a client. Returns nil if not found.
func (s *ClientStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return findOne(ctx, s.db, scanClient, "client", clientSelect+` WHERE c.id = $1`, id)
}

// Create inserts a client.
func (s *ClientStore) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO clients (name, logo_url, website, industry_id, country, is_featured, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		c.Name, c.LogoURL, c.Website, c.IndustryID, c.Country, c.IsFeatured, c.DisplayOrder,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", constraintError(err))
	}
	return s.FindByID(ctx, id)
}

// Update overwrites a client.
func (s *ClientStore) Update(ctx context.Context, c *models.Client) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE clients SET
			name = $1, logo_url = $2, website = $3, industry_id = $4, country = $5,
			is_featured = $6, display_order = $7, updated_at = NOW()
		WHERE id = $8`,
		c.Name, c.LogoURL, c.Website, c.IndustryID, c.Country,
		c.IsFeatured, c.DisplayOrder, c.ID)
	if err != nil {
		return fmt.Errorf("update client: %w", constraintError(err))
	}
	return nil
}

// Delete removes a client and, by cascade, its testimonials.
func (s *ClientStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "clients", id)
}

// TestimonialStore manages testimonials.
type TestimonialStore struct {
	db *sql.DB
}

// NewTestimonialStore returns a new TestimonialStore.
func NewTestimonialStore(db *sql.DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

const testimonialSelect = `
	SELECT t.id, t.client_id, COALESCE(c.name, ''), t.person_name, t.person_position,
	       t.photo_url, t.company_name, t.text, t.rating, t.is_featured,
	       t.created_at, t.updated_at
	FROM testimonials t
	LEFT JOIN clients c ON c.id = t.client_id`

func scanTestimonial(sc scanner) (*models.Testimonial, error) {
	var t models.Testimonial
	err := sc.Scan(
		&t.ID, &t.ClientID, &t.ClientName, &t.PersonName, &t.PersonPosition,
		&t.PhotoURL, &t.CompanyName, &t.Text, &t.Rating, &t.IsFeatured,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns testimonials newest first. featuredOnly narrows to the
// featured ones; a positive limit caps the result.
func (s *TestimonialStore) List(ctx context.Context, featuredOnly bool, limit int) ([]models.Testimonial, error) {
	if limit <= 0 {
		limit = -1
	}
	return findAll(ctx, s.db, scanTestimonial, "testimonials",
		testimonialSelect+` WHERE ($1 = FALSE OR t.is_featured)
		ORDER BY t.created_at DESC
		LIMIT NULLIF($2, -1)`, featuredOnly, limit)
}

// FindByID retrieves a testimonial. Returns nil if not found.
func (s *TestimonialStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	return findOne(ctx, s.db, scanTestimonial, "testimonial", testimonialSelect+` WHERE t.id = $1`, id)
}

// Create inserts a testimonial.
func (s *TestimonialStore) Create(ctx context.Context, t *models.Testimonial) (*models.Testimonial, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO testimonials (client_id, person_name, person_position, photo_url,
			company_name, text, rating, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		t.ClientID, t.PersonName, t.PersonPosition, t.PhotoURL,
		t.CompanyName, t.Text, t.Rating, t.IsFeatured,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create testimonial: %w", constraintError(err))
	}
	return s.FindByID(ctx, id)
}

// Update overwrites a testimonial.
func (s *TestimonialStore) Update(ctx context.Context, t *models.Testimonial) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE testimonials SET
			client_id = $1, person_name = $2, person_position = $3, photo_url = $4,
			company_name = $5, text = $6, rating = $7, is_featured = $8, updated_at = NOW()
		WHERE id = $9`,
		t.ClientID, t.PersonName, t.PersonPosition, t.PhotoURL,
		t.CompanyName, t.Text, t.Rating, t.IsFeatured, t.ID)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", constraintError(err))
	}
	return nil
}

// Delete removes a testimonial.
func (s *TestimonialStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "testimonials", id)
}

// BranchStore manages the countries the agency has offices in.
type BranchStore struct {
	db *sql.DB
}

// NewBranchStore returns a new BranchStore.
func NewBranchStore(db *sql.DB) *BranchStore {
	return &BranchStore{db: db}
}

// branchSelect counts the active offices in the branch country.
const branchSelect = `
	SELECT b.id, b.country,
	       (SELECT COUNT(*) FROM offices o WHERE LOWER(o.country) = LOWER(b.country) AND o.is_active),
	       b.created_at, b.updated_at
	FROM branches b`

func scanBranch(sc scanner) (*models.Branch, error) {
	var b models.Branch
	if err := sc.Scan(&b.ID, &b.Country, &b.OfficeCount, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns every branch by country.
func (s *BranchStore) List(ctx context.Context) ([]models.Branch, error) {
	return findAll(ctx, s.db, scanBranch, "branches", branchSelect+` ORDER BY b.country`)
}

// FindByID retrieves a branch. Returns nil if not found.
func (s *BranchStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	return findOne(ctx, s.db, scanBranch, "branch", branchSelect+` WHERE b.id = $1`, id)
}

// Create inserts a branch. A country already present, in any case, is
// refused with ErrDuplicate.
func (s *BranchStore) Create(ctx context.Context, b *models.Branch) (*models.Branch, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `INSERT INTO branches (country) VALUES ($1) RETURNING id`, b.Country).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create branch: %w", constraintError(err))
	}
	return s.FindByID(ctx, id)
}

// Update renames a branch.
func (s *BranchStore) Update(ctx context.Context, b *models.Branch) error {
	_, err := s.db.ExecContext(ctx, `UPDATE branches SET country = $1, updated_at = NOW() WHERE id = $2`, b.Country, b.ID)
	if err != nil {
		return fmt.Errorf("update branch: %w", constraintError(err))
	}
	return nil
}

// Delete removes a branch. Its offices are kept.
func (s *BranchStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "branches", id)
}

// LeadershipStore manages the leadership team.
type LeadershipStore struct {
	db *sql.DB
}

// NewLeadershipStore returns a new LeadershipStore.
func NewLeadershipStore(db *sql.DB) *LeadershipStore {
	return &LeadershipStore{db: db}
}

const leaderColumns = `id, name, position, bio, photo_url, email, display_order, created_at, updated_at`

func scanLeader(sc scanner) (*models.Leader, error) {
	var l models.Leader
	err := sc.Scan(&l.ID, &l.Name, &l.Position, &l.Bio, &l.PhotoURL, &l.Email, &l.DisplayOrder, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns the team in display order.
func (s *LeadershipStore) List(ctx context.Context) ([]models.Leader, error) {
	return findAll(ctx, s.db, scanLeader, "leadership",
		`SELECT `+leaderColumns+` FROM leadership ORDER BY display_order, name`)
}

// FindByID retrieves a team member. Returns nil if not found.
func (s *LeadershipStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Leader, error) {
	return findOne(ctx, s.db, scanLeader, "leader", `SELECT `+leaderColumns+` FROM leadership WHERE id = $1`, id)
}

// Create inserts a team member.
func (s *LeadershipStore) Create(ctx context.Context, l *models.Leader) (*models.Leader, error) {
	created, err := scanLeader(s.db.QueryRowContext(ctx, `
		INSERT INTO leadership (name, position, bio, photo_url, email, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+leaderColumns,
		l.Name, l.Position, l.Bio, l.PhotoURL, l.Email, l.DisplayOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("create leader: %w", err)
	}
	return created, nil
}

// Update overwrites a team member.
func (s *LeadershipStore) Update(ctx context.Context, l *models.Leader) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE leadership SET
			name = $1, position = $2, bio = $3, photo_url = $4, email = $5,
			display_order = $6, updated_at = NOW()
		WHERE id = $7`,
		l.Name, l.Position, l.Bio, l.PhotoURL, l.Email, l.DisplayOrder, l.ID)
	if err != nil {
		return fmt.Errorf("update leader: %w", err)
	}
	return nil
}

// Delete removes a team member.
func (s *LeadershipStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "leadership", id)
}

// CertificationStore manages licences and accreditations.
type CertificationStore struct {
	db *sql.DB
}

// NewCertificationStore returns a new CertificationStore.
func NewCertificationStore(db *sql.DB) *CertificationStore {
	return &CertificationStore{db: db}
}

const certificationColumns = `id, name, issuing_authority, certificate_number, issue_date,
	image_url, display_order, created_at, updated_at`

func scanCertification(sc scanner) (*models.Certification, error) {
	var c models.Certification
	err := sc.Scan(
		&c.ID, &c.Name, &c.IssuingAuthority, &c.CertificateNumber, &c.IssueDate,
		&c.ImageURL, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns certifications in display order.
func (s *CertificationStore) List(ctx context.Context) ([]models.Certification, error) {
	return findAll(ctx, s.db, scanCertification, "certifications",
		`SELECT `+certificationColumns+` FROM certifications ORDER BY display_order, name`)
}

// FindByID retrieves a certification. Returns nil if not found.
func (s *CertificationStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Certification, error) {
	return findOne(ctx, s.db, scanCertification, "certification",
		`SELECT `+certificationColumns+` FROM certifications WHERE id = $1`, id)
}

// Create inserts a certification.
func (s *CertificationStore) Create(ctx context.Context, c *models.Certification) (*models.Certification, error) {
	created, err := scanCertification(s.db.QueryRowContext(ctx, `
		INSERT INTO certifications (name, issuing_authority, certificate_number, issue_date, image_url, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+certificationColumns,
		c.Name, c.IssuingAuthority, c.CertificateNumber, c.IssueDate, c.ImageURL, c.DisplayOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("create certification: %w", err)
	}
	return created, nil
}

// Update overwrites a certification.
func (s *CertificationStore) Update(ctx context.Context, c *models.Certification) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE certifications SET
			name = $1, issuing_authority = $2, certificate_number = $3, issue_date = $4,
			image_url = $5, display_order = $6, updated_at = NOW()
		WHERE id = $7`,
		c.Name, c.IssuingAuthority, c.CertificateNumber, c.IssueDate,
		c.ImageURL, c.DisplayOrder, c.ID)
	if err != nil {
		return fmt.Errorf("update certification: %w", err)
	}
	return nil
}

// Delete removes a certification.
func (s *CertificationStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "certifications", id)
}

// FacilityStore manages training centre facilities.
type FacilityStore struct {
	db *sql.DB
}

// NewFacilityStore returns a new FacilityStore.
func NewFacilityStore(db *sql.DB) *FacilityStore {
	return &FacilityStore{db: db}
}

const facilityColumns = `id, name, description, capacity, image_url, display_order, created_at, updated_at`

func scanFacility(sc scanner) (*models.TrainingFacility, error) {
	var f models.TrainingFacility
	err := sc.Scan(&f.ID, &f.Name, &f.Description, &f.Capacity, &f.ImageURL, &f.DisplayOrder, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns facilities in display order.
func (s *FacilityStore) List(ctx context.Context) ([]models.TrainingFacility, error) {
	return findAll(ctx, s.db, scanFacility, "facilities",
		`SELECT `+facilityColumns+` FROM training_facilities ORDER BY display_order, name`)
}

// FindByID retrieves a facility. Returns nil if not found.
func (s *FacilityStore) FindByID(ctx context.Context, id uuid.UUID) (*models.TrainingFacility, error) {
	return findOne(ctx, s.db, scanFacility, "facility",
		`SELECT `+facilityColumns+` FROM training_facilities WHERE id = $1`, id)
}

// Create inserts a facility.
func (s *FacilityStore) Create(ctx context.Context, f *models.TrainingFacility) (*models.TrainingFacility, error) {
	created, err := scanFacility(s.db.QueryRowContext(ctx, `
		INSERT INTO training_facilities (name, description, capacity, image_url, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+facilityColumns,
		f.Name, f.Description, f.Capacity, f.ImageURL, f.DisplayOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("create facility: %w", err)
	}
	return created, nil
}

// Update overwrites a facility.
func (s *FacilityStore) Update(ctx context.Context, f *models.TrainingFacility) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE training_facilities SET
			name = $1, description = $2, capacity = $3, image_url = $4,
			display_order = $5, updated_at = NOW()
		WHERE id = $6`,
		f.Name, f.Description, f.Capacity, f.ImageURL, f.DisplayOrder, f.ID)
	if err != nil {
		return fmt.Errorf("update facility: %w", err)
	}
	return nil
}

// Delete removes a facility.
func (s *FacilityStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "training_facilities", id)
}

// JobCategoryStore manages job categories.
type JobCategoryStore struct {
	db *sql.DB
}

// NewJobCategoryStore returns a new JobCategoryStore.
func NewJobCategoryStore(db *sql.DB) *JobCategoryStore {
	return &JobCategoryStore{db: db}
}

// CategoryFilter narrows a category listing. Zero values match everything.
type CategoryFilter struct {
	IndustryID *uuid.UUID
	SkillLevel models.SkillLevel
}

const categorySelect = `
	SELECT c.id, c.name, c.skill_level, c.industry_id, i.name, c.description,
	       c.created_at, c.updated_at
	FROM job_categories c
	JOIN industries i ON i.id = c.industry_id`

func scanCategory(sc scanner) (*models.JobCategory, error) {
	var c models.JobCategory
	err := sc.Scan(
		&c.ID, &c.Name, &c.SkillLevel, &c.IndustryID, &c.IndustryName, &c.Description,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns categories matching f, grouped by industry.
func (s *JobCategoryStore) List(ctx context.Context, f CategoryFilter) ([]models.JobCategory, error) {
	if f.SkillLevel != "" && !f.SkillLevel.Valid() {
		return nil, ErrInvalidStatus
	}
	w := &where{}
	if f.IndustryID != nil {
		w.add("c.industry_id = $%d", *f.IndustryID)
	}
	if f.SkillLevel != "" {
		w.add("c.skill_level = $%d", f.SkillLevel)
	}
	return findAll(ctx, s.db, scanCategory, "job categories",
		categorySelect+w.String()+` ORDER BY i.display_order, i.name, c.name`, w.args...)
}

// FindByID retrieves a category. Returns nil if not found.
func (s *JobCategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.JobCategory, error) {
	return findOne(ctx, s.db, scanCategory, "job category", categorySelect+` WHERE c.id = $1`, id)
}

// Create inserts a category.
func (s *JobCategoryStore) Create(ctx context.Context, c *models.JobCategory) (*models.JobCategory, error) {
	if !c.SkillLevel.Valid() {
		return nil, ErrInvalidStatus
	}
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO job_categories (name, skill_level, industry_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.Name, c.SkillLevel, c.IndustryID, c.Description,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create job category: %w", constraintError(err))
	}
	return s.FindByID(ctx, id)
}

// Update overwrites a category.
func (s *JobCategoryStore) Update(ctx context.Context, c *models.JobCategory) error {
	if !c.SkillLevel.Valid() {
		return ErrInvalidStatus
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE job_categories SET
			name = $1, skill_level = $2, industry_id = $3, description = $4, updated_at = NOW()
		WHERE id = $5`,
		c.Name, c.SkillLevel, c.IndustryID, c.Description, c.ID)
	if err != nil {
		return fmt.Errorf("update job category: %w", constraintError(err))
	}
	return nil
}

// Delete removes a category.
func (s *JobCategoryStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "job_categories", id)
}
