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

// CompanyStore manages the single company profile row.
type CompanyStore struct {
	db *sql.DB
}

// NewCompanyStore returns a new CompanyStore.
func NewCompanyStore(db *sql.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

const companyColumns = `id, name, license_number, establishment_year, total_deployment,
	experience_years, client_satisfaction, mission, vision, "values", about_text,
	hero_headline, logo_url, about_image_url, hero_image_url, created_at, updated_at`

func scanCompany(sc scanner) (*models.Company, error) {
	var c models.Company
	err := sc.Scan(
		&c.ID, &c.Name, &c.LicenseNumber, &c.EstablishmentYear, &c.TotalDeployment,
		&c.ExperienceYears, &c.ClientSatisfaction, &c.Mission, &c.Vision, &c.Values, &c.AboutText,
		&c.HeroHeadline, &c.LogoURL, &c.AboutImageURL, &c.HeroImageURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get returns the profile, or nil when none was created yet.
func (s *CompanyStore) Get(ctx context.Context) (*models.Company, error) {
	return findOne(ctx, s.db, scanCompany, "company", `SELECT `+companyColumns+` FROM company LIMIT 1`)
}

// Create inserts the profile. A second profile is refused with
// ErrSingletonExists.
func (s *CompanyStore) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO company (name, license_number, establishment_year, total_deployment,
			experience_years, client_satisfaction, mission, vision, "values", about_text,
			hero_headline, logo_url, about_image_url, hero_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+companyColumns,
		c.Name, c.LicenseNumber, c.EstablishmentYear, c.TotalDeployment,
		c.ExperienceYears, c.ClientSatisfaction, c.Mission, c.Vision, c.Values, c.AboutText,
		c.HeroHeadline, c.LogoURL, c.AboutImageURL, c.HeroImageURL,
	)
	created, err := scanCompany(row)
	if isUniqueViolation(err) {
		return nil, ErrSingletonExists
	}
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return created, nil
}

// Update overwrites the profile fields.
func (s *CompanyStore) Update(ctx context.Context, c *models.Company) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE company SET
			name = $1, license_number = $2, establishment_year = $3, total_deployment = $4,
			experience_years = $5, client_satisfaction = $6, mission = $7, vision = $8,
			"values" = $9, about_text = $10, hero_headline = $11, logo_url = $12,
			about_image_url = $13, hero_image_url = $14, updated_at = NOW()
		WHERE id = $15
	`, c.Name, c.LicenseNumber, c.EstablishmentYear, c.TotalDeployment,
		c.ExperienceYears, c.ClientSatisfaction, c.Mission, c.Vision,
		c.Values, c.AboutText, c.HeroHeadline, c.LogoURL,
		c.AboutImageURL, c.HeroImageURL, c.ID)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// OfficeStore manages branch offices.
type OfficeStore struct {
	db *sql.DB
}

// NewOfficeStore returns a new OfficeStore.
func NewOfficeStore(db *sql.DB) *OfficeStore {
	return &OfficeStore{db: db}
}

const officeColumns = `id, name, country, city, address, phone, email, whatsapp, facebook_url,
	latitude, longitude, is_headquarters, image_url, is_active, display_order, created_at, updated_at`

func scanOffice(sc scanner) (*models.Office, error) {
	var o models.Office
	err := sc.Scan(
		&o.ID, &o.Name, &o.Country, &o.City, &o.Address, &o.Phone, &o.Email, &o.WhatsApp, &o.FacebookURL,
		&o.Latitude, &o.Longitude, &o.IsHeadquarters, &o.ImageURL, &o.IsActive, &o.DisplayOrder,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns offices; activeOnly restricts to public ones.
func (s *OfficeStore) List(ctx context.Context, activeOnly bool) ([]models.Office, error) {
	return findAll(ctx, s.db, scanOffice, "offices", `
		SELECT `+officeColumns+` FROM offices
		WHERE ($1 = FALSE OR is_active)
		ORDER BY is_headquarters DESC, display_order, name`, activeOnly)
}

// Headquarters returns the active head office, or nil.
func (s *OfficeStore) Headquarters(ctx context.Context) (*models.Office, error) {
	return findOne(ctx, s.db, scanOffice, "headquarters", `
		SELECT `+officeColumns+` FROM offices
		WHERE is_headquarters AND is_active
		ORDER BY display_order LIMIT 1`)
}

// FindByID retrieves an office. Returns nil if not found.
func (s *OfficeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Office, error) {
	return findOne(ctx, s.db, scanOffice, "office", `SELECT `+officeColumns+` FROM offices WHERE id = $1`, id)
}

// Create inserts a new office.
func (s *OfficeStore) Create(ctx context.Context, o *models.Office) (*models.Office, error) {
	created, err := scanOffice(s.db.QueryRowContext(ctx, `
		INSERT INTO offices (name, country, city, address, phone, email, whatsapp, facebook_url,
			latitude, longitude, is_headquarters, image_url, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+officeColumns,
		o.Name, o.Country, o.City, o.Address, o.Phone, o.Email, o.WhatsApp, o.FacebookURL,
		o.Latitude, o.Longitude, o.IsHeadquarters, o.ImageURL, o.IsActive, o.DisplayOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("create office: %w", err)
	}
	return created, nil
}

// Update overwrites an office.
func (s *OfficeStore) Update(ctx context.Context, o *models.Office) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE offices SET
			name = $1, country = $2, city = $3, address = $4, phone = $5, email = $6,
			whatsapp = $7, facebook_url = $8, latitude = $9, longitude = $10,
			is_headquarters = $11, image_url = $12, is_active = $13, display_order = $14,
			updated_at = NOW()
		WHERE id = $15
	`, o.Name, o.Country, o.City, o.Address, o.Phone, o.Email,
		o.WhatsApp, o.FacebookURL, o.Latitude, o.Longitude,
		o.IsHeadquarters, o.ImageURL, o.IsActive, o.DisplayOrder, o.ID)
	if err != nil {
		return fmt.Errorf("update office: %w", err)
	}
	return nil
}

// Delete removes an office.
func (s *OfficeStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "offices", id)
}

// IndustryStore manages industries.
type IndustryStore struct {
	db *sql.DB
}

// NewIndustryStore returns a new IndustryStore.
func NewIndustryStore(db *sql.DB) *IndustryStore {
	return &IndustryStore{db: db}
}

// industrySelect includes the open job count as the last column.
const industrySelect = `
	SELECT i.id, i.name, i.slug, i.icon, i.description, i.overview, i.image_url,
	       i.display_order, i.is_featured,
	       (SELECT COUNT(*) FROM jobs j WHERE j.industry_id = i.id AND j.status = 'open'),
	       i.created_at, i.updated_at
	FROM industries i`

func scanIndustry(sc scanner) (*models.Industry, error) {
	var i models.Industry
	err := sc.Scan(
		&i.ID, &i.Name, &i.Slug, &i.Icon, &i.Description, &i.Overview, &i.ImageURL,
		&i.DisplayOrder, &i.IsFeatured, &i.OpenJobs, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// List returns industries; featuredOnly restricts to the featured ones.
func (s *IndustryStore) List(ctx context.Context, featuredOnly bool) ([]models.Industry, error) {
	return findAll(ctx, s.db, scanIndustry, "industries",
		industrySelect+` WHERE ($1 = FALSE OR i.is_featured) ORDER BY i.display_order, i.name`, featuredOnly)
}

// FindByID retrieves an industry. Returns nil if not found.
func (s *IndustryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Industry, error) {
	return findOne(ctx, s.db, scanIndustry, "industry", industrySelect+` WHERE i.id = $1`, id)
}

// FindBySlug retrieves an industry by slug. Returns nil if not found.
func (s *IndustryStore) FindBySlug(ctx context.Context, slug string) (*models.Industry, error) {
	return findOne(ctx, s.db, scanIndustry, "industry by slug", industrySelect+` WHERE i.slug = $1`, slug)
}

// Create inserts an industry, deriving its slug from the name unless set.
func (s *IndustryStore) Create(ctx context.Context, i *models.Industry) (*models.Industry, error) {
	var created *models.Industry
	_, err := saveWithSlug(ctx, s.db, "industries", uuid.Nil, i.Name, i.Slug, func(slug string) error {
		var id uuid.UUID
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO industries (name, slug, icon, description, overview, image_url, display_order, is_featured)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			i.Name, slug, i.Icon, i.Description, i.Overview, i.ImageURL, i.DisplayOrder, i.IsFeatured,
		).Scan(&id)
		if err != nil {
			return err
		}
		created, err = s.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create industry: %w", err)
	}
	return created, nil
}

// Update overwrites an industry. A cleared slug is regenerated.
func (s *IndustryStore) Update(ctx context.Context, i *models.Industry) error {
	assigned, err := saveWithSlug(ctx, s.db, "industries", i.ID, i.Name, i.Slug, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE industries SET
				name = $1, slug = $2, icon = $3, description = $4, overview = $5,
				image_url = $6, display_order = $7, is_featured = $8, updated_at = NOW()
			WHERE id = $9`,
			i.Name, slug, i.Icon, i.Description, i.Overview,
			i.ImageURL, i.DisplayOrder, i.IsFeatured, i.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update industry: %w", err)
	}
	i.Slug = assigned
	return nil
}

// Delete removes an industry and, by cascade, its jobs.
func (s *IndustryStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "industries", id)
}
