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

// NewsStore manages news posts.
type NewsStore struct {
	db *sql.DB
}

// NewNewsStore returns a new NewsStore.
func NewNewsStore(db *sql.DB) *NewsStore {
	return &NewsStore{db: db}
}

const newsColumns = `id, title, slug, post_type, featured_image_url, summary, content,
	author_id, is_published, is_featured, published_at, created_at, updated_at`

func scanNews(sc scanner) (*models.NewsPost, error) {
	var n models.NewsPost
	err := sc.Scan(&n.ID, &n.Title, &n.Slug, &n.PostType, &n.FeaturedImageURL, &n.Summary, &n.Content,
		&n.AuthorID, &n.IsPublished, &n.IsFeatured, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// NewsFilter narrows news listings.
type NewsFilter struct {
	PublishedOnly bool
	FeaturedOnly  bool
	PostType      string
}

// List returns one page of posts, newest first.
func (s *NewsStore) List(ctx context.Context, f NewsFilter, p models.PageRequest) ([]models.NewsPost, int, error) {
	w := &where{}
	if f.PublishedOnly {
		w.raw("is_published")
	}
	if f.FeaturedOnly {
		w.raw("is_featured")
	}
	if f.PostType != "" {
		w.add("post_type = $%d", f.PostType)
	}
	total, err := count(ctx, s.db, `SELECT COUNT(*) FROM news_posts`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count news: %w", err)
	}
	suffix, args := w.limit(p.PageSize, p.Offset())
	items, err := findAll(ctx, s.db, scanNews, "news",
		`SELECT `+newsColumns+` FROM news_posts`+w.String()+
			` ORDER BY COALESCE(published_at, created_at) DESC`+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Latest returns the newest published posts.
func (s *NewsStore) Latest(ctx context.Context, limit int) ([]models.NewsPost, error) {
	return findAll(ctx, s.db, scanNews, "latest news", `
		SELECT `+newsColumns+` FROM news_posts WHERE is_published
		ORDER BY published_at DESC NULLS LAST LIMIT $1`, limit)
}

// Related returns other published posts of the same type.
func (s *NewsStore) Related(ctx context.Context, post *models.NewsPost, limit int) ([]models.NewsPost, error) {
	return findAll(ctx, s.db, scanNews, "related news", `
		SELECT `+newsColumns+` FROM news_posts
		WHERE is_published AND post_type = $1 AND id <> $2
		ORDER BY published_at DESC NULLS LAST LIMIT $3`, post.PostType, post.ID, limit)
}

// FindByID retrieves a post. Returns nil if not found.
func (s *NewsStore) FindByID(ctx context.Context, id uuid.UUID) (*models.NewsPost, error) {
	return findOne(ctx, s.db, scanNews, "news post", `SELECT `+newsColumns+` FROM news_posts WHERE id = $1`, id)
}

// FindPublishedBySlug retrieves a published post by slug. Returns nil if not found.
func (s *NewsStore) FindPublishedBySlug(ctx context.Context, slug string) (*models.NewsPost, error) {
	return findOne(ctx, s.db, scanNews, "news post by slug",
		`SELECT `+newsColumns+` FROM news_posts WHERE slug = $1 AND is_published`, slug)
}

// Create inserts a post. Publishing without a date stamps it now.
func (s *NewsStore) Create(ctx context.Context, n *models.NewsPost) (*models.NewsPost, error) {
	var created *models.NewsPost
	_, err := saveWithSlug(ctx, s.db, "news_posts", uuid.Nil, n.Title, n.Slug, func(slug string) error {
		var err error
		created, err = scanNews(s.db.QueryRowContext(ctx, `
			INSERT INTO news_posts (title, slug, post_type, featured_image_url, summary, content,
				author_id, is_published, is_featured, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
				CASE WHEN $8 AND $10::timestamptz IS NULL THEN NOW() ELSE $10 END)
			RETURNING `+newsColumns,
			n.Title, slug, n.PostType, n.FeaturedImageURL, n.Summary, n.Content,
			n.AuthorID, n.IsPublished, n.IsFeatured, n.PublishedAt))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create news post: %w", err)
	}
	return created, nil
}

// Update overwrites a post. A cleared slug is regenerated.
func (s *NewsStore) Update(ctx context.Context, n *models.NewsPost) error {
	assigned, err := saveWithSlug(ctx, s.db, "news_posts", n.ID, n.Title, n.Slug, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE news_posts SET
				title = $1, slug = $2, post_type = $3, featured_image_url = $4, summary = $5,
				content = $6, is_published = $7, is_featured = $8,
				published_at = CASE WHEN $7 AND $9::timestamptz IS NULL THEN COALESCE(published_at, NOW()) ELSE $9 END,
				updated_at = NOW()
			WHERE id = $10`,
			n.Title, slug, n.PostType, n.FeaturedImageURL, n.Summary,
			n.Content, n.IsPublished, n.IsFeatured, n.PublishedAt, n.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update news post: %w", err)
	}
	n.Slug = assigned
	return nil
}

// Delete removes a post.
func (s *NewsStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "news_posts", id)
}

// TrainingStore manages training courses.
type TrainingStore struct {
	db *sql.DB
}

// NewTrainingStore returns a new TrainingStore.
func NewTrainingStore(db *sql.DB) *TrainingStore {
	return &TrainingStore{db: db}
}

const trainingColumns = `id, name, slug, course_type, description, duration, image_url, syllabus,
	prerequisites, certification_provided, is_active, display_order, created_at, updated_at`

func scanTraining(sc scanner) (*models.TrainingCourse, error) {
	var c models.TrainingCourse
	err := sc.Scan(&c.ID, &c.Name, &c.Slug, &c.CourseType, &c.Description, &c.Duration, &c.ImageURL,
		&c.Syllabus, &c.Prerequisites, &c.CertificationProvided, &c.IsActive, &c.DisplayOrder,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns courses; activeOnly restricts to public ones.
func (s *TrainingStore) List(ctx context.Context, activeOnly bool) ([]models.TrainingCourse, error) {
	return findAll(ctx, s.db, scanTraining, "training courses", `
		SELECT `+trainingColumns+` FROM training_courses
		WHERE ($1 = FALSE OR is_active) ORDER BY display_order, name`, activeOnly)
}

// FindByID retrieves a course. Returns nil if not found.
func (s *TrainingStore) FindByID(ctx context.Context, id uuid.UUID) (*models.TrainingCourse, error) {
	return findOne(ctx, s.db, scanTraining, "training course",
		`SELECT `+trainingColumns+` FROM training_courses WHERE id = $1`, id)
}

// FindActiveBySlug retrieves an active course by slug. Returns nil if not found.
func (s *TrainingStore) FindActiveBySlug(ctx context.Context, slug string) (*models.TrainingCourse, error) {
	return findOne(ctx, s.db, scanTraining, "training course by slug",
		`SELECT `+trainingColumns+` FROM training_courses WHERE slug = $1 AND is_active`, slug)
}

// Create inserts a course.
func (s *TrainingStore) Create(ctx context.Context, c *models.TrainingCourse) (*models.TrainingCourse, error) {
	var created *models.TrainingCourse
	_, err := saveWithSlug(ctx, s.db, "training_courses", uuid.Nil, c.Name, c.Slug, func(slug string) error {
		var err error
		created, err = scanTraining(s.db.QueryRowContext(ctx, `
			INSERT INTO training_courses (name, slug, course_type, description, duration, image_url,
				syllabus, prerequisites, certification_provided, is_active, display_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING `+trainingColumns,
			c.Name, slug, c.CourseType, c.Description, c.Duration, c.ImageURL,
			c.Syllabus, c.Prerequisites, c.CertificationProvided, c.IsActive, c.DisplayOrder))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create training course: %w", err)
	}
	return created, nil
}

// Update overwrites a course.
func (s *TrainingStore) Update(ctx context.Context, c *models.TrainingCourse) error {
	assigned, err := saveWithSlug(ctx, s.db, "training_courses", c.ID, c.Name, c.Slug, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE training_courses SET
				name = $1, slug = $2, course_type = $3, description = $4, duration = $5,
				image_url = $6, syllabus = $7, prerequisites = $8, certification_provided = $9,
				is_active = $10, display_order = $11, updated_at = NOW()
			WHERE id = $12`,
			c.Name, slug, c.CourseType, c.Description, c.Duration,
			c.ImageURL, c.Syllabus, c.Prerequisites, c.CertificationProvided,
			c.IsActive, c.DisplayOrder, c.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update training course: %w", err)
	}
	c.Slug = assigned
	return nil
}

// Delete removes a course.
func (s *TrainingStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "training_courses", id)
}

// CSRStore manages CSR projects.
type CSRStore struct {
	db *sql.DB
}

// NewCSRStore returns a new CSRStore.
func NewCSRStore(db *sql.DB) *CSRStore {
	return &CSRStore{db: db}
}

const csrColumns = `id, title, slug, description, impact_statement, featured_image_url, date,
	location, is_active, created_at, updated_at`

func scanCSR(sc scanner) (*models.CSRProject, error) {
	var c models.CSRProject
	err := sc.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.ImpactStatement, &c.FeaturedImageURL,
		&c.Date, &c.Location, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns projects, newest first; activeOnly restricts to public ones.
func (s *CSRStore) List(ctx context.Context, activeOnly bool) ([]models.CSRProject, error) {
	return findAll(ctx, s.db, scanCSR, "csr projects", `
		SELECT `+csrColumns+` FROM csr_projects
		WHERE ($1 = FALSE OR is_active) ORDER BY date DESC`, activeOnly)
}

// FindByID retrieves a project. Returns nil if not found.
func (s *CSRStore) FindByID(ctx context.Context, id uuid.UUID) (*models.CSRProject, error) {
	return findOne(ctx, s.db, scanCSR, "csr project", `SELECT `+csrColumns+` FROM csr_projects WHERE id = $1`, id)
}

// FindActiveBySlug retrieves an active project by slug. Returns nil if not found.
func (s *CSRStore) FindActiveBySlug(ctx context.Context, slug string) (*models.CSRProject, error) {
	return findOne(ctx, s.db, scanCSR, "csr project by slug",
		`SELECT `+csrColumns+` FROM csr_projects WHERE slug = $1 AND is_active`, slug)
}

// Create inserts a project.
func (s *CSRStore) Create(ctx context.Context, c *models.CSRProject) (*models.CSRProject, error) {
	var created *models.CSRProject
	_, err := saveWithSlug(ctx, s.db, "csr_projects", uuid.Nil, c.Title, c.Slug, func(slug string) error {
		var err error
		created, err = scanCSR(s.db.QueryRowContext(ctx, `
			INSERT INTO csr_projects (title, slug, description, impact_statement, featured_image_url,
				date, location, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+csrColumns,
			c.Title, slug, c.Description, c.ImpactStatement, c.FeaturedImageURL,
			c.Date, c.Location, c.IsActive))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create csr project: %w", err)
	}
	return created, nil
}

// Update overwrites a project.
func (s *CSRStore) Update(ctx context.Context, c *models.CSRProject) error {
	assigned, err := saveWithSlug(ctx, s.db, "csr_projects", c.ID, c.Title, c.Slug, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE csr_projects SET
				title = $1, slug = $2, description = $3, impact_statement = $4,
				featured_image_url = $5, date = $6, location = $7, is_active = $8, updated_at = NOW()
			WHERE id = $9`,
			c.Title, slug, c.Description, c.ImpactStatement,
			c.FeaturedImageURL, c.Date, c.Location, c.IsActive, c.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update csr project: %w", err)
	}
	c.Slug = assigned
	return nil
}

// Delete removes a project.
func (s *CSRStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "csr_projects", id)
}

// CareerStore manages internal career openings.
type CareerStore struct {
	db *sql.DB
}

// NewCareerStore returns a new CareerStore.
func NewCareerStore(db *sql.DB) *CareerStore {
	return &CareerStore{db: db}
}

const careerColumns = `id, title, slug, image_url, department, location, employment_type, summary,
	responsibilities, requirements, application_email, apply_url, is_active, priority,
	posted_at, updated_at`

func scanCareer(sc scanner) (*models.Career, error) {
	var c models.Career
	err := sc.Scan(&c.ID, &c.Title, &c.Slug, &c.ImageURL, &c.Department, &c.Location, &c.EmploymentType,
		&c.Summary, &c.Responsibilities, &c.Requirements, &c.ApplicationEmail, &c.ApplyURL,
		&c.IsActive, &c.Priority, &c.PostedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns openings by priority then recency; activeOnly restricts
// to public ones.
func (s *CareerStore) List(ctx context.Context, activeOnly bool) ([]models.Career, error) {
	return findAll(ctx, s.db, scanCareer, "careers", `
		SELECT `+careerColumns+` FROM careers
		WHERE ($1 = FALSE OR is_active) ORDER BY priority DESC, posted_at DESC`, activeOnly)
}

// FindByID retrieves an opening. Returns nil if not found.
func (s *CareerStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Career, error) {
	return findOne(ctx, s.db, scanCareer, "career", `SELECT `+careerColumns+` FROM careers WHERE id = $1`, id)
}

// FindActiveBySlug retrieves an active opening by slug. Returns nil if not found.
func (s *CareerStore) FindActiveBySlug(ctx context.Context, slug string) (*models.Career, error) {
	return findOne(ctx, s.db, scanCareer, "career by slug",
		`SELECT `+careerColumns+` FROM careers WHERE slug = $1 AND is_active`, slug)
}

// Create inserts an opening.
func (s *CareerStore) Create(ctx context.Context, c *models.Career) (*models.Career, error) {
	var created *models.Career
	_, err := saveWithSlug(ctx, s.db, "careers", uuid.Nil, c.Title, c.Slug, func(slug string) error {
		var err error
		created, err = scanCareer(s.db.QueryRowContext(ctx, `
			INSERT INTO careers (title, slug, image_url, department, location, employment_type,
				summary, responsibilities, requirements, application_email, apply_url,
				is_active, priority)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING `+careerColumns,
			c.Title, slug, c.ImageURL, c.Department, c.Location, c.EmploymentType,
			c.Summary, c.Responsibilities, c.Requirements, c.ApplicationEmail, c.ApplyURL,
			c.IsActive, c.Priority))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create career: %w", err)
	}
	return created, nil
}

// Update overwrites an opening.
func (s *CareerStore) Update(ctx context.Context, c *models.Career) error {
	assigned, err := saveWithSlug(ctx, s.db, "careers", c.ID, c.Title, c.Slug, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE careers SET
				title = $1, slug = $2, image_url = $3, department = $4, location = $5,
				employment_type = $6, summary = $7, responsibilities = $8, requirements = $9,
				application_email = $10, apply_url = $11, is_active = $12, priority = $13,
				updated_at = NOW()
			WHERE id = $14`,
			c.Title, slug, c.ImageURL, c.Department, c.Location,
			c.EmploymentType, c.Summary, c.Responsibilities, c.Requirements,
			c.ApplicationEmail, c.ApplyURL, c.IsActive, c.Priority, c.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update career: %w", err)
	}
	c.Slug = assigned
	return nil
}

// Delete removes an opening.
func (s *CareerStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "careers", id)
}
