// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"khrm/internal/models"
)

// JobStore manages job postings.
type JobStore struct {
	db *sql.DB
}

// NewJobStore returns a new JobStore.
func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

const jobSelect = `
	SELECT j.id, j.title, j.slug, j.image_url, j.industry_id, i.name, j.category_id,
	       COALESCE(jc.name, j.category), j.client_id, COALESCE(c.name, ''), j.skill_level,
	       j.country, j.location, j.description, j.requirements, j.responsibilities,
	       j.salary_range, j.contract_duration, j.vacancies, j.status, j.is_featured,
	       j.application_deadline, j.created_at, j.updated_at
	FROM jobs j
	JOIN industries i ON i.id = j.industry_id
	LEFT JOIN job_categories jc ON jc.id = j.category_id
	LEFT JOIN clients c ON c.id = j.client_id`

func scanJob(sc scanner) (*models.Job, error) {
	var j models.Job
	err := sc.Scan(
		&j.ID, &j.Title, &j.Slug, &j.ImageURL, &j.IndustryID, &j.IndustryName, &j.CategoryID,
		&j.Category, &j.ClientID, &j.ClientName, &j.SkillLevel,
		&j.Country, &j.Location, &j.Description, &j.Requirements, &j.Responsibilities,
		&j.SalaryRange, &j.ContractDuration, &j.Vacancies, &j.Status, &j.IsFeatured,
		&j.ApplicationDeadline, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// JobFilter narrows job listings. Zero values mean "any".
type JobFilter struct {
	Status       models.JobStatus
	Country      string
	IndustrySlug string
	CategoryID   *uuid.UUID
	ClientID     *uuid.UUID
	FeaturedOnly bool
	Query        string
}

func (f JobFilter) where() *where {
	w := &where{}
	if f.Status != "" {
		w.add("j.status = $%d", f.Status)
	}
	if f.Country != "" {
		w.add("LOWER(j.country) = LOWER($%d)", f.Country)
	}
	if f.IndustrySlug != "" {
		w.add("i.slug = $%d", f.IndustrySlug)
	}
	if f.CategoryID != nil {
		w.add("j.category_id = $%d", *f.CategoryID)
	}
	if f.ClientID != nil {
		w.add("j.client_id = $%d", *f.ClientID)
	}
	if f.FeaturedOnly {
		w.raw("j.is_featured")
	}
	if f.Query != "" {
		w.add("(j.title ILIKE $%[1]d OR j.location ILIKE $%[1]d OR j.description ILIKE $%[1]d)", likePattern(f.Query))
	}
	return w
}

// List returns one page of jobs matching f, newest first, and the total
// number of matches.
func (s *JobStore) List(ctx context.Context, f JobFilter, p models.PageRequest) ([]models.Job, int, error) {
	w := f.where()
	total, err := count(ctx, s.db, `SELECT COUNT(*) FROM jobs j JOIN industries i ON i.id = j.industry_id`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}
	suffix, args := w.limit(p.PageSize, p.Offset())
	jobs, err := findAll(ctx, s.db, scanJob, "jobs",
		jobSelect+w.String()+` ORDER BY j.is_featured DESC, j.created_at DESC`+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// Featured returns up to limit open featured jobs.
func (s *JobStore) Featured(ctx context.Context, limit int) ([]models.Job, error) {
	return findAll(ctx, s.db, scanJob, "featured jobs",
		jobSelect+` WHERE j.status = 'open' AND j.is_featured ORDER BY j.created_at DESC LIMIT $1`, limit)
}

// Related returns other open jobs in the same industry as job.
func (s *JobStore) Related(ctx context.Context, job *models.Job, limit int) ([]models.Job, error) {
	return findAll(ctx, s.db, scanJob, "related jobs", jobSelect+`
		WHERE j.status = 'open' AND j.industry_id = $1 AND j.id <> $2
		ORDER BY j.created_at DESC LIMIT $3`, job.IndustryID, job.ID, limit)
}

// FindByID retrieves a job. Returns nil if not found.
func (s *JobStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return findOne(ctx, s.db, scanJob, "job", jobSelect+` WHERE j.id = $1`, id)
}

// FindBySlug retrieves a job by slug regardless of status. Returns nil if not found.
func (s *JobStore) FindBySlug(ctx context.Context, slug string) (*models.Job, error) {
	return findOne(ctx, s.db, scanJob, "job by slug", jobSelect+` WHERE j.slug = $1`, slug)
}

// Create inserts a job. The slug is derived from the title unless set;
// repeated titles get numeric suffixes.
func (s *JobStore) Create(ctx context.Context, j *models.Job) (*models.Job, error) {
	if j.Status == "" {
		j.Status = models.JobOpen
	}
	if !j.Status.Valid() {
		return nil, fmt.Errorf("create job: %w", ErrInvalidStatus)
	}

	var id uuid.UUID
	_, err := saveWithSlug(ctx, s.db, "jobs", uuid.Nil, j.Title, j.Slug, func(slug string) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO jobs (title, slug, image_url, industry_id, category, skill_level, country,
				location, description, requirements, responsibilities, salary_range,
				contract_duration, vacancies, status, is_featured, application_deadline,
				category_id, client_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
			RETURNING id`,
			j.Title, slug, j.ImageURL, j.IndustryID, j.Category, j.SkillLevel, j.Country,
			j.Location, j.Description, j.Requirements, j.Responsibilities, j.SalaryRange,
			j.ContractDuration, j.Vacancies, j.Status, j.IsFeatured, j.ApplicationDeadline,
			j.CategoryID, j.ClientID,
		).Scan(&id)
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", constraintError(err))
	}
	return s.FindByID(ctx, id)
}

// Update overwrites a job. The slug stays as stored unless cleared.
func (s *JobStore) Update(ctx context.Context, j *models.Job) error {
	if !j.Status.Valid() {
		return fmt.Errorf("update job: %w", ErrInvalidStatus)
	}
	assigned, err := saveWithSlug(ctx, s.db, "jobs", j.ID, j.Title, j.Slug, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE jobs SET
				title = $1, slug = $2, image_url = $3, industry_id = $4, category = $5,
				skill_level = $6, country = $7, location = $8, description = $9,
				requirements = $10, responsibilities = $11, salary_range = $12,
				contract_duration = $13, vacancies = $14, status = $15, is_featured = $16,
				application_deadline = $17, category_id = $18, client_id = $19, updated_at = NOW()
			WHERE id = $20`,
			j.Title, slug, j.ImageURL, j.IndustryID, j.Category,
			j.SkillLevel, j.Country, j.Location, j.Description,
			j.Requirements, j.Responsibilities, j.SalaryRange,
			j.ContractDuration, j.Vacancies, j.Status, j.IsFeatured,
			j.ApplicationDeadline, j.CategoryID, j.ClientID, j.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update job: %w", constraintError(err))
	}
	j.Slug = assigned
	return nil
}

// SetStatus changes only the status of a job.
func (s *JobStore) SetStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	if !status.Valid() {
		return fmt.Errorf("set job status %q: %w", status, ErrInvalidStatus)
	}
	_, err := s.db.ExecContext(ctx, `UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set job status: %w", err)
	}
	return nil
}

// CloseExpired closes open jobs whose application deadline is before
// today and reports how many were closed.
func (s *JobStore) CloseExpired(ctx context.Context, today time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE jobs SET status = 'closed', updated_at = NOW()
		WHERE status = 'open' AND application_deadline IS NOT NULL AND application_deadline < $1::date`,
		today.Format(time.DateOnly))
	if err != nil {
		return 0, fmt.Errorf("close expired jobs: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes a job and its applications.
func (s *JobStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "jobs", id)
}

// CountryCount is the number of open jobs in one destination country.
type CountryCount struct {
	Country string `json:"country"`
	Jobs    int    `json:"jobs"`
}

// Countries lists destination countries with open jobs, busiest first.
func (s *JobStore) Countries(ctx context.Context) ([]CountryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT country, COUNT(*) FROM jobs WHERE status = 'open'
		GROUP BY country ORDER BY COUNT(*) DESC, country`)
	if err != nil {
		return nil, fmt.Errorf("list job countries: %w", err)
	}
	defer rows.Close()

	var out []CountryCount
	for rows.Next() {
		var c CountryCount
		if err := rows.Scan(&c.Country, &c.Jobs); err != nil {
			return nil, fmt.Errorf("scan job country: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// JobStats summarises open recruitment activity.
type JobStats struct {
	OpenJobs       int            `json:"open_jobs"`
	TotalVacancies int            `json:"total_vacancies"`
	Countries      int            `json:"countries"`
	Industries     int            `json:"industries"`
	Applications   int            `json:"applications"`
	ByCountry      []CountryCount `json:"by_country"`
}

// Stats computes JobStats.
func (s *JobStore) Stats(ctx context.Context) (*JobStats, error) {
	st := &JobStats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(vacancies), 0),
		       COUNT(DISTINCT country), COUNT(DISTINCT industry_id),
		       (SELECT COUNT(*) FROM job_applications)
		FROM jobs WHERE status = 'open'`,
	).Scan(&st.OpenJobs, &st.TotalVacancies, &st.Countries, &st.Industries, &st.Applications)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	if st.ByCountry, err = s.Countries(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

// ApplicationStore manages job applications.
type ApplicationStore struct {
	db *sql.DB
}

// NewApplicationStore returns a new ApplicationStore.
func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

const applicationSelect = `
	SELECT a.id, a.job_id, j.title, a.first_name, a.last_name, a.email, a.phone,
	       a.date_of_birth, a.nationality, a.current_location, a.resume_key,
	       a.years_of_experience, a.previous_experience, a.skills, a.status, a.notes,
	       a.created_at, a.updated_at
	FROM job_applications a
	JOIN jobs j ON j.id = a.job_id`

func scanApplication(sc scanner) (*models.JobApplication, error) {
	var a models.JobApplication
	err := sc.Scan(
		&a.ID, &a.JobID, &a.JobTitle, &a.FirstName, &a.LastName, &a.Email, &a.Phone,
		&a.DateOfBirth, &a.Nationality, &a.CurrentLocation, &a.ResumeKey,
		&a.YearsOfExperience, &a.PreviousExperience, &a.Skills, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	JobID  *uuid.UUID
	Status models.ApplicationStatus
	Query  string
}

// List returns one page of applications, newest first, and the total.
func (s *ApplicationStore) List(ctx context.Context, f ApplicationFilter, p models.PageRequest) ([]models.JobApplication, int, error) {
	w := &where{}
	if f.JobID != nil {
		w.add("a.job_id = $%d", *f.JobID)
	}
	if f.Status != "" {
		w.add("a.status = $%d", f.Status)
	}
	if f.Query != "" {
		w.add("(a.first_name ILIKE $%[1]d OR a.last_name ILIKE $%[1]d OR a.email ILIKE $%[1]d)", likePattern(f.Query))
	}

	total, err := count(ctx, s.db, `SELECT COUNT(*) FROM job_applications a JOIN jobs j ON j.id = a.job_id`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}
	suffix, args := w.limit(p.PageSize, p.Offset())
	apps, err := findAll(ctx, s.db, scanApplication, "applications",
		applicationSelect+w.String()+` ORDER BY a.created_at DESC`+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// FindByID retrieves an application. Returns nil if not found.
func (s *ApplicationStore) FindByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	return findOne(ctx, s.db, scanApplication, "application", applicationSelect+` WHERE a.id = $1`, id)
}

// Create inserts a submitted application.
func (s *ApplicationStore) Create(ctx context.Context, a *models.JobApplication) (*models.JobApplication, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO job_applications (job_id, first_name, last_name, email, phone, date_of_birth,
			nationality, current_location, resume_key, years_of_experience,
			previous_experience, skills, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'submitted')
		RETURNING id`,
		a.JobID, a.FirstName, a.LastName, a.Email, a.Phone, a.DateOfBirth,
		a.Nationality, a.CurrentLocation, a.ResumeKey, a.YearsOfExperience,
		a.PreviousExperience, a.Skills,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return s.FindByID(ctx, id)
}

// SetStatus moves an application to status and, when notes is non-nil,
// replaces the staff notes.
func (s *ApplicationStore) SetStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, notes *string) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("set application status %q: %w", status, ErrInvalidStatus)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE job_applications SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = $3`, status, notes, id)
	if err != nil {
		return false, fmt.Errorf("set application status: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// BulkSetStatus moves every listed application to status and returns how
// many rows changed.
func (s *ApplicationStore) BulkSetStatus(ctx context.Context, ids []uuid.UUID, status models.ApplicationStatus) (int64, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("bulk application status %q: %w", status, ErrInvalidStatus)
	}
	return bulkUpdateStatus(ctx, s.db, "job_applications", ids, string(status))
}

// Delete removes an application.
func (s *ApplicationStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "job_applications", id)
}

// CountByStatus returns the number of applications in each status.
func (s *ApplicationStore) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int, error) {
	return countByStatus[models.ApplicationStatus](ctx, s.db, "job_applications")
}

// InquiryStore manages employer inquiries.
type InquiryStore struct {
	db *sql.DB
}

// NewInquiryStore returns a new InquiryStore.
func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

const inquiryColumns = `id, company_name, contact_person, email, phone, country, industry_id,
	required_positions, number_of_workers, job_description, expected_start_date,
	contract_duration, demand_letter_key, status, notes, created_at, updated_at`

func scanInquiry(sc scanner) (*models.EmployerInquiry, error) {
	var q models.EmployerInquiry
	err := sc.Scan(
		&q.ID, &q.CompanyName, &q.ContactPerson, &q.Email, &q.Phone, &q.Country, &q.IndustryID,
		&q.RequiredPositions, &q.NumberOfWorkers, &q.JobDescription, &q.ExpectedStartDate,
		&q.ContractDuration, &q.DemandLetterKey, &q.Status, &q.Notes, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns one page of inquiries, newest first, optionally by status.
func (s *InquiryStore) List(ctx context.Context, status models.InquiryStatus, p models.PageRequest) ([]models.EmployerInquiry, int, error) {
	w := &where{}
	if status != "" {
		w.add("status = $%d", status)
	}
	total, err := count(ctx, s.db, `SELECT COUNT(*) FROM employer_inquiries`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count inquiries: %w", err)
	}
	suffix, args := w.limit(p.PageSize, p.Offset())
	items, err := findAll(ctx, s.db, scanInquiry, "inquiries",
		`SELECT `+inquiryColumns+` FROM employer_inquiries`+w.String()+` ORDER BY created_at DESC`+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindByID retrieves an inquiry. Returns nil if not found.
func (s *InquiryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.EmployerInquiry, error) {
	return findOne(ctx, s.db, scanInquiry, "inquiry",
		`SELECT `+inquiryColumns+` FROM employer_inquiries WHERE id = $1`, id)
}

// Create inserts a new inquiry in status "new".
func (s *InquiryStore) Create(ctx context.Context, q *models.EmployerInquiry) (*models.EmployerInquiry, error) {
	created, err := scanInquiry(s.db.QueryRowContext(ctx, `
		INSERT INTO employer_inquiries (company_name, contact_person, email, phone, country,
			industry_id, required_positions, number_of_workers, job_description,
			expected_start_date, contract_duration, demand_letter_key, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'new')
		RETURNING `+inquiryColumns,
		q.CompanyName, q.ContactPerson, q.Email, q.Phone, q.Country,
		q.IndustryID, q.RequiredPositions, q.NumberOfWorkers, q.JobDescription,
		q.ExpectedStartDate, q.ContractDuration, q.DemandLetterKey,
	))
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return created, nil
}

// SetStatus moves an inquiry to status, optionally replacing notes.
func (s *InquiryStore) SetStatus(ctx context.Context, id uuid.UUID, status models.InquiryStatus, notes *string) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("set inquiry status %q: %w", status, ErrInvalidStatus)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE employer_inquiries SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = $3`, status, notes, id)
	if err != nil {
		return false, fmt.Errorf("set inquiry status: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// BulkSetStatus moves every listed inquiry to status.
func (s *InquiryStore) BulkSetStatus(ctx context.Context, ids []uuid.UUID, status models.InquiryStatus) (int64, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("bulk inquiry status %q: %w", status, ErrInvalidStatus)
	}
	return bulkUpdateStatus(ctx, s.db, "employer_inquiries", ids, string(status))
}

// Delete removes an inquiry.
func (s *InquiryStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "employer_inquiries", id)
}

// CountByStatus returns the number of inquiries in each status.
func (s *InquiryStore) CountByStatus(ctx context.Context) (map[models.InquiryStatus]int, error) {
	return countByStatus[models.InquiryStatus](ctx, s.db, "employer_inquiries")
}

// ContactStore manages contact form messages.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore returns a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, phone, company, inquiry_type, message, is_read, replied, notes, created_at`

func scanContact(sc scanner) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := sc.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Company, &m.InquiryType,
		&m.Message, &m.IsRead, &m.Replied, &m.Notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns one page of messages, newest first.
func (s *ContactStore) List(ctx context.Context, unreadOnly bool, p models.PageRequest) ([]models.ContactMessage, int, error) {
	w := &where{}
	if unreadOnly {
		w.raw("NOT is_read")
	}
	total, err := count(ctx, s.db, `SELECT COUNT(*) FROM contact_messages`+w.String(), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count contact messages: %w", err)
	}
	suffix, args := w.limit(p.PageSize, p.Offset())
	items, err := findAll(ctx, s.db, scanContact, "contact messages",
		`SELECT `+contactColumns+` FROM contact_messages`+w.String()+` ORDER BY created_at DESC`+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindByID retrieves a message. Returns nil if not found.
func (s *ContactStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	return findOne(ctx, s.db, scanContact, "contact message",
		`SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id)
}

// Create stores a new message.
func (s *ContactStore) Create(ctx context.Context, m *models.ContactMessage) (*models.ContactMessage, error) {
	if m.InquiryType == "" {
		m.InquiryType = models.InquiryTypeGeneral
	}
	created, err := scanContact(s.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, phone, company, inquiry_type, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+contactColumns,
		m.Name, m.Email, m.Phone, m.Company, m.InquiryType, m.Message))
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return created, nil
}

// Mark updates the read/replied flags and notes of a message.
func (s *ContactStore) Mark(ctx context.Context, id uuid.UUID, read, replied bool, notes *string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contact_messages SET is_read = $1, replied = $2, notes = COALESCE($3, notes)
		WHERE id = $4`, read || replied, replied, notes, id)
	if err != nil {
		return false, fmt.Errorf("mark contact message: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes a message.
func (s *ContactStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "contact_messages", id)
}

// bulkUpdateStatus sets status on every row of table whose id is in ids.
func bulkUpdateStatus(ctx context.Context, db *sql.DB, table string, ids []uuid.UUID, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	res, err := db.ExecContext(ctx, `
		UPDATE `+table+` SET status = $1, updated_at = NOW()
		WHERE id = ANY($2::uuid[])`, status, raw)
	if err != nil {
		return 0, fmt.Errorf("bulk update %s: %w", table, err)
	}
	return res.RowsAffected()
}

// countByStatus groups table rows by status.
func countByStatus[S ~string](ctx context.Context, db *sql.DB, table string) (map[S]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM `+table+` GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count %s by status: %w", table, err)
	}
	defer rows.Close()

	out := make(map[S]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan %s status count: %w", table, err)
		}
		out[S(status)] = n
	}
	return out, rows.Err()
}
