// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
	JobFilled JobStatus = "filled"
	JobOnHold JobStatus = "on_hold"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobClosed, JobFilled, JobOnHold:
		return true
	}
	return false
}

// ApplicationStatus tracks a candidate through the placement pipeline.
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationScreening ApplicationStatus = "screening"
	ApplicationInterview ApplicationStatus = "interview"
	ApplicationMedical   ApplicationStatus = "medical"
	ApplicationSelected  ApplicationStatus = "selected"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationDeployed  ApplicationStatus = "deployed"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationSubmitted, ApplicationScreening, ApplicationInterview,
		ApplicationMedical, ApplicationSelected, ApplicationRejected, ApplicationDeployed:
		return true
	}
	return false
}

// InquiryStatus tracks an employer request from intake to completion.
type InquiryStatus string

const (
	InquiryNew           InquiryStatus = "new"
	InquiryProcessing    InquiryStatus = "processing"
	InquiryQuotationSent InquiryStatus = "quotation_sent"
	InquiryApproved      InquiryStatus = "approved"
	InquiryCompleted     InquiryStatus = "completed"
	InquiryCancelled     InquiryStatus = "cancelled"
)

// Valid reports whether s is a known inquiry status.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryProcessing, InquiryQuotationSent,
		InquiryApproved, InquiryCompleted, InquiryCancelled:
		return true
	}
	return false
}

// Industry is a sector the agency recruits for.
type Industry struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name" validate:"required,max=100"`
	Slug         string    `json:"slug" validate:"max=120"`
	Icon         string    `json:"icon" validate:"max=50"`
	Description  string    `json:"description"`
	Overview     string    `json:"overview"`
	ImageURL     string    `json:"image_url" validate:"omitempty,url"`
	DisplayOrder int       `json:"display_order"`
	IsFeatured   bool      `json:"is_featured"`
	OpenJobs     int       `json:"open_jobs"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Job is an overseas vacancy.
type Job struct {
	ID                  uuid.UUID  `json:"id"`
	Title               string     `json:"title" validate:"required,max=200"`
	Slug                string     `json:"slug" validate:"max=220"`
	ImageURL            string     `json:"image_url" validate:"omitempty,url"`
	IndustryID          uuid.UUID  `json:"industry_id" validate:"required"`
	IndustryName        string     `json:"industry_name,omitempty"`
	CategoryID          *uuid.UUID `json:"category_id,omitempty"`
	Category            string     `json:"category"` // the linked category's name when category_id is set
	ClientID            *uuid.UUID `json:"client_id,omitempty"`
	ClientName          string     `json:"client_name,omitempty"`
	SkillLevel          string     `json:"skill_level"`
	Country             string     `json:"country" validate:"required,max=100"`
	Location            string     `json:"location" validate:"max=200"`
	Description         string     `json:"description" validate:"required"`
	Requirements        string     `json:"requirements"`
	Responsibilities    string     `json:"responsibilities"`
	SalaryRange         string     `json:"salary_range" validate:"max=100"`
	ContractDuration    string     `json:"contract_duration" validate:"max=100"`
	Vacancies           int        `json:"vacancies" validate:"gte=0"`
	Status              JobStatus  `json:"status"`
	IsFeatured          bool       `json:"is_featured"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// AcceptsApplications reports whether candidates may still apply at now.
func (j *Job) AcceptsApplications(now time.Time) bool {
	if j.Status != JobOpen {
		return false
	}
	if j.ApplicationDeadline == nil {
		return true
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !j.ApplicationDeadline.Before(today)
}

// JobApplication is a candidate's application to a job.
type JobApplication struct {
	ID                 uuid.UUID         `json:"id"`
	JobID              uuid.UUID         `json:"job_id" validate:"required"`
	JobTitle           string            `json:"job_title,omitempty"`
	FirstName          string            `json:"first_name" validate:"required,max=100"`
	LastName           string            `json:"last_name" validate:"max=100"`
	Email              string            `json:"email" validate:"required,email"`
	Phone              string            `json:"phone" validate:"required,max=50"`
	DateOfBirth        *time.Time        `json:"date_of_birth,omitempty"`
	Nationality        string            `json:"nationality" validate:"max=100"`
	CurrentLocation    string            `json:"current_location" validate:"max=200"`
	ResumeKey          string            `json:"-"` // private bucket object key
	YearsOfExperience  int               `json:"years_of_experience" validate:"gte=0,lte=60"`
	PreviousExperience string            `json:"previous_experience"`
	Skills             string            `json:"skills"`
	Status             ApplicationStatus `json:"status"`
	Notes              string            `json:"notes"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// FullName joins first and last name.
func (a *JobApplication) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// EmployerInquiry is a manpower request from a prospective client.
type EmployerInquiry struct {
	ID                uuid.UUID     `json:"id"`
	CompanyName       string        `json:"company_name" validate:"required,max=200"`
	ContactPerson     string        `json:"contact_person" validate:"required,max=200"`
	Email             string        `json:"email" validate:"required,email"`
	Phone             string        `json:"phone" validate:"required,max=50"`
	Country           string        `json:"country" validate:"required,max=100"`
	IndustryID        *uuid.UUID    `json:"industry_id,omitempty"`
	RequiredPositions string        `json:"required_positions" validate:"required"`
	NumberOfWorkers   int           `json:"number_of_workers" validate:"gte=1"`
	JobDescription    string        `json:"job_description"`
	ExpectedStartDate *time.Time    `json:"expected_start_date,omitempty"`
	ContractDuration  string        `json:"contract_duration" validate:"max=100"`
	DemandLetterKey   string        `json:"-"`
	Status            InquiryStatus `json:"status"`
	Notes             string        `json:"notes"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// InquiryType classifies messages from the public contact form.
type InquiryType string

const (
	InquiryTypeGeneral   InquiryType = "general"
	InquiryTypeEmployer  InquiryType = "employer"
	InquiryTypeJobSeeker InquiryType = "job_seeker"
	InquiryTypeTraining  InquiryType = "training"
	InquiryTypeComplaint InquiryType = "complaint"
)

// Valid reports whether t is a known inquiry type.
func (t InquiryType) Valid() bool {
	switch t {
	case InquiryTypeGeneral, InquiryTypeEmployer, InquiryTypeJobSeeker,
		InquiryTypeTraining, InquiryTypeComplaint:
		return true
	}
	return false
}

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name" validate:"required,max=200"`
	Email       string      `json:"email" validate:"required,email"`
	Phone       string      `json:"phone" validate:"max=50"`
	Company     string      `json:"company" validate:"max=200"`
	InquiryType InquiryType `json:"inquiry_type"`
	Message     string      `json:"message" validate:"required,max=5000"`
	IsRead      bool        `json:"is_read"`
	Replied     bool        `json:"replied"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"created_at"`
}
