// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsPost is a news item, deployment story or announcement.
type NewsPost struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title" validate:"required,max=300"`
	Slug             string     `json:"slug" validate:"max=320"`
	PostType         string     `json:"post_type" validate:"max=50"`
	FeaturedImageURL string     `json:"featured_image_url" validate:"omitempty,url"`
	Summary          string     `json:"summary" validate:"max=1000"`
	Content          string     `json:"content" validate:"max=100000"` // Markdown source
	ContentHTML      string     `json:"content_html,omitempty"`
	AuthorID         *uuid.UUID `json:"author_id,omitempty"`
	IsPublished      bool       `json:"is_published"`
	IsFeatured       bool       `json:"is_featured"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TrainingCourse is a pre-departure course offered by the training centre.
type TrainingCourse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name" validate:"required,max=200"`
	Slug                  string    `json:"slug" validate:"max=220"`
	CourseType            string    `json:"course_type" validate:"max=50"`
	Description           string    `json:"description"`
	Duration              string    `json:"duration" validate:"max=100"`
	ImageURL              string    `json:"image_url" validate:"omitempty,url"`
	Syllabus              string    `json:"syllabus"`
	Prerequisites         string    `json:"prerequisites"`
	CertificationProvided bool      `json:"certification_provided"`
	IsActive              bool      `json:"is_active"`
	DisplayOrder          int       `json:"display_order"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CSRProject is a community project run by the agency.
type CSRProject struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title" validate:"required,max=200"`
	Slug             string    `json:"slug" validate:"max=220"`
	Description      string    `json:"description"`
	ImpactStatement  string    `json:"impact_statement"`
	FeaturedImageURL string    `json:"featured_image_url" validate:"omitempty,url"`
	Date             time.Time `json:"date"`
	Location         string    `json:"location" validate:"max=200"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Career is an opening inside the agency itself.
type Career struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title" validate:"required,max=200"`
	Slug             string    `json:"slug" validate:"max=220"`
	ImageURL         string    `json:"image_url" validate:"omitempty,url"`
	Department       string    `json:"department" validate:"max=100"`
	Location         string    `json:"location" validate:"max=200"`
	EmploymentType   string    `json:"employment_type"`
	Summary          string    `json:"summary"`
	Responsibilities string    `json:"responsibilities"`
	Requirements     string    `json:"requirements"`
	ApplicationEmail string    `json:"application_email" validate:"omitempty,email"`
	ApplyURL         string    `json:"apply_url" validate:"omitempty,url"`
	IsActive         bool      `json:"is_active"`
	Priority         int       `json:"priority"`
	PostedAt         time.Time `json:"posted_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FAQ is one question and answer.
type FAQ struct {
	ID           uuid.UUID `json:"id"`
	Category     string    `json:"category" validate:"max=50"`
	Question     string    `json:"question" validate:"required,max=500"`
	Answer       string    `json:"answer" validate:"required"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PolicyKind distinguishes the legal pages.
type PolicyKind string

const (
	PolicyPrivacy PolicyKind = "privacy"
	PolicyTerms   PolicyKind = "terms"
)

// Valid reports whether k is a known policy kind.
func (k PolicyKind) Valid() bool {
	return k == PolicyPrivacy || k == PolicyTerms
}

// Policy is a versioned legal page. The newest active row of each kind is
// the one shown publicly.
type Policy struct {
	ID          uuid.UUID  `json:"id"`
	Kind        PolicyKind `json:"kind" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Slug        string     `json:"slug" validate:"max=220"`
	Content     string     `json:"content" validate:"required"`
	ContentHTML string     `json:"content_html,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
