// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is an overseas employer the agency recruits for.
type Client struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name" validate:"required,max=200"`
	LogoURL      string     `json:"logo_url" validate:"omitempty,url"`
	Website      string     `json:"website" validate:"omitempty,url"`
	IndustryID   *uuid.UUID `json:"industry_id,omitempty"`
	IndustryName string     `json:"industry_name,omitempty"`
	Country      string     `json:"country" validate:"max=100"`
	IsFeatured   bool       `json:"is_featured"`
	DisplayOrder int        `json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Testimonial is a quote from an employer or a deployed worker.
type Testimonial struct {
	ID             uuid.UUID  `json:"id"`
	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	ClientName     string     `json:"client_name,omitempty"`
	PersonName     string     `json:"person_name" validate:"required,max=200"`
	PersonPosition string     `json:"person_position" validate:"max=200"`
	PhotoURL       string     `json:"photo_url" validate:"omitempty,url"`
	CompanyName    string     `json:"company_name" validate:"max=200"`
	Text           string     `json:"text" validate:"required,max=5000"`
	Rating         int        `json:"rating" validate:"gte=1,lte=5"`
	IsFeatured     bool       `json:"is_featured"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Branch is a country the agency operates offices in.
type Branch struct {
	ID          uuid.UUID `json:"id"`
	Country     string    `json:"country" validate:"required,max=100"`
	OfficeCount int       `json:"office_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Leader is a member of the leadership team.
type Leader struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name" validate:"required,max=200"`
	Position     string    `json:"position" validate:"required,max=200"`
	Bio          string    `json:"bio"`
	PhotoURL     string    `json:"photo_url" validate:"omitempty,url"`
	Email        string    `json:"email" validate:"omitempty,email"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Certification is a licence or accreditation held by the agency.
type Certification struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name" validate:"required,max=200"`
	IssuingAuthority  string     `json:"issuing_authority" validate:"required,max=200"`
	CertificateNumber string     `json:"certificate_number" validate:"max=100"`
	IssueDate         *time.Time `json:"issue_date,omitempty"`
	ImageURL          string     `json:"image_url" validate:"omitempty,url"`
	DisplayOrder      int        `json:"display_order"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TrainingFacility is a room or workshop of the training centre.
type TrainingFacility struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name" validate:"required,max=200"`
	Description  string    `json:"description"`
	Capacity     int       `json:"capacity" validate:"gte=0"`
	ImageURL     string    `json:"image_url" validate:"omitempty,url"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SkillLevel grades the positions of a job category.
type SkillLevel string

const (
	SkillSkilled      SkillLevel = "skilled"
	SkillSemiSkilled  SkillLevel = "semi_skilled"
	SkillProfessional SkillLevel = "professional"
	SkillUnskilled    SkillLevel = "unskilled"
)

// Valid reports whether l is a known skill level.
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillSkilled, SkillSemiSkilled, SkillProfessional, SkillUnskilled:
		return true
	}
	return false
}

// JobCategory groups positions within an industry.
type JobCategory struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name" validate:"required,max=200"`
	SkillLevel   SkillLevel `json:"skill_level"`
	IndustryID   uuid.UUID  `json:"industry_id" validate:"required"`
	IndustryName string     `json:"industry_name,omitempty"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
