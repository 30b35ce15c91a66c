// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is the agency profile. Exactly one row may exist.
type Company struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name" validate:"required,max=200"`
	LicenseNumber      string    `json:"license_number" validate:"max=100"`
	EstablishmentYear  int       `json:"establishment_year" validate:"gte=0"`
	TotalDeployment    int       `json:"total_deployment" validate:"gte=0"`
	ExperienceYears    int       `json:"experience_years" validate:"gte=0"`
	ClientSatisfaction int       `json:"client_satisfaction" validate:"gte=0,lte=100"`
	Mission            string    `json:"mission"`
	Vision             string    `json:"vision"`
	Values             string    `json:"values"`
	AboutText          string    `json:"about_text"`
	HeroHeadline       string    `json:"hero_headline" validate:"max=300"`
	LogoURL            string    `json:"logo_url" validate:"omitempty,url"`
	AboutImageURL      string    `json:"about_image_url" validate:"omitempty,url"`
	HeroImageURL       string    `json:"hero_image_url" validate:"omitempty,url"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Office is a physical branch location.
type Office struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name" validate:"required,max=200"`
	Country        string    `json:"country" validate:"required,max=100"`
	City           string    `json:"city" validate:"required,max=100"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone" validate:"max=50"`
	Email          string    `json:"email" validate:"omitempty,email"`
	WhatsApp       string    `json:"whatsapp" validate:"max=50"`
	FacebookURL    string    `json:"facebook_url" validate:"omitempty,url"`
	Latitude       *float64  `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64  `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	IsHeadquarters bool      `json:"is_headquarters"`
	ImageURL       string    `json:"image_url" validate:"omitempty,url"`
	IsActive       bool      `json:"is_active"`
	DisplayOrder   int       `json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
