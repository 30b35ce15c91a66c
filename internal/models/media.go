// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MediaAlbum groups photos of one event or activity.
type MediaAlbum struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title" validate:"required,max=200"`
	Slug          string       `json:"slug" validate:"max=220"`
	AlbumType     string       `json:"album_type" validate:"max=50"`
	Description   string       `json:"description"`
	CoverImageURL string       `json:"cover_image_url" validate:"omitempty,url"`
	Date          time.Time    `json:"date"`
	DisplayOrder  int          `json:"display_order"`
	PhotoCount    int          `json:"photo_count"`
	Photos        []MediaPhoto `json:"photos,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// MediaPhoto is one image inside an album.
type MediaPhoto struct {
	ID           uuid.UUID `json:"id"`
	AlbumID      uuid.UUID `json:"album_id"`
	ImageURL     string    `json:"image_url" validate:"required,url"`
	Caption      string    `json:"caption" validate:"max=300"`
	DisplayOrder int       `json:"display_order"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Document is a downloadable form or template.
type Document struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title" validate:"required,max=200"`
	DocumentType  string    `json:"document_type" validate:"max=50"`
	Description   string    `json:"description"`
	FileKey       string    `json:"-"`
	FileURL       string    `json:"file_url"`
	SizeBytes     int64     `json:"size_bytes"`
	DownloadCount int       `json:"download_count"`
	IsActive      bool      `json:"is_active"`
	DisplayOrder  int       `json:"display_order"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// HumanSize returns a human-readable file size string.
func (d *Document) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case d.SizeBytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(d.SizeBytes)/float64(mb))
	case d.SizeBytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(d.SizeBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", d.SizeBytes)
	}
}
