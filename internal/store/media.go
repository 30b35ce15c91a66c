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

// AlbumStore handles photo albums and the photos inside them.
type AlbumStore struct {
	db *sql.DB
}

// NewAlbumStore creates a new AlbumStore with the given database connection.
func NewAlbumStore(db *sql.DB) *AlbumStore {
	return &AlbumStore{db: db}
}

// albumColumns lists the columns selected in album queries, including
// the derived photo count.
const albumColumns = `a.id, a.title, a.slug, a.album_type, a.description, a.cover_image_url,
	a.date, a.display_order,
	(SELECT COUNT(*) FROM media_photos p WHERE p.album_id = a.id),
	a.created_at, a.updated_at`

func scanAlbum(sc scanner) (*models.MediaAlbum, error) {
	var a models.MediaAlbum
	err := sc.Scan(&a.ID, &a.Title, &a.Slug, &a.AlbumType, &a.Description, &a.CoverImageURL,
		&a.Date, &a.DisplayOrder, &a.PhotoCount, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const photoColumns = `id, album_id, image_url, caption, display_order, uploaded_at`

func scanPhoto(sc scanner) (*models.MediaPhoto, error) {
	var p models.MediaPhoto
	if err := sc.Scan(&p.ID, &p.AlbumID, &p.ImageURL, &p.Caption, &p.DisplayOrder, &p.UploadedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns albums, optionally of one type, newest first.
func (s *AlbumStore) List(ctx context.Context, albumType string) ([]models.MediaAlbum, error) {
	w := &where{}
	if albumType != "" {
		w.add("a.album_type = $%d", albumType)
	}
	return findAll(ctx, s.db, scanAlbum, "albums",
		`SELECT `+albumColumns+` FROM media_albums a`+w.String()+
			` ORDER BY a.display_order, a.date DESC`, w.args...)
}

// FindByID retrieves an album without its photos. Returns nil if not found.
func (s *AlbumStore) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaAlbum, error) {
	return findOne(ctx, s.db, scanAlbum, "album",
		`SELECT `+albumColumns+` FROM media_albums a WHERE a.id = $1`, id)
}

// FindBySlug retrieves an album with its photos. Returns nil if not found.
func (s *AlbumStore) FindBySlug(ctx context.Context, slug string) (*models.MediaAlbum, error) {
	a, err := findOne(ctx, s.db, scanAlbum, "album by slug",
		`SELECT `+albumColumns+` FROM media_albums a WHERE a.slug = $1`, slug)
	if err != nil || a == nil {
		return a, err
	}
	if a.Photos, err = s.Photos(ctx, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

// Photos returns the photos of an album in display order.
func (s *AlbumStore) Photos(ctx context.Context, albumID uuid.UUID) ([]models.MediaPhoto, error) {
	return findAll(ctx, s.db, scanPhoto, "album photos", `
		SELECT `+photoColumns+` FROM media_photos
		WHERE album_id = $1 ORDER BY display_order, uploaded_at`, albumID)
}

// Create inserts an album.
func (s *AlbumStore) Create(ctx context.Context, a *models.MediaAlbum) (*models.MediaAlbum, error) {
	var id uuid.UUID
	_, err := saveWithSlug(ctx, s.db, "media_albums", uuid.Nil, a.Title, a.Slug, func(slug string) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO media_albums (title, slug, album_type, description, cover_image_url, date, display_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			a.Title, slug, a.AlbumType, a.Description, a.CoverImageURL, a.Date, a.DisplayOrder,
		).Scan(&id)
	})
	if err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update overwrites an album's metadata.
func (s *AlbumStore) Update(ctx context.Context, a *models.MediaAlbum) error {
	assigned, err := saveWithSlug(ctx, s.db, "media_albums", a.ID, a.Title, a.Slug, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE media_albums SET title = $1, slug = $2, album_type = $3, description = $4,
				cover_image_url = $5, date = $6, display_order = $7, updated_at = NOW()
			WHERE id = $8`,
			a.Title, slug, a.AlbumType, a.Description, a.CoverImageURL, a.Date, a.DisplayOrder, a.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	a.Slug = assigned
	return nil
}

// Delete removes an album and, by cascade, its photos.
func (s *AlbumStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "media_albums", id)
}

// AddPhoto appends a photo to an album.
func (s *AlbumStore) AddPhoto(ctx context.Context, p *models.MediaPhoto) (*models.MediaPhoto, error) {
	created, err := scanPhoto(s.db.QueryRowContext(ctx, `
		INSERT INTO media_photos (album_id, image_url, caption, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+photoColumns,
		p.AlbumID, p.ImageURL, p.Caption, p.DisplayOrder))
	if err != nil {
		return nil, fmt.Errorf("add photo: %w", err)
	}
	return created, nil
}

// FindPhoto retrieves a photo. Returns nil if not found.
func (s *AlbumStore) FindPhoto(ctx context.Context, id uuid.UUID) (*models.MediaPhoto, error) {
	return findOne(ctx, s.db, scanPhoto, "photo", `SELECT `+photoColumns+` FROM media_photos WHERE id = $1`, id)
}

// RemovePhoto deletes a photo.
func (s *AlbumStore) RemovePhoto(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "media_photos", id)
}

// DocumentStore manages downloadable documents.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore returns a new DocumentStore.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = `id, title, document_type, description, file_key, file_url, size_bytes,
	download_count, is_active, display_order, uploaded_at`

func scanDocument(sc scanner) (*models.Document, error) {
	var d models.Document
	err := sc.Scan(&d.ID, &d.Title, &d.DocumentType, &d.Description, &d.FileKey, &d.FileURL,
		&d.SizeBytes, &d.DownloadCount, &d.IsActive, &d.DisplayOrder, &d.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns documents, optionally of one type.
func (s *DocumentStore) List(ctx context.Context, docType string, activeOnly bool) ([]models.Document, error) {
	w := &where{}
	if activeOnly {
		w.raw("is_active")
	}
	if docType != "" {
		w.add("document_type = $%d", docType)
	}
	return findAll(ctx, s.db, scanDocument, "documents",
		`SELECT `+documentColumns+` FROM documents`+w.String()+` ORDER BY display_order, title`, w.args...)
}

// FindByID retrieves a document. Returns nil if not found.
func (s *DocumentStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return findOne(ctx, s.db, scanDocument, "document",
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// Create inserts a document record.
func (s *DocumentStore) Create(ctx context.Context, d *models.Document) (*models.Document, error) {
	if d.DocumentType == "" {
		d.DocumentType = "other"
	}
	created, err := scanDocument(s.db.QueryRowContext(ctx, `
		INSERT INTO documents (title, document_type, description, file_key, file_url, size_bytes,
			is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+documentColumns,
		d.Title, d.DocumentType, d.Description, d.FileKey, d.FileURL, d.SizeBytes,
		d.IsActive, d.DisplayOrder))
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return created, nil
}

// Update overwrites a document's metadata and file reference.
func (s *DocumentStore) Update(ctx context.Context, d *models.Document) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE documents SET title = $1, document_type = $2, description = $3, file_key = $4,
			file_url = $5, size_bytes = $6, is_active = $7, display_order = $8
		WHERE id = $9`,
		d.Title, d.DocumentType, d.Description, d.FileKey, d.FileURL, d.SizeBytes,
		d.IsActive, d.DisplayOrder, d.ID)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// IncrementDownload bumps the download counter of an active document and
// returns the updated record. Returns nil if not found or inactive.
func (s *DocumentStore) IncrementDownload(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return findOne(ctx, s.db, scanDocument, "document download", `
		UPDATE documents SET download_count = download_count + 1
		WHERE id = $1 AND is_active
		RETURNING `+documentColumns, id)
}

// Delete removes a document record.
func (s *DocumentStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return deleteByID(ctx, s.db, "documents", id)
}
