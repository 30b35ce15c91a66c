// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"khrm/internal/slug"
)

var (
	// ErrTooLarge is returned when a file exceeds its kind's size limit.
	ErrTooLarge = errors.New("file too large")

	// ErrType is returned when a file's sniffed content type is not accepted.
	ErrType = errors.New("file type not allowed")

	// ErrDisabled is returned when uploads are attempted without storage.
	ErrDisabled = errors.New("file storage not configured")
)

// Kind classifies an upload and decides bucket, prefix and limits.
type Kind struct {
	Prefix  string
	Private bool
	MaxSize int64
	Types   map[string]string // sniffed content type -> extension
}

var (
	documentTypes = map[string]string{
		"application/pdf":    ".pdf",
		"application/msword": ".doc",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	}
	imageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	}
)

// Upload kinds used by the API.
var (
	Resume       = Kind{Prefix: "resumes", Private: true, MaxSize: 5 << 20, Types: documentTypes}
	DemandLetter = Kind{Prefix: "demand-letters", Private: true, MaxSize: 10 << 20, Types: documentTypes}
	PublicDoc    = Kind{Prefix: "documents", MaxSize: 20 << 20, Types: documentTypes}
	Image        = Kind{Prefix: "images", MaxSize: 10 << 20, Types: imageTypes}
)

// Stored describes an uploaded object.
type Stored struct {
	Key         string
	URL         string // empty for private objects
	ContentType string
	Size        int64
}

// Put validates and stores body under kind. The content type is sniffed
// from the first bytes rather than trusted from the client.
func (c *Client) Put(ctx context.Context, kind Kind, filename string, body io.Reader, size int64) (*Stored, error) {
	if c == nil {
		return nil, ErrDisabled
	}
	if size > kind.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, size, kind.MaxSize)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	contentType := DetectType(head)
	ext, ok := kind.Types[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrType, contentType)
	}

	key := ObjectKey(kind.Prefix, filename, ext, time.Now())
	bucket := c.publicBucket
	if kind.Private {
		bucket = c.privateBucket
	}
	if err := c.Upload(ctx, bucket, key, contentType, io.MultiReader(bytes.NewReader(head), body), size); err != nil {
		return nil, err
	}

	s := &Stored{Key: key, ContentType: contentType, Size: size}
	if !kind.Private {
		s.URL = c.FileURL(key)
	}
	return s, nil
}

// Remove deletes the object behind ref, which is either a key or a public
// URL of this storage. private selects the bucket. URLs pointing anywhere
// else are left alone.
func (c *Client) Remove(ctx context.Context, ref string, private bool) error {
	if c == nil {
		return ErrDisabled
	}
	if ref == "" {
		return nil
	}
	key := ref
	if strings.Contains(ref, "://") {
		k, ok := c.ExtractKey(ref)
		if !ok {
			return nil
		}
		key = k
	}
	bucket := c.PublicBucket()
	if private {
		bucket = c.PrivateBucket()
	}
	return c.Delete(ctx, bucket, key)
}

// sniffLen is how much of an upload is read before deciding its type.
// Office formats need more than the first few bytes.
const sniffLen = 3072

// DetectType sniffs the content type of head, dropping parameters.
func DetectType(head []byte) string {
	ct := mimetype.Detect(head).String()
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

// ObjectKey builds "<prefix>/<yyyy>/<mm>/<uuid>-<slug><ext>" so keys never
// collide and stay readable.
func ObjectKey(prefix, filename, ext string, now time.Time) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	name := slug.Generate(base)
	if len(name) > 60 {
		name = strings.Trim(name[:60], "-")
	}
	id := uuid.NewString()
	if name != "" {
		id += "-" + name
	}
	return fmt.Sprintf("%s/%04d/%02d/%s%s", prefix, now.Year(), int(now.Month()), id, ext)
}
