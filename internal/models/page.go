// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Page is one page of a paginated listing.
type Page[T any] struct {
	Count    int `json:"count"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Results  []T `json:"results"`
}

// Pagination limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a normalised page/page_size pair.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest clamps page to >= 1 and size to [1, MaxPageSize],
// substituting DefaultPageSize for non-positive sizes.
func NewPageRequest(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: size}
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// NewPage wraps results for p. A nil slice becomes empty so it encodes as [].
func NewPage[T any](p PageRequest, count int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	return Page[T]{Count: count, Page: p.Page, PageSize: p.PageSize, Results: results}
}
