// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"testing"
	"time"
)

// TestStatusValid checks every status type against its known values and a
// few near-misses.
func TestStatusValid(t *testing.T) {
	tests := []struct {
		name  string
		valid func(string) bool
		good  []string
		bad   []string
	}{
		{
			name:  "job",
			valid: func(s string) bool { return JobStatus(s).Valid() },
			good:  []string{"open", "closed", "filled", "on_hold"},
			bad:   []string{"", "Open", "on-hold", "archived"},
		},
		{
			name:  "application",
			valid: func(s string) bool { return ApplicationStatus(s).Valid() },
			good:  []string{"submitted", "screening", "interview", "medical", "selected", "rejected", "deployed"},
			bad:   []string{"", "hired", "Submitted"},
		},
		{
			name:  "inquiry",
			valid: func(s string) bool { return InquiryStatus(s).Valid() },
			good:  []string{"new", "processing", "quotation_sent", "approved", "completed", "cancelled"},
			bad:   []string{"", "canceled", "quotation sent"},
		},
		{
			name:  "inquiry type",
			valid: func(s string) bool { return InquiryType(s).Valid() },
			good:  []string{"general", "employer", "job_seeker", "training", "complaint"},
			bad:   []string{"", "other"},
		},
		{
			name:  "policy kind",
			valid: func(s string) bool { return PolicyKind(s).Valid() },
			good:  []string{"privacy", "terms"},
			bad:   []string{"", "cookies"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.good {
				if !tt.valid(s) {
					t.Errorf("%q should be valid", s)
				}
			}
			for _, s := range tt.bad {
				if tt.valid(s) {
					t.Errorf("%q should be invalid", s)
				}
			}
		})
	}
}

func TestJobAcceptsApplications(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name     string
		status   JobStatus
		deadline *time.Time
		want     bool
	}{
		{name: "open no deadline", status: JobOpen, want: true},
		{name: "open deadline today", status: JobOpen, deadline: day(2026, 3, 10), want: true},
		{name: "open deadline future", status: JobOpen, deadline: day(2026, 4, 1), want: true},
		{name: "open deadline passed", status: JobOpen, deadline: day(2026, 3, 9), want: false},
		{name: "closed", status: JobClosed, want: false},
		{name: "on hold", status: JobOnHold, deadline: day(2026, 4, 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &Job{Status: tt.status, ApplicationDeadline: tt.deadline}
			if got := j.AcceptsApplications(now); got != tt.want {
				t.Errorf("AcceptsApplications() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJobApplicationFullName(t *testing.T) {
	a := &JobApplication{FirstName: "Ram", LastName: "Thapa"}
	if got := a.FullName(); got != "Ram Thapa" {
		t.Errorf("FullName() = %q", got)
	}
	a.LastName = ""
	if got := a.FullName(); got != "Ram" {
		t.Errorf("FullName() = %q", got)
	}
}

// TestDocumentHumanSize verifies the human-readable size formatting.
func TestDocumentHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "2 KB"},
		{1048576, "1.0 MB"},
		{5 * 1048576 / 2, "2.5 MB"},
	}
	for _, tt := range tests {
		d := &Document{SizeBytes: tt.size}
		if got := d.HumanSize(); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestJapanProgramSlugSource(t *testing.T) {
	p := &JapanProgram{ProgramType: "Specified Skilled Worker"}
	if got := p.SlugSource(); got != "Specified Skilled Worker" {
		t.Errorf("SlugSource() = %q", got)
	}
	p.Subtitle = "Caregiving"
	if got := p.SlugSource(); got != "Specified Skilled Worker Caregiving" {
		t.Errorf("SlugSource() = %q", got)
	}
}

func TestNewPageRequest(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
		wantOffset         int
	}{
		{0, 0, 1, DefaultPageSize, 0},
		{-2, 10, 1, 10, 0},
		{3, 10, 3, 10, 20},
		{2, 500, 2, MaxPageSize, MaxPageSize},
	}
	for _, tt := range tests {
		p := NewPageRequest(tt.page, tt.size)
		if p.Page != tt.wantPage || p.PageSize != tt.wantSize || p.Offset() != tt.wantOffset {
			t.Errorf("NewPageRequest(%d,%d) = %+v offset %d", tt.page, tt.size, p, p.Offset())
		}
	}
}

func TestNewPage_NilResultsEncodeEmpty(t *testing.T) {
	p := NewPage[Job](NewPageRequest(1, 20), 0, nil)
	if p.Results == nil {
		t.Fatal("Results should be an empty slice, not nil")
	}
}
