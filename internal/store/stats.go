// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// countedTables maps admin entity type names to the table holding them.
var countedTables = []struct{ entity, table string }{
	{"Company", "company"},
	{"Office", "offices"},
	{"Branch", "branches"},
	{"Leadership", "leadership"},
	{"Certification", "certifications"},
	{"Industry", "industries"},
	{"Client", "clients"},
	{"Testimonial", "testimonials"},
	{"Job", "jobs"},
	{"JobCategory", "job_categories"},
	{"JobApplication", "job_applications"},
	{"EmployerInquiry", "employer_inquiries"},
	{"ContactMessage", "contact_messages"},
	{"TrainingCourse", "training_courses"},
	{"TrainingFacility", "training_facilities"},
	{"MediaAlbum", "media_albums"},
	{"NewsPost", "news_posts"},
	{"Document", "documents"},
	{"FAQ", "faqs"},
	{"Policy", "policies"},
	{"CSRProject", "csr_projects"},
	{"Career", "careers"},
	{"JapanLandingPage", "japan_landing"},
	{"JapanProgram", "japan_programs"},
	{"User", "users"},
	{"AllowedEmail", "allowed_emails"},
}

// StatsStore answers the dashboard's aggregate questions.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore returns a new StatsStore.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// Counts returns the number of rows per entity type in one round trip.
func (s *StatsStore) Counts(ctx context.Context) (map[string]int, error) {
	parts := make([]string, len(countedTables))
	for i, t := range countedTables {
		parts[i] = `(SELECT COUNT(*) FROM ` + t.table + `)`
	}

	dest := make([]any, len(countedTables))
	vals := make([]int, len(countedTables))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := s.db.QueryRowContext(ctx, `SELECT `+strings.Join(parts, ", ")).Scan(dest...); err != nil {
		return nil, fmt.Errorf("count entities: %w", err)
	}

	out := make(map[string]int, len(countedTables))
	for i, t := range countedTables {
		out[t.entity] = vals[i]
	}
	return out, nil
}

// Pending returns the number of records waiting for staff attention:
// submitted applications, new inquiries and unread messages.
func (s *StatsStore) Pending(ctx context.Context) (map[string]int, error) {
	var apps, inquiries, messages int
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM job_applications WHERE status = 'submitted'),
			(SELECT COUNT(*) FROM employer_inquiries WHERE status = 'new'),
			(SELECT COUNT(*) FROM contact_messages WHERE NOT is_read)`,
	).Scan(&apps, &inquiries, &messages)
	if err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	return map[string]int{
		"JobApplication":  apps,
		"EmployerInquiry": inquiries,
		"ContactMessage":  messages,
	}, nil
}
