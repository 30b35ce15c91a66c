// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the recruitment CMS.
// Handlers are grouped by concern (public API, admin, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"context"
	"database/sql"
	"io"
	"time"

	"khrm/internal/mailer"
	"khrm/internal/storage"
	"khrm/internal/store"
)

// Stores bundles every data store the handlers use.
type Stores struct {
	Company       *store.CompanyStore
	Offices       *store.OfficeStore
	Branches      *store.BranchStore
	Leadership    *store.LeadershipStore
	Certs         *store.CertificationStore
	Industries    *store.IndustryStore
	Clients       *store.ClientStore
	Testimonials  *store.TestimonialStore
	Jobs          *store.JobStore
	Categories    *store.JobCategoryStore
	Applications  *store.ApplicationStore
	Inquiries     *store.InquiryStore
	Contacts      *store.ContactStore
	Training      *store.TrainingStore
	Facilities    *store.FacilityStore
	Albums        *store.AlbumStore
	News          *store.NewsStore
	Documents     *store.DocumentStore
	FAQs          *store.FAQStore
	Policies      *store.PolicyStore
	CSR           *store.CSRStore
	Careers       *store.CareerStore
	Japan         *store.JapanStore
	Users         *store.UserStore
	AllowedEmails *store.AllowedEmailStore
	Stats         *store.StatsStore
}

// NewStores creates every store on top of db.
func NewStores(db *sql.DB) *Stores {
	return &Stores{
		Company:       store.NewCompanyStore(db),
		Offices:       store.NewOfficeStore(db),
		Branches:      store.NewBranchStore(db),
		Leadership:    store.NewLeadershipStore(db),
		Certs:         store.NewCertificationStore(db),
		Industries:    store.NewIndustryStore(db),
		Clients:       store.NewClientStore(db),
		Testimonials:  store.NewTestimonialStore(db),
		Jobs:          store.NewJobStore(db),
		Categories:    store.NewJobCategoryStore(db),
		Applications:  store.NewApplicationStore(db),
		Inquiries:     store.NewInquiryStore(db),
		Contacts:      store.NewContactStore(db),
		Training:      store.NewTrainingStore(db),
		Facilities:    store.NewFacilityStore(db),
		Albums:        store.NewAlbumStore(db),
		News:          store.NewNewsStore(db),
		Documents:     store.NewDocumentStore(db),
		FAQs:          store.NewFAQStore(db),
		Policies:      store.NewPolicyStore(db),
		CSR:           store.NewCSRStore(db),
		Careers:       store.NewCareerStore(db),
		Japan:         store.NewJapanStore(db),
		Users:         store.NewUserStore(db),
		AllowedEmails: store.NewAllowedEmailStore(db),
		Stats:         store.NewStatsStore(db),
	}
}

// Notifier queues staff notifications. Implemented by jobs.Runner.
type Notifier interface {
	Notify(ctx context.Context, n mailer.Notification)
}

// FileStore accepts uploads, signs links to private objects and removes
// objects whose record is gone. Implemented by *storage.Client.
type FileStore interface {
	Put(ctx context.Context, kind storage.Kind, filename string, body io.Reader, size int64) (*storage.Stored, error)
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
	Remove(ctx context.Context, ref string, private bool) error
}

// Invalidator drops cached public API responses after admin writes.
// Implemented by *cache.ResponseCache.
type Invalidator interface {
	InvalidateAll(ctx context.Context)
}

// privateLinkTTL bounds how long a signed resume or demand letter link works.
const privateLinkTTL = 15 * time.Minute
