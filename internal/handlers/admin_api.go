// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"khrm/internal/middleware"
	"khrm/internal/models"
	"khrm/internal/respond"
	"khrm/internal/storage"
	"khrm/internal/store"
)

// maxBulkIDs caps bulk status changes.
const maxBulkIDs = 500

// APIRoutes mounts the admin JSON API. The caller has already applied
// authentication, 2FA and CSRF protection.
func (a *Admin) APIRoutes(r chi.Router) {
	s := a.stores

	r.Get("/menu", a.Menu)
	r.Post("/uploads/images", a.UploadImage)

	r.Route("/company", func(r chi.Router) {
		r.Get("/", a.CompanyGet)
		r.Post("/", a.CompanyCreate)
		r.Put("/", a.CompanyUpdate)
		r.Patch("/", a.CompanyUpdate)
	})

	r.Route("/offices", resource[models.Office]{
		admin:  a,
		list:   func(r *http.Request) (any, error) { return listAll(s.Offices.List(r.Context(), false)) },
		find:   s.Offices.FindByID,
		create: s.Offices.Create,
		update: s.Offices.Update,
		remove: s.Offices.Delete,
		setID:  func(v *models.Office, id uuid.UUID) { v.ID = id },
	}.routes)

	r.Route("/branches", resource[models.Branch]{
		admin:  a,
		list:   func(r *http.Request) (any, error) { return listAll(s.Branches.List(r.Context())) },
		find:   s.Branches.FindByID,
		create: s.Branches.Create,
		update: s.Branches.Update,
		remove: s.Branches.Delete,
		setID:  func(v *models.Branch, id uuid.UUID) { v.ID = id },
		prepare: func(_ *http.Request, v *models.Branch, _ respond.FieldErrors) {
			v.Country = strings.TrimSpace(v.Country)
		},
	}.routes)

	r.Route("/leadership", resource[models.Leader]{
		admin:  a,
		list:   func(r *http.Request) (any, error) { return listAll(s.Leadership.List(r.Context())) },
		find:   s.Leadership.FindByID,
		create: s.Leadership.Create,
		update: s.Leadership.Update,
		remove: s.Leadership.Delete,
		setID:  func(v *models.Leader, id uuid.UUID) { v.ID = id },
	}.routes)

	r.Route("/certifications", resource[models.Certification]{
		admin:  a,
		list:   func(r *http.Request) (any, error) { return listAll(s.Certs.List(r.Context())) },
		find:   s.Certs.FindByID,
		create: s.Certs.Create,
		update: s.Certs.Update,
		remove: s.Certs.Delete,
		setID:  func(v *models.Certification, id uuid.UUID) { v.ID = id },
	}.routes)

	r.Route("/industries", resource[models.Industry]{
		admin:   a,
		list:    func(r *http.Request) (any, error) { return listAll(s.Industries.List(r.Context(), false)) },
		find:    s.Industries.FindByID,
		create:  s.Industries.Create,
		update:  s.Industries.Update,
		remove:  s.Industries.Delete,
		setID:   func(v *models.Industry, id uuid.UUID) { v.ID = id },
		prepare: func(_ *http.Request, v *models.Industry, fe respond.FieldErrors) { normalizeSlug(&v.Slug, fe) },
	}.routes)

	r.Route("/clients", resource[models.Client]{
		admin:  a,
		list:   a.listClients,
		find:   s.Clients.FindByID,
		create: s.Clients.Create,
		update: s.Clients.Update,
		remove: s.Clients.Delete,
		setID:  func(v *models.Client, id uuid.UUID) { v.ID = id },
	}.routes)

	r.Route("/testimonials", resource[models.Testimonial]{
		admin: a,
		list: func(r *http.Request) (any, error) {
			return listAll(s.Testimonials.List(r.Context(), boolParam(r, "featured"), 0))
		},
		find:   s.Testimonials.FindByID,
		create: s.Testimonials.Create,
		update: s.Testimonials.Update,
		remove: s.Testimonials.Delete,
		setID:  func(v *models.Testimonial, id uuid.UUID) { v.ID = id },
		prepare: func(_ *http.Request, v *models.Testimonial, _ respond.FieldErrors) {
			if v.Rating == 0 {
				v.Rating = 5
			}
		},
	}.routes)

	r.Route("/job-categories", resource[models.JobCategory]{
		admin:  a,
		list:   a.listCategories,
		find:   s.Categories.FindByID,
		create: s.Categories.Create,
		update: s.Categories.Update,
		remove: s.Categories.Delete,
		setID:  func(v *models.JobCategory, id uuid.UUID) { v.ID = id },
		prepare: func(_ *http.Request, v *models.JobCategory, fe respond.FieldErrors) {
			if v.SkillLevel == "" {
				v.SkillLevel = models.SkillSkilled
			}
			if !v.SkillLevel.Valid() {
				fe.Add("skill_level", "Must be skilled, semi_skilled, professional or unskilled.")
			}
		},
	}.routes)

	r.Route("/jobs", func(r chi.Router) {
		resource[models.Job]{
			admin:   a,
			list:    a.listJobs,
			find:    s.Jobs.FindByID,
			create:  s.Jobs.Create,
			update:  s.Jobs.Update,
			remove:  s.Jobs.Delete,
			setID:   func(v *models.Job, id uuid.UUID) { v.ID = id },
			prepare: a.prepareJob,
		}.routes(r)
		r.Patch("/{id}/status", a.JobStatus)
	})

	r.Route("/applications", func(r chi.Router) {
		r.Get("/", a.ListApplications)
		r.Post("/bulk-status", a.BulkApplicationStatus)
		r.Get("/{id}", a.GetApplication)
		r.Patch("/{id}/status", a.ApplicationStatus)
		r.Delete("/{id}", resource[models.JobApplication]{
			admin:  a,
			find:   s.Applications.FindByID,
			remove: s.Applications.Delete,
			file:   func(v *models.JobApplication) (string, bool) { return v.ResumeKey, true },
		}.Delete)
	})

	r.Route("/inquiries", func(r chi.Router) {
		r.Get("/", a.ListInquiries)
		r.Post("/bulk-status", a.BulkInquiryStatus)
		r.Get("/{id}", a.GetInquiry)
		r.Patch("/{id}/status", a.InquiryStatus)
		r.Delete("/{id}", resource[models.EmployerInquiry]{
			admin:  a,
			find:   s.Inquiries.FindByID,
			remove: s.Inquiries.Delete,
			file:   func(v *models.EmployerInquiry) (string, bool) { return v.DemandLetterKey, true },
		}.Delete)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", a.ListContacts)
		r.Get("/{id}", a.GetContact)
		r.Patch("/{id}", a.MarkContact)
		r.Delete("/{id}", a.deleteHandler(s.Contacts.Delete))
	})

	r.Route("/training", resource[models.TrainingCourse]{
		admin:   a,
		list:    func(r *http.Request) (any, error) { return listAll(s.Training.List(r.Context(), false)) },
		find:    s.Training.FindByID,
		create:  s.Training.Create,
		update:  s.Training.Update,
		remove:  s.Training.Delete,
		setID:   func(v *models.TrainingCourse, id uuid.UUID) { v.ID = id },
		prepare: func(_ *http.Request, v *models.TrainingCourse, fe respond.FieldErrors) { normalizeSlug(&v.Slug, fe) },
	}.routes)

	r.Route("/training-facilities", resource[models.TrainingFacility]{
		admin:  a,
		list:   func(r *http.Request) (any, error) { return listAll(s.Facilities.List(r.Context())) },
		find:   s.Facilities.FindByID,
		create: s.Facilities.Create,
		update: s.Facilities.Update,
		remove: s.Facilities.Delete,
		setID:  func(v *models.TrainingFacility, id uuid.UUID) { v.ID = id },
	}.routes)

	r.Route("/albums", func(r chi.Router) {
		resource[models.MediaAlbum]{
			admin: a,
			list: func(r *http.Request) (any, error) {
				return listAll(s.Albums.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("type"))))
			},
			find:    a.findAlbum,
			create:  s.Albums.Create,
			update:  s.Albums.Update,
			remove:  s.Albums.Delete,
			setID:   func(v *models.MediaAlbum, id uuid.UUID) { v.ID = id },
			prepare: func(_ *http.Request, v *models.MediaAlbum, fe respond.FieldErrors) { normalizeSlug(&v.Slug, fe) },
		}.routes(r)
		r.Post("/{id}/photos", a.AddPhoto)
		r.Delete("/{id}/photos/{photoID}", a.RemovePhoto)
	})

	r.Route("/news", resource[models.NewsPost]{
		admin: a,
		list: func(r *http.Request) (any, error) {
			p := pageRequest(r)
			posts, total, err := s.News.List(r.Context(), store.NewsFilter{
				PostType: strings.TrimSpace(r.URL.Query().Get("type")),
			}, p)
			return models.NewPage(p, total, posts), err
		},
		find:    s.News.FindByID,
		create:  s.News.Create,
		update:  s.News.Update,
		remove:  s.News.Delete,
		setID:   func(v *models.NewsPost, id uuid.UUID) { v.ID = id },
		prepare: a.prepareNews,
	}.routes)

	r.Route("/documents", func(r chi.Router) {
		resource[models.Document]{
			admin: a,
			list: func(r *http.Request) (any, error) {
				return listAll(s.Documents.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("type")), false))
			},
			find:   s.Documents.FindByID,
			update: s.Documents.Update,
			remove: s.Documents.Delete,
			setID:  func(v *models.Document, id uuid.UUID) { v.ID = id },
			file:   func(v *models.Document) (string, bool) { return v.FileKey, false },
		}.routes(r)
		r.Post("/", a.CreateDocument)
	})

	r.Route("/faqs", resource[models.FAQ]{
		admin: a,
		list: func(r *http.Request) (any, error) {
			return listAll(s.FAQs.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")), false))
		},
		find:   s.FAQs.FindByID,
		create: s.FAQs.Create,
		update: s.FAQs.Update,
		remove: s.FAQs.Delete,
		setID:  func(v *models.FAQ, id uuid.UUID) { v.ID = id },
	}.routes)

	r.Route("/policies", resource[models.Policy]{
		admin:  a,
		list:   func(r *http.Request) (any, error) { return listAll(s.Policies.List(r.Context())) },
		find:   s.Policies.FindByID,
		create: s.Policies.Create,
		update: s.Policies.Update,
		remove: s.Policies.Delete,
		setID:  func(v *models.Policy, id uuid.UUID) { v.ID = id },
		prepare: func(_ *http.Request, v *models.Policy, fe respond.FieldErrors) {
			normalizeSlug(&v.Slug, fe)
			if v.Kind != "" && !v.Kind.Valid() {
				fe.Add("kind", "Must be privacy or terms.")
			}
		},
	}.routes)

	r.Route("/csr", resource[models.CSRProject]{
		admin:   a,
		list:    func(r *http.Request) (any, error) { return listAll(s.CSR.List(r.Context(), false)) },
		find:    s.CSR.FindByID,
		create:  s.CSR.Create,
		update:  s.CSR.Update,
		remove:  s.CSR.Delete,
		setID:   func(v *models.CSRProject, id uuid.UUID) { v.ID = id },
		prepare: func(_ *http.Request, v *models.CSRProject, fe respond.FieldErrors) { normalizeSlug(&v.Slug, fe) },
	}.routes)

	r.Route("/careers", resource[models.Career]{
		admin:   a,
		list:    func(r *http.Request) (any, error) { return listAll(s.Careers.List(r.Context(), false)) },
		find:    s.Careers.FindByID,
		create:  s.Careers.Create,
		update:  s.Careers.Update,
		remove:  s.Careers.Delete,
		setID:   func(v *models.Career, id uuid.UUID) { v.ID = id },
		prepare: func(_ *http.Request, v *models.Career, fe respond.FieldErrors) { normalizeSlug(&v.Slug, fe) },
	}.routes)

	r.Route("/japan/landing", func(r chi.Router) {
		r.Get("/", a.JapanLandingGet)
		r.Put("/", a.JapanLandingPut)
	})

	r.Route("/japan/programs", resource[models.JapanProgram]{
		admin:   a,
		list:    func(r *http.Request) (any, error) { return listAll(s.Japan.Programs(r.Context(), false)) },
		find:    s.Japan.FindProgram,
		create:  s.Japan.CreateProgram,
		update:  s.Japan.UpdateProgram,
		remove:  s.Japan.DeleteProgram,
		setID:   func(v *models.JapanProgram, id uuid.UUID) { v.ID = id },
		prepare: preparePrograms,
	}.routes)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleAdmin))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", a.ListUsers)
			r.Post("/{id}/reset-2fa", a.ResetUser2FA)
			r.Patch("/{id}/role", a.SetUserRole)
			r.Delete("/{id}", a.DeleteUser)
		})

		r.Route("/allowed-emails", func(r chi.Router) {
			r.Get("/", a.ListAllowedEmails)
			r.Post("/", a.AddAllowedEmail)
			r.Delete("/{id}", a.deleteHandler(s.AllowedEmails.RemoveByID))
		})
	})
}

// listAll adapts a plain store listing to a resource list function.
func listAll[T any](items []T, err error) (any, error) {
	return list(items), err
}

// deleteHandler answers 204, or 404 when nothing was deleted.
func (a *Admin) deleteHandler(remove func(ctx context.Context, id uuid.UUID) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		deleted, err := remove(r.Context(), id)
		if err != nil {
			storeError(w, r, err)
			return
		}
		if !deleted {
			respond.NotFound(w, r)
			return
		}
		a.invalidate(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

// --- Company ---

// CompanyGet returns the company profile.
func (a *Admin) CompanyGet(w http.ResponseWriter, r *http.Request) {
	c, err := a.stores.Company.Get(r.Context())
	if found(w, r, c, err) {
		respond.JSON(w, r, http.StatusOK, c)
	}
}

// CompanyCreate creates the profile; a second one is a conflict.
func (a *Admin) CompanyCreate(w http.ResponseWriter, r *http.Request) {
	c := &models.Company{}
	if !decodeJSON(w, r, c) || !valid(w, r, c) {
		return
	}
	created, err := a.stores.Company.Create(r.Context(), c)
	if err != nil {
		storeError(w, r, err)
		return
	}
	a.invalidate(r.Context())
	respond.JSON(w, r, http.StatusCreated, created)
}

// CompanyUpdate applies the body on top of the stored profile.
func (a *Admin) CompanyUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := a.stores.Company.Get(ctx)
	if !found(w, r, c, err) {
		return
	}
	id := c.ID
	if !decodeJSON(w, r, c) {
		return
	}
	c.ID = id
	if !valid(w, r, c) {
		return
	}
	if err := a.stores.Company.Update(ctx, c); err != nil {
		storeError(w, r, err)
		return
	}
	a.invalidate(ctx)
	a.CompanyGet(w, r)
}

// --- Jobs ---

func (a *Admin) listJobs(r *http.Request) (any, error) {
	q := r.URL.Query()
	p := pageRequest(r)
	jobs, total, err := a.stores.Jobs.List(r.Context(), store.JobFilter{
		Status:       models.JobStatus(q.Get("status")),
		Country:      strings.TrimSpace(q.Get("country")),
		IndustrySlug: strings.TrimSpace(q.Get("industry")),
		CategoryID:   idParam(r, "category_id"),
		ClientID:     idParam(r, "client_id"),
		FeaturedOnly: boolParam(r, "featured"),
		Query:        strings.TrimSpace(q.Get("q")),
	}, p)
	return models.NewPage(p, total, jobs), err
}

// listClients lists clients. Filters: ?industry_id=, ?country=,
// ?featured=true.
func (a *Admin) listClients(r *http.Request) (any, error) {
	q := r.URL.Query()
	f := store.ClientFilter{
		IndustryID:   idParam(r, "industry_id"),
		Country:      strings.TrimSpace(q.Get("country")),
		FeaturedOnly: boolParam(r, "featured"),
	}
	return listAll(a.stores.Clients.List(r.Context(), f))
}

// listCategories lists job categories. Filters: ?industry_id=,
// ?skill_level=; an unknown skill level matches nothing.
func (a *Admin) listCategories(r *http.Request) (any, error) {
	q := r.URL.Query()
	f := store.CategoryFilter{IndustryID: idParam(r, "industry_id"), SkillLevel: models.SkillLevel(q.Get("skill_level"))}
	if f.SkillLevel != "" && !f.SkillLevel.Valid() {
		return []models.JobCategory{}, nil
	}
	return listAll(a.stores.Categories.List(r.Context(), f))
}

func (a *Admin) prepareJob(_ *http.Request, j *models.Job, fe respond.FieldErrors) {
	normalizeSlug(&j.Slug, fe)
	if j.Status == "" {
		j.Status = models.JobOpen
	}
	if !j.Status.Valid() {
		fe.Add("status", "Invalid status.")
	}
}

type statusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// JobStatus changes only a job's status.
func (a *Admin) JobStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx := r.Context()
	j, err := a.stores.Jobs.FindByID(ctx, id)
	if !found(w, r, j, err) {
		return
	}
	if err := a.stores.Jobs.SetStatus(ctx, id, models.JobStatus(req.Status)); err != nil {
		storeError(w, r, err)
		return
	}
	a.invalidate(ctx)
	j.Status = models.JobStatus(req.Status)
	respond.JSON(w, r, http.StatusOK, j)
}

// --- Applications ---

// applicationDetail adds a short-lived resume link to an application.
type applicationDetail struct {
	*models.JobApplication
	ResumeURL string `json:"resume_url,omitempty"`
}

// ListApplications lists applications. Filters: ?job_id=, ?status=, ?q=.
func (a *Admin) ListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.ApplicationFilter{
		Status: models.ApplicationStatus(q.Get("status")),
		Query:  strings.TrimSpace(q.Get("q")),
	}
	if v := q.Get("job_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respond.Invalid(w, r, respond.FieldErrors{"job_id": "Must be a UUID."})
			return
		}
		f.JobID = &id
	}
	p := pageRequest(r)
	apps, total, err := a.stores.Applications.List(r.Context(), f, p)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, models.NewPage(p, total, apps))
}

// GetApplication returns one application with a signed resume link.
func (a *Admin) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	app, err := a.stores.Applications.FindByID(r.Context(), id)
	if !found(w, r, app, err) {
		return
	}
	respond.JSON(w, r, http.StatusOK, applicationDetail{
		JobApplication: app,
		ResumeURL:      a.privateLink(r.Context(), app.ResumeKey),
	})
}

// ApplicationStatus moves an application through the pipeline.
func (a *Admin) ApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	changed, err := a.stores.Applications.SetStatus(r.Context(), id, models.ApplicationStatus(req.Status), req.Notes)
	a.statusResult(w, r, changed, err)
}

type bulkStatusRequest struct {
	IDs    []uuid.UUID `json:"ids"`
	Status string      `json:"status"`
}

func decodeBulk(w http.ResponseWriter, r *http.Request) (*bulkStatusRequest, bool) {
	var req bulkStatusRequest
	if !decodeJSON(w, r, &req) {
		return nil, false
	}
	switch {
	case len(req.IDs) == 0:
		respond.Invalid(w, r, respond.FieldErrors{"ids": "Select at least one record."})
		return nil, false
	case len(req.IDs) > maxBulkIDs:
		respond.Invalid(w, r, respond.FieldErrors{"ids": "Select at most " + strconv.Itoa(maxBulkIDs) + " records."})
		return nil, false
	}
	return &req, true
}

// BulkApplicationStatus moves many applications to one status.
func (a *Admin) BulkApplicationStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBulk(w, r)
	if !ok {
		return
	}
	n, err := a.stores.Applications.BulkSetStatus(r.Context(), req.IDs, models.ApplicationStatus(req.Status))
	if err != nil {
		storeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]int64{"updated": n})
}

// --- Employer inquiries ---

type inquiryDetail struct {
	*models.EmployerInquiry
	DemandLetterURL string `json:"demand_letter_url,omitempty"`
}

// ListInquiries lists employer inquiries; ?status= narrows by status.
func (a *Admin) ListInquiries(w http.ResponseWriter, r *http.Request) {
	p := pageRequest(r)
	items, total, err := a.stores.Inquiries.List(r.Context(), models.InquiryStatus(r.URL.Query().Get("status")), p)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, models.NewPage(p, total, items))
}

// GetInquiry returns one inquiry with a signed demand letter link.
func (a *Admin) GetInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	q, err := a.stores.Inquiries.FindByID(r.Context(), id)
	if !found(w, r, q, err) {
		return
	}
	respond.JSON(w, r, http.StatusOK, inquiryDetail{
		EmployerInquiry: q,
		DemandLetterURL: a.privateLink(r.Context(), q.DemandLetterKey),
	})
}

// InquiryStatus moves an inquiry through its workflow.
func (a *Admin) InquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	changed, err := a.stores.Inquiries.SetStatus(r.Context(), id, models.InquiryStatus(req.Status), req.Notes)
	a.statusResult(w, r, changed, err)
}

// BulkInquiryStatus moves many inquiries to one status.
func (a *Admin) BulkInquiryStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBulk(w, r)
	if !ok {
		return
	}
	n, err := a.stores.Inquiries.BulkSetStatus(r.Context(), req.IDs, models.InquiryStatus(req.Status))
	if err != nil {
		storeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]int64{"updated": n})
}

func (a *Admin) statusResult(w http.ResponseWriter, r *http.Request, changed bool, err error) {
	if err != nil {
		storeError(w, r, err)
		return
	}
	if !changed {
		respond.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// privateLink signs a private object key, or returns "" when there is
// no key or no storage.
func (a *Admin) privateLink(ctx context.Context, key string) string {
	if key == "" || a.files == nil {
		return ""
	}
	u, err := a.files.PresignedURL(ctx, key, privateLinkTTL)
	if err != nil {
		slog.WarnContext(ctx, "presign failed", "key", key, "error", err)
		return ""
	}
	return u
}

// removeFile deletes a stored object after its record is gone. Failures
// are logged; the record delete has already succeeded.
func (a *Admin) removeFile(ctx context.Context, ref string, private bool) {
	if ref == "" || a.files == nil {
		return
	}
	if err := a.files.Remove(ctx, ref, private); err != nil {
		slog.WarnContext(ctx, "file remove failed", "ref", ref, "error", err)
	}
}

// --- Contact messages ---

// ListContacts lists contact messages; ?unread=true narrows to unread.
func (a *Admin) ListContacts(w http.ResponseWriter, r *http.Request) {
	p := pageRequest(r)
	items, total, err := a.stores.Contacts.List(r.Context(), boolParam(r, "unread"), p)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, models.NewPage(p, total, items))
}

// GetContact returns one message.
func (a *Admin) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := a.stores.Contacts.FindByID(r.Context(), id)
	if found(w, r, m, err) {
		respond.JSON(w, r, http.StatusOK, m)
	}
}

type markRequest struct {
	IsRead  *bool   `json:"is_read"`
	Replied *bool   `json:"replied"`
	Notes   *string `json:"notes"`
}

// MarkContact sets the read and replied flags and staff notes. Omitted
// flags keep their values.
func (a *Admin) MarkContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req markRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx := r.Context()
	m, err := a.stores.Contacts.FindByID(ctx, id)
	if !found(w, r, m, err) {
		return
	}
	if req.IsRead != nil {
		m.IsRead = *req.IsRead
	}
	if req.Replied != nil {
		m.Replied = *req.Replied
	}
	if _, err := a.stores.Contacts.Mark(ctx, id, m.IsRead, m.Replied, req.Notes); err != nil {
		storeError(w, r, err)
		return
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}
	respond.JSON(w, r, http.StatusOK, m)
}

// --- Albums ---

func (a *Admin) findAlbum(ctx context.Context, id uuid.UUID) (*models.MediaAlbum, error) {
	al, err := a.stores.Albums.FindByID(ctx, id)
	if err != nil || al == nil {
		return al, err
	}
	if al.Photos, err = a.stores.Albums.Photos(ctx, id); err != nil {
		return nil, err
	}
	return al, nil
}

// AddPhoto appends a photo to an album.
func (a *Admin) AddPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	al, err := a.stores.Albums.FindByID(ctx, id)
	if !found(w, r, al, err) {
		return
	}
	p := &models.MediaPhoto{}
	if !decodeJSON(w, r, p) {
		return
	}
	p.AlbumID = id
	if !valid(w, r, p) {
		return
	}
	created, err := a.stores.Albums.AddPhoto(ctx, p)
	if err != nil {
		storeError(w, r, err)
		return
	}
	a.invalidate(ctx)
	respond.JSON(w, r, http.StatusCreated, created)
}

// RemovePhoto deletes a photo of the album in the URL.
func (a *Admin) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	albumID, ok := pathID(w, r)
	if !ok {
		return
	}
	photoID, err := uuid.Parse(chi.URLParam(r, "photoID"))
	if err != nil {
		respond.NotFound(w, r)
		return
	}
	ctx := r.Context()
	p, err := a.stores.Albums.FindPhoto(ctx, photoID)
	if p != nil && p.AlbumID != albumID {
		p = nil
	}
	if !found(w, r, p, err) {
		return
	}
	if _, err := a.stores.Albums.RemovePhoto(ctx, photoID); err != nil {
		storeError(w, r, err)
		return
	}
	a.removeFile(ctx, p.ImageURL, false)
	a.invalidate(ctx)
	w.WriteHeader(http.StatusNoContent)
}

// --- News ---

func (a *Admin) prepareNews(r *http.Request, n *models.NewsPost, fe respond.FieldErrors) {
	normalizeSlug(&n.Slug, fe)
	if n.AuthorID == nil {
		if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
			id := sess.UserID
			n.AuthorID = &id
		}
	}
	if n.IsPublished && n.PublishedAt == nil {
		now := a.now()
		n.PublishedAt = &now
	}
}

// --- Documents ---

// CreateDocument uploads a public document. The request is multipart
// with a "file" part and the metadata as form fields.
func (a *Admin) CreateDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Expected a multipart form.", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	d := &models.Document{
		Title:        formValue(r, "title"),
		DocumentType: formValue(r, "document_type"),
		Description:  formValue(r, "description"),
		IsActive:     formValue(r, "is_active") != "false",
	}
	fe := respond.FieldErrors{}
	if v := formValue(r, "display_order"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fe.Add("display_order", "Must be a whole number.")
		}
		d.DisplayOrder = n
	}
	for field, msg := range fieldErrors(d) {
		fe.Add(field, msg)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		fe.Add("file", "A file is required.")
	} else {
		defer file.Close()
	}
	if len(fe) > 0 {
		respond.Invalid(w, r, fe)
		return
	}

	ctx := r.Context()
	stored, err := a.put(ctx, storage.PublicDoc, header.Filename, file, header.Size)
	if err != nil {
		storeError(w, r, err)
		return
	}
	d.FileKey = stored.Key
	d.FileURL = stored.URL
	d.SizeBytes = stored.Size

	created, err := a.stores.Documents.Create(ctx, d)
	if err != nil {
		storeError(w, r, err)
		return
	}
	a.invalidate(ctx)
	respond.JSON(w, r, http.StatusCreated, created)
}

func (a *Admin) put(ctx context.Context, kind storage.Kind, filename string, body io.Reader, size int64) (*storage.Stored, error) {
	if a.files == nil {
		return nil, storage.ErrDisabled
	}
	return a.files.Put(ctx, kind, filename, body, size)
}

// UploadImage stores an image for use in any image_url field.
func (a *Admin) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Expected a multipart form.", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Invalid(w, r, respond.FieldErrors{"file": "A file is required."})
		return
	}
	defer file.Close()

	stored, err := a.put(r.Context(), storage.Image, header.Filename, file, header.Size)
	if err != nil {
		storeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, map[string]any{
		"url":          stored.URL,
		"content_type": stored.ContentType,
		"size":         stored.Size,
	})
}

// --- Japan ---

// JapanLandingGet returns the landing document.
func (a *Admin) JapanLandingGet(w http.ResponseWriter, r *http.Request) {
	l, err := a.stores.Japan.Landing(r.Context())
	if found(w, r, l, err) {
		respond.JSON(w, r, http.StatusOK, l)
	}
}

// JapanLandingPut replaces the landing document. The body is the
// document itself and must be a JSON object.
func (a *Admin) JapanLandingPut(w http.ResponseWriter, r *http.Request) {
	var doc json.RawMessage
	if !decodeJSON(w, r, &doc) {
		return
	}
	l, err := a.stores.Japan.PutLanding(r.Context(), doc)
	if err != nil {
		storeError(w, r, err)
		return
	}
	a.invalidate(r.Context())
	respond.JSON(w, r, http.StatusOK, l)
}

func preparePrograms(_ *http.Request, p *models.JapanProgram, fe respond.FieldErrors) {
	normalizeSlug(&p.Slug, fe)
	if len(p.Details) == 0 || string(p.Details) == "null" {
		p.Details = json.RawMessage(`{}`)
	}
}

// --- Users & allow-list ---

// ListUsers lists staff accounts.
func (a *Admin) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.stores.Users.List(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(users))
}

// ResetUser2FA forces a user through 2FA enrollment on next login.
func (a *Admin) ResetUser2FA(w http.ResponseWriter, r *http.Request) {
	u, ok := a.targetUser(w, r)
	if !ok {
		return
	}
	if err := a.stores.Users.ResetTOTP(r.Context(), u.ID); err != nil {
		storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetUserRole changes a user's role. Admins cannot demote themselves.
func (a *Admin) SetUserRole(w http.ResponseWriter, r *http.Request) {
	u, ok := a.targetUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Role models.Role `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Role.Valid() {
		respond.Invalid(w, r, respond.FieldErrors{"role": "Must be admin or editor."})
		return
	}
	if isSelf(r, u.ID) && req.Role != models.RoleAdmin {
		respond.Error(w, r, http.StatusConflict, "You cannot demote yourself.", nil)
		return
	}
	if err := a.stores.Users.SetRole(r.Context(), u.ID, req.Role); err != nil {
		storeError(w, r, err)
		return
	}
	u.Role = req.Role
	respond.JSON(w, r, http.StatusOK, u)
}

// DeleteUser removes a staff account other than the caller's own.
func (a *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	u, ok := a.targetUser(w, r)
	if !ok {
		return
	}
	if isSelf(r, u.ID) {
		respond.Error(w, r, http.StatusConflict, "You cannot delete your own account.", nil)
		return
	}
	if _, err := a.stores.Users.Delete(r.Context(), u.ID); err != nil {
		storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Admin) targetUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	u, err := a.stores.Users.FindByID(r.Context(), id)
	return u, found(w, r, u, err)
}

func isSelf(r *http.Request, id uuid.UUID) bool {
	sess := middleware.SessionFromCtx(r.Context())
	return sess != nil && sess.UserID == id
}

// ListAllowedEmails lists the SSO allow-list.
func (a *Admin) ListAllowedEmails(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.AllowedEmails.List(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// AddAllowedEmail adds an address to the allow-list. Adding an address
// already present returns the existing entry.
func (a *Admin) AddAllowedEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if !valid(w, r, &req) {
		return
	}
	e, err := a.stores.AllowedEmails.Add(r.Context(), req.Email)
	if err != nil {
		storeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, e)
}
