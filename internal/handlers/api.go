// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"khrm/internal/markdown"
	"khrm/internal/models"
	"khrm/internal/respond"
	"khrm/internal/store"
)

// Home page aggregate sizes.
const (
	homeFeaturedJobs    = 6
	homeLatestNews      = 3
	homeFeaturedClients = 10
	homeTestimonials    = 5
	relatedLimit        = 4
)

// API groups the public read-only JSON endpoints and the public forms.
type API struct {
	stores   *Stores
	files    FileStore
	notifier Notifier
	baseURL  string
	now      func() time.Time
}

// NewAPI creates the public API handler group. files may be nil when
// object storage is not configured; uploads then answer 503.
func NewAPI(stores *Stores, files FileStore, notifier Notifier, baseURL string) *API {
	return &API{
		stores:   stores,
		files:    files,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}
}

// homePage is the landing page aggregate.
type homePage struct {
	Company      *models.Company      `json:"company"`
	Clients      []models.Client      `json:"featured_clients"`
	Industries   []models.Industry    `json:"featured_industries"`
	Testimonials []models.Testimonial `json:"testimonials"`
	Jobs         []models.Job         `json:"featured_jobs"`
	Offices      []models.Office      `json:"offices"`
	News         []models.NewsPost    `json:"latest_news"`
}

// Home returns everything the landing page needs in one response. The
// parts are independent and fetched concurrently.
func (a *API) Home(w http.ResponseWriter, r *http.Request) {
	var h homePage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		h.Company, err = a.stores.Company.Get(ctx)
		return err
	})
	g.Go(func() (err error) {
		h.Clients, err = a.stores.Clients.List(ctx, store.ClientFilter{FeaturedOnly: true, Limit: homeFeaturedClients})
		return err
	})
	g.Go(func() (err error) {
		h.Industries, err = a.stores.Industries.List(ctx, true)
		return err
	})
	g.Go(func() (err error) {
		h.Testimonials, err = a.stores.Testimonials.List(ctx, true, homeTestimonials)
		return err
	})
	g.Go(func() (err error) {
		h.Jobs, err = a.stores.Jobs.Featured(ctx, homeFeaturedJobs)
		return err
	})
	g.Go(func() (err error) {
		h.Offices, err = a.stores.Offices.List(ctx, true)
		return err
	})
	g.Go(func() (err error) {
		h.News, err = a.stores.News.Latest(ctx, homeLatestNews)
		return err
	})
	if err := g.Wait(); err != nil {
		respond.Internal(w, r, err)
		return
	}

	h.Clients = list(h.Clients)
	h.Industries = list(h.Industries)
	h.Testimonials = list(h.Testimonials)
	h.Jobs = list(h.Jobs)
	h.Offices = list(h.Offices)
	h.News = list(h.News)
	respond.JSON(w, r, http.StatusOK, h)
}

// --- Organisation ---

// Company returns the company profile.
func (a *API) Company(w http.ResponseWriter, r *http.Request) {
	c, err := a.stores.Company.Get(r.Context())
	if found(w, r, c, err) {
		respond.JSON(w, r, http.StatusOK, c)
	}
}

// Offices lists active offices.
func (a *API) Offices(w http.ResponseWriter, r *http.Request) {
	offices, err := a.stores.Offices.List(r.Context(), true)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(offices))
}

// Headquarters returns the head office.
func (a *API) Headquarters(w http.ResponseWriter, r *http.Request) {
	o, err := a.stores.Offices.Headquarters(r.Context())
	if found(w, r, o, err) {
		respond.JSON(w, r, http.StatusOK, o)
	}
}

// Office returns one active office.
func (a *API) Office(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := a.stores.Offices.FindByID(r.Context(), id)
	if o != nil && !o.IsActive {
		o = nil
	}
	if found(w, r, o, err) {
		respond.JSON(w, r, http.StatusOK, o)
	}
}

// Branches lists the countries the agency has offices in.
func (a *API) Branches(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.Branches.List(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// Leadership lists the leadership team.
func (a *API) Leadership(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.Leadership.List(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// Certifications lists the agency's licences and accreditations.
func (a *API) Certifications(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.Certs.List(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// --- Industries & jobs ---

// Industries lists industries; ?featured=true narrows to featured ones.
func (a *API) Industries(w http.ResponseWriter, r *http.Request) {
	a.industries(w, r, boolParam(r, "featured"))
}

// FeaturedIndustries lists featured industries.
func (a *API) FeaturedIndustries(w http.ResponseWriter, r *http.Request) {
	a.industries(w, r, true)
}

func (a *API) industries(w http.ResponseWriter, r *http.Request, featured bool) {
	items, err := a.stores.Industries.List(r.Context(), featured)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// Industry returns one industry by slug.
func (a *API) Industry(w http.ResponseWriter, r *http.Request) {
	i, err := a.stores.Industries.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if found(w, r, i, err) {
		respond.JSON(w, r, http.StatusOK, i)
	}
}

// IndustryJobs lists open jobs of one industry.
func (a *API) IndustryJobs(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	i, err := a.stores.Industries.FindBySlug(r.Context(), slug)
	if !found(w, r, i, err) {
		return
	}
	a.jobPage(w, r, store.JobFilter{Status: models.JobOpen, IndustrySlug: slug})
}

// IndustryClients lists the clients of one industry.
func (a *API) IndustryClients(w http.ResponseWriter, r *http.Request) {
	i, err := a.stores.Industries.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if !found(w, r, i, err) {
		return
	}
	a.clients(w, r, store.ClientFilter{IndustryID: &i.ID})
}

// Clients lists clients. Filters: ?industry= (slug), ?country=,
// ?featured=true. An unknown industry matches nothing.
func (a *API) Clients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.ClientFilter{
		Country:      strings.TrimSpace(q.Get("country")),
		FeaturedOnly: boolParam(r, "featured"),
	}
	if v := strings.TrimSpace(q.Get("industry")); v != "" {
		i, err := a.stores.Industries.FindBySlug(r.Context(), v)
		if err != nil {
			respond.Internal(w, r, err)
			return
		}
		if i == nil {
			respond.JSON(w, r, http.StatusOK, []models.Client{})
			return
		}
		f.IndustryID = &i.ID
	}
	a.clients(w, r, f)
}

// FeaturedClients lists the featured clients shown on the home page.
func (a *API) FeaturedClients(w http.ResponseWriter, r *http.Request) {
	a.clients(w, r, store.ClientFilter{FeaturedOnly: true, Limit: homeFeaturedClients})
}

func (a *API) clients(w http.ResponseWriter, r *http.Request, f store.ClientFilter) {
	items, err := a.stores.Clients.List(r.Context(), f)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// Testimonials lists testimonials newest first; ?featured=true narrows
// to featured ones.
func (a *API) Testimonials(w http.ResponseWriter, r *http.Request) {
	a.testimonials(w, r, boolParam(r, "featured"), 0)
}

// FeaturedTestimonials lists the featured testimonials shown on the home
// page.
func (a *API) FeaturedTestimonials(w http.ResponseWriter, r *http.Request) {
	a.testimonials(w, r, true, homeTestimonials)
}

func (a *API) testimonials(w http.ResponseWriter, r *http.Request, featured bool, limit int) {
	items, err := a.stores.Testimonials.List(r.Context(), featured, limit)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// JobCategories lists job categories. Filters: ?industry= (slug),
// ?skill_level=.
func (a *API) JobCategories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.CategoryFilter{SkillLevel: models.SkillLevel(strings.TrimSpace(q.Get("skill_level")))}
	if f.SkillLevel != "" && !f.SkillLevel.Valid() {
		respond.Invalid(w, r, respond.FieldErrors{"skill_level": "Unknown skill level."})
		return
	}
	if v := strings.TrimSpace(q.Get("industry")); v != "" {
		i, err := a.stores.Industries.FindBySlug(r.Context(), v)
		if err != nil {
			respond.Internal(w, r, err)
			return
		}
		if i == nil {
			respond.JSON(w, r, http.StatusOK, []models.JobCategory{})
			return
		}
		f.IndustryID = &i.ID
	}
	items, err := a.stores.Categories.List(r.Context(), f)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// Jobs lists open jobs. Filters: ?country=, ?industry= (slug),
// ?category_id=, ?client_id=, ?featured=true, ?q= (title, location,
// description).
func (a *API) Jobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.jobPage(w, r, store.JobFilter{
		Status:       models.JobOpen,
		Country:      strings.TrimSpace(q.Get("country")),
		IndustrySlug: strings.TrimSpace(q.Get("industry")),
		CategoryID:   idParam(r, "category_id"),
		ClientID:     idParam(r, "client_id"),
		FeaturedOnly: boolParam(r, "featured"),
		Query:        strings.TrimSpace(q.Get("q")),
	})
}

func (a *API) jobPage(w http.ResponseWriter, r *http.Request, f store.JobFilter) {
	p := pageRequest(r)
	jobs, total, err := a.stores.Jobs.List(r.Context(), f, p)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, models.NewPage(p, total, jobs))
}

// FeaturedJobs lists open featured jobs.
func (a *API) FeaturedJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := a.stores.Jobs.Featured(r.Context(), homeFeaturedJobs)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(jobs))
}

// JobCountries lists destination countries with open jobs.
func (a *API) JobCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := a.stores.Jobs.Countries(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(countries))
}

// JobStatistics summarises open recruitment activity.
func (a *API) JobStatistics(w http.ResponseWriter, r *http.Request) {
	st, err := a.stores.Jobs.Stats(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	st.ByCountry = list(st.ByCountry)
	respond.JSON(w, r, http.StatusOK, st)
}

// Job returns one job by slug.
func (a *API) Job(w http.ResponseWriter, r *http.Request) {
	j, err := a.stores.Jobs.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if found(w, r, j, err) {
		respond.JSON(w, r, http.StatusOK, j)
	}
}

// RelatedJobs lists other open jobs in the same industry.
func (a *API) RelatedJobs(w http.ResponseWriter, r *http.Request) {
	j, err := a.stores.Jobs.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if !found(w, r, j, err) {
		return
	}
	related, err := a.stores.Jobs.Related(r.Context(), j, relatedLimit)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(related))
}

// --- Training, media, news ---

// TrainingCourses lists active courses.
func (a *API) TrainingCourses(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.Training.List(r.Context(), true)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// TrainingFacilities lists the training centre facilities.
func (a *API) TrainingFacilities(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.Facilities.List(r.Context())
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// TrainingCourse returns one active course by slug.
func (a *API) TrainingCourse(w http.ResponseWriter, r *http.Request) {
	c, err := a.stores.Training.FindActiveBySlug(r.Context(), chi.URLParam(r, "slug"))
	if found(w, r, c, err) {
		respond.JSON(w, r, http.StatusOK, c)
	}
}

// Albums lists media albums; ?type= narrows by album type.
func (a *API) Albums(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.Albums.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("type")))
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// Album returns one album with its photos.
func (a *API) Album(w http.ResponseWriter, r *http.Request) {
	al, err := a.stores.Albums.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if found(w, r, al, err) {
		al.Photos = list(al.Photos)
		respond.JSON(w, r, http.StatusOK, al)
	}
}

// News lists published posts, newest first. Filters: ?type=, ?featured=true.
func (a *API) News(w http.ResponseWriter, r *http.Request) {
	p := pageRequest(r)
	posts, total, err := a.stores.News.List(r.Context(), store.NewsFilter{
		PublishedOnly: true,
		FeaturedOnly:  boolParam(r, "featured"),
		PostType:      strings.TrimSpace(r.URL.Query().Get("type")),
	}, p)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, models.NewPage(p, total, posts))
}

// FeaturedNews lists the latest featured published posts.
func (a *API) FeaturedNews(w http.ResponseWriter, r *http.Request) {
	posts, _, err := a.stores.News.List(r.Context(), store.NewsFilter{
		PublishedOnly: true,
		FeaturedOnly:  true,
	}, models.NewPageRequest(1, homeLatestNews))
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(posts))
}

// NewsPost returns one published post with its Markdown rendered to
// sanitised HTML.
func (a *API) NewsPost(w http.ResponseWriter, r *http.Request) {
	post, err := a.stores.News.FindPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if !found(w, r, post, err) {
		return
	}
	if post.ContentHTML, err = markdown.ToHTML(post.Content); err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, post)
}

// RelatedNews lists other published posts of the same type.
func (a *API) RelatedNews(w http.ResponseWriter, r *http.Request) {
	post, err := a.stores.News.FindPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if !found(w, r, post, err) {
		return
	}
	related, err := a.stores.News.Related(r.Context(), post, homeLatestNews)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(related))
}

// --- Documents, FAQs, policies ---

// Documents lists active downloadable documents; ?type= narrows by type.
func (a *API) Documents(w http.ResponseWriter, r *http.Request) {
	docs, err := a.stores.Documents.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("type")), true)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(docs))
}

// DownloadDocument counts a download and returns the file link.
func (a *API) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := a.stores.Documents.IncrementDownload(r.Context(), id)
	if !found(w, r, d, err) {
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]any{
		"file_url":       d.FileURL,
		"download_count": d.DownloadCount,
	})
}

// FAQs lists active questions; ?category= narrows by category.
func (a *API) FAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := a.stores.FAQs.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")), true)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(faqs))
}

// Policy returns the current active policy of a kind (privacy, terms).
func (a *API) Policy(w http.ResponseWriter, r *http.Request) {
	kind := models.PolicyKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		respond.NotFound(w, r)
		return
	}
	p, err := a.stores.Policies.Current(r.Context(), kind)
	if !found(w, r, p, err) {
		return
	}
	if p.ContentHTML, err = markdown.ToHTML(p.Content); err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, p)
}

// --- CSR & careers ---

// CSRProjects lists active CSR projects, most recent first.
func (a *API) CSRProjects(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.CSR.List(r.Context(), true)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// CSRProject returns one active project by slug.
func (a *API) CSRProject(w http.ResponseWriter, r *http.Request) {
	c, err := a.stores.CSR.FindActiveBySlug(r.Context(), chi.URLParam(r, "slug"))
	if found(w, r, c, err) {
		respond.JSON(w, r, http.StatusOK, c)
	}
}

// Careers lists active internal openings by priority.
func (a *API) Careers(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.Careers.List(r.Context(), true)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// Career returns one active opening by slug.
func (a *API) Career(w http.ResponseWriter, r *http.Request) {
	c, err := a.stores.Careers.FindActiveBySlug(r.Context(), chi.URLParam(r, "slug"))
	if found(w, r, c, err) {
		respond.JSON(w, r, http.StatusOK, c)
	}
}

// --- Japan programme ---

// JapanLanding returns the landing page document as stored.
func (a *API) JapanLanding(w http.ResponseWriter, r *http.Request) {
	l, err := a.stores.Japan.Landing(r.Context())
	if found(w, r, l, err) {
		respond.JSON(w, r, http.StatusOK, l)
	}
}

// JapanPrograms lists active programmes.
func (a *API) JapanPrograms(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.Japan.Programs(r.Context(), true)
	if err != nil {
		respond.Internal(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list(items))
}

// JapanProgram returns one active programme by slug.
func (a *API) JapanProgram(w http.ResponseWriter, r *http.Request) {
	p, err := a.stores.Japan.FindActiveProgramBySlug(r.Context(), chi.URLParam(r, "slug"))
	if found(w, r, p, err) {
		respond.JSON(w, r, http.StatusOK, p)
	}
}
