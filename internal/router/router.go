// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains. Routes are
// split into the public JSON API, the admin pages and the admin JSON API,
// each with its own middleware stack.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"khrm/internal/handlers"
	"khrm/internal/middleware"
	"khrm/internal/respond"
	"khrm/internal/session"
	"khrm/web"
)

// Options carries the pieces of the stack that vary between deployments.
type Options struct {
	// Secure marks cookies Secure and enables HSTS.
	Secure bool
	// Cache serves public GETs from Valkey. Nil disables response caching.
	Cache func(http.Handler) http.Handler
	// Limiter throttles public form submissions. Nil disables rate limiting.
	Limiter middleware.Limiter
}

// New creates the configured Chi router with all middleware and route
// groups wired up.
func New(sessions *session.Store, api *handlers.API, admin *handlers.Admin, auth *handlers.Auth, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.SecureHeaders(opts.Secure))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		publicRoutes(r, api, opts)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.LoadSession(sessions))
		r.Use(middleware.CSRF(opts.Secure))

		// Auth pages, accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Get("/sso/google/login", auth.GoogleLogin)
		r.Get("/sso/google/callback", auth.GoogleCallback)
		r.Post("/logout", auth.Logout)

		// 2FA requires a session but not a completed 2FA step.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", admin.Dashboard)
			for _, e := range handlers.Registry {
				r.Get("/"+e.Path, admin.EntityPage(e))
			}
			r.Route("/api", admin.APIRoutes)
		})

		r.NotFound(admin.NotFoundPage)
	})

	static, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	return r
}

// publicRoutes mounts the read-only site API and the three public forms.
func publicRoutes(r chi.Router, api *handlers.API, opts Options) {
	r.Group(func(r chi.Router) {
		if opts.Cache != nil {
			r.Use(opts.Cache)
		}

		r.Get("/home", api.Home)
		r.Get("/company", api.Company)

		r.Get("/offices", api.Offices)
		r.Get("/offices/headquarters", api.Headquarters)
		r.Get("/offices/{id}", api.Office)
		r.Get("/branches", api.Branches)
		r.Get("/leadership", api.Leadership)
		r.Get("/certifications", api.Certifications)

		r.Get("/industries", api.Industries)
		r.Get("/industries/featured", api.FeaturedIndustries)
		r.Get("/industries/{slug}", api.Industry)
		r.Get("/industries/{slug}/jobs", api.IndustryJobs)
		r.Get("/industries/{slug}/clients", api.IndustryClients)

		r.Get("/clients", api.Clients)
		r.Get("/clients/featured", api.FeaturedClients)
		r.Get("/testimonials", api.Testimonials)
		r.Get("/testimonials/featured", api.FeaturedTestimonials)
		r.Get("/job-categories", api.JobCategories)

		r.Get("/jobs", api.Jobs)
		r.Get("/jobs/featured", api.FeaturedJobs)
		r.Get("/jobs/countries", api.JobCountries)
		r.Get("/jobs/statistics", api.JobStatistics)
		r.Get("/jobs/{slug}", api.Job)
		r.Get("/jobs/{slug}/related", api.RelatedJobs)

		r.Get("/training", api.TrainingCourses)
		r.Get("/training/{slug}", api.TrainingCourse)
		r.Get("/training-facilities", api.TrainingFacilities)

		r.Get("/albums", api.Albums)
		r.Get("/albums/{slug}", api.Album)

		r.Get("/news", api.News)
		r.Get("/news/featured", api.FeaturedNews)
		r.Get("/news/{slug}", api.NewsPost)
		r.Get("/news/{slug}/related", api.RelatedNews)

		r.Get("/documents", api.Documents)
		r.Get("/faqs", api.FAQs)
		r.Get("/policies/{kind}", api.Policy)

		r.Get("/csr", api.CSRProjects)
		r.Get("/csr/{slug}", api.CSRProject)

		r.Get("/careers", api.Careers)
		r.Get("/careers/{slug}", api.Career)

		r.Get("/japan/landing", api.JapanLanding)
		r.Get("/japan/programs", api.JapanPrograms)
		r.Get("/japan/programs/{slug}", api.JapanProgram)
	})

	// Writes bypass the cache.
	r.Post("/documents/{id}/download", api.DownloadDocument)

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(middleware.RateLimit(opts.Limiter))
		}
		r.Post("/job-applications", api.SubmitApplication)
		r.Post("/employer-inquiries", api.SubmitInquiry)
		r.Post("/contact", api.SubmitContact)
	})

	r.NotFound(respond.NotFound)
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
