// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"khrm/internal/adminmenu"
	"khrm/internal/models"
)

// EntityType is one record type managed through the back-office.
type EntityType struct {
	Name      string      // type name the menu table is keyed by
	Label     string      // default label when the menu table has none
	Path      string      // segment under /admin/ and /admin/api/
	Need      models.Role // minimum role allowed to manage it
	Columns   []string    // JSON fields shown on the list page
	Singleton bool        // one row only; no create-many or delete
	Document  string      // for singletons stored as one JSON document, the field holding it
}

// URL is the admin list page of the type.
func (e EntityType) URL() string { return "/admin/" + e.Path }

// API is the admin JSON endpoint of the type.
func (e EntityType) API() string { return "/admin/api/" + e.Path }

// Registry lists every admin-manageable entity type.
var Registry = []EntityType{
	{Name: "Company", Label: "Company", Path: "company", Need: models.RoleEditor, Singleton: true,
		Columns: []string{"name", "license_number", "establishment_year", "total_deployment"}},
	{Name: "Office", Label: "Offices", Path: "offices", Need: models.RoleEditor,
		Columns: []string{"name", "country", "city", "is_headquarters", "is_active"}},
	{Name: "Branch", Label: "Branches", Path: "branches", Need: models.RoleEditor,
		Columns: []string{"country", "office_count"}},
	{Name: "Leadership", Label: "Leadership", Path: "leadership", Need: models.RoleEditor,
		Columns: []string{"name", "position", "display_order"}},
	{Name: "Certification", Label: "Certifications", Path: "certifications", Need: models.RoleEditor,
		Columns: []string{"name", "issuing_authority", "certificate_number", "issue_date"}},
	{Name: "Industry", Label: "Industries", Path: "industries", Need: models.RoleEditor,
		Columns: []string{"name", "slug", "is_featured", "open_jobs"}},
	{Name: "Client", Label: "Clients", Path: "clients", Need: models.RoleEditor,
		Columns: []string{"name", "industry_name", "country", "is_featured"}},
	{Name: "Testimonial", Label: "Testimonials", Path: "testimonials", Need: models.RoleEditor,
		Columns: []string{"person_name", "company_name", "rating", "is_featured"}},
	{Name: "Job", Label: "Jobs", Path: "jobs", Need: models.RoleEditor,
		Columns: []string{"title", "country", "industry_name", "vacancies", "status", "is_featured"}},
	{Name: "JobCategory", Label: "Job categories", Path: "job-categories", Need: models.RoleEditor,
		Columns: []string{"name", "industry_name", "skill_level"}},
	{Name: "JobApplication", Label: "Job applications", Path: "applications", Need: models.RoleEditor,
		Columns: []string{"first_name", "last_name", "email", "job_title", "status", "created_at"}},
	{Name: "EmployerInquiry", Label: "Employer inquiries", Path: "inquiries", Need: models.RoleEditor,
		Columns: []string{"company_name", "contact_person", "country", "number_of_workers", "status"}},
	{Name: "ContactMessage", Label: "Contact messages", Path: "contacts", Need: models.RoleEditor,
		Columns: []string{"name", "email", "inquiry_type", "is_read", "replied", "created_at"}},
	{Name: "TrainingCourse", Label: "Training courses", Path: "training", Need: models.RoleEditor,
		Columns: []string{"name", "course_type", "duration", "is_active"}},
	{Name: "TrainingFacility", Label: "Training facilities", Path: "training-facilities", Need: models.RoleEditor,
		Columns: []string{"name", "capacity", "display_order"}},
	{Name: "MediaAlbum", Label: "Media albums", Path: "albums", Need: models.RoleEditor,
		Columns: []string{"title", "album_type", "date", "photo_count"}},
	{Name: "NewsPost", Label: "News posts", Path: "news", Need: models.RoleEditor,
		Columns: []string{"title", "post_type", "is_published", "is_featured", "published_at"}},
	{Name: "Document", Label: "Documents", Path: "documents", Need: models.RoleEditor,
		Columns: []string{"title", "document_type", "download_count", "is_active"}},
	{Name: "FAQ", Label: "FAQs", Path: "faqs", Need: models.RoleEditor,
		Columns: []string{"question", "category", "display_order", "is_active"}},
	{Name: "Policy", Label: "Policies", Path: "policies", Need: models.RoleEditor,
		Columns: []string{"kind", "title", "is_active", "updated_at"}},
	{Name: "CSRProject", Label: "CSR projects", Path: "csr", Need: models.RoleEditor,
		Columns: []string{"title", "location", "date", "is_active"}},
	{Name: "Career", Label: "Careers", Path: "careers", Need: models.RoleEditor,
		Columns: []string{"title", "department", "location", "priority", "is_active"}},
	{Name: "JapanLandingPage", Label: "Japan landing page", Path: "japan/landing", Need: models.RoleEditor, Singleton: true, Document: "content",
		Columns: []string{"updated_at"}},
	{Name: "JapanProgram", Label: "Japan programs", Path: "japan/programs", Need: models.RoleEditor,
		Columns: []string{"program_type", "subtitle", "training_duration", "is_active"}},
	{Name: "User", Label: "Users", Path: "users", Need: models.RoleAdmin,
		Columns: []string{"email", "display_name", "role", "provider", "totp_enabled", "last_login_at"}},
	{Name: "AllowedEmail", Label: "Allowed emails", Path: "allowed-emails", Need: models.RoleAdmin,
		Columns: []string{"email", "created_at"}},
}

// LookupEntity finds a registered type by its admin path.
func LookupEntity(path string) (EntityType, bool) {
	for _, e := range Registry {
		if e.Path == path {
			return e, true
		}
	}
	return EntityType{}, false
}

// MenuEntities snapshots the registry for one actor, flagging the types
// role may manage.
func MenuEntities(role models.Role) []adminmenu.Entity {
	out := make([]adminmenu.Entity, len(Registry))
	for i, e := range Registry {
		out[i] = adminmenu.Entity{
			Name:    e.Name,
			Label:   e.Label,
			URL:     e.URL(),
			Allowed: role.Allows(e.Need),
		}
	}
	return out
}
