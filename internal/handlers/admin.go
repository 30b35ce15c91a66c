// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"khrm/internal/adminmenu"
	"khrm/internal/middleware"
	"khrm/internal/models"
	"khrm/internal/render"
	"khrm/internal/respond"
)

// Admin groups the back-office pages and the admin JSON API.
type Admin struct {
	renderer *render.Renderer
	stores   *Stores
	menu     *adminmenu.Config
	files    FileStore
	cache    Invalidator
	now      func() time.Time
}

// NewAdmin creates the admin handler group. files and cache may be nil
// when object storage or Valkey caching is not configured.
func NewAdmin(renderer *render.Renderer, stores *Stores, menu *adminmenu.Config, files FileStore, cache Invalidator) *Admin {
	return &Admin{
		renderer: renderer,
		stores:   stores,
		menu:     menu,
		files:    files,
		cache:    cache,
		now:      time.Now,
	}
}

// pendingLinks are the dashboard counters of work waiting for staff.
var pendingLinks = []struct{ entity, label, query string }{
	{"JobApplication", "New applications", "?status=submitted"},
	{"EmployerInquiry", "New employer inquiries", "?status=new"},
	{"ContactMessage", "Unread messages", "?unread=true"},
}

type pendingCard struct {
	Label string
	Count int
	URL   string
}

// role returns the signed-in actor's role, or "" outside a session.
func role(ctx context.Context) models.Role {
	if sess := middleware.SessionFromCtx(ctx); sess != nil {
		return sess.Role
	}
	return ""
}

// sidebar projects the registry for the current actor.
func (a *Admin) sidebar(ctx context.Context) []adminmenu.Group {
	return a.menu.Project(MenuEntities(role(ctx)))
}

func (a *Admin) page(w http.ResponseWriter, r *http.Request, status int, name string, data *render.PageData) {
	data.Menu = a.sidebar(r.Context())
	a.renderer.PageStatus(w, r, status, name, data)
}

// Dashboard shows pending work and record counts per menu group.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	counts, err := a.stores.Stats.Counts(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "dashboard counts failed", "error", err)
		counts = map[string]int{}
	}
	pending, err := a.stores.Stats.Pending(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "dashboard pending failed", "error", err)
		pending = map[string]int{}
	}

	actor := role(ctx)
	var cards []pendingCard
	for _, p := range pendingLinks {
		e, ok := entityByName(p.entity)
		if !ok || !actor.Allows(e.Need) {
			continue
		}
		cards = append(cards, pendingCard{Label: p.label, Count: pending[p.entity], URL: e.URL() + p.query})
	}

	groups := a.sidebar(ctx)
	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Menu:    groups,
		Data: map[string]any{
			"Pending": cards,
			"Groups":  groups,
			"Counts":  counts,
		},
	})
}

// EntityPage returns the list page handler of e. The page is a shell the
// browser fills from e's admin API.
func (a *Admin) EntityPage(e EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !role(r.Context()).Allows(e.Need) {
			a.page(w, r, http.StatusForbidden, "error", &render.PageData{
				Title: "Forbidden",
				Data:  map[string]any{"Message": "You do not have access to " + e.Label + "."},
			})
			return
		}
		page := "list"
		if e.Singleton && a.renderer.Has("record") {
			page = "record"
		}
		a.page(w, r, http.StatusOK, page, &render.PageData{
			Title:   e.Label,
			Section: e.Name,
			Data:    map[string]any{"Entity": menuEntity(a.menu, e)},
		})
	}
}

// NotFoundPage renders the admin 404 page.
func (a *Admin) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	if respond.IsAPI(r) {
		respond.NotFound(w, r)
		return
	}
	a.page(w, r, http.StatusNotFound, "error", &render.PageData{
		Title: "Not Found",
		Data:  map[string]any{"Message": "The page you requested does not exist."},
	})
}

// Menu returns the projected sidebar for the current actor.
func (a *Admin) Menu(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, list(a.sidebar(r.Context())))
}

// menuEntity applies the menu's label override to e for page headings.
func menuEntity(menu *adminmenu.Config, e EntityType) EntityType {
	if as, ok := menu.Table[e.Name]; ok && as.Label != "" {
		e.Label = as.Label
	}
	return e
}

func entityByName(name string) (EntityType, bool) {
	for _, e := range Registry {
		if e.Name == name {
			return e, true
		}
	}
	return EntityType{}, false
}

// invalidate drops cached public responses after a successful write.
func (a *Admin) invalidate(ctx context.Context) {
	if a.cache != nil {
		a.cache.InvalidateAll(ctx)
	}
}
