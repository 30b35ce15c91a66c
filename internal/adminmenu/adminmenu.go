// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package adminmenu projects the flat list of admin-manageable entity types
// into the grouped, ordered sidebar shown in the back-office.
//
// Projection is a pure function of its inputs: callers build the entity
// snapshot per request (with the current actor's access flags) and render
// the returned groups directly.
package adminmenu

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultFallback is the group collecting entity types with no assignment.
	DefaultFallback = "Other"

	// UnmappedOrder is the order reported for entity types with no
	// assignment. They sort after every assigned type whatever its order.
	UnmappedOrder = 99
)

// Entity describes one manageable entity type as registered with the admin.
type Entity struct {
	Name    string // internal type name, e.g. "JobApplication"
	Label   string // default display label
	URL     string // admin list page
	Allowed bool   // whether the current actor may manage this type
}

// Assignment places an entity type in a group with an optional label override.
type Assignment struct {
	Group string
	Label string
	Order int
}

// Table maps entity type names to their group assignment.
type Table map[string]Assignment

// Item is an entity as it appears inside a projected group.
type Item struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	URL     string `json:"url"`
	Order   int    `json:"order"`
	Allowed bool   `json:"allowed"`

	mapped bool
}

// Group is one top-level section of the projected menu.
type Group struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Items   []Item `json:"items"`
	Allowed bool   `json:"allowed"`
}

// Project groups, relabels and orders entities for display.
//
// Every entity lands in exactly one group: its assigned one, or fallback
// when the table has no entry for it. Groups appear in the order given;
// groups missing from order are appended alphabetically. Groups with no
// members, or whose members are all denied, are left out entirely. Group
// IDs are unique within the result: a name whose GroupID was already
// taken by an earlier group gets a numeric suffix.
func Project(entities []Entity, table Table, order []string, fallback string) []Group {
	if fallback == "" {
		fallback = DefaultFallback
	}

	buckets := make(map[string]*Group)
	for _, e := range entities {
		item := Item{
			Name:    e.Name,
			Label:   e.Label,
			URL:     e.URL,
			Order:   UnmappedOrder,
			Allowed: e.Allowed,
		}
		group := fallback

		if a, ok := table[e.Name]; ok && strings.TrimSpace(a.Group) != "" {
			group = a.Group
			item.Order = a.Order
			item.mapped = true
			if a.Label != "" {
				item.Label = a.Label
			}
		}
		if item.Label == "" {
			item.Label = e.Name
		}

		g, ok := buckets[group]
		if !ok {
			g = &Group{Name: group, ID: GroupID(group)}
			buckets[group] = g
		}
		g.Items = append(g.Items, item)
		g.Allowed = g.Allowed || item.Allowed
	}

	for _, g := range buckets {
		sortItems(g.Items)
	}

	result := make([]Group, 0, len(buckets))
	emitted := make(map[string]bool, len(buckets))
	ids := make(map[string]bool, len(buckets))
	emit := func(name string) {
		g, ok := buckets[name]
		if !ok || emitted[name] {
			return
		}
		emitted[name] = true
		if len(g.Items) == 0 || !g.Allowed {
			return
		}
		base := g.ID
		for n := 2; ids[g.ID]; n++ {
			g.ID = base + "-" + strconv.Itoa(n)
		}
		ids[g.ID] = true
		result = append(result, *g)
	}

	for _, name := range order {
		emit(name)
	}

	var rest []string
	for name := range buckets {
		if !emitted[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		emit(name)
	}

	return result
}

// sortItems puts assigned types before unassigned ones, then orders by
// configured order, label and type name so the result is total even when
// two types share a label.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.mapped != b.mapped {
			return a.mapped
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		la, lb := strings.ToLower(a.Label), strings.ToLower(b.Label)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

var nonIdent = regexp.MustCompile(`[^a-z0-9]+`)

// GroupID derives the stable identifier used by the UI to hook a group,
// e.g. "Content & Media" → "content-and-media".
func GroupID(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = strings.ReplaceAll(id, "&", " and ")
	id = nonIdent.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return "group"
	}
	return id
}
