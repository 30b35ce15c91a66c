// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package adminmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupNames(groups []Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

func itemLabels(g Group) []string {
	labels := make([]string, len(g.Items))
	for i, it := range g.Items {
		labels[i] = it.Label
	}
	return labels
}

func findGroup(t *testing.T, groups []Group, name string) Group {
	t.Helper()
	for _, g := range groups {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("group %q not in output %v", name, groupNames(groups))
	return Group{}
}

func TestProject_GroupOrderFollowsConfiguration(t *testing.T) {
	entities := []Entity{
		{Name: "User", Label: "users", Allowed: true},
		{Name: "NewsPost", Label: "news posts", Allowed: true},
		{Name: "Job", Label: "jobs", Allowed: true},
	}
	table := Table{
		"Job":      {Group: "Services", Label: "Job Postings", Order: 1},
		"NewsPost": {Group: "Media", Label: "News", Order: 1},
		"User":     {Group: "System", Label: "Users", Order: 1},
	}

	got := Project(entities, table, []string{"Services", "Media", "System"}, "Other")

	assert.Equal(t, []string{"Services", "Media", "System"}, groupNames(got))
}

func TestProject_SortsWithinGroupByOrderThenLabel(t *testing.T) {
	entities := []Entity{
		{Name: "C", Label: "c", Allowed: true},
		{Name: "A", Label: "a", Allowed: true},
		{Name: "B", Label: "b", Allowed: true},
		{Name: "D", Label: "d", Allowed: true},
	}
	table := Table{
		"A": {Group: "Recruitment", Label: "Zeta", Order: 2},
		"B": {Group: "Recruitment", Label: "Alpha", Order: 2},
		"C": {Group: "Recruitment", Label: "Omega", Order: 1},
		"D": {Group: "Recruitment", Label: "", Order: 3},
	}

	got := Project(entities, table, []string{"Recruitment"}, "Other")

	require.Len(t, got, 1)
	assert.Equal(t, []string{"Omega", "Alpha", "Zeta", "d"}, itemLabels(got[0]))
}

func TestProject_DeniedGroupOmitted(t *testing.T) {
	entities := []Entity{
		{Name: "Job", Label: "jobs", Allowed: true},
		{Name: "User", Label: "users", Allowed: false},
		{Name: "AllowedEmail", Label: "allowed emails", Allowed: false},
	}
	table := Table{
		"Job":          {Group: "Recruitment", Order: 1},
		"User":         {Group: "System", Order: 1},
		"AllowedEmail": {Group: "System", Order: 2},
	}

	got := Project(entities, table, []string{"Recruitment", "System"}, "Other")

	assert.Equal(t, []string{"Recruitment"}, groupNames(got))
}

func TestProject_GroupAllowedIfAnyMemberAllowed(t *testing.T) {
	entities := []Entity{
		{Name: "User", Label: "users", Allowed: false},
		{Name: "AllowedEmail", Label: "allowed emails", Allowed: true},
	}
	table := Table{
		"User":         {Group: "System", Order: 1},
		"AllowedEmail": {Group: "System", Order: 2},
	}

	got := Project(entities, table, []string{"System"}, "Other")

	require.Len(t, got, 1)
	assert.True(t, got[0].Allowed)
	require.Len(t, got[0].Items, 2, "denied members keep their place and flag")
	assert.False(t, got[0].Items[0].Allowed)
	assert.True(t, got[0].Items[1].Allowed)
}

func TestProject_UnmappedGoesToFallbackAfterMapped(t *testing.T) {
	entities := []Entity{
		{Name: "Testimonial", Label: "Testimonials", Allowed: true},
		{Name: "Legacy", Label: "Aardvark", Allowed: true},
	}
	table := Table{
		"Legacy": {Group: "Other", Label: "Legacy Records", Order: 5},
	}

	got := Project(entities, table, []string{"Other"}, "Other")

	require.Len(t, got, 1)
	other := got[0]
	assert.Equal(t, "other", other.ID)
	assert.Equal(t, []string{"Legacy Records", "Testimonials"}, itemLabels(other))
	assert.Equal(t, UnmappedOrder, other.Items[1].Order)
}

func TestProject_UnmappedAfterLargeConfiguredOrder(t *testing.T) {
	entities := []Entity{
		{Name: "Unmapped", Label: "Aardvark", Allowed: true},
		{Name: "Legacy", Label: "Legacy", Allowed: true},
		{Name: "Archive", Label: "Archive", Allowed: true},
	}
	table := Table{
		"Legacy":  {Group: "Other", Order: 150},
		"Archive": {Group: "Other", Order: UnmappedOrder},
	}

	got := Project(entities, table, []string{"Other"}, "Other")

	require.Len(t, got, 1)
	assert.Equal(t, []string{"Archive", "Legacy", "Aardvark"}, itemLabels(got[0]))
	assert.Equal(t, UnmappedOrder, got[0].Items[2].Order)
}

func TestProject_EmptyTableEverythingInFallback(t *testing.T) {
	entities := []Entity{
		{Name: "Job", Label: "Jobs", Allowed: true},
		{Name: "Office", Label: "Offices", Allowed: true},
	}

	got := Project(entities, nil, nil, "")

	require.Len(t, got, 1)
	assert.Equal(t, DefaultFallback, got[0].Name)
	assert.Equal(t, []string{"Jobs", "Offices"}, itemLabels(got[0]))
}

func TestProject_GroupsOutsideOrderAppendedAlphabetically(t *testing.T) {
	entities := []Entity{
		{Name: "A", Label: "a", Allowed: true},
		{Name: "B", Label: "b", Allowed: true},
		{Name: "C", Label: "c", Allowed: true},
	}
	table := Table{
		"A": {Group: "Zebra", Order: 1},
		"B": {Group: "Known", Order: 1},
		"C": {Group: "Apple", Order: 1},
	}

	got := Project(entities, table, []string{"Known"}, "Other")

	assert.Equal(t, []string{"Known", "Apple", "Zebra"}, groupNames(got))
}

func TestProject_BlankGroupInTableDegradesToFallback(t *testing.T) {
	entities := []Entity{{Name: "Job", Label: "Jobs", Allowed: true}}
	table := Table{"Job": {Group: "  ", Label: "Ignored", Order: 1}}

	got := Project(entities, table, []string{"Recruitment", "Other"}, "Other")

	require.Len(t, got, 1)
	assert.Equal(t, "Other", got[0].Name)
	assert.Equal(t, "Jobs", got[0].Items[0].Label)
}

// TestProject_Completeness checks that every entity type appears exactly
// once, unless its whole group was denied.
func TestProject_Completeness(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	entities := []Entity{
		{Name: "Company", Allowed: true},
		{Name: "Job", Allowed: true},
		{Name: "JobApplication", Allowed: true},
		{Name: "User", Allowed: false},
		{Name: "AllowedEmail", Allowed: false},
		{Name: "Unregistered", Label: "Mystery", Allowed: true},
		{Name: "HiddenThing", Allowed: false},
	}

	got := cfg.Project(entities)

	count := make(map[string]int)
	for _, g := range got {
		for _, it := range g.Items {
			count[it.Name]++
		}
	}
	for _, e := range entities {
		switch e.Name {
		case "User", "AllowedEmail":
			assert.Zero(t, count[e.Name], "%s belongs to a denied group", e.Name)
		default:
			assert.Equal(t, 1, count[e.Name], "%s should appear exactly once", e.Name)
		}
	}
	assert.NotContains(t, groupNames(got), "System")

	other := findGroup(t, got, "Other")
	assert.Equal(t, []string{"HiddenThing", "Mystery"}, itemLabels(other))
}

func TestProject_CollidingGroupIDsGetSuffix(t *testing.T) {
	entities := []Entity{
		{Name: "A", Label: "a", Allowed: true},
		{Name: "B", Label: "b", Allowed: true},
		{Name: "C", Label: "c", Allowed: true},
	}
	table := Table{
		"A": {Group: "Content & Media", Order: 1},
		"B": {Group: "Content and Media", Order: 1},
		"C": {Group: "content-and-media", Order: 1},
	}

	got := Project(entities, table, []string{"Content & Media", "Content and Media", "content-and-media"}, "Other")

	require.Len(t, got, 3)
	assert.Equal(t, "content-and-media", got[0].ID)
	assert.Equal(t, "content-and-media-2", got[1].ID)
	assert.Equal(t, "content-and-media-3", got[2].ID)
}

func TestGroupID(t *testing.T) {
	tests := map[string]string{
		"Content & Media":    "content-and-media",
		"Japan Program":      "japan-program",
		"Site Configuration": "site-configuration",
		"  Other ":           "other",
		"&&&":                "and-and-and",
		"":                   "group",
	}
	for in, want := range tests {
		assert.Equal(t, want, GroupID(in), "GroupID(%q)", in)
	}
}
