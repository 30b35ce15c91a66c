// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khrm/internal/models"
)

func TestJobCategory_SkillLevelValidatedBeforeQuery(t *testing.T) {
	ctx := t.Context()
	s := NewJobCategoryStore(nil)

	_, err := s.List(ctx, CategoryFilter{SkillLevel: "expert"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = s.Create(ctx, &models.JobCategory{Name: "Welder", SkillLevel: "expert", IndustryID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBranch_CountryUniqueAndOfficeCount(t *testing.T) {
	db := testDB(t)
	ctx := t.Context()
	branches := NewBranchStore(db)
	offices := NewOfficeStore(db)

	country := unique("Testland")
	b, err := branches.Create(ctx, &models.Branch{Country: country})
	require.NoError(t, err)
	t.Cleanup(func() { cleanRows(db, "branches", b.ID) })

	_, err = branches.Create(ctx, &models.Branch{Country: strings.ToUpper(country)})
	assert.ErrorIs(t, err, ErrDuplicate)

	o, err := offices.Create(ctx, &models.Office{Name: "Branch office", Country: country, City: "Capital", IsActive: true})
	require.NoError(t, err)
	t.Cleanup(func() { cleanRows(db, "offices", o.ID) })

	got, err := branches.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OfficeCount)
}

func TestClient_FiltersAndMissingIndustry(t *testing.T) {
	db := testDB(t)
	ctx := t.Context()
	clients := NewClientStore(db)

	ind, err := NewIndustryStore(db).Create(ctx, &models.Industry{Name: unique("Hospitality")})
	require.NoError(t, err)
	t.Cleanup(func() { cleanRows(db, "industries", ind.ID) })

	country := unique("Clientland")
	featured, err := clients.Create(ctx, &models.Client{Name: "Hotel A", IndustryID: &ind.ID, Country: country, IsFeatured: true})
	require.NoError(t, err)
	plain, err := clients.Create(ctx, &models.Client{Name: "Hotel B", IndustryID: &ind.ID, Country: country})
	require.NoError(t, err)
	t.Cleanup(func() { cleanRows(db, "clients", featured.ID, plain.ID) })

	all, err := clients.List(ctx, ClientFilter{IndustryID: &ind.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := clients.List(ctx, ClientFilter{Country: strings.ToLower(country), FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, featured.ID, only[0].ID)

	limited, err := clients.List(ctx, ClientFilter{IndustryID: &ind.ID, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	ghost := uuid.New()
	_, err = clients.Create(ctx, &models.Client{Name: "Orphan", IndustryID: &ghost})
	assert.ErrorIs(t, err, ErrMissingReference)

	// Deleting the industry keeps its clients.
	_, err = NewIndustryStore(db).Delete(ctx, ind.ID)
	require.NoError(t, err)
	kept, err := clients.FindByID(ctx, featured.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Nil(t, kept.IndustryID)
	assert.Empty(t, kept.IndustryName)
}

func TestJobCategory_ListByIndustry(t *testing.T) {
	db := testDB(t)
	ctx := t.Context()
	categories := NewJobCategoryStore(db)

	ind, err := NewIndustryStore(db).Create(ctx, &models.Industry{Name: unique("Construction")})
	require.NoError(t, err)
	t.Cleanup(func() { cleanRows(db, "industries", ind.ID) })

	mason, err := categories.Create(ctx, &models.JobCategory{Name: "Mason", SkillLevel: models.SkillSkilled, IndustryID: ind.ID})
	require.NoError(t, err)
	helper, err := categories.Create(ctx, &models.JobCategory{Name: "Helper", SkillLevel: models.SkillUnskilled, IndustryID: ind.ID})
	require.NoError(t, err)
	assert.Equal(t, ind.Name, mason.IndustryName)

	got, err := categories.List(ctx, CategoryFilter{IndustryID: &ind.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Helper", got[0].Name)

	got, err = categories.List(ctx, CategoryFilter{IndustryID: &ind.ID, SkillLevel: models.SkillUnskilled})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, helper.ID, got[0].ID)

	// Categories go with their industry.
	_, err = NewIndustryStore(db).Delete(context.Background(), ind.ID)
	require.NoError(t, err)
	gone, err := categories.FindByID(ctx, mason.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestTestimonials_FeaturedLimit(t *testing.T) {
	db := testDB(t)
	ctx := t.Context()
	s := NewTestimonialStore(db)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		tm, err := s.Create(ctx, &models.Testimonial{PersonName: unique("Worker"), Text: "Good.", Rating: 4, IsFeatured: true})
		require.NoError(t, err)
		ids = append(ids, tm.ID)
	}
	t.Cleanup(func() { cleanRows(db, "testimonials", ids...) })

	got, err := s.List(ctx, true, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	all, err := s.List(ctx, true, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 3)
}

func TestJob_CategoryAndClientLinks(t *testing.T) {
	db := testDB(t)
	ctx := t.Context()
	jobs := NewJobStore(db)
	clients := NewClientStore(db)

	ind := newIndustry(t, NewIndustryStore(db))
	cat, err := NewJobCategoryStore(db).Create(ctx, &models.JobCategory{Name: "Line Cook", SkillLevel: models.SkillSkilled, IndustryID: ind.ID})
	require.NoError(t, err)
	client, err := clients.Create(ctx, &models.Client{Name: unique("Resort Group")})
	require.NoError(t, err)
	t.Cleanup(func() { cleanRows(db, "clients", client.ID) })

	linked, err := newJob(t, jobs, ind.ID, unique("Cook"), "")
	require.NoError(t, err)
	_, err = newJob(t, jobs, ind.ID, unique("Porter"), "")
	require.NoError(t, err)

	linked.Category = "typed by hand"
	linked.CategoryID = &cat.ID
	linked.ClientID = &client.ID
	require.NoError(t, jobs.Update(ctx, linked))

	got, err := jobs.FindByID(ctx, linked.ID)
	require.NoError(t, err)
	assert.Equal(t, "Line Cook", got.Category, "linked category name wins over the free text")
	assert.Equal(t, client.Name, got.ClientName)

	byCategory, total, err := jobs.List(ctx, JobFilter{CategoryID: &cat.ID}, models.NewPageRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, byCategory, 1)
	assert.Equal(t, linked.ID, byCategory[0].ID)

	byClient, _, err := jobs.List(ctx, JobFilter{ClientID: &client.ID}, models.NewPageRequest(1, 10))
	require.NoError(t, err)
	assert.Len(t, byClient, 1)

	ghost := uuid.New()
	got.ClientID = &ghost
	assert.ErrorIs(t, jobs.Update(ctx, got), ErrMissingReference)

	// Removing the client keeps the job and drops the link.
	_, err = clients.Delete(ctx, client.ID)
	require.NoError(t, err)
	got, err = jobs.FindByID(ctx, linked.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.ClientID)
	assert.Empty(t, got.ClientName)
}
