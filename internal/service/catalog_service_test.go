package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estatesite/internal/cache"
	"estatesite/internal/database"
	"estatesite/internal/logger"
	"estatesite/internal/repository"
	"estatesite/internal/testutil"
	"estatesite/internal/validation"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	svc, _ := newCatalogServiceDB(t)
	return svc
}

func newCatalogServiceDB(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	require.NoError(t, database.SeedCompanyInfo(db, "Harbor Estates"))
	return NewCatalogService(
		repository.NewServiceRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewContactRepository(db),
		cache.New(),
		logger.Discard(),
	), db
}

func ptr[T any](v T) *T { return &v }

func designService() validation.ServiceInput {
	return validation.ServiceInput{
		Slug:        " Interior Design ",
		Name:        "Interior",
		Title:       "Interior design",
		Description: "Spaces planned around how you live.",
	}
}

func TestCreateService_NormalizesSlugAndRejectsDuplicates(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateService(ctx, designService())
	require.NoError(t, err)
	assert.Equal(t, "interior-design", created.Slug)

	_, err = svc.CreateService(ctx, designService())
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateService_Validation(t *testing.T) {
	svc := newCatalogService(t)
	in := designService()
	in.Description = "short"

	_, err := svc.CreateService(context.Background(), in)
	ve, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "description", ve[0].Field)
}

func TestServiceBySlug_OnlyActive(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	created, err := svc.CreateService(ctx, designService())
	require.NoError(t, err)

	got, err := svc.ServiceBySlug(ctx, "interior-design")
	require.NoError(t, err)
	require.NotNil(t, got)

	_, err = svc.UpdateService(ctx, created.ID, validation.ServicePatch{IsActive: ptr(false)})
	require.NoError(t, err)

	got, err = svc.ServiceBySlug(ctx, "interior-design")
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := svc.ListServices(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	all, err := svc.AllServices(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateService_DefaultsToActive(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateService(ctx, designService())
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	list, err := svc.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	hidden := designService()
	hidden.Slug = "staging"
	hidden.IsActive = ptr(false)
	created, err = svc.CreateService(ctx, hidden)
	require.NoError(t, err)
	assert.False(t, created.IsActive)

	got, err := svc.ServiceBySlug(ctx, "staging")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestServiceBySlug_UnknownSlugsAreNotCached(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	_, err := svc.CreateService(ctx, designService())
	require.NoError(t, err)
	_, err = svc.ServiceBySlug(ctx, "interior-design")
	require.NoError(t, err)
	before := svc.cache.Len()

	for i := 0; i < 200; i++ {
		got, err := svc.ServiceBySlug(ctx, "unknown-"+strconv.Itoa(i))
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.Equal(t, before, svc.cache.Len())
}

func TestUpdateService_RowGoneBeforeReload(t *testing.T) {
	svc, db := newCatalogServiceDB(t)
	ctx := context.Background()
	created, err := svc.CreateService(ctx, designService())
	require.NoError(t, err)

	// a concurrent delete lands between the write and the reload
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:delete_service",
		func(tx *gorm.DB) {
			if tx.Statement.Table != "services" {
				return
			}
			_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, "DELETE FROM services WHERE id = ?", created.ID)
			tx.AddError(err)
		}))

	updated, err := svc.UpdateService(ctx, created.ID, validation.ServicePatch{Title: ptr("Interior styling")})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Nil(t, updated)

	got, err := svc.ServiceBySlug(ctx, "interior-design")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateService_SlugConflictAndNotFound(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	_, err := svc.CreateService(ctx, designService())
	require.NoError(t, err)
	other := designService()
	other.Slug = "staging"
	second, err := svc.CreateService(ctx, other)
	require.NoError(t, err)

	_, err = svc.UpdateService(ctx, second.ID, validation.ServicePatch{Slug: ptr("Interior Design")})
	assert.ErrorIs(t, err, ErrSlugTaken)

	updated, err := svc.UpdateService(ctx, second.ID, validation.ServicePatch{Slug: ptr("staging"), Title: ptr(" Home staging ")})
	require.NoError(t, err)
	assert.Equal(t, "Home staging", updated.Title)

	_, err = svc.UpdateService(ctx, "missing", validation.ServicePatch{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDeleteService(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()
	created, err := svc.CreateService(ctx, designService())
	require.NoError(t, err)

	list, err := svc.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteService(ctx, created.ID))
	list, err = svc.ListServices(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.DeleteService(ctx, created.ID), ErrServiceNotFound)
}

func TestUpdateCompany_BlankFieldsClearAndNameKept(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	info, err := svc.UpdateCompany(ctx, validation.CompanyInfoInput{
		Tagline: ptr("Homes by the water"),
		Email:   ptr("hello@harbor.test"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Harbor Estates", info.Name)
	require.NotNil(t, info.Tagline)

	cached, err := svc.Company(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Homes by the water", *cached.Tagline)

	info, err = svc.UpdateCompany(ctx, validation.CompanyInfoInput{Name: ptr(" "), Tagline: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "Harbor Estates", info.Name)
	assert.Nil(t, info.Tagline)
	assert.Nil(t, info.Email)

	cached, err = svc.Company(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached.Tagline)
}

func TestUpdateCompany_InvalidEmail(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.UpdateCompany(context.Background(), validation.CompanyInfoInput{Email: ptr("not-an-email")})
	_, ok := validation.AsErrors(err)
	assert.True(t, ok)
}

func TestContacts_Lifecycle(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	c, err := svc.CreateContact(ctx, validation.ContactInput{Type: "Phone", Value: " +1 555 0100 "})
	require.NoError(t, err)
	assert.Equal(t, "phone", c.Type)
	assert.Equal(t, "+1 555 0100", c.Value)
	assert.True(t, c.IsActive)

	list, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := svc.UpdateContact(ctx, c.ID, validation.ContactPatch{IsActive: ptr(false), Label: ptr("Office")})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Office", *updated.Label)

	list, err = svc.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	all, err := svc.AllContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteContact(ctx, c.ID))
	assert.ErrorIs(t, svc.DeleteContact(ctx, c.ID), ErrContactNotFound)

	_, err = svc.UpdateContact(ctx, c.ID, validation.ContactPatch{Value: ptr("x")})
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestCreateContact_RequiresValue(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.CreateContact(context.Background(), validation.ContactInput{Type: "email", Value: "  "})
	ve, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "value", ve[0].Field)
}
