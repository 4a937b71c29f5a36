package service_test

import (
	"context"
	"testing"
	"time"

	appservice "github.com/ccsdigital/frameworkhub/application/service"
	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/infrastructure/persistence"
	"github.com/ccsdigital/frameworkhub/internal/database"
	"github.com/ccsdigital/frameworkhub/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogueEnv struct {
	frameworks *persistence.FrameworkStore
	lots       *persistence.LotStore
	suppliers  *persistence.SupplierStore
	links      *persistence.LotSupplierStore
	service    *appservice.Catalogue
}

func newCatalogueEnv(t *testing.T, now time.Time) catalogueEnv {
	t.Helper()
	db := testdb.New(t)
	env := catalogueEnv{
		frameworks: persistence.NewFrameworkStore(db),
		lots:       persistence.NewLotStore(db),
		suppliers:  persistence.NewSupplierStore(db),
		links:      persistence.NewLotSupplierStore(db),
	}
	env.service = appservice.NewCatalogue(env.frameworks, env.lots, env.suppliers,
		appservice.WithCatalogueClock(func() time.Time { return now }))
	return env
}

func TestCatalogue_ListFrameworks_Paged(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	env := newCatalogueEnv(t, now)
	ctx := context.Background()

	for _, rm := range []string{"RM3", "RM1", "RM2"} {
		require.NoError(t, env.frameworks.CreateOrUpdateFromCRM(ctx, catalogue.NewFramework("sf-"+rm, catalogue.FrameworkAttrs{
			RMNumber: rm,
			Title:    "Framework " + rm,
		})))
	}

	page, err := env.service.ListFrameworks(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Frameworks, 2)
	assert.Equal(t, "RM1", page.Frameworks[0].RMNumber())
	assert.Equal(t, "RM2", page.Frameworks[1].RMNumber())

	page, err = env.service.ListFrameworks(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Frameworks, 1)
	assert.Equal(t, "RM3", page.Frameworks[0].RMNumber())
}

func TestCatalogue_ListLiveSuppliers(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	env := newCatalogueEnv(t, now)
	ctx := context.Background()

	require.NoError(t, env.frameworks.CreateOrUpdateFromCRM(ctx, catalogue.NewFramework("sf-fw-1", catalogue.FrameworkAttrs{
		Title:    "Live Framework",
		RMNumber: "RM1",
		Status:   catalogue.StatusLive,
		EndDate:  time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})))
	require.NoError(t, env.lots.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-1", "sf-fw-1", "Lot 1", "")))
	require.NoError(t, env.suppliers.CreateOrUpdateFromCRM(ctx, catalogue.NewSupplier("sf-sup-1", "Acme Ltd", "", "", "", "")))
	require.NoError(t, env.suppliers.CreateOrUpdateFromCRM(ctx, catalogue.NewSupplier("sf-sup-2", "Idle Ltd", "", "", "", "")))
	require.NoError(t, env.links.Create(ctx, catalogue.NewLotSupplier("sf-lot-1", "sf-sup-1")))
	require.NoError(t, env.suppliers.RefreshLiveFlags(ctx, now))

	page, err := env.service.ListLiveSuppliers(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Suppliers, 1)
	assert.Equal(t, "Acme Ltd", page.Suppliers[0].Supplier.Name())
	require.Len(t, page.Suppliers[0].LiveFrameworks, 1)
	assert.Equal(t, "RM1", page.Suppliers[0].LiveFrameworks[0].RMNumber())
}

func TestCatalogue_GetSupplier(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	env := newCatalogueEnv(t, now)
	ctx := context.Background()

	require.NoError(t, env.frameworks.CreateOrUpdateFromCRM(ctx, catalogue.NewFramework("sf-fw-1", catalogue.FrameworkAttrs{
		Title:   "Live Framework",
		Status:  catalogue.StatusLive,
		EndDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})))
	require.NoError(t, env.lots.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-1", "sf-fw-1", "Lot 1", "")))
	require.NoError(t, env.lots.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-2", "sf-fw-1", "Lot 2", "")))
	require.NoError(t, env.suppliers.CreateOrUpdateFromCRM(ctx, catalogue.NewSupplier("sf-sup-1", "Acme Ltd", "", "", "", "")))
	require.NoError(t, env.links.Create(ctx, catalogue.NewLotSupplier("sf-lot-1", "sf-sup-1")))
	require.NoError(t, env.suppliers.RefreshLiveFlags(ctx, now))

	supplier, err := env.suppliers.FindOne(ctx, catalogue.WithSalesforceID("sf-sup-1"))
	require.NoError(t, err)

	detail, err := env.service.GetSupplier(ctx, supplier.ID())
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", detail.Supplier.Name())
	require.Len(t, detail.Frameworks, 1)
	assert.Equal(t, "Live Framework", detail.Frameworks[0].Framework.Title())
	// Every lot of the live framework is listed, not just the one the
	// supplier holds.
	require.Len(t, detail.Frameworks[0].Lots, 2)
	assert.Equal(t, "Lot 1", detail.Frameworks[0].Lots[0].Title())
	assert.Equal(t, "Lot 2", detail.Frameworks[0].Lots[1].Title())
}

func TestCatalogue_GetSupplier_NotFound(t *testing.T) {
	env := newCatalogueEnv(t, time.Now())

	_, err := env.service.GetSupplier(context.Background(), 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCatalogue_GetSupplier_OffLiveFrameworksIsNotFound(t *testing.T) {
	env := newCatalogueEnv(t, time.Now())
	ctx := context.Background()

	require.NoError(t, env.suppliers.CreateOrUpdateFromCRM(ctx, catalogue.NewSupplier("sf-sup-1", "Idle Ltd", "", "", "", "")))
	supplier, err := env.suppliers.FindOne(ctx, catalogue.WithSalesforceID("sf-sup-1"))
	require.NoError(t, err)

	_, err = env.service.GetSupplier(ctx, supplier.ID())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCatalogue_SaveEditorial(t *testing.T) {
	env := newCatalogueEnv(t, time.Now())
	ctx := context.Background()

	require.NoError(t, env.frameworks.CreateOrUpdateFromCRM(ctx, catalogue.NewFramework("sf-fw-1", catalogue.FrameworkAttrs{
		Title: "Framework",
	})))
	require.NoError(t, env.frameworks.SetWordPressID(ctx, "sf-fw-1", 501))

	summary := "Edited summary"
	require.NoError(t, env.service.SaveEditorial(ctx, 501, catalogue.FrameworkPatch{Summary: &summary}))

	got, err := env.frameworks.FindOne(ctx, catalogue.WithWordPressID(501))
	require.NoError(t, err)
	assert.Equal(t, "Edited summary", got.Summary())
}
