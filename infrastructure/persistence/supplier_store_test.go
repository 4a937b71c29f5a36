package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/infrastructure/persistence"
	"github.com/ccsdigital/frameworkhub/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierStore_CreateOrUpdateFromCRM(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewSupplierStore(db)
	ctx := context.Background()

	supplier := catalogue.NewSupplier("sf-sup-1", "Acme Ltd", "Acme", "123456789", "London", "SW1A 1AA")
	require.NoError(t, store.CreateOrUpdateFromCRM(ctx, supplier))

	renamed := catalogue.NewSupplier("sf-sup-1", "Acme Holdings Ltd", "Acme", "123456789", "Leeds", "LS1 4AP")
	require.NoError(t, store.CreateOrUpdateFromCRM(ctx, renamed))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := store.FindOne(ctx, catalogue.WithSalesforceID("sf-sup-1"))
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings Ltd", got.Name())
	assert.Equal(t, "Leeds", got.City())
}

func TestSupplierStore_RefreshLiveFlags(t *testing.T) {
	db := testdb.New(t)
	frameworks := persistence.NewFrameworkStore(db)
	lots := persistence.NewLotStore(db)
	links := persistence.NewLotSupplierStore(db)
	suppliers := persistence.NewSupplierStore(db)
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, frameworks.CreateOrUpdateFromCRM(ctx, catalogue.NewFramework("sf-fw-live", catalogue.FrameworkAttrs{
		Title:     "Live Framework",
		Status:    catalogue.StatusLive,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})))
	require.NoError(t, frameworks.CreateOrUpdateFromCRM(ctx, catalogue.NewFramework("sf-fw-future", catalogue.FrameworkAttrs{
		Title:     "Future Framework",
		Status:    catalogue.StatusLive,
		StartDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})))

	require.NoError(t, lots.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-live", "sf-fw-live", "Lot 1", "")))
	require.NoError(t, lots.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-future", "sf-fw-future", "Lot 1", "")))

	require.NoError(t, suppliers.CreateOrUpdateFromCRM(ctx, catalogue.NewSupplier("sf-sup-live", "Live Co", "", "", "", "")))
	require.NoError(t, suppliers.CreateOrUpdateFromCRM(ctx, catalogue.NewSupplier("sf-sup-future", "Future Co", "", "", "", "")))
	require.NoError(t, suppliers.CreateOrUpdateFromCRM(ctx, catalogue.NewSupplier("sf-sup-none", "Idle Co", "", "", "", "")))

	require.NoError(t, links.Create(ctx, catalogue.NewLotSupplier("sf-lot-live", "sf-sup-live")))
	require.NoError(t, links.Create(ctx, catalogue.NewLotSupplier("sf-lot-future", "sf-sup-future")))

	require.NoError(t, suppliers.RefreshLiveFlags(ctx, now))

	live, err := suppliers.FindOne(ctx, catalogue.WithSalesforceID("sf-sup-live"))
	require.NoError(t, err)
	assert.True(t, live.OnLiveFrameworks())

	future, err := suppliers.FindOne(ctx, catalogue.WithSalesforceID("sf-sup-future"))
	require.NoError(t, err)
	assert.False(t, future.OnLiveFrameworks())

	none, err := suppliers.FindOne(ctx, catalogue.WithSalesforceID("sf-sup-none"))
	require.NoError(t, err)
	assert.False(t, none.OnLiveFrameworks())
}

func TestSupplierStore_RefreshLiveFlags_ClearsStaleFlag(t *testing.T) {
	db := testdb.New(t)
	frameworks := persistence.NewFrameworkStore(db)
	lots := persistence.NewLotStore(db)
	links := persistence.NewLotSupplierStore(db)
	suppliers := persistence.NewSupplierStore(db)
	ctx := context.Background()

	require.NoError(t, frameworks.CreateOrUpdateFromCRM(ctx, catalogue.NewFramework("sf-fw-1", catalogue.FrameworkAttrs{
		Title:   "Framework",
		Status:  catalogue.StatusLive,
		EndDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})))
	require.NoError(t, lots.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-1", "sf-fw-1", "Lot 1", "")))
	require.NoError(t, suppliers.CreateOrUpdateFromCRM(ctx, catalogue.NewSupplier("sf-sup-1", "Acme", "", "", "", "")))
	require.NoError(t, links.Create(ctx, catalogue.NewLotSupplier("sf-lot-1", "sf-sup-1")))

	before := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, suppliers.RefreshLiveFlags(ctx, before))
	got, err := suppliers.FindOne(ctx, catalogue.WithSalesforceID("sf-sup-1"))
	require.NoError(t, err)
	require.True(t, got.OnLiveFrameworks())

	// The framework has expired by the next refresh.
	after := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, suppliers.RefreshLiveFlags(ctx, after))
	got, err = suppliers.FindOne(ctx, catalogue.WithSalesforceID("sf-sup-1"))
	require.NoError(t, err)
	assert.False(t, got.OnLiveFrameworks())
}

func TestSupplierStore_FindOnLiveFrameworks(t *testing.T) {
	db := testdb.New(t)
	suppliers := persistence.NewSupplierStore(db)
	ctx := context.Background()

	a, err := suppliers.Save(ctx, catalogue.NewSupplier("sf-sup-a", "A Co", "", "", "", "").WithOnLiveFrameworks(true))
	require.NoError(t, err)
	require.NotZero(t, a.ID())
	_, err = suppliers.Save(ctx, catalogue.NewSupplier("sf-sup-b", "B Co", "", "", "", ""))
	require.NoError(t, err)

	got, err := suppliers.Find(ctx, catalogue.WithOnLiveFrameworks(), catalogue.WithOrderAsc("name"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sf-sup-a", got[0].SalesforceID())
}
