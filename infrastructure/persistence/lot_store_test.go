package persistence_test

import (
	"context"
	"testing"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/infrastructure/persistence"
	"github.com/ccsdigital/frameworkhub/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotStore_CreateOrUpdateFromCRM_PreservesWordPressID(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewLotStore(db)
	ctx := context.Background()

	require.NoError(t, store.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-1", "sf-fw-1", "Lot 1: Hardware", "Desktop hardware")))
	require.NoError(t, store.SetWordPressID(ctx, "sf-lot-1", 601))

	require.NoError(t, store.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-1", "sf-fw-1", "Lot 1: Hardware and Peripherals", "Desktop hardware")))

	got, err := store.FindOne(ctx, catalogue.WithSalesforceID("sf-lot-1"))
	require.NoError(t, err)
	assert.Equal(t, "Lot 1: Hardware and Peripherals", got.Title())
	assert.Equal(t, int64(601), got.WordPressID())

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLotStore_FindByFramework(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewLotStore(db)
	ctx := context.Background()

	require.NoError(t, store.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-1", "sf-fw-1", "Lot 1", "")))
	require.NoError(t, store.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-2", "sf-fw-1", "Lot 2", "")))
	require.NoError(t, store.CreateOrUpdateFromCRM(ctx, catalogue.NewLot("sf-lot-3", "sf-fw-2", "Lot 1", "")))

	lots, err := store.Find(ctx, catalogue.WithFrameworkID("sf-fw-1"), catalogue.WithOrderAsc("title"))
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, "Lot 1", lots[0].Title())
	assert.Equal(t, "Lot 2", lots[1].Title())
}
