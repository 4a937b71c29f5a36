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

func linkedSupplierIDs(t *testing.T, store *persistence.LotSupplierStore, lotID string) []string {
	t.Helper()
	links, err := store.Find(context.Background(), catalogue.WithLotID(lotID), catalogue.WithOrderAsc("supplier_id"))
	require.NoError(t, err)
	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.SupplierSalesforceID()
	}
	return ids
}

func TestLotSupplierStore_ReplaceSnapshot(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewLotSupplierStore(db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, catalogue.NewLotSupplier("sf-lot-1", "sf-sup-a")))
	require.NoError(t, store.Create(ctx, catalogue.NewLotSupplier("sf-lot-1", "sf-sup-b")))
	require.Equal(t, []string{"sf-sup-a", "sf-sup-b"}, linkedSupplierIDs(t, store, "sf-lot-1"))

	// Next sync pass: the CRM now lists B and C for the lot.
	require.NoError(t, store.DeleteForLot(ctx, "sf-lot-1"))
	require.NoError(t, store.Create(ctx, catalogue.NewLotSupplier("sf-lot-1", "sf-sup-b")))
	require.NoError(t, store.Create(ctx, catalogue.NewLotSupplier("sf-lot-1", "sf-sup-c")))

	assert.Equal(t, []string{"sf-sup-b", "sf-sup-c"}, linkedSupplierIDs(t, store, "sf-lot-1"))
}

func TestLotSupplierStore_DeleteForLot_ScopedToLot(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewLotSupplierStore(db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, catalogue.NewLotSupplier("sf-lot-1", "sf-sup-a")))
	require.NoError(t, store.Create(ctx, catalogue.NewLotSupplier("sf-lot-2", "sf-sup-a")))

	require.NoError(t, store.DeleteForLot(ctx, "sf-lot-1"))

	assert.Empty(t, linkedSupplierIDs(t, store, "sf-lot-1"))
	assert.Equal(t, []string{"sf-sup-a"}, linkedSupplierIDs(t, store, "sf-lot-2"))
}

func TestLotSupplierStore_ContactDetails(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewLotSupplierStore(db)
	ctx := context.Background()

	link := catalogue.NewLotSupplier("sf-lot-1", "sf-sup-a").
		WithContact("Jo Smith", "jo@example.com", "https://example.com/contact")
	require.NoError(t, store.Create(ctx, link))

	links, err := store.Find(ctx, catalogue.WithLotID("sf-lot-1"))
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "Jo Smith", links[0].ContactName())
	assert.Equal(t, "jo@example.com", links[0].ContactEmail())
	assert.Equal(t, "https://example.com/contact", links[0].WebsiteContact())
}
