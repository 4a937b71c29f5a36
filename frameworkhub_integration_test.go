package frameworkhub_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/ccsdigital/frameworkhub"
	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/internal/config"
	"github.com/ccsdigital/frameworkhub/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	return config.NewAppConfigWithOptions(config.WithDBURL("sqlite:///" + dbPath))
}

func quietLogger() frameworkhub.Option {
	return frameworkhub.WithLogger(
		log.NewLoggerWithWriter(io.Discard, config.LogFormatJSON, "ERROR"))
}

type stubCRM struct {
	frameworks []catalogue.Framework
	lots       map[string][]catalogue.Lot
	suppliers  map[string][]catalogue.Supplier
}

func (s *stubCRM) AllFrameworks(context.Context) ([]catalogue.Framework, error) {
	return s.frameworks, nil
}

func (s *stubCRM) FrameworkLots(_ context.Context, id string) ([]catalogue.Lot, error) {
	return s.lots[id], nil
}

func (s *stubCRM) LotSuppliers(_ context.Context, id string) ([]catalogue.Supplier, error) {
	return s.suppliers[id], nil
}

type stubIndexer struct {
	indexed []string
	removed []string
}

func (s *stubIndexer) CreateOrUpdateSupplier(_ context.Context, supplier catalogue.Supplier, _ []catalogue.Framework) error {
	s.indexed = append(s.indexed, supplier.SalesforceID())
	return nil
}

func (s *stubIndexer) RemoveSupplier(_ context.Context, supplier catalogue.Supplier) error {
	s.removed = append(s.removed, supplier.SalesforceID())
	return nil
}

func (s *stubIndexer) QueryByKeyword(context.Context, string, int, int) (service.SupplierResultSet, error) {
	return service.SupplierResultSet{}, nil
}

func TestNew_MinimalConfig(t *testing.T) {
	client, err := frameworkhub.New(context.Background(), testConfig(t), quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	// Catalogue reads always work; the optional services stay off without
	// their config.
	require.NotNil(t, client.Catalogue)
	assert.Nil(t, client.Importer)
	assert.Nil(t, client.Search)

	page, err := client.Catalogue.ListFrameworks(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}

func TestClient_ImportThenRead(t *testing.T) {
	crm := &stubCRM{
		frameworks: []catalogue.Framework{catalogue.NewFramework("sf-fw-1", catalogue.FrameworkAttrs{
			RMNumber: "RM1234",
			Title:    "Technology Products",
			Status:   catalogue.StatusLive,
			EndDate:  time.Now().AddDate(1, 0, 0),
		})},
		lots: map[string][]catalogue.Lot{
			"sf-fw-1": {catalogue.NewLot("sf-lot-1", "sf-fw-1", "Lot 1", "")},
		},
		suppliers: map[string][]catalogue.Supplier{
			"sf-lot-1": {catalogue.NewSupplier("sf-sup-1", "Acme Ltd", "", "", "", "")},
		},
	}
	indexer := &stubIndexer{}

	ctx := context.Background()
	client, err := frameworkhub.New(ctx, testConfig(t), quietLogger(),
		frameworkhub.WithCRM(crm),
		frameworkhub.WithSupplierIndexer(indexer),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	result, err := client.Importer.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported.Frameworks)
	assert.Equal(t, 1, result.Imported.Lots)
	assert.Equal(t, 1, result.Imported.Suppliers)

	reindex, err := client.Search.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reindex.Indexed)
	assert.Equal(t, []string{"sf-sup-1"}, indexer.indexed)

	page, err := client.Catalogue.ListLiveSuppliers(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, page.Suppliers, 1)
	assert.Equal(t, "Acme Ltd", page.Suppliers[0].Supplier.Name())
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	client, err := frameworkhub.New(context.Background(), testConfig(t), quietLogger())
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
}
