// Package frameworkhub provides a library for syncing CRM framework data
// into a relational catalogue, provisioning CMS entries for frameworks and
// lots, and maintaining a supplier search index.
//
// Basic usage:
//
//	cfg := config.NewAppConfigWithOptions(
//	    config.WithDBURL("sqlite:///frameworkhub.db"),
//	)
//	client, err := frameworkhub.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Import from the CRM
//	result, err := client.Importer.Run(ctx)
//
//	// Read-side queries
//	page, err := client.Catalogue.ListFrameworks(ctx, 10, 0)
package frameworkhub

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	appservice "github.com/ccsdigital/frameworkhub/application/service"
	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/infrastructure/persistence"
	"github.com/ccsdigital/frameworkhub/infrastructure/salesforce"
	"github.com/ccsdigital/frameworkhub/infrastructure/search"
	"github.com/ccsdigital/frameworkhub/infrastructure/wordpress"
	"github.com/ccsdigital/frameworkhub/internal/config"
	"github.com/ccsdigital/frameworkhub/internal/database"
	"github.com/ccsdigital/frameworkhub/internal/log"
)

// Client is the main entry point for the frameworkhub library.
//
// Access the application services via struct fields:
//
//	client.Catalogue.ListFrameworks(ctx, 10, 0)
//	client.Importer.Run(ctx)
//	client.Search.Query(ctx, "health", 1, 20)
//
// Importer is nil when the CRM is not configured, and Search is nil when
// the search index is not configured. Catalogue is always available.
type Client struct {
	Catalogue *appservice.Catalogue
	Importer  *appservice.Importer
	Search    *appservice.SupplierSearch

	db         database.Database
	frameworks catalogue.FrameworkStore
	lots       catalogue.LotStore
	suppliers  catalogue.SupplierStore
	links      catalogue.LotSupplierStore

	cfg    config.AppConfig
	logger *log.Logger
	closed atomic.Bool
}

// New creates a Client: it opens the database, runs migrations, and wires
// the application services against whichever external systems the config
// enables.
func New(ctx context.Context, cfg config.AppConfig, opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	logger := cc.logger
	if logger == nil {
		logger = log.NewLogger(cfg)
	}

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return nil, fmt.Errorf("frameworkhub: %w", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("frameworkhub: %w", err)
	}

	client := &Client{
		db:         db,
		frameworks: persistence.NewFrameworkStore(db),
		lots:       persistence.NewLotStore(db),
		suppliers:  persistence.NewSupplierStore(db),
		links:      persistence.NewLotSupplierStore(db),
		cfg:        cfg,
		logger:     logger,
	}

	client.Catalogue = appservice.NewCatalogue(client.frameworks, client.lots, client.suppliers)

	crm, err := client.resolveCRM(cc)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if crm != nil {
		publisher, err := client.resolvePublisher(cc)
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		importerOpts := []appservice.ImporterOption{appservice.WithImporterLogger(logger)}
		if publisher != nil {
			importerOpts = append(importerOpts, appservice.WithContentPublisher(publisher))
		}
		if cc.reporter != nil {
			importerOpts = append(importerOpts, appservice.WithReporter(cc.reporter))
		}
		client.Importer = appservice.NewImporter(crm,
			client.frameworks, client.lots, client.suppliers, client.links,
			importerOpts...)
	}

	indexer, err := client.resolveIndexer(cc)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if indexer != nil {
		client.Search = appservice.NewSupplierSearch(client.suppliers, client.frameworks, indexer,
			appservice.WithSearchLogger(logger))
	}

	logger.Info("frameworkhub client ready",
		"crm_configured", client.Importer != nil,
		"search_configured", client.Search != nil,
	)
	return client, nil
}

func (c *Client) resolveCRM(cc *clientConfig) (service.CRM, error) {
	if cc.crm != nil {
		return cc.crm, nil
	}
	if !c.cfg.Salesforce().IsConfigured() {
		return nil, nil
	}
	crm, err := salesforce.NewClient(c.cfg.Salesforce(), c.logger)
	if err != nil {
		return nil, fmt.Errorf("frameworkhub: %w", err)
	}
	return crm, nil
}

func (c *Client) resolvePublisher(cc *clientConfig) (service.ContentPublisher, error) {
	if cc.publisher != nil {
		return cc.publisher, nil
	}
	if !c.cfg.WordPress().IsConfigured() {
		return nil, nil
	}
	publisher, err := wordpress.NewClient(c.cfg.WordPress())
	if err != nil {
		return nil, fmt.Errorf("frameworkhub: %w", err)
	}
	return publisher, nil
}

func (c *Client) resolveIndexer(cc *clientConfig) (service.SupplierIndexer, error) {
	if cc.indexer != nil {
		return cc.indexer, nil
	}
	if !c.cfg.Elastic().IsConfigured() {
		return nil, nil
	}
	indexer, err := search.NewClient(c.cfg.Elastic(), c.logger)
	if err != nil {
		return nil, fmt.Errorf("frameworkhub: %w", err)
	}
	return indexer, nil
}

// Config returns the client's configuration.
func (c *Client) Config() config.AppConfig {
	return c.cfg
}

// Logger returns the client's structured logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger.Slog()
}

// Frameworks returns the framework store.
func (c *Client) Frameworks() catalogue.FrameworkStore { return c.frameworks }

// Lots returns the lot store.
func (c *Client) Lots() catalogue.LotStore { return c.lots }

// Suppliers returns the supplier store.
func (c *Client) Suppliers() catalogue.SupplierStore { return c.suppliers }

// LotSuppliers returns the lot-supplier link store.
func (c *Client) LotSuppliers() catalogue.LotSupplierStore { return c.links }

// Close releases the client's resources. It is safe to call more than once.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.db.Close()
}
