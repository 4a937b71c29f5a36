// Package service contains the application services that orchestrate the
// domain stores and the infrastructure clients: the CRM import cascade, the
// search reindex pass, and the read-side catalogue queries.
package service

import (
	"context"
	"fmt"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/internal/log"
)

// Counts holds per-category record counts for one import run.
type Counts struct {
	Frameworks int `json:"frameworks"`
	Lots       int `json:"lots"`
	Suppliers  int `json:"suppliers"`
}

// Result summarizes one import run. Failed records are skipped, never
// retried within the run, and never abort it.
type Result struct {
	Imported Counts `json:"imported"`
	Failed   Counts `json:"failed"`
}

// Reporter receives per-record progress during an import run.
type Reporter interface {
	Success(entity, salesforceID, title string)
	Failure(entity, salesforceID string, err error)
}

type nopReporter struct{}

func (nopReporter) Success(string, string, string) {}
func (nopReporter) Failure(string, string, error)  {}

// Importer runs the three-level CRM import cascade: frameworks, their lots,
// and the suppliers awarded onto each lot. The cascade is synchronous and
// not transactional across levels; each record failure is counted and
// skipped.
type Importer struct {
	crm        service.CRM
	frameworks catalogue.FrameworkStore
	lots       catalogue.LotStore
	suppliers  catalogue.SupplierStore
	links      catalogue.LotSupplierStore
	publisher  service.ContentPublisher
	reporter   Reporter
	logger     *log.Logger
}

// ImporterOption is a functional option for Importer.
type ImporterOption func(*Importer)

// WithContentPublisher enables CMS entry provisioning during the run.
func WithContentPublisher(p service.ContentPublisher) ImporterOption {
	return func(i *Importer) { i.publisher = p }
}

// WithReporter sets the per-record progress reporter.
func WithReporter(r Reporter) ImporterOption {
	return func(i *Importer) { i.reporter = r }
}

// WithImporterLogger sets the logger.
func WithImporterLogger(l *log.Logger) ImporterOption {
	return func(i *Importer) { i.logger = l }
}

// NewImporter creates an Importer.
func NewImporter(
	crm service.CRM,
	frameworks catalogue.FrameworkStore,
	lots catalogue.LotStore,
	suppliers catalogue.SupplierStore,
	links catalogue.LotSupplierStore,
	opts ...ImporterOption,
) *Importer {
	i := &Importer{
		crm:        crm,
		frameworks: frameworks,
		lots:       lots,
		suppliers:  suppliers,
		links:      links,
		reporter:   nopReporter{},
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run executes the full cascade. A CRM failure on the initial framework
// fetch fails the run; a CRM failure on a lot or supplier branch aborts only
// that branch.
func (i *Importer) Run(ctx context.Context) (Result, error) {
	frameworks, err := i.crm.AllFrameworks(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("import run: %w", err)
	}
	i.logger.InfoContext(ctx, "import run started", "frameworks", len(frameworks))

	var result Result
	for _, framework := range frameworks {
		i.importFramework(ctx, framework, &result)
	}

	i.logger.InfoContext(ctx, "import run finished",
		"imported_frameworks", result.Imported.Frameworks,
		"imported_lots", result.Imported.Lots,
		"imported_suppliers", result.Imported.Suppliers,
		"failed_frameworks", result.Failed.Frameworks,
		"failed_lots", result.Failed.Lots,
		"failed_suppliers", result.Failed.Suppliers,
	)
	return result, nil
}

func (i *Importer) importFramework(ctx context.Context, framework catalogue.Framework, result *Result) {
	if err := i.frameworks.CreateOrUpdateFromCRM(ctx, framework); err != nil {
		result.Failed.Frameworks++
		i.reporter.Failure("framework", framework.SalesforceID(), err)
		i.logger.WarnContext(ctx, "framework import failed", "salesforce_id", framework.SalesforceID(), "error", err)
		return
	}

	// Reload to pick up the internal id and any CMS entry assigned on an
	// earlier run.
	stored, err := i.frameworks.FindOne(ctx, catalogue.WithSalesforceID(framework.SalesforceID()))
	if err != nil {
		// The row was written; the record still counts as failed because
		// its cascade below cannot run without the reloaded ids.
		result.Failed.Frameworks++
		i.reporter.Failure("framework", framework.SalesforceID(), err)
		i.logger.WarnContext(ctx, "framework reload failed after upsert",
			"salesforce_id", framework.SalesforceID(), "error", err)
		return
	}

	result.Imported.Frameworks++
	i.reporter.Success("framework", stored.SalesforceID(), stored.Title())

	i.ensureContentEntry(ctx, service.ContentFramework, stored.SalesforceID(), stored.Title(), stored.WordPressID(),
		func(id int64) error { return i.frameworks.SetWordPressID(ctx, stored.SalesforceID(), id) })

	lots, err := i.crm.FrameworkLots(ctx, stored.SalesforceID())
	if err != nil {
		i.logger.WarnContext(ctx, "lot fetch failed, skipping framework branch",
			"framework", stored.SalesforceID(), "error", err)
		return
	}

	for _, lot := range lots {
		i.importLot(ctx, lot, result)
	}
}

func (i *Importer) importLot(ctx context.Context, lot catalogue.Lot, result *Result) {
	if err := i.lots.CreateOrUpdateFromCRM(ctx, lot); err != nil {
		result.Failed.Lots++
		i.reporter.Failure("lot", lot.SalesforceID(), err)
		i.logger.WarnContext(ctx, "lot import failed", "salesforce_id", lot.SalesforceID(), "error", err)
		return
	}

	stored, err := i.lots.FindOne(ctx, catalogue.WithSalesforceID(lot.SalesforceID()))
	if err != nil {
		// Same counter semantics as the framework reload above.
		result.Failed.Lots++
		i.reporter.Failure("lot", lot.SalesforceID(), err)
		i.logger.WarnContext(ctx, "lot reload failed after upsert",
			"salesforce_id", lot.SalesforceID(), "error", err)
		return
	}

	result.Imported.Lots++
	i.reporter.Success("lot", stored.SalesforceID(), stored.Title())

	i.ensureContentEntry(ctx, service.ContentLot, stored.SalesforceID(), stored.Title(), stored.WordPressID(),
		func(id int64) error { return i.lots.SetWordPressID(ctx, stored.SalesforceID(), id) })

	// The awarded-supplier links are a full snapshot. Fetch the fresh list
	// before wiping the old one so a failed fetch keeps the previous
	// snapshot intact.
	suppliers, err := i.crm.LotSuppliers(ctx, stored.SalesforceID())
	if err != nil {
		i.logger.WarnContext(ctx, "supplier fetch failed, skipping lot branch",
			"lot", stored.SalesforceID(), "error", err)
		return
	}

	if err := i.links.DeleteForLot(ctx, stored.SalesforceID()); err != nil {
		i.logger.WarnContext(ctx, "lot link reset failed, skipping lot branch",
			"lot", stored.SalesforceID(), "error", err)
		return
	}

	for _, supplier := range suppliers {
		i.importSupplier(ctx, stored, supplier, result)
	}
}

func (i *Importer) importSupplier(ctx context.Context, lot catalogue.Lot, supplier catalogue.Supplier, result *Result) {
	if err := i.suppliers.CreateOrUpdateFromCRM(ctx, supplier); err != nil {
		result.Failed.Suppliers++
		i.reporter.Failure("supplier", supplier.SalesforceID(), err)
		i.logger.WarnContext(ctx, "supplier import failed", "salesforce_id", supplier.SalesforceID(), "error", err)
		return
	}

	link := catalogue.NewLotSupplier(lot.SalesforceID(), supplier.SalesforceID())
	if err := i.links.Create(ctx, link); err != nil {
		result.Failed.Suppliers++
		i.reporter.Failure("supplier", supplier.SalesforceID(), err)
		i.logger.WarnContext(ctx, "lot supplier link failed",
			"lot", lot.SalesforceID(), "supplier", supplier.SalesforceID(), "error", err)
		return
	}

	result.Imported.Suppliers++
	i.reporter.Success("supplier", supplier.SalesforceID(), supplier.Name())
}

// ensureContentEntry keeps the CMS in step with an imported record: a record
// that already carries a CMS id gets a title-only update, anything else gets
// a fresh entry whose assigned id is persisted back onto the row. CMS
// failures are logged and never fail the record import.
func (i *Importer) ensureContentEntry(ctx context.Context, entryType service.ContentType, salesforceID, title string, wordpressID int64, persist func(int64) error) {
	if i.publisher == nil {
		return
	}

	if wordpressID != 0 {
		if err := i.publisher.UpdateTitle(ctx, entryType, wordpressID, title); err != nil {
			i.logger.WarnContext(ctx, "cms title update failed",
				"type", string(entryType), "salesforce_id", salesforceID, "wordpress_id", wordpressID, "error", err)
		}
		return
	}

	id, err := i.publisher.CreateEntry(ctx, entryType, title)
	if err != nil {
		i.logger.WarnContext(ctx, "cms entry creation failed",
			"type", string(entryType), "salesforce_id", salesforceID, "error", err)
		return
	}
	if err := persist(id); err != nil {
		i.logger.WarnContext(ctx, "cms id persistence failed",
			"type", string(entryType), "salesforce_id", salesforceID, "wordpress_id", id, "error", err)
	}
}
