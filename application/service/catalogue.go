package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
)

// FrameworkPage is one page of frameworks plus the unpaged total.
type FrameworkPage struct {
	Total      int64
	Frameworks []catalogue.Framework
}

// SupplierWithFrameworks pairs a supplier with the live frameworks it is
// currently awarded onto.
type SupplierWithFrameworks struct {
	Supplier       catalogue.Supplier
	LiveFrameworks []catalogue.Framework
}

// SupplierPage is one page of live suppliers plus the unpaged total.
type SupplierPage struct {
	Total     int64
	Suppliers []SupplierWithFrameworks
}

// FrameworkWithLots pairs a framework with its lots.
type FrameworkWithLots struct {
	Framework catalogue.Framework
	Lots      []catalogue.Lot
}

// SupplierDetail is the full read model for one supplier.
type SupplierDetail struct {
	Supplier   catalogue.Supplier
	Frameworks []FrameworkWithLots
}

// Catalogue serves the read side: paged framework and supplier listings, the
// single-supplier detail view, and the editorial save path.
type Catalogue struct {
	frameworks catalogue.FrameworkStore
	lots       catalogue.LotStore
	suppliers  catalogue.SupplierStore
	now        func() time.Time
}

// CatalogueOption is a functional option for Catalogue.
type CatalogueOption func(*Catalogue)

// WithCatalogueClock overrides the time source.
func WithCatalogueClock(now func() time.Time) CatalogueOption {
	return func(c *Catalogue) { c.now = now }
}

// NewCatalogue creates a Catalogue.
func NewCatalogue(
	frameworks catalogue.FrameworkStore,
	lots catalogue.LotStore,
	suppliers catalogue.SupplierStore,
	opts ...CatalogueOption,
) *Catalogue {
	c := &Catalogue{
		frameworks: frameworks,
		lots:       lots,
		suppliers:  suppliers,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListFrameworks returns one page of frameworks ordered by RM number.
func (c *Catalogue) ListFrameworks(ctx context.Context, limit, offset int) (FrameworkPage, error) {
	total, err := c.frameworks.Count(ctx)
	if err != nil {
		return FrameworkPage{}, fmt.Errorf("list frameworks: %w", err)
	}

	frameworks, err := c.frameworks.Find(ctx,
		catalogue.WithOrderAsc("rm_number"),
		catalogue.WithLimit(limit),
		catalogue.WithOffset(offset),
	)
	if err != nil {
		return FrameworkPage{}, fmt.Errorf("list frameworks: %w", err)
	}
	return FrameworkPage{Total: total, Frameworks: frameworks}, nil
}

// ListLiveSuppliers returns one page of suppliers that hold at least one
// live framework, each annotated with its live frameworks.
func (c *Catalogue) ListLiveSuppliers(ctx context.Context, limit, offset int) (SupplierPage, error) {
	total, err := c.suppliers.Count(ctx, catalogue.WithOnLiveFrameworks())
	if err != nil {
		return SupplierPage{}, fmt.Errorf("list suppliers: %w", err)
	}

	suppliers, err := c.suppliers.Find(ctx,
		catalogue.WithOnLiveFrameworks(),
		catalogue.WithOrderAsc("name"),
		catalogue.WithLimit(limit),
		catalogue.WithOffset(offset),
	)
	if err != nil {
		return SupplierPage{}, fmt.Errorf("list suppliers: %w", err)
	}

	now := c.now()
	page := SupplierPage{Total: total, Suppliers: make([]SupplierWithFrameworks, len(suppliers))}
	for i, supplier := range suppliers {
		live, err := c.frameworks.LiveForSupplier(ctx, supplier.SalesforceID(), now)
		if err != nil {
			return SupplierPage{}, fmt.Errorf("list suppliers: %w", err)
		}
		page.Suppliers[i] = SupplierWithFrameworks{Supplier: supplier, LiveFrameworks: live}
	}
	return page, nil
}

// GetSupplier returns the detail view for one live supplier by internal id:
// the supplier plus each live framework with all of that framework's lots.
// Suppliers off every live framework are reported as not found.
func (c *Catalogue) GetSupplier(ctx context.Context, id int64) (SupplierDetail, error) {
	supplier, err := c.suppliers.FindOne(ctx, catalogue.WithID(id), catalogue.WithOnLiveFrameworks())
	if err != nil {
		return SupplierDetail{}, fmt.Errorf("get supplier %d: %w", id, err)
	}

	live, err := c.frameworks.LiveForSupplier(ctx, supplier.SalesforceID(), c.now())
	if err != nil {
		return SupplierDetail{}, fmt.Errorf("get supplier %d: %w", id, err)
	}

	detail := SupplierDetail{Supplier: supplier, Frameworks: make([]FrameworkWithLots, len(live))}
	for i, framework := range live {
		lots, err := c.lots.Find(ctx,
			catalogue.WithFrameworkID(framework.SalesforceID()),
			catalogue.WithOrderAsc("title"),
		)
		if err != nil {
			return SupplierDetail{}, fmt.Errorf("get supplier %d: %w", id, err)
		}
		detail.Frameworks[i] = FrameworkWithLots{Framework: framework, Lots: lots}
	}
	return detail, nil
}

// SaveEditorial applies a sparse editorial patch to the framework owning the
// given CMS entry id.
func (c *Catalogue) SaveEditorial(ctx context.Context, wordpressID int64, patch catalogue.FrameworkPatch) error {
	if err := c.frameworks.UpdateEditorial(ctx, wordpressID, patch); err != nil {
		return fmt.Errorf("save editorial for %d: %w", wordpressID, err)
	}
	return nil
}
