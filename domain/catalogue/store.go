package catalogue

import (
	"context"
	"time"
)

// FrameworkStore persists Framework entities. CreateOrUpdateFromCRM resolves
// on the salesforce_id key and must never create a duplicate row for an
// existing external id; on its update path the CMS back-reference and the
// editorial text columns are left untouched.
type FrameworkStore interface {
	Find(ctx context.Context, options ...Option) ([]Framework, error)
	FindOne(ctx context.Context, options ...Option) (Framework, error)
	Exists(ctx context.Context, options ...Option) (bool, error)
	Count(ctx context.Context, options ...Option) (int64, error)
	Save(ctx context.Context, framework Framework) (Framework, error)
	CreateOrUpdateFromCRM(ctx context.Context, framework Framework) error
	SetWordPressID(ctx context.Context, salesforceID string, wordpressID int64) error
	UpdateEditorial(ctx context.Context, wordpressID int64, patch FrameworkPatch) error
	// LiveForSupplier returns the distinct frameworks that are live at the
	// given instant and carry the supplier on at least one lot.
	LiveForSupplier(ctx context.Context, supplierSalesforceID string, now time.Time) ([]Framework, error)
	DeleteBy(ctx context.Context, options ...Option) error
}

// LotStore persists Lot entities.
type LotStore interface {
	Find(ctx context.Context, options ...Option) ([]Lot, error)
	FindOne(ctx context.Context, options ...Option) (Lot, error)
	Exists(ctx context.Context, options ...Option) (bool, error)
	Count(ctx context.Context, options ...Option) (int64, error)
	Save(ctx context.Context, lot Lot) (Lot, error)
	CreateOrUpdateFromCRM(ctx context.Context, lot Lot) error
	SetWordPressID(ctx context.Context, salesforceID string, wordpressID int64) error
	DeleteBy(ctx context.Context, options ...Option) error
}

// SupplierStore persists Supplier entities.
type SupplierStore interface {
	Find(ctx context.Context, options ...Option) ([]Supplier, error)
	FindOne(ctx context.Context, options ...Option) (Supplier, error)
	Exists(ctx context.Context, options ...Option) (bool, error)
	Count(ctx context.Context, options ...Option) (int64, error)
	Save(ctx context.Context, supplier Supplier) (Supplier, error)
	CreateOrUpdateFromCRM(ctx context.Context, supplier Supplier) error
	// RefreshLiveFlags recomputes on_live_frameworks for every supplier
	// from the current lot-supplier links and framework dates.
	RefreshLiveFlags(ctx context.Context, now time.Time) error
	DeleteBy(ctx context.Context, options ...Option) error
}

// LotSupplierStore persists the lot-supplier link rows. The cascade deletes
// every link for a lot before recreating the fresh snapshot, so the store
// exposes a bulk delete keyed on the lot's CRM id rather than a primary key.
type LotSupplierStore interface {
	Find(ctx context.Context, options ...Option) ([]LotSupplier, error)
	Count(ctx context.Context, options ...Option) (int64, error)
	Create(ctx context.Context, link LotSupplier) error
	DeleteForLot(ctx context.Context, lotSalesforceID string) error
}
