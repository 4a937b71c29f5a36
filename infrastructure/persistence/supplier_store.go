package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/internal/database"
	"gorm.io/gorm"
)

// supplierCRMColumns are the columns a sync pass updates on an existing
// supplier row. The derived on_live_frameworks flag is recomputed separately
// by RefreshLiveFlags, never written by the upsert.
var supplierCRMColumns = []string{
	"name",
	"trading_name",
	"duns_number",
	"city",
	"postcode",
	"updated_at",
}

// SupplierStore is a GORM-backed implementation of catalogue.SupplierStore.
type SupplierStore struct {
	repo database.Repository[catalogue.Supplier, SupplierModel]
}

// NewSupplierStore creates a new SupplierStore.
func NewSupplierStore(db database.Database) *SupplierStore {
	return &SupplierStore{
		repo: database.NewRepository[catalogue.Supplier, SupplierModel](db, SupplierMapper{}, "supplier"),
	}
}

// Find retrieves suppliers matching the given options.
func (s *SupplierStore) Find(ctx context.Context, options ...catalogue.Option) ([]catalogue.Supplier, error) {
	return s.repo.Find(ctx, options...)
}

// FindOne retrieves a single supplier matching the given options.
func (s *SupplierStore) FindOne(ctx context.Context, options ...catalogue.Option) (catalogue.Supplier, error) {
	return s.repo.FindOne(ctx, options...)
}

// Exists checks whether any supplier matches the given options.
func (s *SupplierStore) Exists(ctx context.Context, options ...catalogue.Option) (bool, error) {
	return s.repo.Exists(ctx, options...)
}

// Count returns the number of suppliers matching the given options.
func (s *SupplierStore) Count(ctx context.Context, options ...catalogue.Option) (int64, error) {
	return s.repo.Count(ctx, options...)
}

// DeleteBy removes suppliers matching the given options.
func (s *SupplierStore) DeleteBy(ctx context.Context, options ...catalogue.Option) error {
	return s.repo.DeleteBy(ctx, options...)
}

// Save creates or fully updates a supplier row, all columns included.
func (s *SupplierStore) Save(ctx context.Context, supplier catalogue.Supplier) (catalogue.Supplier, error) {
	model := s.repo.Mapper().ToModel(supplier)
	var result *gorm.DB
	if model.ID == 0 {
		result = s.repo.DB(ctx).Create(&model)
	} else {
		result = s.repo.DB(ctx).Save(&model)
	}
	if result.Error != nil {
		return catalogue.Supplier{}, fmt.Errorf("save supplier: %w", result.Error)
	}
	return s.repo.Mapper().ToDomain(model), nil
}

// CreateOrUpdateFromCRM upserts a supplier keyed on its CRM id.
func (s *SupplierStore) CreateOrUpdateFromCRM(ctx context.Context, supplier catalogue.Supplier) error {
	return database.WithTransaction(ctx, s.repo.Database(), func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&SupplierModel{}).
			Where("salesforce_id = ?", supplier.SalesforceID()).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check supplier exists: %w", err)
		}

		model := s.repo.Mapper().ToModel(supplier)
		if count == 0 {
			model.ID = 0
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("create supplier: %w", err)
			}
			return nil
		}

		if err := tx.Model(&SupplierModel{}).
			Where("salesforce_id = ?", supplier.SalesforceID()).
			Select(supplierCRMColumns).
			Updates(&model).Error; err != nil {
			return fmt.Errorf("update supplier: %w", err)
		}
		return nil
	})
}

// RefreshLiveFlags recomputes on_live_frameworks for every supplier in one
// statement from the current lot-supplier links and framework dates.
func (s *SupplierStore) RefreshLiveFlags(ctx context.Context, now time.Time) error {
	err := s.repo.DB(ctx).Exec(`
		UPDATE suppliers SET on_live_frameworks = EXISTS (
			SELECT 1 FROM lot_suppliers
			JOIN lots ON lot_suppliers.lot_id = lots.salesforce_id
			JOIN frameworks ON lots.framework_id = frameworks.salesforce_id
			WHERE lot_suppliers.supplier_id = suppliers.salesforce_id
			AND frameworks.status = ?
			AND (frameworks.start_date IS NULL OR frameworks.start_date <= ?)
			AND (frameworks.end_date IS NULL OR frameworks.end_date >= ?)
		)`, catalogue.StatusLive, now, now).Error
	if err != nil {
		return fmt.Errorf("refresh supplier live flags: %w", err)
	}
	return nil
}
