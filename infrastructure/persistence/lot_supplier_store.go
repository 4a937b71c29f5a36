package persistence

import (
	"context"
	"fmt"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/internal/database"
)

// LotSupplierStore is a GORM-backed implementation of catalogue.LotSupplierStore.
type LotSupplierStore struct {
	repo database.Repository[catalogue.LotSupplier, LotSupplierModel]
}

// NewLotSupplierStore creates a new LotSupplierStore.
func NewLotSupplierStore(db database.Database) *LotSupplierStore {
	return &LotSupplierStore{
		repo: database.NewRepository[catalogue.LotSupplier, LotSupplierModel](db, LotSupplierMapper{}, "lot supplier"),
	}
}

// Find retrieves lot-supplier links matching the given options.
func (s *LotSupplierStore) Find(ctx context.Context, options ...catalogue.Option) ([]catalogue.LotSupplier, error) {
	return s.repo.Find(ctx, options...)
}

// Count returns the number of links matching the given options.
func (s *LotSupplierStore) Count(ctx context.Context, options ...catalogue.Option) (int64, error) {
	return s.repo.Count(ctx, options...)
}

// Create inserts a new lot-supplier link.
func (s *LotSupplierStore) Create(ctx context.Context, link catalogue.LotSupplier) error {
	model := s.repo.Mapper().ToModel(link)
	if err := s.repo.DB(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("create lot supplier link: %w", err)
	}
	return nil
}

// DeleteForLot removes every link for the given lot. The sync pass calls this
// before recreating the fresh snapshot of awarded suppliers.
func (s *LotSupplierStore) DeleteForLot(ctx context.Context, lotSalesforceID string) error {
	err := s.repo.DB(ctx).
		Where("lot_id = ?", lotSalesforceID).
		Delete(&LotSupplierModel{}).Error
	if err != nil {
		return fmt.Errorf("delete lot supplier links: %w", err)
	}
	return nil
}

// ensure interface compliance
var _ catalogue.LotSupplierStore = (*LotSupplierStore)(nil)
var _ catalogue.FrameworkStore = (*FrameworkStore)(nil)
var _ catalogue.LotStore = (*LotStore)(nil)
var _ catalogue.SupplierStore = (*SupplierStore)(nil)
