package persistence

import (
	"context"
	"fmt"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/internal/database"
	"gorm.io/gorm"
)

// lotCRMColumns are the columns a sync pass updates on an existing lot row.
// The CMS back-reference is excluded for the same reason as on frameworks.
var lotCRMColumns = []string{
	"framework_id",
	"title",
	"description",
	"updated_at",
}

// LotStore is a GORM-backed implementation of catalogue.LotStore.
type LotStore struct {
	repo database.Repository[catalogue.Lot, LotModel]
}

// NewLotStore creates a new LotStore.
func NewLotStore(db database.Database) *LotStore {
	return &LotStore{
		repo: database.NewRepository[catalogue.Lot, LotModel](db, LotMapper{}, "lot"),
	}
}

// Find retrieves lots matching the given options.
func (s *LotStore) Find(ctx context.Context, options ...catalogue.Option) ([]catalogue.Lot, error) {
	return s.repo.Find(ctx, options...)
}

// FindOne retrieves a single lot matching the given options.
func (s *LotStore) FindOne(ctx context.Context, options ...catalogue.Option) (catalogue.Lot, error) {
	return s.repo.FindOne(ctx, options...)
}

// Exists checks whether any lot matches the given options.
func (s *LotStore) Exists(ctx context.Context, options ...catalogue.Option) (bool, error) {
	return s.repo.Exists(ctx, options...)
}

// Count returns the number of lots matching the given options.
func (s *LotStore) Count(ctx context.Context, options ...catalogue.Option) (int64, error) {
	return s.repo.Count(ctx, options...)
}

// DeleteBy removes lots matching the given options.
func (s *LotStore) DeleteBy(ctx context.Context, options ...catalogue.Option) error {
	return s.repo.DeleteBy(ctx, options...)
}

// Save creates or fully updates a lot row, all columns included.
func (s *LotStore) Save(ctx context.Context, lot catalogue.Lot) (catalogue.Lot, error) {
	model := s.repo.Mapper().ToModel(lot)
	var result *gorm.DB
	if model.ID == 0 {
		result = s.repo.DB(ctx).Create(&model)
	} else {
		result = s.repo.DB(ctx).Save(&model)
	}
	if result.Error != nil {
		return catalogue.Lot{}, fmt.Errorf("save lot: %w", result.Error)
	}
	return s.repo.Mapper().ToDomain(model), nil
}

// CreateOrUpdateFromCRM upserts a lot keyed on its CRM id. Existing rows keep
// their wordpress_id.
func (s *LotStore) CreateOrUpdateFromCRM(ctx context.Context, lot catalogue.Lot) error {
	return database.WithTransaction(ctx, s.repo.Database(), func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&LotModel{}).
			Where("salesforce_id = ?", lot.SalesforceID()).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check lot exists: %w", err)
		}

		model := s.repo.Mapper().ToModel(lot)
		if count == 0 {
			model.ID = 0
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("create lot: %w", err)
			}
			return nil
		}

		if err := tx.Model(&LotModel{}).
			Where("salesforce_id = ?", lot.SalesforceID()).
			Select(lotCRMColumns).
			Updates(&model).Error; err != nil {
			return fmt.Errorf("update lot: %w", err)
		}
		return nil
	})
}

// SetWordPressID records the CMS content entry id for a lot.
func (s *LotStore) SetWordPressID(ctx context.Context, salesforceID string, wordpressID int64) error {
	result := s.repo.DB(ctx).Model(&LotModel{}).
		Where("salesforce_id = ?", salesforceID).
		Update("wordpress_id", wordpressID)
	if result.Error != nil {
		return fmt.Errorf("set lot wordpress id: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: lot %s", database.ErrNotFound, salesforceID)
	}
	return nil
}
