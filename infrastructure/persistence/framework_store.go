package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/internal/database"
	"gorm.io/gorm"
)

// frameworkCRMColumns are the columns a sync pass is allowed to update on an
// existing row. The CMS back-reference (wordpress_id) and the editorial text
// columns (summary, description, benefits, how_to_buy) are deliberately
// absent: once editors own those fields, a sync must not clobber them.
var frameworkCRMColumns = []string{
	"rm_number",
	"title",
	"type",
	"start_date",
	"end_date",
	"status",
	"published_status",
	"pillar",
	"category",
	"terms",
	"updated_at",
}

// FrameworkStore is a GORM-backed implementation of catalogue.FrameworkStore.
type FrameworkStore struct {
	repo database.Repository[catalogue.Framework, FrameworkModel]
}

// NewFrameworkStore creates a new FrameworkStore.
func NewFrameworkStore(db database.Database) *FrameworkStore {
	return &FrameworkStore{
		repo: database.NewRepository[catalogue.Framework, FrameworkModel](db, FrameworkMapper{}, "framework"),
	}
}

// Find retrieves frameworks matching the given options.
func (s *FrameworkStore) Find(ctx context.Context, options ...catalogue.Option) ([]catalogue.Framework, error) {
	return s.repo.Find(ctx, options...)
}

// FindOne retrieves a single framework matching the given options.
func (s *FrameworkStore) FindOne(ctx context.Context, options ...catalogue.Option) (catalogue.Framework, error) {
	return s.repo.FindOne(ctx, options...)
}

// Exists checks whether any framework matches the given options.
func (s *FrameworkStore) Exists(ctx context.Context, options ...catalogue.Option) (bool, error) {
	return s.repo.Exists(ctx, options...)
}

// Count returns the number of frameworks matching the given options.
func (s *FrameworkStore) Count(ctx context.Context, options ...catalogue.Option) (int64, error) {
	return s.repo.Count(ctx, options...)
}

// DeleteBy removes frameworks matching the given options.
func (s *FrameworkStore) DeleteBy(ctx context.Context, options ...catalogue.Option) error {
	return s.repo.DeleteBy(ctx, options...)
}

// Save creates or fully updates a framework row, all columns included.
func (s *FrameworkStore) Save(ctx context.Context, framework catalogue.Framework) (catalogue.Framework, error) {
	model := s.repo.Mapper().ToModel(framework)
	var result *gorm.DB
	if model.ID == 0 {
		result = s.repo.DB(ctx).Create(&model)
	} else {
		result = s.repo.DB(ctx).Save(&model)
	}
	if result.Error != nil {
		return catalogue.Framework{}, fmt.Errorf("save framework: %w", result.Error)
	}
	return s.repo.Mapper().ToDomain(model), nil
}

// CreateOrUpdateFromCRM upserts a framework keyed on its CRM id. New rows get
// every column; existing rows only get the CRM-owned columns, so editorial
// text and the CMS back-reference survive every sync.
func (s *FrameworkStore) CreateOrUpdateFromCRM(ctx context.Context, framework catalogue.Framework) error {
	return database.WithTransaction(ctx, s.repo.Database(), func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&FrameworkModel{}).
			Where("salesforce_id = ?", framework.SalesforceID()).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check framework exists: %w", err)
		}

		model := s.repo.Mapper().ToModel(framework)
		if count == 0 {
			model.ID = 0
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("create framework: %w", err)
			}
			return nil
		}

		if err := tx.Model(&FrameworkModel{}).
			Where("salesforce_id = ?", framework.SalesforceID()).
			Select(frameworkCRMColumns).
			Updates(&model).Error; err != nil {
			return fmt.Errorf("update framework: %w", err)
		}
		return nil
	})
}

// SetWordPressID records the CMS content entry id for a framework.
func (s *FrameworkStore) SetWordPressID(ctx context.Context, salesforceID string, wordpressID int64) error {
	result := s.repo.DB(ctx).Model(&FrameworkModel{}).
		Where("salesforce_id = ?", salesforceID).
		Update("wordpress_id", wordpressID)
	if result.Error != nil {
		return fmt.Errorf("set framework wordpress id: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: framework %s", database.ErrNotFound, salesforceID)
	}
	return nil
}

// UpdateEditorial applies a sparse editorial patch to the framework owning
// the given CMS entry id. Only the fields present in the patch are written.
func (s *FrameworkStore) UpdateEditorial(ctx context.Context, wordpressID int64, patch catalogue.FrameworkPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	result := s.repo.DB(ctx).Model(&FrameworkModel{}).
		Where("wordpress_id = ?", wordpressID).
		Updates(patch.Columns())
	if result.Error != nil {
		return fmt.Errorf("update framework editorial: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: framework with wordpress id %d", database.ErrNotFound, wordpressID)
	}
	return nil
}

// LiveForSupplier returns the distinct frameworks that are live at the given
// instant and carry the supplier on at least one lot.
func (s *FrameworkStore) LiveForSupplier(ctx context.Context, supplierSalesforceID string, now time.Time) ([]catalogue.Framework, error) {
	var models []FrameworkModel
	err := s.repo.DB(ctx).
		Model(&FrameworkModel{}).
		Distinct("frameworks.*").
		Joins("JOIN lots ON lots.framework_id = frameworks.salesforce_id").
		Joins("JOIN lot_suppliers ON lot_suppliers.lot_id = lots.salesforce_id").
		Where("lot_suppliers.supplier_id = ?", supplierSalesforceID).
		Where("frameworks.status = ?", catalogue.StatusLive).
		Where("(frameworks.start_date IS NULL OR frameworks.start_date <= ?)", now).
		Where("(frameworks.end_date IS NULL OR frameworks.end_date >= ?)", now).
		Order("frameworks.title ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find live frameworks for supplier: %w", err)
	}

	frameworks := make([]catalogue.Framework, len(models))
	for i, m := range models {
		frameworks[i] = s.repo.Mapper().ToDomain(m)
	}
	return frameworks, nil
}
