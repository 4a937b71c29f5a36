package persistence

import (
	"context"
	"fmt"

	"github.com/ccsdigital/frameworkhub/internal/database"
)

// AutoMigrate creates or updates the database schema for all catalogue tables.
func AutoMigrate(db database.Database) error {
	session := db.Session(context.Background())
	if err := session.AutoMigrate(
		&FrameworkModel{},
		&LotModel{},
		&SupplierModel{},
		&LotSupplierModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
