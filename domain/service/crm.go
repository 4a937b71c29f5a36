// Package service defines the domain service contracts implemented by the
// infrastructure layer: the CRM reader, the CMS content publisher, and the
// supplier search indexer.
package service

import (
	"context"
	"errors"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
)

// ErrCRMUnavailable marks remote CRM fetch failures (network, auth, bad
// response). The importer aborts only the current cascade branch when a
// fetch fails mid-run; a failure before the first branch fails the run.
var ErrCRMUnavailable = errors.New("crm unavailable")

// CRM reads framework, lot, and supplier records from the remote CRM.
// All three calls are read-only and return fully translated domain
// entities; remote pagination is followed internally.
type CRM interface {
	AllFrameworks(ctx context.Context) ([]catalogue.Framework, error)
	FrameworkLots(ctx context.Context, frameworkSalesforceID string) ([]catalogue.Lot, error)
	LotSuppliers(ctx context.Context, lotSalesforceID string) ([]catalogue.Supplier, error)
}
