package service

import (
	"context"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
)

// FrameworkSummary is the denormalized framework fragment embedded in a
// supplier search document. EndDate is formatted as 2006-01-02.
type FrameworkSummary struct {
	Title    string `json:"title"`
	RMNumber string `json:"rm_number"`
	EndDate  string `json:"end_date"`
}

// SupplierDocument is the denormalized search document for one supplier.
type SupplierDocument struct {
	ID             int64              `json:"id"`
	SalesforceID   string             `json:"salesforce_id"`
	Name           string             `json:"name"`
	TradingName    string             `json:"trading_name"`
	DUNSNumber     string             `json:"duns_number"`
	City           string             `json:"city"`
	Postcode       string             `json:"postcode"`
	LiveFrameworks []FrameworkSummary `json:"live_frameworks"`
}

// SupplierResultSet is one page of supplier search hits.
type SupplierResultSet struct {
	Total int64
	Hits  []SupplierDocument
}

// SupplierIndexer maintains the supplier search index.
type SupplierIndexer interface {
	// CreateOrUpdateSupplier upserts the supplier's denormalized document,
	// embedding a summary for each currently live framework, and refreshes
	// the index so the change is immediately query-visible.
	CreateOrUpdateSupplier(ctx context.Context, supplier catalogue.Supplier, liveFrameworks []catalogue.Framework) error
	// RemoveSupplier deletes the supplier's document. Deleting a document
	// that was never indexed is a success, not an error.
	RemoveSupplier(ctx context.Context, supplier catalogue.Supplier) error
	// QueryByKeyword searches the index. An empty keyword matches all
	// documents. Page numbers are 1-based; page 0 and page 1 both map to
	// offset 0.
	QueryByKeyword(ctx context.Context, keyword string, page, limit int) (SupplierResultSet, error)
}
