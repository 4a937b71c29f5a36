package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ccsdigital/frameworkhub/domain/catalogue"
	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/internal/log"
)

// ReindexResult summarizes one reindex pass.
type ReindexResult struct {
	Indexed int `json:"indexed"`
	Removed int `json:"removed"`
}

// SupplierSearch keeps the search index in step with the relational store
// and serves keyword queries.
type SupplierSearch struct {
	suppliers  catalogue.SupplierStore
	frameworks catalogue.FrameworkStore
	indexer    service.SupplierIndexer
	logger     *log.Logger
	now        func() time.Time
}

// SupplierSearchOption is a functional option for SupplierSearch.
type SupplierSearchOption func(*SupplierSearch)

// WithSearchLogger sets the logger.
func WithSearchLogger(l *log.Logger) SupplierSearchOption {
	return func(s *SupplierSearch) { s.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) SupplierSearchOption {
	return func(s *SupplierSearch) { s.now = now }
}

// NewSupplierSearch creates a SupplierSearch.
func NewSupplierSearch(
	suppliers catalogue.SupplierStore,
	frameworks catalogue.FrameworkStore,
	indexer service.SupplierIndexer,
	opts ...SupplierSearchOption,
) *SupplierSearch {
	s := &SupplierSearch{
		suppliers:  suppliers,
		frameworks: frameworks,
		indexer:    indexer,
		logger:     log.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reindex recomputes every supplier's live flag, indexes suppliers on live
// frameworks with their current framework summaries, and removes the rest
// from the index.
func (s *SupplierSearch) Reindex(ctx context.Context) (ReindexResult, error) {
	now := s.now()
	if err := s.suppliers.RefreshLiveFlags(ctx, now); err != nil {
		return ReindexResult{}, fmt.Errorf("reindex: %w", err)
	}

	suppliers, err := s.suppliers.Find(ctx, catalogue.WithOrderAsc("id"))
	if err != nil {
		return ReindexResult{}, fmt.Errorf("reindex: %w", err)
	}

	var result ReindexResult
	for _, supplier := range suppliers {
		if !supplier.OnLiveFrameworks() {
			if err := s.indexer.RemoveSupplier(ctx, supplier); err != nil {
				return result, fmt.Errorf("reindex: remove supplier %s: %w", supplier.SalesforceID(), err)
			}
			result.Removed++
			continue
		}

		live, err := s.frameworks.LiveForSupplier(ctx, supplier.SalesforceID(), now)
		if err != nil {
			return result, fmt.Errorf("reindex: %w", err)
		}
		if err := s.indexer.CreateOrUpdateSupplier(ctx, supplier, live); err != nil {
			return result, fmt.Errorf("reindex: index supplier %s: %w", supplier.SalesforceID(), err)
		}
		result.Indexed++
	}

	s.logger.InfoContext(ctx, "supplier reindex finished",
		"indexed", result.Indexed, "removed", result.Removed)
	return result, nil
}

// Query searches the supplier index by keyword.
func (s *SupplierSearch) Query(ctx context.Context, keyword string, page, limit int) (service.SupplierResultSet, error) {
	return s.indexer.QueryByKeyword(ctx, keyword, page, limit)
}
