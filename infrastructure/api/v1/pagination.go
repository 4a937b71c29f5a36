// Package v1 contains the v1 HTTP API routers.
package v1

import (
	"net/http"
	"strconv"

	"github.com/ccsdigital/frameworkhub/infrastructure/api/v1/dto"
)

// PaginationParams holds pagination parameters parsed from query strings.
// Pages are 1-indexed; page 0 and page 1 both address the first page.
type PaginationParams struct {
	page  int
	limit int
}

// MaxLimit is the maximum allowed page size.
const MaxLimit = 100

// ParsePagination parses the limit and page query parameters, falling back
// to the endpoint's default limit.
func ParsePagination(r *http.Request, defaultLimit int) PaginationParams {
	params := PaginationParams{limit: defaultLimit}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 0 {
			params.page = page
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 1 {
			params.limit = limit
			if params.limit > MaxLimit {
				params.limit = MaxLimit
			}
		}
	}

	return params
}

// Page returns the requested page number as given, which may be 0.
func (p PaginationParams) Page() int { return p.page }

// Limit returns the page size.
func (p PaginationParams) Limit() int { return p.limit }

// Offset returns the offset for store queries.
func (p PaginationParams) Offset() int {
	if p.page <= 1 {
		return 0
	}
	return (p.page - 1) * p.limit
}

// Meta builds the list envelope metadata. Page 0 is reported as 1.
func (p PaginationParams) Meta(total int64, results int) dto.Meta {
	page := p.page
	if page < 1 {
		page = 1
	}
	return dto.Meta{
		TotalResults: total,
		Limit:        p.limit,
		Results:      results,
		Page:         page,
	}
}
