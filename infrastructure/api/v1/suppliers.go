package v1

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ccsdigital/frameworkhub"
	"github.com/ccsdigital/frameworkhub/infrastructure/api/middleware"
	"github.com/ccsdigital/frameworkhub/infrastructure/api/v1/dto"
	"github.com/ccsdigital/frameworkhub/internal/database"
)

// DefaultSupplierLimit is the default page size for supplier lists and
// searches.
const DefaultSupplierLimit = 20

// SuppliersRouter handles the supplier API endpoints.
type SuppliersRouter struct {
	client *frameworkhub.Client
	logger *slog.Logger
}

// NewSuppliersRouter creates a new SuppliersRouter.
func NewSuppliersRouter(client *frameworkhub.Client) *SuppliersRouter {
	return &SuppliersRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for supplier endpoints.
func (r *SuppliersRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/search", r.Search)
	router.Get("/{id}", r.Get)

	return router
}

// List handles GET /api/v1/suppliers. Only suppliers on at least one live
// framework are listed.
func (r *SuppliersRouter) List(w http.ResponseWriter, req *http.Request) {
	params := ParsePagination(req, DefaultSupplierLimit)

	page, err := r.client.Catalogue.ListLiveSuppliers(req.Context(), params.Limit(), params.Offset())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	results := dto.SupplierListFromDomain(page.Suppliers)
	middleware.WriteJSON(w, http.StatusOK, dto.ListResponse{
		Meta:    params.Meta(page.Total, len(results)),
		Results: results,
	})
}

// Search handles GET /api/v1/suppliers/search. An empty keyword matches
// all indexed suppliers.
func (r *SuppliersRouter) Search(w http.ResponseWriter, req *http.Request) {
	if r.client.Search == nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: search index is not configured", middleware.ErrUnavailable), r.logger)
		return
	}

	keyword := req.URL.Query().Get("keyword")
	params := ParsePagination(req, DefaultSupplierLimit)

	result, err := r.client.Search.Query(req.Context(), keyword, params.Page(), params.Limit())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	hits := dto.SearchHitsFromDocuments(result.Hits)
	middleware.WriteJSON(w, http.StatusOK, dto.ListResponse{
		Meta:    params.Meta(result.Total, len(hits)),
		Results: hits,
	})
}

// Get handles GET /api/v1/suppliers/{id}. Suppliers off every live
// framework are reported as not found.
func (r *SuppliersRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: id must be an integer", middleware.ErrBadRequest), r.logger)
		return
	}

	detail, err := r.client.Catalogue.GetSupplier(req.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			middleware.WriteJSON(w, http.StatusNotFound, middleware.ErrorResponse{
				Code:    "rest_invalid_param",
				Message: "supplier not found",
				Data:    middleware.ErrorData{Status: http.StatusNotFound},
			})
			return
		}
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SupplierDetailFromDomain(detail))
}
