package v1

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ccsdigital/frameworkhub"
	"github.com/ccsdigital/frameworkhub/infrastructure/api/middleware"
	"github.com/ccsdigital/frameworkhub/infrastructure/api/v1/dto"
)

// ImportRouter handles the CRM import endpoints. Runs are synchronous; the
// response is written once the cascade finishes.
type ImportRouter struct {
	client *frameworkhub.Client
	logger *slog.Logger
}

// NewImportRouter creates a new ImportRouter.
func NewImportRouter(client *frameworkhub.Client) *ImportRouter {
	return &ImportRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for import endpoints.
func (r *ImportRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Run)
	router.Post("/reindex", r.Reindex)

	return router
}

// Run handles POST /api/v1/import. It runs the full CRM import cascade
// and, when a search index is configured, reindexes suppliers afterwards.
func (r *ImportRouter) Run(w http.ResponseWriter, req *http.Request) {
	if r.client.Importer == nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: CRM is not configured", middleware.ErrUnavailable), r.logger)
		return
	}

	ctx := req.Context()
	result, err := r.client.Importer.Run(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	response := dto.ImportResponse{
		Imported: result.Imported,
		Failed:   result.Failed,
	}

	if r.client.Search != nil {
		reindex, err := r.client.Search.Reindex(ctx)
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
		response.Reindex = &reindex
	}

	middleware.WriteJSON(w, http.StatusOK, response)
}

// Reindex handles POST /api/v1/import/reindex. It rebuilds the supplier
// search index from the relational store without contacting the CRM.
func (r *ImportRouter) Reindex(w http.ResponseWriter, req *http.Request) {
	if r.client.Search == nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: search index is not configured", middleware.ErrUnavailable), r.logger)
		return
	}

	result, err := r.client.Search.Reindex(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ReindexResponse{
		Indexed: result.Indexed,
		Removed: result.Removed,
	})
}
