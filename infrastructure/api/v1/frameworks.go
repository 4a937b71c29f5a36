package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ccsdigital/frameworkhub"
	"github.com/ccsdigital/frameworkhub/infrastructure/api/middleware"
	"github.com/ccsdigital/frameworkhub/infrastructure/api/v1/dto"
)

// DefaultFrameworkLimit is the default page size for the framework list.
const DefaultFrameworkLimit = 10

// FrameworksRouter handles the framework API endpoints.
type FrameworksRouter struct {
	client *frameworkhub.Client
	logger *slog.Logger
}

// NewFrameworksRouter creates a new FrameworksRouter.
func NewFrameworksRouter(client *frameworkhub.Client) *FrameworksRouter {
	return &FrameworksRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for framework endpoints.
func (r *FrameworksRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Patch("/{wordpressID}/editorial", r.UpdateEditorial)

	return router
}

// List handles GET /api/v1/frameworks.
func (r *FrameworksRouter) List(w http.ResponseWriter, req *http.Request) {
	params := ParsePagination(req, DefaultFrameworkLimit)

	page, err := r.client.Catalogue.ListFrameworks(req.Context(), params.Limit(), params.Offset())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	results := dto.FrameworksFromDomain(page.Frameworks)
	middleware.WriteJSON(w, http.StatusOK, dto.ListResponse{
		Meta:    params.Meta(page.Total, len(results)),
		Results: results,
	})
}

// UpdateEditorial handles PATCH /api/v1/frameworks/{wordpressID}/editorial.
// The body is a sparse patch; absent fields are left untouched.
func (r *FrameworksRouter) UpdateEditorial(w http.ResponseWriter, req *http.Request) {
	wordpressID, err := strconv.ParseInt(chi.URLParam(req, "wordpressID"), 10, 64)
	if err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: wordpressID must be an integer", middleware.ErrBadRequest), r.logger)
		return
	}

	var body dto.EditorialRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %s", middleware.ErrBadRequest, err), r.logger)
		return
	}

	if err := r.client.Catalogue.SaveEditorial(req.Context(), wordpressID, body.ToPatch()); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"wordpress_id": wordpressID,
		"updated":      true,
	})
}
