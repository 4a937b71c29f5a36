package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/internal/database"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrBadRequest marks malformed client input. Handlers wrap it with detail.
var ErrBadRequest = errors.New("request is invalid")

// ErrUnavailable marks an endpoint whose backing system is not configured.
var ErrUnavailable = errors.New("service is not available")

// ErrorResponse is the JSON error envelope: a machine-readable code, a
// human-readable message, and the HTTP status echoed in the body.
type ErrorResponse struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Data    ErrorData `json:"data"`
}

// ErrorData carries the HTTP status inside the error body.
type ErrorData struct {
	Status int `json:"status"`
}

// WriteError writes a JSON error response, mapping known error kinds to
// status codes and machine-readable codes.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := http.StatusInternalServerError
	code := "internal_server_error"

	switch {
	case errors.Is(err, ErrBadRequest):
		status = http.StatusBadRequest
		code = "bad_request"
	case errors.Is(err, ErrUnavailable):
		status = http.StatusServiceUnavailable
		code = "service_unavailable"
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
		code = "rest_invalid_param"
	case errors.Is(err, service.ErrCRMUnavailable):
		status = http.StatusBadGateway
		code = "crm_unavailable"
	}

	if logger != nil {
		logger.Error("request error",
			"request_id", middleware.GetReqID(r.Context()),
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	WriteJSON(w, status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
		Data:    ErrorData{Status: status},
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
