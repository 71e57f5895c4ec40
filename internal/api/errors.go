package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jbweber/homelab/cornerstone/internal/crud"
)

// ErrorResponse is the JSON body written for failed requests
type ErrorResponse struct {
	Error      string           `json:"error"`
	Violations []crud.Violation `json:"violations,omitempty"`
}

// writeError maps controller errors onto HTTP statuses. Unexpected errors are
// logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *crud.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid entity", Violations: verr.Violations}, logger)
	case errors.Is(err, crud.ErrInvalidEntity):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()}, logger)
	case errors.Is(err, crud.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()}, logger)
	case errors.Is(err, crud.ErrDuplicate):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()}, logger)
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}, logger)
	}
}
