package handler

import (
	"errors"
	"net/http"

	"go-clinic-management/pkg/apperrors"
	"go-clinic-management/pkg/response"
)

// handleUsecaseError maps the shared error taxonomy onto HTTP statuses.
// Forbidden and not-found responses stay generic so callers cannot probe
// which internal check failed.
func handleUsecaseError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		response.Error(w, http.StatusBadRequest, "Invalid input", nil)
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(w, "Resource not found")
	case errors.Is(err, apperrors.ErrForbidden):
		response.Forbidden(w, "Access denied")
	case errors.Is(err, apperrors.ErrConflict):
		response.Conflict(w, "Resource already exists")
	default:
		response.InternalServerError(w, fallback)
	}
}
