package api

import (
	"errors"
	"net/http"

	"github.com/plumehq/plume-api/internal/api/shared"
	"github.com/plumehq/plume-api/internal/domain"
	"github.com/plumehq/plume-api/internal/service/auth"
	"github.com/plumehq/plume-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors, including malformed resource IDs which cannot
	// name an existing resource
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound

	// Conflict errors (duplicate email under concurrency)
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidReference):
		return http.StatusUnprocessableEntity

	// Persistence layer unreachable or timed out
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"

	// Deliberately generic: never reveals whether the email or the
	// password was wrong
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrPostNotFound):
		return "Post not found"

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return "Not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError recovers client-input errors at the handler boundary
// and turns them into structured JSON. Validation failures get the full
// violation list; everything else gets a safe message. Unexpected internal
// failures are logged with details and surfaced as a generic 500.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) && ve.HasViolations() {
		shared.RespondWithViolations(w, r, http.StatusUnprocessableEntity, ve.Violations)
		return
	}

	// A duplicate email that slipped past the pre-check (lost the race to
	// the unique index) still reports the offending field
	if errors.Is(err, store.ErrEmailExists) {
		shared.RespondWithViolations(w, r, http.StatusConflict, []domain.Violation{
			{Field: "email", Message: "is already taken"},
		})
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
