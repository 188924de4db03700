// Package httpx provides HTTP response utilities around the Compass API envelope.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. Every failure a handler surfaces
// wraps exactly one of these, so the status code always reflects the cause.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("duplicate entry")
	ErrStorage      = errors.New("storage unavailable")
)

// RespondError maps domain errors to envelope responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		Fail(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, "AUTH_FAILED", err.Error())
	case errors.Is(err, ErrForbidden):
		Fail(w, http.StatusForbidden, "ACCOUNT_INACTIVE", err.Error())
	case errors.Is(err, ErrNotFound):
		Fail(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrConflict):
		Fail(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, ErrStorage):
		Fail(w, http.StatusServiceUnavailable, "STORAGE_ERROR", err.Error())
	default:
		Fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}
