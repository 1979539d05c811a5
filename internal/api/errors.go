package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/service"
	"github.com/adboard/adboard-api/internal/service/auth"
	"github.com/adboard/adboard-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrReferenced):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// ErrorKind classifies err for the "kind" field of error responses.
func ErrorKind(err error) string {
	if errors.Is(err, domain.ErrValidation) {
		return shared.KindValidation
	}
	return shared.KindForStatus(MapErrorToStatusCode(err))
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var partial *service.PartialWriteError
	if errors.As(err, &partial) {
		return fmt.Sprintf("%s %d was saved but %s failed: %s",
			partial.Entity, partial.ID, partial.Step, GetSafeErrorMessage(partial.Err))
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	case errors.Is(err, domain.ErrPublishedOnCreate):
		return "Ad cannot be published at creation"
	case errors.Is(err, domain.ErrBadRequest):
		return "Malformed request"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "No active account found with the given credentials"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication credentials were not provided"

	case errors.Is(err, domain.ErrForbidden):
		return "You do not have permission to perform this action"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrLocationNotFound):
		return "Location not found"
	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"
	case errors.Is(err, store.ErrAdNotFound):
		return "Ad not found"
	case errors.Is(err, store.ErrSelectionNotFound):
		return "Selection not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "A user with that username already exists"
	case errors.Is(err, store.ErrLocationExists):
		return "A location with that name already exists"
	case errors.Is(err, store.ErrCategoryExists):
		return "A category with that name already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, store.ErrReferenced):
		return "Resource is still referenced by other records"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. Validation failures
// carry their per-field messages. fallback, when non-empty, replaces the
// generic message of unexpected errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	opts := []shared.ResponseOption{shared.WithKind(ErrorKind(err))}
	if verrs, ok := domain.AsValidationErrors(err); ok {
		opts = append(opts, shared.WithFields(verrs.Fields()))
		if missing := notFoundField(verrs); missing != nil {
			message = missing.Message
		}
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// notFoundField returns the first field error reporting a missing related
// record; its message names the record and is safe to surface.
func notFoundField(verrs domain.ValidationErrors) *domain.ValidationError {
	for _, e := range verrs {
		if e.Kind == domain.KindNotFound {
			return e
		}
	}
	return nil
}
