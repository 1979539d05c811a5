package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/service"
	"github.com/adboard/adboard-api/internal/service/auth"
	"github.com/adboard/adboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("name", domain.KindRequired, "required"), http.StatusBadRequest},
		{"published on create", domain.ErrPublishedOnCreate, http.StatusBadRequest},
		{"invalid entity", fmt.Errorf("insert: %w", store.ErrInvalidEntity), http.StatusBadRequest},
		{"unauthenticated", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"wrapped not found", fmt.Errorf("load: %w", store.ErrAdNotFound), http.StatusNotFound},
		{"duplicate", store.ErrCategoryExists, http.StatusConflict},
		{"referenced", store.ErrReferenced, http.StatusConflict},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage_DoesNotLeak(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("query failed: pq: password authentication failed for user \"adboard\": %w", store.ErrUserNotFound)
	assert.Equal(t, "User not found", GetSafeErrorMessage(err))

	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("dial tcp 10.0.0.5:5432: connection refused")))

	partial := &service.PartialWriteError{Entity: "user", ID: 7, Step: "attaching locations", Err: errors.New("deadlock detected")}
	assert.Equal(t, "user 7 was saved but attaching locations failed: An unexpected error occurred",
		GetSafeErrorMessage(partial))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("validation fields are returned", func(t *testing.T) {
		var errs domain.ValidationErrors
		errs.Add("name", domain.KindRequired, "this field is required")
		errs.Add("price", domain.KindInvalid, "must be at least 0")
		rec := httptest.NewRecorder()

		HandleAPIError(rec, httptest.NewRequest(http.MethodPost, "/ad/create/", nil), errs.Err(), "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, shared.KindValidation, body.Kind)
		assert.Equal(t, "this field is required", body.Fields["name"])
		assert.Equal(t, "must be at least 0", body.Fields["price"])
	})

	t.Run("missing relation message is surfaced", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := domain.NewValidationError("author", domain.KindNotFound, `user with username "ghost" does not exist`)

		HandleAPIError(rec, httptest.NewRequest(http.MethodPatch, "/ad/1/update/", nil), err, "")

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, `user with username "ghost" does not exist`, body.Error)
	})

	t.Run("fallback replaces internal message", func(t *testing.T) {
		rec := httptest.NewRecorder()

		HandleAPIError(rec, httptest.NewRequest(http.MethodGet, "/ad/", nil), errors.New("boom"), "Failed to list ads")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Failed to list ads", body.Error)
		assert.Equal(t, shared.KindInternal, body.Kind)
		assert.NotContains(t, rec.Body.String(), "boom")
	})
}
