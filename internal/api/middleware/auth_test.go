package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/authz"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/mocks"
	"github.com/adboard/adboard-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorEcho(t *testing.T, got *authz.Actor) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = shared.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	jwtSvc := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "good":
				return &auth.Claims{UserID: 7, Role: domain.RoleAdmin}, nil
			case "old":
				return nil, auth.ErrExpiredToken
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}
	m := NewAuthMiddleware(jwtSvc)

	tests := []struct {
		name       string
		header     string
		optional   bool
		wantStatus int
		wantActor  authz.Actor
	}{
		{"valid token", "Bearer good", false, http.StatusNoContent, authz.Actor{ID: 7, Role: domain.RoleAdmin}},
		{"missing header", "", false, http.StatusUnauthorized, authz.Actor{}},
		{"wrong scheme", "Basic good", false, http.StatusUnauthorized, authz.Actor{}},
		{"expired", "Bearer old", false, http.StatusUnauthorized, authz.Actor{}},
		{"invalid", "Bearer nope", false, http.StatusUnauthorized, authz.Actor{}},
		{"optional without header", "", true, http.StatusNoContent, authz.Actor{}},
		{"optional with valid token", "Bearer good", true, http.StatusNoContent, authz.Actor{ID: 7, Role: domain.RoleAdmin}},
		{"optional with invalid token", "Bearer nope", true, http.StatusUnauthorized, authz.Actor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got authz.Actor
			h := m.Authenticate(actorEcho(t, &got))
			if tt.optional {
				h = m.Optional(actorEcho(t, &got))
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantActor, got)
			if rec.Code == http.StatusUnauthorized {
				var body shared.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, shared.KindUnauthorized, body.Kind)
			}
		})
	}
}

func TestAuthenticate_NestedInOptionalValidatesOnce(t *testing.T) {
	calls := 0
	jwtSvc := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			calls++
			return &auth.Claims{UserID: 3, Role: domain.RoleMember}, nil
		},
	}
	m := NewAuthMiddleware(jwtSvc)

	var got authz.Actor
	h := m.Optional(m.Authenticate(actorEcho(t, &got)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, calls)
	assert.Equal(t, authz.Actor{ID: 3, Role: domain.RoleMember}, got)
}

func TestTraceMiddleware(t *testing.T) {
	var traceID string
	h := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		shared.RespondWithError(w, r, http.StatusNotFound, "gone")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Len(t, traceID, 32)
	assert.Equal(t, traceID, rec.Header().Get("X-Trace-ID"))

	var body shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, traceID, body.TraceID)
	assert.Equal(t, shared.KindNotFound, body.Kind)
}
