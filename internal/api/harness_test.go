package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adboard/adboard-api/internal/api"
	"github.com/adboard/adboard-api/internal/api/middleware"
	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/mocks"
	"github.com/adboard/adboard-api/internal/service"
	"github.com/adboard/adboard-api/internal/service/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// harness wires every handler to in-memory stores behind a real router.
// Bearer tokens are the usernames of the seeded users.
type harness struct {
	users      *mocks.MockUserStore
	locations  *mocks.MockLocationStore
	categories *mocks.MockCategoryStore
	ads        *mocks.MockAdStore
	selections *mocks.MockSelectionStore
	images     *mocks.MockImageStore
	jwt        *mocks.MockJWTService
	verifier   *mocks.MockPasswordVerifier
	router     http.Handler

	alice, bob, admin *domain.User
	bikes             *domain.Category
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &harness{
		users:      mocks.NewMockUserStore(),
		locations:  mocks.NewMockLocationStore(),
		categories: mocks.NewMockCategoryStore(),
		selections: mocks.NewMockSelectionStore(),
		images:     mocks.NewMockImageStore(),
	}
	h.users.Locations = h.locations
	h.ads = mocks.NewMockAdStore(h.users, h.categories)

	h.alice = h.users.Seed(&domain.User{Username: "alice", Password: "alice-pass", Role: domain.RoleMember})
	h.bob = h.users.Seed(&domain.User{Username: "bob", Password: "bob-pass", Role: domain.RoleMember})
	h.admin = h.users.Seed(&domain.User{Username: "admin", Password: "admin-pass", Role: domain.RoleAdmin})
	h.bikes = h.categories.Seed("bikes")

	h.jwt = &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			u, err := h.users.GetByUsername(ctx, token)
			if err != nil {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Claims{UserID: u.ID, Role: u.Role, TokenType: auth.TokenTypeAccess}, nil
		},
	}
	h.verifier = &mocks.MockPasswordVerifier{
		CompareFn: func(hashed, password string) error {
			if hashed != "hashed:"+password {
				return auth.ErrInvalidCredentials
			}
			return nil
		},
	}
	tx := &mocks.NoopTransactor{}

	adSvc := service.NewAdService(h.ads, h.users, h.categories, h.images, log)
	userSvc := service.NewUserService(h.users, h.locations, tx, log)
	selSvc := service.NewSelectionService(h.selections, h.ads, h.users, tx, log)

	handlers := api.Handlers{
		Ads:        api.NewAdHandler(adSvc, h.images.URL, 1<<20, log),
		Categories: api.NewCategoryHandler(h.categories, log),
		Selections: api.NewSelectionHandler(selSvc, h.images.URL, log),
		Locations:  api.NewLocationHandler(h.locations, log),
		Users:      api.NewUserHandler(userSvc, log),
		Auth:       api.NewAuthHandler(h.users, h.jwt, h.verifier, log),
	}

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	handlers.Register(r, middleware.NewAuthMiddleware(h.jwt))
	h.router = r
	return h
}

func (h *harness) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) doRequest(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) seedAd(author *domain.User, name string, price int64) *domain.Ad {
	return h.ads.Seed(&domain.Ad{Name: name, AuthorID: author.ID, Price: price, CategoryID: h.bikes.ID})
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&v), rec.Body.String())
	return v
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, rec)
}
