package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/platform/logger"
	"github.com/adboard/adboard-api/internal/service/auth"
	"github.com/adboard/adboard-api/internal/store"
)

// TokenRequest is the body of POST /user/token/.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the body of POST /user/token/refresh/.
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// TokenResponse carries a token pair.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthHandler handles token HTTP requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Token handles POST /user/token/.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TokenRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if store.IsNotFoundError(err) {
			rejectCredentials(w, r)
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}
	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			HandleAPIError(w, r, err, "Failed to authenticate user")
			return
		}
		log.Debug("password mismatch", slog.Int64("user_id", user.ID))
		rejectCredentials(w, r)
		return
	}

	h.respondWithPair(w, r, user.ID, user.Role, http.StatusOK)
}

// rejectCredentials answers a failed login. Failed logins are logged at
// WARN so that repeated attempts stand out.
func rejectCredentials(w http.ResponseWriter, r *http.Request) {
	err := auth.ErrInvalidCredentials
	shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, GetSafeErrorMessage(err), err,
		shared.WithKind(shared.KindUnauthorized),
		shared.WithElevatedLogLevel())
}

// Refresh handles POST /user/token/refresh/. The role is read again from
// the store so that role changes take effect on the next refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.Refresh)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
			return
		}
		HandleAPIError(w, r, err, "Failed to refresh token")
		return
	}

	h.respondWithPair(w, r, user.ID, user.Role, http.StatusOK)
}

func (h *AuthHandler) respondWithPair(w http.ResponseWriter, r *http.Request, userID int64, role domain.Role, status int) {
	access, err := h.jwtService.GenerateToken(r.Context(), userID, role)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}
	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), userID, role)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate refresh token")
		return
	}
	shared.RespondWithJSON(w, r, status, TokenResponse{Access: access, Refresh: refresh})
}
