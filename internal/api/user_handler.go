package api

import (
	"log/slog"
	"net/http"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/adboard/adboard-api/internal/service"
)

// UserHandler handles user HTTP requests.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /user/.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewUserListViews(users))
}

// Get handles GET /user/{id}/.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewUserDetailView(u))
}

// Create handles POST /user/.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := shared.DecodeFields(w, r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	u, err := h.users.Create(r.Context(), shared.ActorFromContext(r.Context()), fields)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, serializer.NewUserDetailView(u))
}

// Update handles PUT and PATCH /user/{id}/ for the user themself or an admin.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	fields, err := shared.DecodeFields(w, r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	u, err := h.users.Update(r.Context(), shared.ActorFromContext(r.Context()), id, fields, isPartial(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewUserDetailView(u))
}

// Delete handles DELETE /user/{id}/ for the user themself or an admin. Users that still author ads or own
// selections cannot be deleted.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.users.Delete(r.Context(), shared.ActorFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.DeleteAck{ID: id})
}
