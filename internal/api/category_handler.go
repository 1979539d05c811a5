package api

import (
	"log/slog"
	"net/http"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/platform/logger"
	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/adboard/adboard-api/internal/store"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories store.CategoryStore, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CategoryHandler")
	}
	return &CategoryHandler{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_handler")),
	}
}

// List handles GET /cat/.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewCategoryViews(categories))
}

// Get handles GET /cat/{id}/.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	c, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get category")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewCategoryView(c))
}

// Create handles POST /cat/create/.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := shared.DecodeFields(w, r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	in, err := serializer.DecodeCategory(fields)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	c, err := domain.NewCategory(in.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.categories.Create(r.Context(), c); err != nil {
		HandleAPIError(w, r, err, "Failed to create category")
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Info("category created",
		slog.Int64("category_id", c.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, serializer.NewCategoryView(c))
}

// Delete handles DELETE /cat/{id}/delete/. Categories still used by ads
// cannot be deleted.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete category")
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Info("category deleted",
		slog.Int64("category_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.DeleteAck{ID: id})
}
