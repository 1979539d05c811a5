package api

import (
	"log/slog"
	"net/http"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/adboard/adboard-api/internal/service"
)

// SelectionHandler handles selection HTTP requests.
type SelectionHandler struct {
	selections service.SelectionService
	imageURL   serializer.ImageURL
	logger     *slog.Logger
}

// NewSelectionHandler creates a new SelectionHandler.
func NewSelectionHandler(
	selections service.SelectionService,
	imageURL serializer.ImageURL,
	logger *slog.Logger,
) *SelectionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SelectionHandler")
	}
	return &SelectionHandler{
		selections: selections,
		imageURL:   imageURL,
		logger:     logger.With(slog.String("component", "selection_handler")),
	}
}

// List handles GET /selection/.
func (h *SelectionHandler) List(w http.ResponseWriter, r *http.Request) {
	selections, err := h.selections.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list selections")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewSelectionListViews(selections))
}

// Get handles GET /selection/{id}/.
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	sel, ads, err := h.selections.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get selection")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewSelectionDetailView(sel, ads, h.imageURL))
}

// Create handles POST /selection/create/.
func (h *SelectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := shared.DecodeFields(w, r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	sel, err := h.selections.Create(r.Context(), shared.ActorFromContext(r.Context()), fields)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create selection")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, serializer.NewSelectionView(sel))
}

// Update handles PUT and PATCH /selection/{id}/update/.
func (h *SelectionHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	sel, err := h.selections.Update(r.Context(), shared.ActorFromContext(r.Context()), id, fields, isPartial(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update selection")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewSelectionView(sel))
}

// Delete handles DELETE /selection/{id}/delete/.
func (h *SelectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.selections.Delete(r.Context(), shared.ActorFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete selection")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.DeleteAck{ID: id})
}
