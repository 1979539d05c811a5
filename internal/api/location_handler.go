package api

import (
	"log/slog"
	"net/http"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/adboard/adboard-api/internal/store"
)

// LocationHandler handles location HTTP requests.
type LocationHandler struct {
	locations store.LocationStore
	logger    *slog.Logger
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locations store.LocationStore, logger *slog.Logger) *LocationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LocationHandler")
	}
	return &LocationHandler{
		locations: locations,
		logger:    logger.With(slog.String("component", "location_handler")),
	}
}

// List handles GET /location/.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locations.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list locations")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewLocationViews(locations))
}

// Get handles GET /location/{id}/.
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	loc, err := h.locations.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get location")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewLocationView(loc))
}

// Create handles POST /location/.
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := shared.DecodeFields(w, r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	in, err := serializer.DecodeLocation(fields, false)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	loc := &domain.Location{}
	in.Apply(loc)
	if err := loc.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.locations.Create(r.Context(), loc); err != nil {
		HandleAPIError(w, r, err, "Failed to create location")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, serializer.NewLocationView(loc))
}

// Update handles PUT and PATCH /location/{id}/.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	in, err := serializer.DecodeLocation(fields, isPartial(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	loc, err := h.locations.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get location")
		return
	}
	in.Apply(loc)
	if err := loc.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.locations.Update(r.Context(), loc); err != nil {
		HandleAPIError(w, r, err, "Failed to update location")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewLocationView(loc))
}

// Delete handles DELETE /location/{id}/.
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.locations.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete location")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.DeleteAck{ID: id})
}
