package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/adboard/adboard-api/internal/api/shared"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/platform/logger"
	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/adboard/adboard-api/internal/service"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 1 << 20

// AdHandler handles ad HTTP requests.
type AdHandler struct {
	ads            service.AdService
	imageURL       serializer.ImageURL
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewAdHandler creates a new AdHandler. imageURL turns stored image keys
// into public URLs.
func NewAdHandler(
	ads service.AdService,
	imageURL serializer.ImageURL,
	maxUploadBytes int64,
	logger *slog.Logger,
) *AdHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AdHandler")
	}
	return &AdHandler{
		ads:            ads,
		imageURL:       imageURL,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "ad_handler")),
	}
}

// List handles GET /ad/.
func (h *AdHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := serializer.DecodeAdFilter(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ads, err := h.ads.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list ads")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewAdViews(ads, h.imageURL))
}

// Get handles GET /ad/{id}/.
func (h *AdHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ad, err := h.ads.Get(r.Context(), shared.ActorFromContext(r.Context()), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get ad")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewAdDetailView(ad, h.imageURL))
}

// Create handles POST /ad/create/.
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := shared.DecodeFields(w, r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	in, err := serializer.DecodeAdCreate(fields)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ad, err := h.ads.Create(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create ad")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, serializer.NewAdCreatedView(ad, h.imageURL))
}

// Update handles PUT and PATCH /ad/{id}/update/.
func (h *AdHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	ad, err := h.ads.Update(r.Context(), shared.ActorFromContext(r.Context()), id, fields, isPartial(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update ad")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewAdView(ad, h.imageURL))
}

// Delete handles DELETE /ad/{id}/delete/.
func (h *AdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.ads.Delete(r.Context(), shared.ActorFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete ad")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.DeleteAck{ID: id})
}

// UploadImage handles PUT and PATCH /ad/{id}/upload_image/ with a multipart
// "image" field.
func (h *AdHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleAPIError(w, r, domain.NewValidationError("image", domain.KindInvalid,
				"the submitted file is too large"), "")
			return
		}
		log.Debug("invalid multipart body", slog.String("error", err.Error()))
		HandleAPIError(w, r, domain.ErrBadRequest, "")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	upload := service.ImageUpload{}
	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		HandleAPIError(w, r, domain.ErrBadRequest, "")
		return
	default:
		defer closeFile(file)
		upload.Header = header
		upload.File = file
	}

	ad, err := h.ads.UploadImage(r.Context(), id, upload)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to upload image")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializer.NewAdView(ad, h.imageURL))
}

func closeFile(f multipart.File) {
	_ = f.Close()
}
