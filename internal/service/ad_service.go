package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/adboard/adboard-api/internal/authz"
	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/platform/logger"
	"github.com/adboard/adboard-api/internal/serializer"
	"github.com/adboard/adboard-api/internal/store"
)

// ImageStore persists uploaded ad images.
type ImageStore interface {
	// Save stores the content of r under a new key derived from filename.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL of key.
	URL(key string) string
}

// ImageUpload is a file submitted for an ad's image field.
type ImageUpload struct {
	// Header is nil when the request carried no file.
	Header *multipart.FileHeader
	File   io.ReadSeeker
}

// AdService provides ad operations.
type AdService interface {
	// List returns the ads matching filter ordered by id.
	List(ctx context.Context, filter store.AdFilter) ([]*domain.Ad, error)

	// Get returns one ad to an authenticated actor.
	Get(ctx context.Context, actor authz.Actor, id int64) (*domain.Ad, error)

	// Create stores a new unpublished ad.
	Create(ctx context.Context, in serializer.AdCreateInput) (*domain.Ad, error)

	// Update applies a PUT (partial=false) or PATCH body to an ad the
	// actor may mutate.
	Update(ctx context.Context, actor authz.Actor, id int64, fields serializer.Fields, partial bool) (*domain.Ad, error)

	// Delete removes an ad the actor may mutate, along with its image.
	Delete(ctx context.Context, actor authz.Actor, id int64) error

	// UploadImage validates upload and replaces the ad's image. A missing
	// ad is reported before the file is looked at.
	UploadImage(ctx context.Context, id int64, upload ImageUpload) (*domain.Ad, error)
}

type adService struct {
	ads        store.AdStore
	users      store.UserStore
	categories store.CategoryStore
	images     ImageStore
	logger     *slog.Logger
}

// NewAdService creates an AdService.
func NewAdService(
	ads store.AdStore,
	users store.UserStore,
	categories store.CategoryStore,
	images ImageStore,
	logger *slog.Logger,
) AdService {
	if logger == nil {
		logger = slog.Default()
	}
	return &adService{
		ads:        ads,
		users:      users,
		categories: categories,
		images:     images,
		logger:     logger.With(slog.String("component", "ad_service")),
	}
}

func (s *adService) List(ctx context.Context, filter store.AdFilter) ([]*domain.Ad, error) {
	return s.ads.List(ctx, filter)
}

func (s *adService) Get(ctx context.Context, actor authz.Actor, id int64) (*domain.Ad, error) {
	if err := authz.Chain(authz.Authenticated(actor)); err != nil {
		return nil, err
	}
	return s.ads.GetByID(ctx, id)
}

func (s *adService) Create(ctx context.Context, in serializer.AdCreateInput) (*domain.Ad, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.IsPublished {
		log.Debug("rejected ad created as published")
		return nil, domain.ErrPublishedOnCreate
	}
	if _, err := s.users.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	ad, err := domain.NewAd(in.Name, in.AuthorID, in.Price, in.Description, in.IsPublished, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, err
	}

	log.Info("ad created", slog.Int64("ad_id", ad.ID), slog.Int64("author_id", ad.AuthorID))
	return ad, nil
}

// loadForMutation fetches the ad and checks that actor may change it.
func (s *adService) loadForMutation(ctx context.Context, actor authz.Actor, id int64) (*domain.Ad, error) {
	if err := authz.Chain(authz.Authenticated(actor)); err != nil {
		return nil, err
	}
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Chain(authz.AdOwnerOrAdmin(actor, ad)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("ad mutation denied",
			slog.Int64("ad_id", id),
			slog.Int64("actor_id", actor.ID))
		return nil, err
	}
	return ad, nil
}

func (s *adService) lookups() serializer.AdLookups {
	return serializer.AdLookups{
		Author: func(ctx context.Context, username string) (int64, error) {
			u, err := s.users.GetByUsername(ctx, username)
			if err != nil {
				return 0, err
			}
			return u.ID, nil
		},
		Category: func(ctx context.Context, name string) (int64, error) {
			c, err := s.categories.GetByName(ctx, name)
			if err != nil {
				return 0, err
			}
			return c.ID, nil
		},
	}
}

func (s *adService) Update(
	ctx context.Context,
	actor authz.Actor,
	id int64,
	fields serializer.Fields,
	partial bool,
) (*domain.Ad, error) {
	ad, err := s.loadForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	patch, err := serializer.DecodeAdPatch(ctx, fields, partial, s.lookups())
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return ad, nil
	}
	if err := ad.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("ad updated",
		slog.Int64("ad_id", ad.ID),
		slog.Int64("actor_id", actor.ID))
	return ad, nil
}

func (s *adService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	ad, err := s.loadForMutation(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.ads.Delete(ctx, id); err != nil {
		return err
	}
	if ad.HasImage() {
		s.removeImage(ctx, ad.Image)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("ad deleted",
		slog.Int64("ad_id", id),
		slog.Int64("actor_id", actor.ID))
	return nil
}

func (s *adService) UploadImage(ctx context.Context, id int64, upload ImageUpload) (*domain.Ad, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkImage(upload); err != nil {
		return nil, err
	}

	key, err := s.images.Save(ctx, upload.Header.Filename, upload.File)
	if err != nil {
		return nil, NewServiceError("upload image", "failed to store image", err)
	}

	previous := ad.Image
	ad.Image = key
	if err := s.ads.Update(ctx, ad); err != nil {
		s.removeImage(ctx, key)
		return nil, err
	}
	if previous != "" && previous != key {
		s.removeImage(ctx, previous)
	}

	log.Info("ad image replaced", slog.Int64("ad_id", id), slog.String("key", key))
	return ad, nil
}

// removeImage deletes a stored object. Failures are logged only; an orphaned
// file does not fail the request.
func (s *adService) removeImage(ctx context.Context, key string) {
	if err := s.images.Delete(ctx, key); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to remove image",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// checkImage sniffs the leading bytes of the upload and rewinds it.
func checkImage(upload ImageUpload) error {
	if upload.Header == nil || upload.File == nil {
		_, err := serializer.ValidateImage(nil, nil)
		return err
	}
	sniff := make([]byte, serializer.SniffLen)
	n, err := io.ReadFull(upload.File, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return NewServiceError("upload image", "failed to read upload", err)
	}
	if _, err := serializer.ValidateImage(upload.Header, sniff[:n]); err != nil {
		return err
	}
	if _, err := upload.File.Seek(0, io.SeekStart); err != nil {
		return NewServiceError("upload image", "failed to rewind upload", err)
	}
	return nil
}
