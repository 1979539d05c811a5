// Package storage keeps uploaded ad images on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adboard/adboard-api/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Prefix is the key prefix of ad images.
const Prefix = "ads"

// ErrInvalidKey is returned for keys that would escape the media directory.
var ErrInvalidKey = errors.New("invalid storage key")

// LocalStore writes objects below a media directory and serves them under a
// base URL.
type LocalStore struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// NewLocalStore creates the media directory if needed.
func NewLocalStore(dir, baseURL string, logger *slog.Logger) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("media directory must not be empty")
	}
	if err := os.MkdirAll(filepath.Join(dir, Prefix), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "image_store")),
	}, nil
}

// Dir returns the media directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Key builds a unique storage key for an uploaded file name, keeping a
// slugged form of the original name for readability.
func Key(filename string) string {
	base := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		name = "image"
	}
	return path.Join(Prefix, fmt.Sprintf("%s-%s%s", uuid.NewString(), name, ext))
}

func (s *LocalStore) path(key string) (string, error) {
	if key == "" || !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, filepath.FromSlash(key)), nil
}

// Save writes r under a new key. The file is written to a temporary name
// and renamed into place so readers never see a partial image.
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	key := Key(filename)
	dst, err := s.path(key)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmp.Name())
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("image stored",
		slog.String("key", key),
		slog.Int64("bytes", n))
	return key, nil
}

// Delete removes key. Deleting a missing object is not an error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("image deleted", slog.String("key", key))
	return nil
}

// URL returns the public URL of key.
func (s *LocalStore) URL(key string) string {
	return s.baseURL + "/" + key
}
