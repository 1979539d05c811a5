package store

import (
	"context"

	"github.com/adboard/adboard-api/internal/domain"
)

// AdFilter narrows an ad listing. Zero-value fields do not filter;
// all set fields must match.
type AdFilter struct {
	// CategoryIDs matches ads in any of the listed categories.
	CategoryIDs []int64
	// Name is a case-insensitive substring of the ad name.
	Name string
	// Location is a case-insensitive substring of any of the author's location names.
	Location string
	// PriceFrom and PriceTo are inclusive bounds.
	PriceFrom *int64
	PriceTo   *int64
}

// IsZero reports whether the filter matches every ad.
func (f AdFilter) IsZero() bool {
	return len(f.CategoryIDs) == 0 && f.Name == "" && f.Location == "" &&
		f.PriceFrom == nil && f.PriceTo == nil
}

// AdStore defines the interface for ad persistence.
// Returned ads carry the author username and category name.
type AdStore interface {
	// Create saves a new ad and sets ad.ID, AuthorUsername and CategoryName.
	// Returns ErrInvalidEntity if the author or category does not exist.
	Create(ctx context.Context, ad *domain.Ad) error

	// GetByID returns ErrAdNotFound if the ad does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Ad, error)

	// GetByIDs returns the ads with the given ids in the order given,
	// skipping ids that do not exist.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Ad, error)

	// List returns the ads matching filter ordered by ID.
	List(ctx context.Context, filter AdFilter) ([]*domain.Ad, error)

	// Update writes every mutable column of ad and refreshes its slugs.
	// Returns ErrAdNotFound if the ad does not exist.
	Update(ctx context.Context, ad *domain.Ad) error

	// Delete returns ErrAdNotFound if the ad does not exist.
	Delete(ctx context.Context, id int64) error
}
