package store

import (
	"context"
	"database/sql"

	"github.com/adboard/adboard-api/internal/domain"
)

// LocationStore defines the interface for location persistence.
type LocationStore interface {
	// Create saves a new location and sets loc.ID.
	// Returns ErrLocationExists if the name is taken.
	Create(ctx context.Context, loc *domain.Location) error

	// GetByID returns ErrLocationNotFound if the location does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Location, error)

	// GetByName returns ErrLocationNotFound if no location has that name.
	GetByName(ctx context.Context, name string) (*domain.Location, error)

	// GetOrCreate returns the location named name, creating it when absent.
	// The boolean reports whether a new row was inserted.
	GetOrCreate(ctx context.Context, name string) (*domain.Location, bool, error)

	// List returns all locations ordered by ID.
	List(ctx context.Context) ([]*domain.Location, error)

	// Update returns ErrLocationNotFound or ErrLocationExists as appropriate.
	Update(ctx context.Context, loc *domain.Location) error

	// Delete returns ErrLocationNotFound if the location does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new LocationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LocationStore
}
