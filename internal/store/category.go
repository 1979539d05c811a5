package store

import (
	"context"

	"github.com/adboard/adboard-api/internal/domain"
)

// CategoryStore defines the interface for category persistence.
type CategoryStore interface {
	// Create saves a new category and sets c.ID.
	// Returns ErrCategoryExists if the name is taken.
	Create(ctx context.Context, c *domain.Category) error

	// GetByID returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// GetByName returns ErrCategoryNotFound if no category has that name.
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// List returns all categories ordered by ID.
	List(ctx context.Context) ([]*domain.Category, error)

	// Delete returns ErrCategoryNotFound, or ErrReferenced while ads still use it.
	Delete(ctx context.Context, id int64) error
}
