package store

import (
	"context"
	"database/sql"

	"github.com/adboard/adboard-api/internal/domain"
)

// SelectionStore defines the interface for selection persistence.
// Item sets are stored alongside the selection row; callers that need
// atomicity run Create/Update through WithTx.
type SelectionStore interface {
	// Create saves the selection and its items and sets sel.ID.
	Create(ctx context.Context, sel *domain.Selection) error

	// GetByID returns the selection with its item ids.
	// Returns ErrSelectionNotFound if the selection does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Selection, error)

	// List returns all selections ordered by ID, without items.
	List(ctx context.Context) ([]*domain.Selection, error)

	// Update writes name and owner and replaces the item set.
	// Returns ErrSelectionNotFound if the selection does not exist.
	Update(ctx context.Context, sel *domain.Selection) error

	// Delete returns ErrSelectionNotFound if the selection does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new SelectionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SelectionStore
}
