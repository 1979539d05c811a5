package store

import (
	"context"
	"database/sql"

	"github.com/adboard/adboard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store and sets user.ID.
	// It handles domain validation and password hashing internally.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, including location names.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users ordered by ID.
	List(ctx context.Context) ([]*domain.User, error)

	// Update modifies an existing user's profile fields.
	// If a new plain text Password is provided it is hashed and replaces the stored hash.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists if updating to a username that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist and ErrReferenced
	// if the user still authors ads or owns selections.
	Delete(ctx context.Context, id int64) error

	// AddLocations associates the given locations with the user.
	// Existing associations are kept; adding one twice is a no-op.
	AddLocations(ctx context.Context, userID int64, locationIDs []int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
