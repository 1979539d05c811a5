// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are in-memory implementations of the store interfaces. Every
// method can be overridden with its Fn field; when the field is nil the mock
// falls back to its map-backed default, which follows the same error
// contract as the Postgres stores (entity-specific not-found and duplicate
// errors).
//
// Usage:
//
//	users := mocks.NewMockUserStore()
//	alice := users.Seed(&domain.User{Username: "alice", Role: domain.RoleMember})
//
//	users.GetByIDFn = func(ctx context.Context, id int64) (*domain.User, error) {
//	    return nil, errors.New("boom")
//	}
package mocks
