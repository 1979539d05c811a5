package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	UpdateFn        func(ctx context.Context, user *domain.User) error
	DeleteFn        func(ctx context.Context, id int64) error
	AddLocationsFn  func(ctx context.Context, userID int64, locationIDs []int64) error

	// Data for default implementation
	mu          sync.Mutex
	Users       map[int64]*domain.User
	LocationIDs map[int64][]int64
	nextID      int64

	// Locations resolves LocationIDs to names when users are read back.
	Locations *MockLocationStore
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users:       make(map[int64]*domain.User),
		LocationIDs: make(map[int64][]int64),
	}
}

// Seed stores user without running Create overrides and returns it with its
// assigned id.
func (m *MockUserStore) Seed(user *domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insert(user)
	return user
}

func (m *MockUserStore) insert(user *domain.User) {
	m.nextID++
	user.ID = m.nextID
	if user.Password != "" {
		user.HashedPassword = "hashed:" + user.Password
		user.Password = ""
	}
	m.Users[user.ID] = cloneUser(user)
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	m.insert(user)
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return m.withLocations(u), nil
}

// GetByUsername implements the UserStore interface
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == username {
			return m.withLocations(u), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// List implements the UserStore interface. Users come back ordered by id
// without locations, like the Postgres store.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*domain.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	for _, u := range m.Users {
		if u.ID != user.ID && u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	updated := cloneUser(user)
	if user.Password != "" {
		updated.HashedPassword = "hashed:" + user.Password
		updated.Password = ""
		user.Password = ""
	} else {
		updated.HashedPassword = existing.HashedPassword
	}
	m.Users[user.ID] = updated
	return nil
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.Users, id)
	delete(m.LocationIDs, id)
	return nil
}

// AddLocations implements the UserStore interface. Ids already attached are
// ignored.
func (m *MockUserStore) AddLocations(ctx context.Context, userID int64, locationIDs []int64) error {
	if m.AddLocationsFn != nil {
		return m.AddLocationsFn(ctx, userID, locationIDs)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[userID]; !ok {
		return store.ErrUserNotFound
	}
	m.LocationIDs[userID] = domain.UniqueIDs(append(m.LocationIDs[userID], locationIDs...))
	return nil
}

// WithTx implements the UserStore interface; the mock has no transactions.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

func (m *MockUserStore) withLocations(u *domain.User) *domain.User {
	out := cloneUser(u)
	out.Locations = []string{}
	if m.Locations == nil {
		return out
	}
	for _, id := range m.LocationIDs[u.ID] {
		if loc, err := m.Locations.GetByID(context.Background(), id); err == nil {
			out.Locations = append(out.Locations, loc.Name)
		}
	}
	sort.Strings(out.Locations)
	return out
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	c.Locations = append([]string(nil), u.Locations...)
	return &c
}
