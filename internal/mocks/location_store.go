package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/store"
)

// MockLocationStore implements store.LocationStore for testing
type MockLocationStore struct {
	GetOrCreateFn func(ctx context.Context, name string) (*domain.Location, bool, error)
	DeleteFn      func(ctx context.Context, id int64) error

	// GetOrCreateError, when set, is returned by every GetOrCreate call.
	GetOrCreateError error

	mu        sync.Mutex
	Locations map[int64]*domain.Location
	nextID    int64
}

// NewMockLocationStore creates a new mock store with initialized defaults
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{Locations: make(map[int64]*domain.Location)}
}

func (m *MockLocationStore) findByName(name string) *domain.Location {
	for _, l := range m.Locations {
		if l.Name == name {
			return l
		}
	}
	return nil
}

func (m *MockLocationStore) insert(loc *domain.Location) {
	m.nextID++
	loc.ID = m.nextID
	c := *loc
	m.Locations[loc.ID] = &c
}

// Create implements the LocationStore interface
func (m *MockLocationStore) Create(ctx context.Context, loc *domain.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findByName(loc.Name) != nil {
		return store.ErrLocationExists
	}
	m.insert(loc)
	return nil
}

// GetByID implements the LocationStore interface
func (m *MockLocationStore) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.Locations[id]
	if !ok {
		return nil, store.ErrLocationNotFound
	}
	c := *l
	return &c, nil
}

// GetByName implements the LocationStore interface
func (m *MockLocationStore) GetByName(ctx context.Context, name string) (*domain.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.findByName(name)
	if l == nil {
		return nil, store.ErrLocationNotFound
	}
	c := *l
	return &c, nil
}

// GetOrCreate implements the LocationStore interface
func (m *MockLocationStore) GetOrCreate(ctx context.Context, name string) (*domain.Location, bool, error) {
	if m.GetOrCreateFn != nil {
		return m.GetOrCreateFn(ctx, name)
	}
	if m.GetOrCreateError != nil {
		return nil, false, m.GetOrCreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if l := m.findByName(name); l != nil {
		c := *l
		return &c, false, nil
	}
	loc := &domain.Location{Name: name}
	m.insert(loc)
	return loc, true, nil
}

// List implements the LocationStore interface
func (m *MockLocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Location, 0, len(m.Locations))
	for _, l := range m.Locations {
		c := *l
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update implements the LocationStore interface
func (m *MockLocationStore) Update(ctx context.Context, loc *domain.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Locations[loc.ID]; !ok {
		return store.ErrLocationNotFound
	}
	if other := m.findByName(loc.Name); other != nil && other.ID != loc.ID {
		return store.ErrLocationExists
	}
	c := *loc
	m.Locations[loc.ID] = &c
	return nil
}

// Delete implements the LocationStore interface
func (m *MockLocationStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Locations[id]; !ok {
		return store.ErrLocationNotFound
	}
	delete(m.Locations, id)
	return nil
}

// WithTx implements the LocationStore interface; the mock has no transactions.
func (m *MockLocationStore) WithTx(tx *sql.Tx) store.LocationStore {
	return m
}
