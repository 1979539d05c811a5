package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	DeleteFn func(ctx context.Context, id int64) error

	mu         sync.Mutex
	Categories map[int64]*domain.Category
	nextID     int64
}

// NewMockCategoryStore creates a new mock store with initialized defaults
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{Categories: make(map[int64]*domain.Category)}
}

// Seed stores a category named name and returns it.
func (m *MockCategoryStore) Seed(name string) *domain.Category {
	c := &domain.Category{Name: name}
	if err := m.Create(context.Background(), c); err != nil {
		panic(err)
	}
	return c
}

// Create implements the CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, c *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Categories {
		if existing.Name == c.Name {
			return store.ErrCategoryExists
		}
	}
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.Categories[c.ID] = &cp
	return nil
}

// GetByID implements the CategoryStore interface
func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

// GetByName implements the CategoryStore interface
func (m *MockCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrCategoryNotFound
}

// List implements the CategoryStore interface
func (m *MockCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete implements the CategoryStore interface
func (m *MockCategoryStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}
