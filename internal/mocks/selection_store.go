package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/store"
)

// MockSelectionStore implements store.SelectionStore for testing
type MockSelectionStore struct {
	CreateFn func(ctx context.Context, sel *domain.Selection) error
	UpdateFn func(ctx context.Context, sel *domain.Selection) error

	mu         sync.Mutex
	Selections map[int64]*domain.Selection
	nextID     int64
}

// NewMockSelectionStore creates a new mock store with initialized defaults
func NewMockSelectionStore() *MockSelectionStore {
	return &MockSelectionStore{Selections: make(map[int64]*domain.Selection)}
}

func cloneSelection(s *domain.Selection) *domain.Selection {
	c := *s
	c.Items = append([]int64{}, s.Items...)
	return &c
}

// Seed stores sel without running Create overrides and returns it.
func (m *MockSelectionStore) Seed(sel *domain.Selection) *domain.Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	sel.ID = m.nextID
	m.Selections[sel.ID] = cloneSelection(sel)
	return sel
}

// Create implements the SelectionStore interface
func (m *MockSelectionStore) Create(ctx context.Context, sel *domain.Selection) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, sel)
	}
	m.Seed(sel)
	return nil
}

// GetByID implements the SelectionStore interface
func (m *MockSelectionStore) GetByID(ctx context.Context, id int64) (*domain.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Selections[id]
	if !ok {
		return nil, store.ErrSelectionNotFound
	}
	return cloneSelection(s), nil
}

// List implements the SelectionStore interface. Items are not loaded.
func (m *MockSelectionStore) List(ctx context.Context) ([]*domain.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Selection, 0, len(m.Selections))
	for _, s := range m.Selections {
		c := cloneSelection(s)
		c.Items = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update implements the SelectionStore interface
func (m *MockSelectionStore) Update(ctx context.Context, sel *domain.Selection) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, sel)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Selections[sel.ID]; !ok {
		return store.ErrSelectionNotFound
	}
	m.Selections[sel.ID] = cloneSelection(sel)
	return nil
}

// Delete implements the SelectionStore interface
func (m *MockSelectionStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Selections[id]; !ok {
		return store.ErrSelectionNotFound
	}
	delete(m.Selections, id)
	return nil
}

// WithTx implements the SelectionStore interface; the mock has no transactions.
func (m *MockSelectionStore) WithTx(tx *sql.Tx) store.SelectionStore {
	return m
}
