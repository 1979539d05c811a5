package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/adboard/adboard-api/internal/domain"
	"github.com/adboard/adboard-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockAdStore implements store.AdStore for testing. When Users and
// Categories are set, loaded ads carry the author username and category
// name, and List honours the location filter.
type MockAdStore struct {
	CreateFn func(ctx context.Context, ad *domain.Ad) error
	UpdateFn func(ctx context.Context, ad *domain.Ad) error
	DeleteFn func(ctx context.Context, id int64) error

	Users      *MockUserStore
	Categories *MockCategoryStore

	mu     sync.Mutex
	Ads    map[int64]*domain.Ad
	nextID int64
}

// NewMockAdStore creates a new mock store with initialized defaults
func NewMockAdStore(users *MockUserStore, categories *MockCategoryStore) *MockAdStore {
	return &MockAdStore{
		Users:      users,
		Categories: categories,
		Ads:        make(map[int64]*domain.Ad),
	}
}

// Seed stores ad without running Create overrides and returns it.
func (m *MockAdStore) Seed(ad *domain.Ad) *domain.Ad {
	m.mu.Lock()
	m.nextID++
	ad.ID = m.nextID
	cp := *ad
	m.Ads[ad.ID] = &cp
	m.mu.Unlock()
	m.refresh(ad)
	return ad
}

// refresh fills the read-only relation names.
func (m *MockAdStore) refresh(ad *domain.Ad) {
	if m.Users != nil {
		if u, err := m.Users.GetByID(context.Background(), ad.AuthorID); err == nil {
			ad.AuthorUsername = u.Username
		}
	}
	if m.Categories != nil {
		if c, err := m.Categories.GetByID(context.Background(), ad.CategoryID); err == nil {
			ad.CategoryName = c.Name
		}
	}
}

// Create implements the AdStore interface
func (m *MockAdStore) Create(ctx context.Context, ad *domain.Ad) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ad)
	}
	m.Seed(ad)
	return nil
}

// GetByID implements the AdStore interface
func (m *MockAdStore) GetByID(ctx context.Context, id int64) (*domain.Ad, error) {
	m.mu.Lock()
	a, ok := m.Ads[id]
	m.mu.Unlock()
	if !ok {
		return nil, store.ErrAdNotFound
	}
	cp := *a
	m.refresh(&cp)
	return &cp, nil
}

// GetByIDs implements the AdStore interface. Ads come back in the order of
// ids; missing ids are skipped.
func (m *MockAdStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Ad, error) {
	out := make([]*domain.Ad, 0, len(ids))
	for _, id := range ids {
		if a, err := m.GetByID(ctx, id); err == nil {
			out = append(out, a)
		}
	}
	return out, nil
}

// List implements the AdStore interface
func (m *MockAdStore) List(ctx context.Context, filter store.AdFilter) ([]*domain.Ad, error) {
	m.mu.Lock()
	ids := make([]int64, 0, len(m.Ads))
	for id := range m.Ads {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ads, _ := m.GetByIDs(ctx, ids)
	out := make([]*domain.Ad, 0, len(ads))
	for _, a := range ads {
		if m.matches(ctx, a, filter) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAdStore) matches(ctx context.Context, a *domain.Ad, f store.AdFilter) bool {
	if len(f.CategoryIDs) > 0 {
		found := false
		for _, id := range f.CategoryIDs {
			if id == a.CategoryID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Name != "" && !containsFold(a.Name, f.Name) {
		return false
	}
	if f.PriceFrom != nil && a.Price < *f.PriceFrom {
		return false
	}
	if f.PriceTo != nil && a.Price > *f.PriceTo {
		return false
	}
	if f.Location != "" {
		if m.Users == nil {
			return false
		}
		author, err := m.Users.GetByID(ctx, a.AuthorID)
		if err != nil {
			return false
		}
		for _, loc := range author.Locations {
			if containsFold(loc, f.Location) {
				return true
			}
		}
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Update implements the AdStore interface
func (m *MockAdStore) Update(ctx context.Context, ad *domain.Ad) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ad)
	}

	m.mu.Lock()
	if _, ok := m.Ads[ad.ID]; !ok {
		m.mu.Unlock()
		return store.ErrAdNotFound
	}
	cp := *ad
	m.Ads[ad.ID] = &cp
	m.mu.Unlock()
	m.refresh(ad)
	return nil
}

// Delete implements the AdStore interface
func (m *MockAdStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Ads[id]; !ok {
		return store.ErrAdNotFound
	}
	delete(m.Ads, id)
	return nil
}

// TestifyMockAdStore is a mock of store.AdStore for use with testify/mock
type TestifyMockAdStore struct {
	mock.Mock
}

func (m *TestifyMockAdStore) Create(ctx context.Context, ad *domain.Ad) error {
	args := m.Called(ctx, ad)
	return args.Error(0)
}

func (m *TestifyMockAdStore) GetByID(ctx context.Context, id int64) (*domain.Ad, error) {
	args := m.Called(ctx, id)
	if ad, ok := args.Get(0).(*domain.Ad); ok {
		return ad, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockAdStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Ad, error) {
	args := m.Called(ctx, ids)
	if ads, ok := args.Get(0).([]*domain.Ad); ok {
		return ads, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockAdStore) List(ctx context.Context, filter store.AdFilter) ([]*domain.Ad, error) {
	args := m.Called(ctx, filter)
	if ads, ok := args.Get(0).([]*domain.Ad); ok {
		return ads, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockAdStore) Update(ctx context.Context, ad *domain.Ad) error {
	args := m.Called(ctx, ad)
	return args.Error(0)
}

func (m *TestifyMockAdStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
