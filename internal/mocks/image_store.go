package mocks

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MockImageStore implements service.ImageStore in memory.
type MockImageStore struct {
	SaveErr   error
	DeleteErr error

	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
	n       int
}

// NewMockImageStore creates an empty MockImageStore.
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{Objects: make(map[string][]byte)}
}

// Save stores the content under "ads/<n>-<filename>".
func (m *MockImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	key := fmt.Sprintf("ads/%d-%s", m.n, filename)
	m.Objects[key] = data
	return key, nil
}

// Delete removes key and records it in Deleted.
func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, key)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Objects, key)
	return nil
}

// URL returns "/media/<key>".
func (m *MockImageStore) URL(key string) string {
	return "/media/" + key
}
