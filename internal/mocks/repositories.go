package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/repository"
)

// MockDocumentRepository is an in-memory DocumentRepository
type MockDocumentRepository struct {
	mu        sync.Mutex
	Documents map[string]models.Snapshot
	GetError  error
	SetError  error
	PushError error
	GetCalls  int
	PushCalls int
	nextKey   int
}

// Verify interface compliance
var _ repository.DocumentRepository = (*MockDocumentRepository)(nil)

func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{
		Documents: make(map[string]models.Snapshot),
	}
}

// SetJSON stores raw JSON at path, bypassing error injection
func (m *MockDocumentRepository) SetJSON(path, raw string) {
	snap, _ := models.ParseSnapshot(path, []byte(raw))
	m.mu.Lock()
	m.Documents[path] = snap
	m.mu.Unlock()
}

func (m *MockDocumentRepository) Get(ctx context.Context, path string) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetError != nil {
		return models.Snapshot{}, m.GetError
	}
	snap, ok := m.Documents[path]
	if !ok {
		return models.AbsentSnapshot(path), nil
	}
	return snap, nil
}

func (m *MockDocumentRepository) Set(ctx context.Context, path string, snap models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetError != nil {
		return m.SetError
	}
	snap.Path = path
	m.Documents[path] = snap
	return nil
}

func (m *MockDocumentRepository) Push(ctx context.Context, path string, value json.RawMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PushCalls++
	if m.PushError != nil {
		return "", m.PushError
	}
	m.nextKey++
	key := fmt.Sprintf("key-%04d", m.nextKey)
	snap, ok := m.Documents[path]
	if !ok {
		snap = models.AbsentSnapshot(path)
	}
	snap.Append(key, value)
	m.Documents[path] = snap
	return key, nil
}

func (m *MockDocumentRepository) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Documents, path)
	return nil
}

func (m *MockDocumentRepository) Paths(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.Documents))
	for p := range m.Documents {
		paths = append(paths, p)
	}
	return paths, nil
}

// Entries returns a copy of what is stored at path
func (m *MockDocumentRepository) Entries(path string) []models.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Entry(nil), m.Documents[path].Entries...)
}
