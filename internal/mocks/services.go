package mocks

import (
	"context"
	"sync"

	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/section"
	"github.com/portfolio-content-api/internal/service"
)

// MockSiteService is a mock implementation of SiteService
type MockSiteService struct {
	mu          sync.Mutex
	Views       map[string]any
	Queries     []section.Query
	HeroState   models.SectionState[models.HeroView]
	FailedIndex []int
	Closed      bool
	watchers    map[string][]chan struct{}
}

// Verify interface compliance
var _ service.SiteService = (*MockSiteService)(nil)

func NewMockSiteService() *MockSiteService {
	return &MockSiteService{
		Views:    make(map[string]any),
		watchers: make(map[string][]chan struct{}),
	}
}

func (m *MockSiteService) Sections() []string {
	return append([]string(nil), section.Names...)
}

func (m *MockSiteService) View(name string, q section.Query) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, q)
	v, ok := m.Views[name]
	if !ok {
		return nil, service.ErrUnknownSection
	}
	return v, nil
}

// SetView replaces the view returned for name
func (m *MockSiteService) SetView(name string, v any) {
	m.mu.Lock()
	m.Views[name] = v
	m.mu.Unlock()
}

func (m *MockSiteService) Watch(name string) (<-chan struct{}, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Views[name]; !ok {
		return nil, nil, service.ErrUnknownSection
	}
	ch := make(chan struct{}, 1)
	m.watchers[name] = append(m.watchers[name], ch)
	return ch, func() {}, nil
}

// Signal wakes every watcher of name
func (m *MockSiteService) Signal(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.watchers[name] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Watchers returns how many streams watch name
func (m *MockSiteService) Watchers(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.watchers[name])
}

func (m *MockSiteService) ReportHeroImageError(index int) models.SectionState[models.HeroView] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedIndex = append(m.FailedIndex, index)
	return m.HeroState
}

func (m *MockSiteService) Close() {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
}

// MockContactService is a mock implementation of ContactService
type MockContactService struct {
	SubmitFunc func(ctx context.Context, req *models.ContactRequest) (string, error)
	Submitted  []*models.ContactRequest
}

// Verify interface compliance
var _ service.ContactService = (*MockContactService)(nil)

func NewMockContactService() *MockContactService {
	return &MockContactService{}
}

func (m *MockContactService) Submit(ctx context.Context, req *models.ContactRequest) (string, error) {
	m.Submitted = append(m.Submitted, req)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return "test-message-id", nil
}
