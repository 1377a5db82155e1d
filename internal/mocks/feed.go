package mocks

import (
	"sync"

	"github.com/portfolio-content-api/internal/feed"
	"github.com/portfolio-content-api/internal/models"
)

// MockFeedClient records subscriptions and lets tests drive them by hand.
// Emit and Fail reach every subscription ever opened on a path, cancelled or
// not, so that consumers' own teardown guards get exercised.
type MockFeedClient struct {
	mu        sync.Mutex
	subs      map[string][]*MockSubscription
	Cancelled map[string]int
}

// MockSubscription is one recorded Subscribe call
type MockSubscription struct {
	Path       string
	OnSnapshot func(models.Snapshot)
	OnError    func(error)
	Cancelled  bool
}

// Verify interface compliance
var _ feed.Client = (*MockFeedClient)(nil)

func NewMockFeedClient() *MockFeedClient {
	return &MockFeedClient{
		subs:      make(map[string][]*MockSubscription),
		Cancelled: make(map[string]int),
	}
}

func (m *MockFeedClient) Subscribe(path string, onSnapshot func(models.Snapshot), onError func(error)) feed.CancelFunc {
	sub := &MockSubscription{Path: path, OnSnapshot: onSnapshot, OnError: onError}
	m.mu.Lock()
	m.subs[path] = append(m.subs[path], sub)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !sub.Cancelled {
			sub.Cancelled = true
			m.Cancelled[path]++
		}
	}
}

// Subscriptions returns how many times path was subscribed
func (m *MockFeedClient) Subscriptions(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs[path])
}

// Emit delivers raw JSON at path as a snapshot
func (m *MockFeedClient) Emit(path, raw string) {
	snap, _ := models.ParseSnapshot(path, []byte(raw))
	m.EmitSnapshot(path, snap)
}

// EmitSnapshot delivers snap to every subscription on path
func (m *MockFeedClient) EmitSnapshot(path string, snap models.Snapshot) {
	for _, sub := range m.snapshot(path) {
		if sub.OnSnapshot != nil {
			sub.OnSnapshot(snap)
		}
	}
}

// Fail delivers err to every subscription on path
func (m *MockFeedClient) Fail(path string, err error) {
	for _, sub := range m.snapshot(path) {
		if sub.OnError != nil {
			sub.OnError(err)
		}
	}
}

func (m *MockFeedClient) snapshot(path string) []*MockSubscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockSubscription(nil), m.subs[path]...)
}
