package feed

import (
	"context"
	"sync"
	"time"

	"github.com/portfolio-content-api/internal/models"
	"github.com/portfolio-content-api/internal/repository"
	"github.com/rs/zerolog"
)

// CancelFunc detaches a subscription. It is idempotent and, once it
// returns, no callback of that subscription runs again. It must not be
// called from inside that subscription's own callbacks.
type CancelFunc func()

// Client opens live subscriptions to document store paths
type Client interface {
	Subscribe(path string, onSnapshot func(models.Snapshot), onError func(error)) CancelFunc
}

// Hub implements Client on top of a document repository. The current
// snapshot is delivered on subscribe and again after every change
// notification for the path.
type Hub struct {
	docs        repository.DocumentRepository
	log         zerolog.Logger
	readTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	subs   map[string]map[*subscription]struct{}
	closed bool
}

// DefaultReadTimeout bounds one store read when no timeout is configured
const DefaultReadTimeout = 10 * time.Second

// NewHub creates a hub reading from docs. A read that takes longer than
// readTimeout fails the subscription.
func NewHub(docs repository.DocumentRepository, readTimeout time.Duration, log zerolog.Logger) *Hub {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		docs:        docs,
		log:         log.With().Str("component", "feed_hub").Logger(),
		readTimeout: readTimeout,
		ctx:         ctx,
		cancel:      cancel,
		subs:        make(map[string]map[*subscription]struct{}),
	}
}

// Start wires the hub to a change bus
func (h *Hub) Start(ctx context.Context, bus Bus) error {
	return bus.Start(ctx, h.Notify)
}

// Subscribe opens one live subscription to path
func (h *Hub) Subscribe(path string, onSnapshot func(models.Snapshot), onError func(error)) CancelFunc {
	s := &subscription{
		hub:        h,
		path:       path,
		onSnapshot: onSnapshot,
		onError:    onError,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		s.done = true
		s.terminate()
		return s.cancel
	}
	set, ok := h.subs[path]
	if !ok {
		set = make(map[*subscription]struct{})
		h.subs[path] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	h.log.Debug().Str("path", path).Msg("Feed subscription opened")

	go s.run()
	s.enqueue()
	return s.cancel
}

// Notify schedules one re-read and delivery for every subscription on path
func (h *Hub) Notify(path string) {
	h.mu.Lock()
	targets := make([]*subscription, 0, len(h.subs[path]))
	for s := range h.subs[path] {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	for _, s := range targets {
		s.enqueue()
	}
}

// Subscribers returns the number of live subscriptions on path
func (h *Hub) Subscribers(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[path])
}

// Close detaches every subscription
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	var all []*subscription
	for _, set := range h.subs {
		for s := range set {
			all = append(all, s)
		}
	}
	h.mu.Unlock()

	for _, s := range all {
		s.cancel()
	}
	h.cancel()
}

func (h *Hub) remove(s *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[s.path]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.path)
		}
	}
}

type subscription struct {
	hub        *Hub
	path       string
	onSnapshot func(models.Snapshot)
	onError    func(error)

	// pending counts deliveries still owed, one per notification
	pendingMu sync.Mutex
	pending   int
	wake      chan struct{}

	// mu is held for the whole of a callback; done is guarded by it
	mu   sync.Mutex
	done bool

	stop     chan struct{}
	stopOnce sync.Once
}

func (s *subscription) enqueue() {
	s.pendingMu.Lock()
	s.pending++
	s.pendingMu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) take() bool {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if s.pending == 0 {
		return false
	}
	s.pending--
	return true
}

func (s *subscription) run() {
	for {
		select {
		case <-s.stop:
			return
		case <-s.wake:
		}
		for s.take() {
			if !s.deliver() {
				return
			}
		}
	}
}

// deliver reads the path and runs one callback. It reports false once the
// subscription is finished.
func (s *subscription) deliver() bool {
	ctx, cancel := context.WithTimeout(s.hub.ctx, s.hub.readTimeout)
	snap, err := s.hub.docs.Get(ctx, s.path)
	cancel()

	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return false
	}
	if err != nil {
		// terminal: report once, no retry
		s.done = true
		s.hub.log.Error().Err(err).Str("path", s.path).Msg("Feed read failed")
		if s.onError != nil {
			s.onError(err)
		}
		s.mu.Unlock()
		s.terminate()
		return false
	}
	if s.onSnapshot != nil {
		s.onSnapshot(snap)
	}
	s.mu.Unlock()
	return true
}

func (s *subscription) cancel() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
	s.terminate()
}

func (s *subscription) terminate() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.hub.remove(s)
		s.hub.log.Debug().Str("path", s.path).Msg("Feed subscription closed")
	})
}
