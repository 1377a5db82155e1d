// Package section runs one feed → normalize → project pipeline per page
// section and tracks its loading/active/inactive/error state.
package section

import (
	"errors"
	"sync"

	"github.com/portfolio-content-api/internal/feed"
	"github.com/portfolio-content-api/internal/models"
	"github.com/rs/zerolog"
)

var (
	ErrAlreadyMounted = errors.New("section already mounted")
	ErrClosed         = errors.New("section closed")
)

// Feed binds one store path to the part of V it derives
type Feed[V any] struct {
	Path string
	// Apply derives the section data from a snapshot, replacing whatever
	// the previous snapshot of this path produced
	Apply func(data V, snap models.Snapshot) (V, models.SectionStatus)
	// Optional feeds never change the status and their errors are only logged
	Optional bool
}

// Options configure a Section
type Options[V any] struct {
	Name string
	// Initial is the data reported while loading
	Initial V
	Feeds   []Feed[V]
	// ErrorMessage renders a feed error for the error state
	ErrorMessage func(err error) string
	// ErrorData, when set, derives the data kept alongside the error
	ErrorData func(data V) V
	// OnClose runs once after every subscription has been cancelled
	OnClose func(data V)
}

// Section is one mounted pipeline. Every feed delivery replaces the derived
// state; an error is terminal until the section is remounted.
type Section[V any] struct {
	opts Options[V]
	log  zerolog.Logger

	mu      sync.Mutex
	state   models.SectionState[V]
	mounted bool
	closed  bool
	cancels []feed.CancelFunc

	watchMu  sync.Mutex
	watchers map[chan struct{}]struct{}
}

// New creates a section in the loading state
func New[V any](opts Options[V], log zerolog.Logger) *Section[V] {
	return &Section[V]{
		opts: opts,
		log:  log.With().Str("section", opts.Name).Logger(),
		state: models.SectionState[V]{
			Section: opts.Name,
			Status:  models.SectionLoading,
			Data:    opts.Initial,
		},
		watchers: make(map[chan struct{}]struct{}),
	}
}

// Name returns the section name
func (s *Section[V]) Name() string {
	return s.opts.Name
}

// Mount opens one subscription per feed. A section mounts at most once.
func (s *Section[V]) Mount(client feed.Client) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.mounted {
		s.mu.Unlock()
		return ErrAlreadyMounted
	}
	s.mounted = true
	s.mu.Unlock()

	cancels := make([]feed.CancelFunc, 0, len(s.opts.Feeds))
	for _, f := range s.opts.Feeds {
		f := f
		cancels = append(cancels, client.Subscribe(f.Path,
			func(snap models.Snapshot) { s.apply(f, snap) },
			func(err error) { s.fail(f, err) },
		))
	}

	s.mu.Lock()
	closed := s.closed
	if !closed {
		s.cancels = cancels
	}
	s.mu.Unlock()

	// closed while subscribing
	if closed {
		for _, cancel := range cancels {
			cancel()
		}
	}

	s.log.Debug().Int("feeds", len(cancels)).Msg("Section mounted")
	return nil
}

// Close cancels every subscription. Once it returns no feed delivery
// changes the state.
func (s *Section[V]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancels := s.cancels
	s.cancels = nil
	data := s.state.Data
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	if s.opts.OnClose != nil {
		s.opts.OnClose(data)
	}

	s.watchMu.Lock()
	for ch := range s.watchers {
		close(ch)
	}
	s.watchers = make(map[chan struct{}]struct{})
	s.watchMu.Unlock()

	s.log.Debug().Msg("Section closed")
}

// State returns the current state
func (s *Section[V]) State() models.SectionState[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Section[V]) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Watch returns a channel that receives after every state change. Bursts
// collapse into one pending signal. The channel is closed when the section
// closes or the returned stop func is called.
func (s *Section[V]) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		close(ch)
		return ch, func() {}
	}

	s.watchMu.Lock()
	s.watchers[ch] = struct{}{}
	s.watchMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.watchMu.Lock()
			if _, ok := s.watchers[ch]; ok {
				delete(s.watchers, ch)
				close(ch)
			}
			s.watchMu.Unlock()
		})
	}
}

// Notify signals watchers without a state change, e.g. a rotation tick
func (s *Section[V]) Notify() {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Section[V]) apply(f Feed[V], snap models.Snapshot) {
	s.mu.Lock()
	if s.closed || s.state.Status == models.SectionError {
		s.mu.Unlock()
		return
	}

	data, status := f.Apply(s.state.Data, snap)
	s.state.Data = data
	s.state.Error = ""
	if !f.Optional {
		s.state.Status = status
	}
	current := s.state.Status
	s.mu.Unlock()

	s.log.Debug().Str("path", f.Path).Str("kind", string(snap.Kind)).Str("status", string(current)).Msg("Snapshot applied")
	s.Notify()
}

func (s *Section[V]) fail(f Feed[V], err error) {
	if f.Optional {
		s.log.Warn().Err(err).Str("path", f.Path).Msg("Optional feed failed")
		return
	}

	s.mu.Lock()
	if s.closed || s.state.Status == models.SectionError {
		s.mu.Unlock()
		return
	}
	s.state.Status = models.SectionError
	s.state.Error = err.Error()
	if s.opts.ErrorMessage != nil {
		s.state.Error = s.opts.ErrorMessage(err)
	}
	if s.opts.ErrorData != nil {
		s.state.Data = s.opts.ErrorData(s.state.Data)
	}
	s.mu.Unlock()

	s.log.Error().Err(err).Str("path", f.Path).Msg("Section feed failed")
	s.Notify()
}
