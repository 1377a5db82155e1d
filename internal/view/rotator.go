package view

import (
	"context"
	"sync"
	"time"
)

// Rotator cycles through hero images on a fixed interval. A load failure on
// the current image advances immediately. An empty list shows a single
// placeholder and never rotates.
type Rotator struct {
	mu          sync.Mutex
	images      []string
	placeholder string
	index       int

	// cbMu is held while onChange runs; stopped is guarded by it
	cbMu     sync.Mutex
	onChange func(index int)
	stopped  bool

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRotator creates a rotator positioned on the first image
func NewRotator(images []string, placeholder string) *Rotator {
	return &Rotator{
		images:      append([]string(nil), images...),
		placeholder: placeholder,
	}
}

// OnChange registers fn to run after every index change
func (r *Rotator) OnChange(fn func(index int)) {
	r.cbMu.Lock()
	r.onChange = fn
	r.cbMu.Unlock()
}

// Rotating reports whether there is a real image list to cycle
func (r *Rotator) Rotating() bool {
	return len(r.images) > 0
}

// Images returns the displayed list: the images, or just the placeholder
func (r *Rotator) Images() []string {
	if len(r.images) == 0 {
		return []string{r.placeholder}
	}
	return append([]string(nil), r.images...)
}

// Current returns the index and URL of the displayed image
func (r *Rotator) Current() (int, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.images) == 0 {
		return 0, r.placeholder
	}
	return r.index, r.images[r.index]
}

// Advance moves to the next image, wrapping at the end
func (r *Rotator) Advance() int {
	r.mu.Lock()
	prev := r.index
	next := r.step()
	r.mu.Unlock()

	if next != prev {
		r.notify(next)
	}
	return next
}

// Fail reports that the image at index failed to load. Reports for an image
// that is no longer displayed are ignored, so concurrent reports of the same
// image advance once.
func (r *Rotator) Fail(index int) int {
	r.mu.Lock()
	prev := r.index
	if len(r.images) == 0 || index != prev {
		r.mu.Unlock()
		return prev
	}
	next := r.step()
	r.mu.Unlock()

	if next != prev {
		r.notify(next)
	}
	return next
}

// step advances the index. r.mu must be held.
func (r *Rotator) step() int {
	if len(r.images) == 0 {
		return 0
	}
	r.index = (r.index + 1) % len(r.images)
	return r.index
}

// Start advances on every tick of interval until ctx is done or Stop is
// called. It does nothing for an empty list or when already running.
func (r *Rotator) Start(ctx context.Context, interval time.Duration) {
	if len(r.images) == 0 || interval <= 0 {
		return
	}

	r.runMu.Lock()
	defer r.runMu.Unlock()
	if r.cancel != nil {
		return
	}

	r.cbMu.Lock()
	r.stopped = false
	r.cbMu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Advance()
			}
		}
	}()
}

// Stop halts the ticker and waits for it to exit. No change callback runs
// once Stop returns.
func (r *Rotator) Stop() {
	r.runMu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.wg.Wait()
		r.cancel = nil
	}
	r.runMu.Unlock()

	r.cbMu.Lock()
	r.stopped = true
	r.cbMu.Unlock()
}

func (r *Rotator) notify(index int) {
	r.cbMu.Lock()
	defer r.cbMu.Unlock()
	if r.stopped || r.onChange == nil {
		return
	}
	r.onChange(index)
}
