package feed

import (
	"context"
	"sync"
)

// Bus carries "path changed" notifications between writers and hubs
type Bus interface {
	Publish(ctx context.Context, path string) error
	Start(ctx context.Context, onChange func(path string)) error
	Close() error
}

// memoryBus fans notifications out inside one process
type memoryBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]func(string)
}

// NewMemoryBus creates an in-process bus
func NewMemoryBus() Bus {
	return &memoryBus{handlers: make(map[int]func(string))}
}

// Publish calls every started handler synchronously. Each handler sees
// publishes in order.
func (b *memoryBus) Publish(_ context.Context, path string) error {
	b.mu.RLock()
	handlers := make([]func(string), 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(path)
	}
	return nil
}

// Start registers onChange until ctx is done
func (b *memoryBus) Start(ctx context.Context, onChange func(path string)) error {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = onChange
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	b.handlers = make(map[int]func(string))
	b.mu.Unlock()
	return nil
}
