// Package eventbus is an in-process publish/subscribe bus. Listeners run
// synchronously in subscription order; their errors and panics are logged
// and never reach the publisher.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Event is anything with a routing name.
type Event interface {
	Name() string
}

// Listener handles one event.
type Listener[E Event] func(ctx context.Context, event E) error

type Bus[E Event] struct {
	listeners map[string][]Listener[E]
	mu        sync.RWMutex
	logger    *slog.Logger
}

func New[E Event](logger *slog.Logger) *Bus[E] {
	return &Bus[E]{
		listeners: make(map[string][]Listener[E]),
		logger:    logger.With("component", "eventbus"),
	}
}

// Subscribe registers listener for events named eventName.
func (b *Bus[E]) Subscribe(eventName string, listener Listener[E]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish delivers events in order to every subscribed listener.
func (b *Bus[E]) Publish(ctx context.Context, events ...E) {
	for _, event := range events {
		b.mu.RLock()
		listeners := append([]Listener[E](nil), b.listeners[event.Name()]...)
		b.mu.RUnlock()

		for _, listener := range listeners {
			if err := b.call(ctx, listener, event); err != nil {
				b.logger.ErrorContext(ctx, "event listener failed",
					"event", event.Name(),
					"error", err,
				)
			}
		}
	}
}

func (b *Bus[E]) call(ctx context.Context, listener Listener[E], event E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panic: %v", r)
		}
	}()
	return listener(ctx, event)
}
