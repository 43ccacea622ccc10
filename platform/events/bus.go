package events

import (
	"context"
	"sync"

	"storefront_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// InMemoryBus is a simple in-process event bus. Handlers registered for an
// event name receive every published event of that name. Publish dispatches
// asynchronously; PublishSync waits and collects handler errors.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all handlers in separate goroutines.
// Handler errors are logged, never propagated to the publisher.
// Handlers outlive the publishing request, so they run on a context detached
// from the caller's cancelation; canceling the request after Publish returns
// must not abort an in-flight handler.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	ctx = context.WithoutCancel(ctx)

	b.mu.RLock()
	subscribed := make([]Handler, len(b.handlers[event.EventName()]))
	copy(subscribed, b.handlers[event.EventName()])
	b.mu.RUnlock()

	for _, h := range subscribed {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event handler panicked", "event", event.EventName(), "panic", r)
				}
			}()
			if err := h.Handle(ctx, event); err != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err)
			}
		}(h)
	}
}

// PublishSync dispatches the event to all handlers concurrently and waits for
// every one to finish. The first handler error is returned.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	subscribed := make([]Handler, len(b.handlers[event.EventName()]))
	copy(subscribed, b.handlers[event.EventName()])
	b.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, h := range subscribed {
		g.Go(func() error {
			if err := h.Handle(gctx, event); err != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Compile-time check that InMemoryBus implements Bus.
var _ Bus = (*InMemoryBus)(nil)
