package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.event" }

func TestPublishSyncRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var mu sync.Mutex
	calls := 0
	handler := HandlerFunc(func(context.Context, Event) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return nil
	})

	bus.Subscribe("test.event", handler)
	bus.Subscribe("test.event", handler)
	bus.Subscribe("other.event", handler)

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}
	if calls != 2 {
		t.Errorf("got %d handler calls, want 2", calls)
	}
}

// Publishers like the checkout flow hand Publish a request-scoped context and
// the request ends as soon as the response goes out. Handlers must still see a
// live context or every async side effect dies with "context canceled".
func TestPublishOutlivesCallerContext(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	handlerCtxErr := make(chan error, 1)
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, _ Event) error {
		handlerCtxErr <- ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{BaseEvent: NewBaseEvent()})

	select {
	case err := <-handlerCtxErr:
		if err != nil {
			t.Fatalf("handler got a dead context: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestPublishSyncPropagatesHandlerError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	want := errors.New("handler failed")

	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		return want
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, want) {
		t.Fatalf("got %v, want %v", err, want)
	}
}
