package events

import (
	"context"
	"sync"
)

// Handler consumes a published event. Handlers run synchronously on the
// publisher's goroutine.
type Handler func(context.Context, Event) error

// Dispatcher fans ticket events out to subscribed handlers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler Handler)
}

type memoryDispatcher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Handler
}

// NewInMemoryDispatcher builds the in-process dispatcher the engine runs
// on. Delivery is synchronous and best-effort: one failing subscriber
// never starves the rest.
func NewInMemoryDispatcher() Dispatcher {
	return &memoryDispatcher{subscribers: map[EventType][]Handler{}}
}

func (d *memoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	subscribed := append([]Handler(nil), d.subscribers[event.Type]...)
	d.mu.RUnlock()

	for _, handle := range subscribed {
		_ = handle(ctx, event) // best-effort fan-out
	}
	return nil
}

func (d *memoryDispatcher) Subscribe(eventType EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers[eventType] = append(d.subscribers[eventType], handler)
}
