package event

import (
	"sync"

	"go.uber.org/zap"

	"github.com/tradegate/backend/internal/domain/shared"
)

// Handler processes a single domain event. Handlers must not block for
// long; publishing is synchronous.
type Handler func(event shared.DomainEvent)

// InMemoryEventBus is a synchronous in-process publisher for domain events.
// Application services publish aggregate events through it after a
// successful save; handlers react within the same process.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus.
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for the given event type.
func (b *InMemoryEventBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish dispatches each event to its subscribed handlers. A panicking
// handler is logged and does not prevent delivery to the others.
func (b *InMemoryEventBus) Publish(events ...shared.DomainEvent) {
	for _, evt := range events {
		b.mu.RLock()
		handlers := b.handlers[evt.EventType()]
		b.mu.RUnlock()

		b.logger.Debug("publishing domain event",
			zap.String("event_type", evt.EventType()),
			zap.String("event_id", evt.EventID().String()),
			zap.String("aggregate_type", evt.AggregateType()),
			zap.String("aggregate_id", evt.AggregateID().String()),
		)

		for _, handler := range handlers {
			b.dispatch(handler, evt)
		}
	}
}

func (b *InMemoryEventBus) dispatch(handler Handler, evt shared.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", evt.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	handler(evt)
}

var _ shared.EventPublisher = (*InMemoryEventBus)(nil)
