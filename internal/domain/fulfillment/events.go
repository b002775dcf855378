package fulfillment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/shared/valueobject"
)

// Aggregate type constants
const (
	AggregateTypeOrder = "Order"
)

// Event type constants
const (
	EventTypeOrderCreated       = "OrderCreated"
	EventTypeOrderPhaseAdvanced = "OrderPhaseAdvanced"
	EventTypeOrderCompleted     = "OrderCompleted"
	EventTypeOrderCancelled     = "OrderCancelled"
)

// OrderCreatedEvent is raised when an order is derived from an accepted bid
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID            `json:"order_id"`
	RequirementID uuid.UUID            `json:"requirement_id"`
	BidID         uuid.UUID            `json:"bid_id"`
	ImporterID    uuid.UUID            `json:"importer_id"`
	ExporterID    uuid.UUID            `json:"exporter_id"`
	TotalValue    decimal.Decimal      `json:"total_value"`
	Currency      valueobject.Currency `json:"currency"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		RequirementID:   o.RequirementID,
		BidID:           o.BidID,
		ImporterID:      o.ImporterID,
		ExporterID:      o.ExporterID,
		TotalValue:      o.TotalValue,
		Currency:        o.Currency,
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// OrderPhaseAdvancedEvent is raised when an order moves to the next phase
type OrderPhaseAdvancedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	ImporterID uuid.UUID `json:"importer_id"`
	ExporterID uuid.UUID `json:"exporter_id"`
	Phase      PhaseName `json:"phase"`
}

// NewOrderPhaseAdvancedEvent creates a new OrderPhaseAdvancedEvent
func NewOrderPhaseAdvancedEvent(o *Order, phase PhaseName) *OrderPhaseAdvancedEvent {
	return &OrderPhaseAdvancedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPhaseAdvanced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		ImporterID:      o.ImporterID,
		ExporterID:      o.ExporterID,
		Phase:           phase,
	}
}

// EventType returns the event type name
func (e *OrderPhaseAdvancedEvent) EventType() string {
	return EventTypeOrderPhaseAdvanced
}

// OrderCompletedEvent is raised when the delivery phase completes
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	ImporterID uuid.UUID       `json:"importer_id"`
	ExporterID uuid.UUID       `json:"exporter_id"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(o *Order) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		ImporterID:      o.ImporterID,
		ExporterID:      o.ExporterID,
		TotalValue:      o.TotalValue,
	}
}

// EventType returns the event type name
func (e *OrderCompletedEvent) EventType() string {
	return EventTypeOrderCompleted
}

// OrderCancelledEvent is raised when either counterparty cancels an order
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	ImporterID uuid.UUID `json:"importer_id"`
	ExporterID uuid.UUID `json:"exporter_id"`
	Reason     string    `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		ImporterID:      o.ImporterID,
		ExporterID:      o.ExporterID,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *OrderCancelledEvent) EventType() string {
	return EventTypeOrderCancelled
}
