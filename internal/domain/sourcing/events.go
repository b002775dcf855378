package sourcing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/shared/valueobject"
)

// Aggregate type constants
const (
	AggregateTypeRequirement = "Requirement"
	AggregateTypeBid         = "Bid"
)

// Event type constants
const (
	EventTypeRequirementPosted  = "RequirementPosted"
	EventTypeRequirementClosed  = "RequirementClosed"
	EventTypeRequirementAwarded = "RequirementAwarded"
	EventTypeBidSubmitted       = "BidSubmitted"
	EventTypeBidWithdrawn       = "BidWithdrawn"
	EventTypeBidAccepted        = "BidAccepted"
)

// RequirementPostedEvent is raised when an importer posts a new requirement
type RequirementPostedEvent struct {
	shared.BaseDomainEvent
	RequirementID uuid.UUID            `json:"requirement_id"`
	ImporterID    uuid.UUID            `json:"importer_id"`
	Category      string               `json:"category"`
	Quantity      decimal.Decimal      `json:"quantity"`
	Unit          string               `json:"unit"`
	Currency      valueobject.Currency `json:"currency"`
}

// NewRequirementPostedEvent creates a new RequirementPostedEvent
func NewRequirementPostedEvent(r *Requirement) *RequirementPostedEvent {
	return &RequirementPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequirementPosted, AggregateTypeRequirement, r.ID),
		RequirementID:   r.ID,
		ImporterID:      r.ImporterID,
		Category:        r.Category,
		Quantity:        r.Quantity,
		Unit:            r.Unit,
		Currency:        r.Currency,
	}
}

// EventType returns the event type name
func (e *RequirementPostedEvent) EventType() string {
	return EventTypeRequirementPosted
}

// RequirementClosedEvent is raised when a requirement is closed without award
type RequirementClosedEvent struct {
	shared.BaseDomainEvent
	RequirementID uuid.UUID `json:"requirement_id"`
	ImporterID    uuid.UUID `json:"importer_id"`
}

// NewRequirementClosedEvent creates a new RequirementClosedEvent
func NewRequirementClosedEvent(r *Requirement) *RequirementClosedEvent {
	return &RequirementClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequirementClosed, AggregateTypeRequirement, r.ID),
		RequirementID:   r.ID,
		ImporterID:      r.ImporterID,
	}
}

// EventType returns the event type name
func (e *RequirementClosedEvent) EventType() string {
	return EventTypeRequirementClosed
}

// RequirementAwardedEvent is raised when a requirement is awarded to a bid
type RequirementAwardedEvent struct {
	shared.BaseDomainEvent
	RequirementID uuid.UUID `json:"requirement_id"`
	ImporterID    uuid.UUID `json:"importer_id"`
	BidID         uuid.UUID `json:"bid_id"`
}

// NewRequirementAwardedEvent creates a new RequirementAwardedEvent
func NewRequirementAwardedEvent(r *Requirement, bidID uuid.UUID) *RequirementAwardedEvent {
	return &RequirementAwardedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequirementAwarded, AggregateTypeRequirement, r.ID),
		RequirementID:   r.ID,
		ImporterID:      r.ImporterID,
		BidID:           bidID,
	}
}

// EventType returns the event type name
func (e *RequirementAwardedEvent) EventType() string {
	return EventTypeRequirementAwarded
}

// BidSubmittedEvent is raised when an exporter submits a bid
type BidSubmittedEvent struct {
	shared.BaseDomainEvent
	BidID         uuid.UUID            `json:"bid_id"`
	RequirementID uuid.UUID            `json:"requirement_id"`
	ExporterID    uuid.UUID            `json:"exporter_id"`
	Price         decimal.Decimal      `json:"price"`
	Currency      valueobject.Currency `json:"currency"`
}

// NewBidSubmittedEvent creates a new BidSubmittedEvent
func NewBidSubmittedEvent(b *Bid) *BidSubmittedEvent {
	return &BidSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBidSubmitted, AggregateTypeBid, b.ID),
		BidID:           b.ID,
		RequirementID:   b.RequirementID,
		ExporterID:      b.ExporterID,
		Price:           b.Price,
		Currency:        b.Currency,
	}
}

// EventType returns the event type name
func (e *BidSubmittedEvent) EventType() string {
	return EventTypeBidSubmitted
}

// BidWithdrawnEvent is raised when an exporter withdraws a bid
type BidWithdrawnEvent struct {
	shared.BaseDomainEvent
	BidID         uuid.UUID `json:"bid_id"`
	RequirementID uuid.UUID `json:"requirement_id"`
	ExporterID    uuid.UUID `json:"exporter_id"`
}

// NewBidWithdrawnEvent creates a new BidWithdrawnEvent
func NewBidWithdrawnEvent(b *Bid) *BidWithdrawnEvent {
	return &BidWithdrawnEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBidWithdrawn, AggregateTypeBid, b.ID),
		BidID:           b.ID,
		RequirementID:   b.RequirementID,
		ExporterID:      b.ExporterID,
	}
}

// EventType returns the event type name
func (e *BidWithdrawnEvent) EventType() string {
	return EventTypeBidWithdrawn
}

// BidAcceptedEvent is raised when the requirement owner accepts a bid.
// Order creation takes this event's bid as its source.
type BidAcceptedEvent struct {
	shared.BaseDomainEvent
	BidID         uuid.UUID `json:"bid_id"`
	RequirementID uuid.UUID `json:"requirement_id"`
	ExporterID    uuid.UUID `json:"exporter_id"`
}

// NewBidAcceptedEvent creates a new BidAcceptedEvent
func NewBidAcceptedEvent(b *Bid) *BidAcceptedEvent {
	return &BidAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBidAccepted, AggregateTypeBid, b.ID),
		BidID:           b.ID,
		RequirementID:   b.RequirementID,
		ExporterID:      b.ExporterID,
	}
}

// EventType returns the event type name
func (e *BidAcceptedEvent) EventType() string {
	return EventTypeBidAccepted
}
