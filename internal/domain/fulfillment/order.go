package fulfillment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/shared/valueobject"
	"github.com/tradegate/backend/internal/domain/sourcing"
)

// OrderStatus represents the overall status of an order
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusDisputed  OrderStatus = "disputed"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusActive, OrderStatusCompleted, OrderStatusCancelled, OrderStatusDisputed:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// Order is the fulfillment record derived 1:1 from an accepted bid.
// Commercial terms are denormalized from the requirement and the bid at
// creation time so the order stands on its own once the sourcing records
// close. The order walks the fixed phase sequence and becomes immutable
// once completed or cancelled.
type Order struct {
	shared.BaseAggregateRoot
	RequirementID      uuid.UUID
	BidID              uuid.UUID `gorm:"uniqueIndex"`
	ImporterID         uuid.UUID
	ExporterID         uuid.UUID
	Category           string
	Quantity           decimal.Decimal
	Unit               string
	PricePerUnit       decimal.Decimal
	Currency           valueobject.Currency
	TotalValue         decimal.Decimal
	PaymentTerms       string
	DeliveryTerms      string
	DeliveryLocation   string
	EstimatedDelivery  time.Time
	Status             OrderStatus
	CurrentPhase       PhaseName
	Phases             []*OrderPhase `gorm:"foreignKey:OrderID"`
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancelledBy        *uuid.UUID
	CancellationReason string
}

// NewOrderFromBid creates an order from an accepted bid and its requirement.
// The confirmation phase opens immediately; every later phase starts as
// not_started.
func NewOrderFromBid(requirement *sourcing.Requirement, bid *sourcing.Bid) (*Order, error) {
	if requirement == nil || bid == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requirement and bid are required")
	}
	if bid.RequirementID != requirement.ID {
		return nil, shared.NewDomainError("BID_MISMATCH", "Bid does not belong to the requirement")
	}
	if !bid.IsAccepted() {
		return nil, shared.NewDomainError("BID_NOT_ACCEPTED", "Orders can only be created from accepted bids")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequirementID:     requirement.ID,
		BidID:             bid.ID,
		ImporterID:        requirement.ImporterID,
		ExporterID:        bid.ExporterID,
		Category:          requirement.Category,
		Quantity:          requirement.Quantity,
		Unit:              requirement.Unit,
		PricePerUnit:      bid.Price,
		Currency:          bid.Currency,
		TotalValue:        bid.Price.Mul(requirement.Quantity),
		PaymentTerms:      bid.PaymentTerms,
		DeliveryTerms:     bid.DeliveryTerms,
		DeliveryLocation:  requirement.DeliveryLocation,
		EstimatedDelivery: time.Now().AddDate(0, 0, bid.NormalizedDeliveryDays()),
		Status:            OrderStatusActive,
		CurrentPhase:      PhaseConfirmation,
	}

	order.Phases = make([]*OrderPhase, 0, len(PhaseSequence))
	for i, name := range PhaseSequence {
		order.Phases = append(order.Phases, newOrderPhase(order.ID, name, i))
	}
	order.Phases[0].open(requirement.ImporterID)

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AdvanceParams holds the inputs for an advance-phase command
type AdvanceParams struct {
	TargetPhase       *PhaseName
	Notes             string
	Documents         []string
	EstimatedDelivery *time.Time
	ActorID           uuid.UUID
}

// Advance moves the order through the phase sequence. The target may be the
// current phase (a metadata-only update) or the next phase (completing the
// current one and opening the next). Regression and skipping are rejected,
// never clamped. Advancing while the delivery phase is current completes it
// and the order with it.
func (o *Order) Advance(p AdvanceParams) error {
	if o.Status != OrderStatusActive {
		return shared.NewDomainError("ORDER_NOT_ACTIVE", fmt.Sprintf("Cannot advance order in %s status", o.Status))
	}
	if !o.IsParty(p.ActorID) {
		return shared.ErrForbidden
	}

	currentIdx := PhaseIndex(o.CurrentPhase)

	target := o.nextPhase()
	if p.TargetPhase != nil {
		if !p.TargetPhase.IsValid() {
			return shared.NewDomainError("INVALID_PHASE", fmt.Sprintf("Unknown phase %s", *p.TargetPhase))
		}
		target = *p.TargetPhase
	}
	targetIdx := PhaseIndex(target)

	if targetIdx < currentIdx {
		return shared.NewDomainError("PHASE_REGRESSION",
			fmt.Sprintf("Cannot move back from %s to %s", o.CurrentPhase, target))
	}
	if targetIdx > currentIdx+1 {
		return shared.NewDomainError("PHASE_SKIP",
			fmt.Sprintf("Cannot skip from %s to %s", o.CurrentPhase, target))
	}

	switch {
	case targetIdx == currentIdx+1:
		if o.Phases[currentIdx].Status == PhaseStatusPending {
			o.Phases[currentIdx].complete(p.ActorID)
		}
		o.Phases[targetIdx].open(p.ActorID)
		o.CurrentPhase = target
		o.AddDomainEvent(NewOrderPhaseAdvancedEvent(o, target))
	case target == PhaseDelivery:
		// Advancing while already on the final phase closes it out.
		o.Phases[currentIdx].complete(p.ActorID)
		now := time.Now()
		o.Status = OrderStatusCompleted
		o.CompletedAt = &now
		o.AddDomainEvent(NewOrderCompletedEvent(o))
	}

	current := o.Phases[PhaseIndex(o.CurrentPhase)]
	if p.Notes != "" {
		current.setNotes(p.Notes, p.ActorID)
	}
	if len(p.Documents) > 0 {
		current.attachDocuments(p.Documents, p.ActorID)
	}
	if p.EstimatedDelivery != nil {
		o.EstimatedDelivery = *p.EstimatedDelivery
	}
	o.UpdatedAt = time.Now()

	return nil
}

// AttachDocuments appends documents to any phase of an active order.
// The phase does not need to be current and its status is unchanged.
func (o *Order) AttachDocuments(phase PhaseName, documents []string, actorID uuid.UUID) error {
	if o.Status != OrderStatusActive {
		return shared.NewDomainError("ORDER_NOT_ACTIVE", fmt.Sprintf("Cannot attach documents to order in %s status", o.Status))
	}
	if !o.IsParty(actorID) {
		return shared.ErrForbidden
	}
	idx := PhaseIndex(phase)
	if idx < 0 {
		return shared.NewDomainError("INVALID_PHASE", fmt.Sprintf("Unknown phase %s", phase))
	}
	if len(documents) == 0 {
		return shared.NewDomainError("INVALID_DOCUMENTS", "At least one document is required")
	}

	o.Phases[idx].attachDocuments(documents, actorID)
	o.UpdatedAt = time.Now()

	return nil
}

// Cancel cancels an active order under the default policy
func (o *Order) Cancel(reason string, actorID uuid.UUID) error {
	return o.CancelWithPolicy(reason, actorID, DefaultOrderPolicy())
}

// CancelWithPolicy cancels an active order. The policy decides how far into
// the phase sequence the cancellation window stays open.
func (o *Order) CancelWithPolicy(reason string, actorID uuid.UUID, policy OrderPolicy) error {
	if o.Status != OrderStatusActive {
		return shared.NewDomainError("ORDER_NOT_ACTIVE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if !o.IsParty(actorID) {
		return shared.ErrForbidden
	}
	if !policy.CancellableAt(o.CurrentPhase) {
		return shared.NewDomainError("CANCELLATION_WINDOW_CLOSED",
			fmt.Sprintf("Orders cannot be cancelled once the %s phase is reached", o.CurrentPhase))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelledBy = &actorID
	o.CancellationReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))

	return nil
}

// IsParty returns true if the principal is the importer or exporter of the
// order
func (o *Order) IsParty(principalID uuid.UUID) bool {
	return principalID == o.ImporterID || principalID == o.ExporterID
}

// IsActive returns true if the order is active
func (o *Order) IsActive() bool {
	return o.Status == OrderStatusActive
}

// Phase returns the record for the named phase, or nil for an unknown name
func (o *Order) Phase(name PhaseName) *OrderPhase {
	idx := PhaseIndex(name)
	if idx < 0 || idx >= len(o.Phases) {
		return nil
	}
	return o.Phases[idx]
}

// TotalValueMoney returns the order's total value as a Money value object
func (o *Order) TotalValueMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.TotalValue, o.Currency)
	return m
}

func (o *Order) nextPhase() PhaseName {
	idx := PhaseIndex(o.CurrentPhase)
	if idx+1 < len(PhaseSequence) {
		return PhaseSequence[idx+1]
	}
	return o.CurrentPhase
}
