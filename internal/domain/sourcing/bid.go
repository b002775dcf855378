package sourcing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/shared/valueobject"
)

// BidStatus represents the status of a bid
type BidStatus string

const (
	BidStatusActive    BidStatus = "active"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
	BidStatusWithdrawn BidStatus = "withdrawn"
)

// IsValid checks if the status is a valid BidStatus
func (s BidStatus) IsValid() bool {
	switch s {
	case BidStatusActive, BidStatusAccepted, BidStatusRejected, BidStatusWithdrawn:
		return true
	}
	return false
}

// String returns the string representation of BidStatus
func (s BidStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s BidStatus) CanTransitionTo(target BidStatus) bool {
	switch s {
	case BidStatusActive:
		return target == BidStatusAccepted || target == BidStatusRejected || target == BidStatusWithdrawn
	case BidStatusAccepted, BidStatusRejected, BidStatusWithdrawn:
		return false // Terminal states
	}
	return false
}

// Blocks returns true if a bid in this status blocks the same exporter from
// submitting another bid on the same requirement
func (s BidStatus) Blocks() bool {
	return s == BidStatusActive || s == BidStatusAccepted
}

// Bid represents an exporter's priced, timed offer against a requirement.
// It is an aggregate root; at most one active-or-accepted bid may exist per
// (exporter, requirement) pair, enforced at submission by the integrity
// validator.
type Bid struct {
	shared.BaseAggregateRoot
	RequirementID    uuid.UUID
	ExporterID       uuid.UUID
	Price            decimal.Decimal
	Currency         valueobject.Currency
	DeliveryTime     int
	DeliveryTimeUnit valueobject.DeliveryTimeUnit
	PaymentTerms     string
	DeliveryTerms    string
	ValidUntil       *time.Time
	Status           BidStatus
	AcceptedAt       *time.Time
	RejectedAt       *time.Time
	WithdrawnAt      *time.Time
}

// NewBidParams holds the inputs for creating a bid
type NewBidParams struct {
	RequirementID    uuid.UUID
	ExporterID       uuid.UUID
	Price            valueobject.Money
	DeliveryTime     int
	DeliveryTimeUnit valueobject.DeliveryTimeUnit
	PaymentTerms     string
	DeliveryTerms    string
	ValidUntil       *time.Time
}

// NewBid creates a new bid in active status
func NewBid(p NewBidParams) (*Bid, error) {
	if p.RequirementID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUIREMENT", "Requirement ID cannot be empty")
	}
	if p.ExporterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXPORTER", "Exporter ID cannot be empty")
	}
	if err := validateCommercialTerms(p.Price, p.DeliveryTime, p.DeliveryTimeUnit); err != nil {
		return nil, err
	}

	bid := &Bid{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequirementID:     p.RequirementID,
		ExporterID:        p.ExporterID,
		Price:             p.Price.Amount(),
		Currency:          p.Price.Currency(),
		DeliveryTime:      p.DeliveryTime,
		DeliveryTimeUnit:  p.DeliveryTimeUnit,
		PaymentTerms:      p.PaymentTerms,
		DeliveryTerms:     p.DeliveryTerms,
		ValidUntil:        p.ValidUntil,
		Status:            BidStatusActive,
	}

	bid.AddDomainEvent(NewBidSubmittedEvent(bid))

	return bid, nil
}

// UpdateTermsParams holds the inputs for revising an active bid
type UpdateTermsParams struct {
	Price            valueobject.Money
	DeliveryTime     int
	DeliveryTimeUnit valueobject.DeliveryTimeUnit
	PaymentTerms     string
	DeliveryTerms    string
	ValidUntil       *time.Time
}

// UpdateTerms revises the commercial terms of an active bid
func (b *Bid) UpdateTerms(p UpdateTermsParams) error {
	if b.Status != BidStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update bid in %s status", b.Status))
	}
	if err := validateCommercialTerms(p.Price, p.DeliveryTime, p.DeliveryTimeUnit); err != nil {
		return err
	}

	b.Price = p.Price.Amount()
	b.Currency = p.Price.Currency()
	b.DeliveryTime = p.DeliveryTime
	b.DeliveryTimeUnit = p.DeliveryTimeUnit
	b.PaymentTerms = p.PaymentTerms
	b.DeliveryTerms = p.DeliveryTerms
	b.ValidUntil = p.ValidUntil
	b.UpdatedAt = time.Now()

	return nil
}

// Withdraw withdraws an active bid
func (b *Bid) Withdraw() error {
	if !b.Status.CanTransitionTo(BidStatusWithdrawn) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot withdraw bid in %s status", b.Status))
	}

	now := time.Now()
	b.Status = BidStatusWithdrawn
	b.WithdrawnAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBidWithdrawnEvent(b))

	return nil
}

// Accept marks the bid as accepted
func (b *Bid) Accept() error {
	if !b.Status.CanTransitionTo(BidStatusAccepted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept bid in %s status", b.Status))
	}

	now := time.Now()
	b.Status = BidStatusAccepted
	b.AcceptedAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBidAcceptedEvent(b))

	return nil
}

// Reject marks the bid as rejected
func (b *Bid) Reject() error {
	if !b.Status.CanTransitionTo(BidStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject bid in %s status", b.Status))
	}

	now := time.Now()
	b.Status = BidStatusRejected
	b.RejectedAt = &now
	b.UpdatedAt = now

	return nil
}

// IsOwnedBy returns true if the bid belongs to the given exporter
func (b *Bid) IsOwnedBy(exporterID uuid.UUID) bool {
	return b.ExporterID == exporterID
}

// IsActive returns true if the bid is active
func (b *Bid) IsActive() bool {
	return b.Status == BidStatusActive
}

// IsAccepted returns true if the bid has been accepted
func (b *Bid) IsAccepted() bool {
	return b.Status == BidStatusAccepted
}

// PriceMoney returns the bid price as a Money value object
func (b *Bid) PriceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(b.Price, b.Currency)
	return m
}

// NormalizedPrice returns the bid price converted to the base currency
func (b *Bid) NormalizedPrice() decimal.Decimal {
	return valueobject.ToBaseCurrency(b.Price, b.Currency)
}

// NormalizedDeliveryDays returns the delivery time converted to days
func (b *Bid) NormalizedDeliveryDays() int {
	return valueobject.ToBaseDays(b.DeliveryTime, b.DeliveryTimeUnit)
}

func validateCommercialTerms(price valueobject.Money, deliveryTime int, unit valueobject.DeliveryTimeUnit) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Bid price must be positive")
	}
	if !price.Currency().IsSupported() {
		return shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency %s", price.Currency()))
	}
	if deliveryTime <= 0 {
		return shared.NewDomainError("INVALID_DELIVERY_TIME", "Delivery time must be positive")
	}
	if !unit.IsValid() {
		return shared.NewDomainError("INVALID_DELIVERY_TIME_UNIT", fmt.Sprintf("Unsupported delivery time unit %s", unit))
	}
	return nil
}
