package sourcing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/shared/valueobject"
)

// RequirementStatus represents the status of a sourcing requirement
type RequirementStatus string

const (
	RequirementStatusActive  RequirementStatus = "active"
	RequirementStatusClosed  RequirementStatus = "closed"
	RequirementStatusAwarded RequirementStatus = "awarded"
)

// IsValid checks if the status is a valid RequirementStatus
func (s RequirementStatus) IsValid() bool {
	switch s {
	case RequirementStatusActive, RequirementStatusClosed, RequirementStatusAwarded:
		return true
	}
	return false
}

// String returns the string representation of RequirementStatus
func (s RequirementStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Requirements only ever move forward: active -> closed or active -> awarded.
func (s RequirementStatus) CanTransitionTo(target RequirementStatus) bool {
	switch s {
	case RequirementStatusActive:
		return target == RequirementStatusClosed || target == RequirementStatusAwarded
	case RequirementStatusClosed, RequirementStatusAwarded:
		return false // Terminal states
	}
	return false
}

// Requirement represents an importer's sourcing request aggregate root.
// Exporters submit bids against it until the bid deadline passes or a bid
// is accepted, which awards the requirement.
type Requirement struct {
	shared.BaseAggregateRoot
	ImporterID       uuid.UUID
	Category         string
	Description      string
	Quantity         decimal.Decimal
	Unit             string
	TargetPrice      *decimal.Decimal
	Currency         valueobject.Currency
	DeliveryLocation string
	BidDeadline      time.Time
	DeliveryDeadline time.Time
	Status           RequirementStatus
	BidCount         int
	AwardedBidID     *uuid.UUID
	ClosedAt         *time.Time
	AwardedAt        *time.Time
}

// NewRequirementParams holds the inputs for creating a requirement
type NewRequirementParams struct {
	ImporterID       uuid.UUID
	Category         string
	Description      string
	Quantity         decimal.Decimal
	Unit             string
	TargetPrice      *decimal.Decimal
	Currency         valueobject.Currency
	DeliveryLocation string
	BidDeadline      time.Time
	DeliveryDeadline time.Time
}

// NewRequirement creates a new sourcing requirement
func NewRequirement(p NewRequirementParams) (*Requirement, error) {
	if p.ImporterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_IMPORTER", "Importer ID cannot be empty")
	}
	if p.Category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if p.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.Unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if p.Currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	if p.TargetPrice != nil && p.TargetPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_TARGET_PRICE", "Target price must be positive")
	}
	if !p.BidDeadline.Before(p.DeliveryDeadline) {
		return nil, shared.NewDomainError("INVALID_DEADLINES", "Bid deadline must be before delivery deadline")
	}

	req := &Requirement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ImporterID:        p.ImporterID,
		Category:          p.Category,
		Description:       p.Description,
		Quantity:          p.Quantity,
		Unit:              p.Unit,
		TargetPrice:       p.TargetPrice,
		Currency:          p.Currency,
		DeliveryLocation:  p.DeliveryLocation,
		BidDeadline:       p.BidDeadline,
		DeliveryDeadline:  p.DeliveryDeadline,
		Status:            RequirementStatusActive,
		BidCount:          0,
	}

	req.AddDomainEvent(NewRequirementPostedEvent(req))

	return req, nil
}

// IsOpenForBids returns true if the requirement still accepts bids at the
// given instant
func (r *Requirement) IsOpenForBids(now time.Time) bool {
	return r.Status == RequirementStatusActive && !now.After(r.BidDeadline)
}

// IsOwnedBy returns true if the requirement belongs to the given importer
func (r *Requirement) IsOwnedBy(importerID uuid.UUID) bool {
	return r.ImporterID == importerID
}

// RegisterBid increments the bid count when a new bid is admitted
func (r *Requirement) RegisterBid() {
	r.BidCount++
	r.UpdatedAt = time.Now()
}

// ReleaseBid decrements the bid count when a bid is withdrawn.
// The count never goes below zero.
func (r *Requirement) ReleaseBid() {
	if r.BidCount > 0 {
		r.BidCount--
	}
	r.UpdatedAt = time.Now()
}

// Close closes the requirement without awarding it
func (r *Requirement) Close() error {
	if !r.Status.CanTransitionTo(RequirementStatusClosed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close requirement in %s status", r.Status))
	}

	now := time.Now()
	r.Status = RequirementStatusClosed
	r.ClosedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewRequirementClosedEvent(r))

	return nil
}

// Award marks the requirement as awarded to the given bid.
// This happens exactly once, as part of the bid acceptance cascade.
func (r *Requirement) Award(bidID uuid.UUID) error {
	if bidID == uuid.Nil {
		return shared.NewDomainError("INVALID_BID_ID", "Bid ID cannot be empty")
	}
	if !r.Status.CanTransitionTo(RequirementStatusAwarded) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot award requirement in %s status", r.Status))
	}

	now := time.Now()
	r.Status = RequirementStatusAwarded
	r.AwardedBidID = &bidID
	r.AwardedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewRequirementAwardedEvent(r, bidID))

	return nil
}

// IsAwarded returns true if the requirement has been awarded
func (r *Requirement) IsAwarded() bool {
	return r.Status == RequirementStatusAwarded
}

// IsActive returns true if the requirement is active
func (r *Requirement) IsActive() bool {
	return r.Status == RequirementStatusActive
}

// TargetPriceInBase returns the target price converted to the base currency,
// or nil when no target price was declared
func (r *Requirement) TargetPriceInBase() *decimal.Decimal {
	if r.TargetPrice == nil {
		return nil
	}
	base := valueobject.ToBaseCurrency(*r.TargetPrice, r.Currency)
	return &base
}
