package fulfillment

import (
	"time"

	"github.com/google/uuid"
)

// PhaseName identifies one stage of the fixed delivery pipeline
type PhaseName string

const (
	PhaseConfirmation PhaseName = "confirmation"
	PhasePayment      PhaseName = "payment"
	PhaseProduction   PhaseName = "production"
	PhaseInspection   PhaseName = "inspection"
	PhaseShipping     PhaseName = "shipping"
	PhaseDelivery     PhaseName = "delivery"
)

// PhaseSequence is the total order of delivery phases. Orders walk this
// sequence front to back; no phase may be skipped or revisited.
var PhaseSequence = []PhaseName{
	PhaseConfirmation,
	PhasePayment,
	PhaseProduction,
	PhaseInspection,
	PhaseShipping,
	PhaseDelivery,
}

// PhaseIndex returns the position of the phase in the sequence, or -1 for an
// unknown phase name
func PhaseIndex(name PhaseName) int {
	for i, p := range PhaseSequence {
		if p == name {
			return i
		}
	}
	return -1
}

// IsValid checks if the name is a recognized PhaseName
func (n PhaseName) IsValid() bool {
	return PhaseIndex(n) >= 0
}

// String returns the string representation of PhaseName
func (n PhaseName) String() string {
	return string(n)
}

// PhaseStatus represents the sub-status of a single phase
type PhaseStatus string

const (
	PhaseStatusNotStarted PhaseStatus = "not_started"
	PhaseStatusPending    PhaseStatus = "pending"
	PhaseStatusCompleted  PhaseStatus = "completed"
)

// IsValid checks if the status is a valid PhaseStatus
func (s PhaseStatus) IsValid() bool {
	switch s {
	case PhaseStatusNotStarted, PhaseStatusPending, PhaseStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of PhaseStatus
func (s PhaseStatus) String() string {
	return string(s)
}

// OrderPhase is the per-phase record tracked on every order. While the order
// is active exactly one phase is pending, all earlier ones are completed and
// all later ones are not started.
type OrderPhase struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Name        PhaseName
	Sequence    int
	Status      PhaseStatus
	Documents   []string `gorm:"serializer:json"`
	Notes       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	UpdatedBy   *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func newOrderPhase(orderID uuid.UUID, name PhaseName, sequence int) *OrderPhase {
	now := time.Now()
	return &OrderPhase{
		ID:        uuid.New(),
		OrderID:   orderID,
		Name:      name,
		Sequence:  sequence,
		Status:    PhaseStatusNotStarted,
		Documents: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *OrderPhase) open(actorID uuid.UUID) {
	now := time.Now()
	p.Status = PhaseStatusPending
	p.StartedAt = &now
	p.UpdatedBy = &actorID
	p.UpdatedAt = now
}

func (p *OrderPhase) complete(actorID uuid.UUID) {
	now := time.Now()
	p.Status = PhaseStatusCompleted
	p.CompletedAt = &now
	p.UpdatedBy = &actorID
	p.UpdatedAt = now
}

func (p *OrderPhase) attachDocuments(documents []string, actorID uuid.UUID) {
	p.Documents = append(p.Documents, documents...)
	p.UpdatedBy = &actorID
	p.UpdatedAt = time.Now()
}

func (p *OrderPhase) setNotes(notes string, actorID uuid.UUID) {
	p.Notes = notes
	p.UpdatedBy = &actorID
	p.UpdatedAt = time.Now()
}
