package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/fulfillment"
)

// CreateOrderRequest represents a request to derive an order from an
// accepted bid
type CreateOrderRequest struct {
	BidID uuid.UUID `json:"bid_id" binding:"required"`
}

// AdvancePhaseRequest represents a phase-advance command
type AdvancePhaseRequest struct {
	TargetPhase       *string    `json:"target_phase"`
	Notes             string     `json:"notes" binding:"max=2000"`
	Documents         []string   `json:"documents"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// AttachDocumentsRequest represents a document attachment to a named phase
type AttachDocumentsRequest struct {
	Documents []string `json:"documents" binding:"required,min=1"`
}

// CancelOrderRequest represents an order cancellation
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// OrderPhaseResponse represents one phase record in API responses
type OrderPhaseResponse struct {
	Name        string     `json:"name"`
	Sequence    int        `json:"sequence"`
	Status      string     `json:"status"`
	Documents   []string   `json:"documents"`
	Notes       string     `json:"notes,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedBy   *uuid.UUID `json:"updated_by,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                 uuid.UUID            `json:"id"`
	RequirementID      uuid.UUID            `json:"requirement_id"`
	BidID              uuid.UUID            `json:"bid_id"`
	ImporterID         uuid.UUID            `json:"importer_id"`
	ExporterID         uuid.UUID            `json:"exporter_id"`
	Category           string               `json:"category"`
	Quantity           decimal.Decimal      `json:"quantity"`
	Unit               string               `json:"unit"`
	PricePerUnit       decimal.Decimal      `json:"price_per_unit"`
	Currency           string               `json:"currency"`
	TotalValue         decimal.Decimal      `json:"total_value"`
	PaymentTerms       string               `json:"payment_terms"`
	DeliveryTerms      string               `json:"delivery_terms"`
	DeliveryLocation   string               `json:"delivery_location"`
	EstimatedDelivery  time.Time            `json:"estimated_delivery"`
	Status             string               `json:"status"`
	CurrentPhase       string               `json:"current_phase"`
	Phases             []OrderPhaseResponse `json:"phases"`
	CompletedAt        *time.Time           `json:"completed_at,omitempty"`
	CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// ToOrderResponse converts an order to its response representation
func ToOrderResponse(o *fulfillment.Order) OrderResponse {
	phases := make([]OrderPhaseResponse, 0, len(o.Phases))
	for _, p := range o.Phases {
		phases = append(phases, OrderPhaseResponse{
			Name:        p.Name.String(),
			Sequence:    p.Sequence,
			Status:      p.Status.String(),
			Documents:   p.Documents,
			Notes:       p.Notes,
			StartedAt:   p.StartedAt,
			CompletedAt: p.CompletedAt,
			UpdatedBy:   p.UpdatedBy,
		})
	}

	return OrderResponse{
		ID:                 o.ID,
		RequirementID:      o.RequirementID,
		BidID:              o.BidID,
		ImporterID:         o.ImporterID,
		ExporterID:         o.ExporterID,
		Category:           o.Category,
		Quantity:           o.Quantity,
		Unit:               o.Unit,
		PricePerUnit:       o.PricePerUnit,
		Currency:           o.Currency.String(),
		TotalValue:         o.TotalValue,
		PaymentTerms:       o.PaymentTerms,
		DeliveryTerms:      o.DeliveryTerms,
		DeliveryLocation:   o.DeliveryLocation,
		EstimatedDelivery:  o.EstimatedDelivery,
		Status:             o.Status.String(),
		CurrentPhase:       o.CurrentPhase.String(),
		Phases:             phases,
		CompletedAt:        o.CompletedAt,
		CancelledAt:        o.CancelledAt,
		CancellationReason: o.CancellationReason,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

// OrderListFilter represents filtering options for order lists
type OrderListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}
