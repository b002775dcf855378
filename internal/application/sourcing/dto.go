package sourcing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/sourcing"
)

// ==================== Requirement DTOs ====================

// CreateRequirementRequest represents a request to post a sourcing requirement
type CreateRequirementRequest struct {
	Category         string           `json:"category" binding:"required,min=1,max=100"`
	Description      string           `json:"description" binding:"max=2000"`
	Quantity         decimal.Decimal  `json:"quantity" binding:"required"`
	Unit             string           `json:"unit" binding:"required,min=1,max=20"`
	TargetPrice      *decimal.Decimal `json:"target_price"`
	Currency         string           `json:"currency" binding:"required,currency"`
	DeliveryLocation string           `json:"delivery_location" binding:"max=200"`
	BidDeadline      time.Time        `json:"bid_deadline" binding:"required"`
	DeliveryDeadline time.Time        `json:"delivery_deadline" binding:"required"`
}

// RequirementResponse represents a requirement in API responses
type RequirementResponse struct {
	ID               uuid.UUID        `json:"id"`
	ImporterID       uuid.UUID        `json:"importer_id"`
	Category         string           `json:"category"`
	Description      string           `json:"description"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Unit             string           `json:"unit"`
	TargetPrice      *decimal.Decimal `json:"target_price,omitempty"`
	Currency         string           `json:"currency"`
	DeliveryLocation string           `json:"delivery_location"`
	BidDeadline      time.Time        `json:"bid_deadline"`
	DeliveryDeadline time.Time        `json:"delivery_deadline"`
	Status           string           `json:"status"`
	BidCount         int              `json:"bid_count"`
	AwardedBidID     *uuid.UUID       `json:"awarded_bid_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToRequirementResponse converts a requirement to its response representation
func ToRequirementResponse(r *sourcing.Requirement) RequirementResponse {
	return RequirementResponse{
		ID:               r.ID,
		ImporterID:       r.ImporterID,
		Category:         r.Category,
		Description:      r.Description,
		Quantity:         r.Quantity,
		Unit:             r.Unit,
		TargetPrice:      r.TargetPrice,
		Currency:         r.Currency.String(),
		DeliveryLocation: r.DeliveryLocation,
		BidDeadline:      r.BidDeadline,
		DeliveryDeadline: r.DeliveryDeadline,
		Status:           r.Status.String(),
		BidCount:         r.BidCount,
		AwardedBidID:     r.AwardedBidID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// RequirementListFilter represents filtering options for requirement lists
type RequirementListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Category string `form:"category"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ==================== Bid DTOs ====================

// SubmitBidRequest represents a request to submit a bid on a requirement.
// RequirementID is taken from the URL path and ignored in request bodies.
type SubmitBidRequest struct {
	RequirementID    uuid.UUID       `json:"-"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	Currency         string          `json:"currency" binding:"required,currency"`
	DeliveryTime     int             `json:"delivery_time" binding:"required,min=1"`
	DeliveryTimeUnit string          `json:"delivery_time_unit" binding:"required,delivery_unit"`
	PaymentTerms     string          `json:"payment_terms" binding:"max=500"`
	DeliveryTerms    string          `json:"delivery_terms" binding:"max=500"`
	ValidUntil       *time.Time      `json:"valid_until"`
}

// UpdateBidRequest represents a request to revise an active bid's terms
type UpdateBidRequest struct {
	Price            decimal.Decimal `json:"price" binding:"required"`
	Currency         string          `json:"currency" binding:"required,currency"`
	DeliveryTime     int             `json:"delivery_time" binding:"required,min=1"`
	DeliveryTimeUnit string          `json:"delivery_time_unit" binding:"required,delivery_unit"`
	PaymentTerms     string          `json:"payment_terms" binding:"max=500"`
	DeliveryTerms    string          `json:"delivery_terms" binding:"max=500"`
	ValidUntil       *time.Time      `json:"valid_until"`
}

// BidResponse represents a bid in API responses
type BidResponse struct {
	ID               uuid.UUID       `json:"id"`
	RequirementID    uuid.UUID       `json:"requirement_id"`
	ExporterID       uuid.UUID       `json:"exporter_id"`
	Price            decimal.Decimal `json:"price"`
	Currency         string          `json:"currency"`
	DeliveryTime     int             `json:"delivery_time"`
	DeliveryTimeUnit string          `json:"delivery_time_unit"`
	PaymentTerms     string          `json:"payment_terms"`
	DeliveryTerms    string          `json:"delivery_terms"`
	ValidUntil       *time.Time      `json:"valid_until,omitempty"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToBidResponse converts a bid to its response representation
func ToBidResponse(b *sourcing.Bid) BidResponse {
	return BidResponse{
		ID:               b.ID,
		RequirementID:    b.RequirementID,
		ExporterID:       b.ExporterID,
		Price:            b.Price,
		Currency:         b.Currency.String(),
		DeliveryTime:     b.DeliveryTime,
		DeliveryTimeUnit: b.DeliveryTimeUnit.String(),
		PaymentTerms:     b.PaymentTerms,
		DeliveryTerms:    b.DeliveryTerms,
		ValidUntil:       b.ValidUntil,
		Status:           b.Status.String(),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// RankedBidResponse is a bid annotated with its ranking breakdown
type RankedBidResponse struct {
	BidResponse
	Position         int             `json:"position"`
	NormalizedPrice  decimal.Decimal `json:"normalized_price"`
	NormalizedDays   int             `json:"normalized_days"`
	ReliabilityScore float64         `json:"reliability_score"`
}

// ToRankedBidResponse converts a ranked bid to its response representation
func ToRankedBidResponse(rb sourcing.RankedBid) RankedBidResponse {
	return RankedBidResponse{
		BidResponse:      ToBidResponse(rb.Bid),
		Position:         rb.Position,
		NormalizedPrice:  rb.NormalizedPrice,
		NormalizedDays:   rb.NormalizedDays,
		ReliabilityScore: rb.ReliabilityScore,
	}
}

// ToRestrictedRankedBidResponse redacts a competitor's entry to the subset a
// rival bidder may see: price, currency, delivery time, submission instant
// and rank. Identity, terms and scoring detail stay hidden.
func ToRestrictedRankedBidResponse(rb sourcing.RankedBid) RankedBidResponse {
	return RankedBidResponse{
		BidResponse: BidResponse{
			RequirementID:    rb.Bid.RequirementID,
			Price:            rb.Bid.Price,
			Currency:         rb.Bid.Currency.String(),
			DeliveryTime:     rb.Bid.DeliveryTime,
			DeliveryTimeUnit: rb.Bid.DeliveryTimeUnit.String(),
			CreatedAt:        rb.Bid.CreatedAt,
		},
		Position: rb.Position,
	}
}

// BidListFilter represents filtering options for bid lists
type BidListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}
