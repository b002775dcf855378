package sourcing

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
)

// RequirementRepository persists sourcing requirements.
type RequirementRepository interface {
	shared.Repository[*Requirement]
	FindByImporter(ctx context.Context, importerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Requirement], error)
	FindOpen(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Requirement], error)
	CountByStatus(ctx context.Context, status RequirementStatus) (int64, error)
}

// BidRepository persists bids.
type BidRepository interface {
	shared.Repository[*Bid]
	FindByRequirement(ctx context.Context, requirementID uuid.UUID) ([]*Bid, error)
	FindByExporter(ctx context.Context, exporterID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Bid], error)
	CountByStatus(ctx context.Context, status BidStatus) (int64, error)

	// SaveAcceptance persists an accept cascade atomically: the accepted bid,
	// its rejected siblings, and the awarded requirement commit in a single
	// transaction or not at all.
	SaveAcceptance(ctx context.Context, accepted *Bid, rejected []*Bid, requirement *Requirement) error
}
