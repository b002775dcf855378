package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
)

// OrderRepository persists orders together with their phase records.
type OrderRepository interface {
	shared.Repository[*Order]
	FindByBidID(ctx context.Context, bidID uuid.UUID) (*Order, error)
	FindByParty(ctx context.Context, principalID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Order], error)
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)

	// CompletedStats returns, for the exporter, the number of completed
	// orders and how many of them finished on or before their estimated
	// delivery instant. Feeds reliability scoring.
	CompletedStats(ctx context.Context, exporterID uuid.UUID) (completed int64, onTime int64, err error)
}
