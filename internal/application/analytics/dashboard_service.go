package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/identity"
	"github.com/tradegate/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// StatsRepository provides the aggregate queries behind the dashboard
type StatsRepository interface {
	RequirementCountsByStatus(ctx context.Context, importerID uuid.UUID) (map[string]int64, error)
	BidCountsByStatus(ctx context.Context, exporterID uuid.UUID) (map[string]int64, error)
	OrderCountsByStatus(ctx context.Context, partyID uuid.UUID) (map[string]int64, error)
	OrderCountsByPhase(ctx context.Context, partyID uuid.UUID) (map[string]int64, error)

	// TradeValuesByCurrency returns the summed value of the party's
	// non-cancelled orders grouped by currency
	TradeValuesByCurrency(ctx context.Context, partyID uuid.UUID) (map[string]decimal.Decimal, error)
}

// DashboardService computes the per-account analytics summary
type DashboardService struct {
	stats  StatsRepository
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(stats StatsRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{stats: stats, logger: logger}
}

// Summary builds the dashboard for the account. Importers see requirement
// counts, exporters see bid counts, both see their order breakdown and total
// trade value normalized to USD.
func (s *DashboardService) Summary(ctx context.Context, userID uuid.UUID, role identity.Role) (*DashboardResponse, error) {
	response := &DashboardResponse{Role: role.String()}

	switch role {
	case identity.RoleImporter:
		requirements, err := s.stats.RequirementCountsByStatus(ctx, userID)
		if err != nil {
			s.logger.Error("Failed to count requirements", zap.Error(err))
			return nil, err
		}
		response.Requirements = requirements
	case identity.RoleExporter:
		bids, err := s.stats.BidCountsByStatus(ctx, userID)
		if err != nil {
			s.logger.Error("Failed to count bids", zap.Error(err))
			return nil, err
		}
		response.Bids = bids
	}

	byStatus, err := s.stats.OrderCountsByStatus(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count orders by status", zap.Error(err))
		return nil, err
	}
	byPhase, err := s.stats.OrderCountsByPhase(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count orders by phase", zap.Error(err))
		return nil, err
	}
	values, err := s.stats.TradeValuesByCurrency(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to sum trade values", zap.Error(err))
		return nil, err
	}

	total := decimal.Zero
	for currency, amount := range values {
		total = total.Add(valueobject.ToBaseCurrency(amount, valueobject.Currency(currency)))
	}

	response.Orders = OrdersSummary{
		ByStatus:           byStatus,
		ByPhase:            byPhase,
		TotalTradeValueUSD: total,
	}

	return response, nil
}
