package sourcing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/fulfillment"
	"github.com/tradegate/backend/internal/domain/identity"
	"github.com/tradegate/backend/internal/domain/sourcing"
)

// ExporterHistorySource resolves the track record that feeds reliability
// scoring during bid ranking.
type ExporterHistorySource interface {
	HistoryFor(ctx context.Context, exporterID uuid.UUID) (sourcing.ExporterHistory, error)
}

// HistoryService derives exporter histories from account records and
// completed orders.
type HistoryService struct {
	userRepo  identity.UserRepository
	orderRepo fulfillment.OrderRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(userRepo identity.UserRepository, orderRepo fulfillment.OrderRepository) *HistoryService {
	return &HistoryService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// HistoryFor builds the exporter's history snapshot. An exporter with no
// completed orders gets an on-time rate of zero; the ranking still orders
// them deterministically by account age.
func (s *HistoryService) HistoryFor(ctx context.Context, exporterID uuid.UUID) (sourcing.ExporterHistory, error) {
	user, err := s.userRepo.FindByID(ctx, exporterID)
	if err != nil {
		return sourcing.ExporterHistory{}, err
	}

	completed, onTime, err := s.orderRepo.CompletedStats(ctx, exporterID)
	if err != nil {
		return sourcing.ExporterHistory{}, err
	}

	history := sourcing.ExporterHistory{
		AccountAgeDays:  user.AccountAgeDays(time.Now()),
		CompletedOrders: int(completed),
	}
	if completed > 0 {
		history.OnTimeRate = float64(onTime) / float64(completed)
	}
	return history, nil
}
