package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/fulfillment"
	"github.com/tradegate/backend/internal/domain/sourcing"
	"gorm.io/gorm"
)

// GormStatsRepository serves the dashboard aggregates with grouped queries
type GormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a new GormStatsRepository
func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

type groupedCount struct {
	Key   string
	Count int64
}

type groupedSum struct {
	Key   string
	Total decimal.Decimal
}

// RequirementCountsByStatus counts the importer's requirements per status
func (r *GormStatsRepository) RequirementCountsByStatus(ctx context.Context, importerID uuid.UUID) (map[string]int64, error) {
	query := r.db.WithContext(ctx).
		Model(&sourcing.Requirement{}).
		Select("status AS key, COUNT(*) AS count").
		Where("importer_id = ?", importerID).
		Group("status")
	return scanCounts(query)
}

// BidCountsByStatus counts the exporter's bids per status
func (r *GormStatsRepository) BidCountsByStatus(ctx context.Context, exporterID uuid.UUID) (map[string]int64, error) {
	query := r.db.WithContext(ctx).
		Model(&sourcing.Bid{}).
		Select("status AS key, COUNT(*) AS count").
		Where("exporter_id = ?", exporterID).
		Group("status")
	return scanCounts(query)
}

// OrderCountsByStatus counts the party's orders per status
func (r *GormStatsRepository) OrderCountsByStatus(ctx context.Context, partyID uuid.UUID) (map[string]int64, error) {
	query := r.db.WithContext(ctx).
		Model(&fulfillment.Order{}).
		Select("status AS key, COUNT(*) AS count").
		Where("importer_id = ? OR exporter_id = ?", partyID, partyID).
		Group("status")
	return scanCounts(query)
}

// OrderCountsByPhase counts the party's active orders per current phase
func (r *GormStatsRepository) OrderCountsByPhase(ctx context.Context, partyID uuid.UUID) (map[string]int64, error) {
	query := r.db.WithContext(ctx).
		Model(&fulfillment.Order{}).
		Select("current_phase AS key, COUNT(*) AS count").
		Where("importer_id = ? OR exporter_id = ?", partyID, partyID).
		Where("status = ?", fulfillment.OrderStatusActive).
		Group("current_phase")
	return scanCounts(query)
}

// TradeValuesByCurrency sums the party's non-cancelled order values per
// currency. Conversion to the base currency is left to the caller.
func (r *GormStatsRepository) TradeValuesByCurrency(ctx context.Context, partyID uuid.UUID) (map[string]decimal.Decimal, error) {
	var rows []groupedSum
	err := r.db.WithContext(ctx).
		Model(&fulfillment.Order{}).
		Select("currency AS key, COALESCE(SUM(total_value), 0) AS total").
		Where("importer_id = ? OR exporter_id = ?", partyID, partyID).
		Where("status <> ?", fulfillment.OrderStatusCancelled).
		Group("currency").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Key] = row.Total
	}
	return sums, nil
}

func scanCounts(query *gorm.DB) (map[string]int64, error) {
	var rows []groupedCount
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}
