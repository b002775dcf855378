package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/fulfillment"
	"github.com/tradegate/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements fulfillment.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// preloadPhases loads phase records in sequence order so domain code can
// index them positionally.
func (r *GormOrderRepository) preloadPhases(db *gorm.DB) *gorm.DB {
	return db.Preload("Phases", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_phases.sequence ASC")
	})
}

// FindByID finds an order with its phases by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.Order, error) {
	var order fulfillment.Order
	if err := r.preloadPhases(r.db.WithContext(ctx)).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*fulfillment.Order, error) {
	var orders []*fulfillment.Order
	query := r.applyFilterWithoutPagination(
		r.preloadPhases(r.db.WithContext(ctx)).Model(&fulfillment.Order{}),
		filter,
	)

	page, pageSize := normalizePage(filter)
	if err := query.
		Order(sortClause(filter, OrderSortFields)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its phase records
func (r *GormOrderRepository) Save(ctx context.Context, order *fulfillment.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, &order.BaseAggregateRoot, order); err != nil {
			return err
		}
		for _, phase := range order.Phases {
			phase.OrderID = order.ID
			if err := tx.Save(phase).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an order and its phases
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&fulfillment.OrderPhase{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&fulfillment.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&fulfillment.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByBidID finds the order created from a bid, if any
func (r *GormOrderRepository) FindByBidID(ctx context.Context, bidID uuid.UUID) (*fulfillment.Order, error) {
	var order fulfillment.Order
	if err := r.preloadPhases(r.db.WithContext(ctx)).
		First(&order, "bid_id = ?", bidID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByParty finds orders where the principal is importer or exporter, paginated
func (r *GormOrderRepository) FindByParty(ctx context.Context, principalID uuid.UUID, filter shared.Filter) (*shared.Paginated[*fulfillment.Order], error) {
	base := r.db.WithContext(ctx).Model(&fulfillment.Order{}).
		Where("importer_id = ? OR exporter_id = ?", principalID, principalID)
	query := r.applyFilterWithoutPagination(base, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(filter)
	var orders []*fulfillment.Order
	if err := r.preloadPhases(query).
		Order(sortClause(filter, OrderSortFields)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(orders, total, page, pageSize)
	return &result, nil
}

// CountByStatus counts orders in a given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status fulfillment.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&fulfillment.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CompletedStats returns an exporter's completed order count and how many
// of those finished on or before their estimated delivery instant.
func (r *GormOrderRepository) CompletedStats(ctx context.Context, exporterID uuid.UUID) (completed int64, onTime int64, err error) {
	base := r.db.WithContext(ctx).Model(&fulfillment.Order{}).
		Where("exporter_id = ? AND status = ?", exporterID, fulfillment.OrderStatusCompleted)

	if err = base.Session(&gorm.Session{}).Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	if err = base.Session(&gorm.Session{}).
		Where("completed_at IS NOT NULL AND completed_at <= estimated_delivery").
		Count(&onTime).Error; err != nil {
		return 0, 0, err
	}
	return completed, onTime, nil
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "current_phase":
			query = query.Where("current_phase = ?", value)
		case "importer_id":
			query = query.Where("importer_id = ?", value)
		case "exporter_id":
			query = query.Where("exporter_id = ?", value)
		}
	}
	return query
}
