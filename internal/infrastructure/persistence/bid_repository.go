package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/sourcing"
	"gorm.io/gorm"
)

// GormBidRepository implements sourcing.BidRepository using GORM
type GormBidRepository struct {
	db *gorm.DB
}

// NewGormBidRepository creates a new GormBidRepository
func NewGormBidRepository(db *gorm.DB) *GormBidRepository {
	return &GormBidRepository{db: db}
}

// FindByID finds a bid by its ID
func (r *GormBidRepository) FindByID(ctx context.Context, id uuid.UUID) (*sourcing.Bid, error) {
	var bid sourcing.Bid
	if err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bid, nil
}

// FindAll finds bids matching the filter
func (r *GormBidRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*sourcing.Bid, error) {
	var bids []*sourcing.Bid
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&sourcing.Bid{}), filter)

	page, pageSize := normalizePage(filter)
	if err := query.
		Order(sortClause(filter, BidSortFields)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// Save creates or updates a bid, guarding updates with the version column
func (r *GormBidRepository) Save(ctx context.Context, bid *sourcing.Bid) error {
	return saveVersioned(r.db.WithContext(ctx), &bid.BaseAggregateRoot, bid)
}

// Delete removes a bid
func (r *GormBidRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sourcing.Bid{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts bids matching the filter
func (r *GormBidRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&sourcing.Bid{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByRequirement finds every bid submitted against a requirement,
// oldest first so ranking ties resolve by submission order.
func (r *GormBidRepository) FindByRequirement(ctx context.Context, requirementID uuid.UUID) ([]*sourcing.Bid, error) {
	var bids []*sourcing.Bid
	if err := r.db.WithContext(ctx).
		Where("requirement_id = ?", requirementID).
		Order("created_at ASC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// FindByExporter finds bids submitted by an exporter, paginated
func (r *GormBidRepository) FindByExporter(ctx context.Context, exporterID uuid.UUID, filter shared.Filter) (*shared.Paginated[*sourcing.Bid], error) {
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&sourcing.Bid{}).Where("exporter_id = ?", exporterID),
		filter,
	)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(filter)
	var bids []*sourcing.Bid
	if err := query.
		Order(sortClause(filter, BidSortFields)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bids).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(bids, total, page, pageSize)
	return &result, nil
}

// CountByStatus counts bids in a given status
func (r *GormBidRepository) CountByStatus(ctx context.Context, status sourcing.BidStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sourcing.Bid{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SaveAcceptance persists an accept cascade in a single transaction: the
// accepted bid, its newly rejected siblings, and the awarded requirement
// commit together or not at all.
func (r *GormBidRepository) SaveAcceptance(ctx context.Context, accepted *sourcing.Bid, rejected []*sourcing.Bid, requirement *sourcing.Requirement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, &accepted.BaseAggregateRoot, accepted); err != nil {
			return err
		}
		for _, bid := range rejected {
			if err := saveVersioned(tx, &bid.BaseAggregateRoot, bid); err != nil {
				return err
			}
		}
		return saveVersioned(tx, &requirement.BaseAggregateRoot, requirement)
	})
}

func (r *GormBidRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "requirement_id":
			query = query.Where("requirement_id = ?", value)
		}
	}
	return query
}
