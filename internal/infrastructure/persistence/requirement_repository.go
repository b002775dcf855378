package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/sourcing"
	"gorm.io/gorm"
)

// GormRequirementRepository implements sourcing.RequirementRepository using GORM
type GormRequirementRepository struct {
	db *gorm.DB
}

// NewGormRequirementRepository creates a new GormRequirementRepository
func NewGormRequirementRepository(db *gorm.DB) *GormRequirementRepository {
	return &GormRequirementRepository{db: db}
}

// FindByID finds a requirement by its ID
func (r *GormRequirementRepository) FindByID(ctx context.Context, id uuid.UUID) (*sourcing.Requirement, error) {
	var requirement sourcing.Requirement
	if err := r.db.WithContext(ctx).First(&requirement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &requirement, nil
}

// FindAll finds requirements matching the filter
func (r *GormRequirementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*sourcing.Requirement, error) {
	var requirements []*sourcing.Requirement
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sourcing.Requirement{}), filter)
	if err := query.Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}

// Save creates or updates a requirement
func (r *GormRequirementRepository) Save(ctx context.Context, requirement *sourcing.Requirement) error {
	return saveVersioned(r.db.WithContext(ctx), &requirement.BaseAggregateRoot, requirement)
}

// Delete removes a requirement
func (r *GormRequirementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sourcing.Requirement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts requirements matching the filter
func (r *GormRequirementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&sourcing.Requirement{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByImporter finds requirements posted by an importer, paginated
func (r *GormRequirementRepository) FindByImporter(ctx context.Context, importerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*sourcing.Requirement], error) {
	base := r.db.WithContext(ctx).Model(&sourcing.Requirement{}).Where("importer_id = ?", importerID)
	return r.paginate(base, filter)
}

// FindOpen finds requirements currently open for bidding, paginated
func (r *GormRequirementRepository) FindOpen(ctx context.Context, filter shared.Filter) (*shared.Paginated[*sourcing.Requirement], error) {
	base := r.db.WithContext(ctx).Model(&sourcing.Requirement{}).
		Where("status = ?", sourcing.RequirementStatusActive).
		Where("bid_deadline > ?", time.Now())
	return r.paginate(base, filter)
}

// CountByStatus counts requirements in a given status
func (r *GormRequirementRepository) CountByStatus(ctx context.Context, status sourcing.RequirementStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&sourcing.Requirement{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *GormRequirementRepository) paginate(base *gorm.DB, filter shared.Filter) (*shared.Paginated[*sourcing.Requirement], error) {
	query := r.applyFilterWithoutPagination(base, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(filter)
	var requirements []*sourcing.Requirement
	if err := query.
		Order(sortClause(filter, RequirementSortFields)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requirements).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(requirements, total, page, pageSize)
	return &result, nil
}

func (r *GormRequirementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	page, pageSize := normalizePage(filter)
	return query.
		Order(sortClause(filter, RequirementSortFields)).
		Offset((page - 1) * pageSize).
		Limit(pageSize)
}

func (r *GormRequirementRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("category ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "delivery_location":
			query = query.Where("delivery_location = ?", value)
		case "deadline_after":
			if t, ok := value.(time.Time); ok {
				query = query.Where("bid_deadline > ?", t)
			}
		case "deadline_before":
			if t, ok := value.(time.Time); ok {
				query = query.Where("bid_deadline <= ?", t)
			}
		}
	}

	return query
}

// normalizePage clamps pagination values to sane defaults
func normalizePage(filter shared.Filter) (page, pageSize int) {
	page = filter.Page
	if page < 1 {
		page = 1
	}
	pageSize = filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// sortClause builds a validated ORDER BY clause from the filter
func sortClause(filter shared.Filter, allowed map[string]bool) string {
	field := ValidateSortField(filter.OrderBy, allowed, "created_at")
	dir := ValidateSortOrder(filter.OrderDir)
	return field + " " + dir
}
