package sourcing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/shared/valueobject"
	"github.com/tradegate/backend/internal/domain/sourcing"
)

// RequirementService handles sourcing requirement operations
type RequirementService struct {
	requirementRepo sourcing.RequirementRepository
	eventPublisher  shared.EventPublisher
}

// NewRequirementService creates a new RequirementService
func NewRequirementService(requirementRepo sourcing.RequirementRepository) *RequirementService {
	return &RequirementService{
		requirementRepo: requirementRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *RequirementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create posts a new sourcing requirement for the importer
func (s *RequirementService) Create(ctx context.Context, importerID uuid.UUID, req CreateRequirementRequest) (*RequirementResponse, error) {
	requirement, err := sourcing.NewRequirement(sourcing.NewRequirementParams{
		ImporterID:       importerID,
		Category:         req.Category,
		Description:      req.Description,
		Quantity:         req.Quantity,
		Unit:             req.Unit,
		TargetPrice:      req.TargetPrice,
		Currency:         valueobject.Currency(req.Currency),
		DeliveryLocation: req.DeliveryLocation,
		BidDeadline:      req.BidDeadline,
		DeliveryDeadline: req.DeliveryDeadline,
	})
	if err != nil {
		return nil, err
	}
	if !requirement.BidDeadline.After(time.Now()) {
		return nil, shared.NewDomainError("DEADLINE_PASSED", "Bid deadline must be in the future")
	}

	if err := s.requirementRepo.Save(ctx, requirement); err != nil {
		return nil, err
	}
	s.publishEvents(requirement)

	response := ToRequirementResponse(requirement)
	return &response, nil
}

// GetByID retrieves a requirement by ID
func (s *RequirementService) GetByID(ctx context.Context, requirementID uuid.UUID) (*RequirementResponse, error) {
	requirement, err := s.requirementRepo.FindByID(ctx, requirementID)
	if err != nil {
		return nil, err
	}
	response := ToRequirementResponse(requirement)
	return &response, nil
}

// List retrieves open requirements with filtering and pagination
func (s *RequirementService) List(ctx context.Context, filter RequirementListFilter) (*shared.Paginated[RequirementResponse], error) {
	result, err := s.requirementRepo.FindOpen(ctx, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return mapPage(result, ToRequirementResponse), nil
}

// ListMine retrieves the importer's own requirements, any status
func (s *RequirementService) ListMine(ctx context.Context, importerID uuid.UUID, filter RequirementListFilter) (*shared.Paginated[RequirementResponse], error) {
	result, err := s.requirementRepo.FindByImporter(ctx, importerID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return mapPage(result, ToRequirementResponse), nil
}

// Close closes a requirement without awarding it. Owner only.
func (s *RequirementService) Close(ctx context.Context, importerID, requirementID uuid.UUID) (*RequirementResponse, error) {
	requirement, err := s.requirementRepo.FindByID(ctx, requirementID)
	if err != nil {
		return nil, err
	}
	if !requirement.IsOwnedBy(importerID) {
		return nil, shared.ErrForbidden
	}
	if err := requirement.Close(); err != nil {
		return nil, err
	}

	if err := s.requirementRepo.Save(ctx, requirement); err != nil {
		return nil, err
	}
	s.publishEvents(requirement)

	response := ToRequirementResponse(requirement)
	return &response, nil
}

func (s *RequirementService) publishEvents(requirement *sourcing.Requirement) {
	if s.eventPublisher == nil {
		return
	}
	s.eventPublisher.Publish(requirement.GetDomainEvents()...)
	requirement.ClearDomainEvents()
}

func toDomainFilter(f RequirementListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}

func mapPage[T any, R any](page *shared.Paginated[T], convert func(T) R) *shared.Paginated[R] {
	items := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	mapped := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &mapped
}
