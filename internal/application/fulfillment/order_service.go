package fulfillment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/fulfillment"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/sourcing"
)

// OrderService handles order lifecycle operations
type OrderService struct {
	orderRepo       fulfillment.OrderRepository
	bidRepo         sourcing.BidRepository
	requirementRepo sourcing.RequirementRepository
	policy          fulfillment.OrderPolicy
	eventPublisher  shared.EventPublisher
}

// NewOrderService creates a new OrderService. The policy carries the
// deployment's fulfillment rules, such as the cancellation window.
func NewOrderService(
	orderRepo fulfillment.OrderRepository,
	bidRepo sourcing.BidRepository,
	requirementRepo sourcing.RequirementRepository,
	policy fulfillment.OrderPolicy,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		bidRepo:         bidRepo,
		requirementRepo: requirementRepo,
		policy:          policy,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateFromBid derives an order from an accepted bid. Each bid yields at
// most one order.
func (s *OrderService) CreateFromBid(ctx context.Context, importerID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	bid, err := s.bidRepo.FindByID(ctx, req.BidID)
	if err != nil {
		return nil, err
	}

	requirement, err := s.requirementRepo.FindByID(ctx, bid.RequirementID)
	if err != nil {
		return nil, err
	}
	if !requirement.IsOwnedBy(importerID) {
		return nil, shared.ErrForbidden
	}

	existing, err := s.orderRepo.FindByBidID(ctx, bid.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ORDER_EXISTS", "An order already exists for this bid")
	}

	order, err := fulfillment.NewOrderFromBid(requirement, bid)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order visible to either counterparty
func (s *OrderService) GetByID(ctx context.Context, principalID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParty(principalID) {
		return nil, shared.ErrForbidden
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// ListMine retrieves the principal's orders, importer or exporter side
func (s *OrderService) ListMine(ctx context.Context, principalID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	result, err := s.orderRepo.FindByParty(ctx, principalID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(result.Items))
	for _, order := range result.Items {
		items = append(items, ToOrderResponse(order))
	}
	page := shared.NewPaginated(items, result.Total, result.Page, result.PageSize)
	return &page, nil
}

// AdvancePhase moves an order through the delivery pipeline
func (s *OrderService) AdvancePhase(ctx context.Context, principalID, orderID uuid.UUID, req AdvancePhaseRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	params := fulfillment.AdvanceParams{
		Notes:             req.Notes,
		Documents:         req.Documents,
		EstimatedDelivery: req.EstimatedDelivery,
		ActorID:           principalID,
	}
	if req.TargetPhase != nil {
		target := fulfillment.PhaseName(*req.TargetPhase)
		params.TargetPhase = &target
	}
	if err := order.Advance(params); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(order)

	response := ToOrderResponse(order)
	return &response, nil
}

// AttachDocuments appends documents to a named phase of an active order
func (s *OrderService) AttachDocuments(ctx context.Context, principalID, orderID uuid.UUID, phase string, req AttachDocumentsRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.AttachDocuments(fulfillment.PhaseName(phase), req.Documents, principalID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels an active order within the cancellation window
func (s *OrderService) Cancel(ctx context.Context, principalID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.CancelWithPolicy(req.Reason, principalID, s.policy); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(order)

	response := ToOrderResponse(order)
	return &response, nil
}

func (s *OrderService) publishEvents(order *fulfillment.Order) {
	if s.eventPublisher == nil {
		return
	}
	s.eventPublisher.Publish(order.GetDomainEvents()...)
	order.ClearDomainEvents()
}
