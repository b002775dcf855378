package sourcing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/shared/valueobject"
	"github.com/tradegate/backend/internal/domain/sourcing"
)

// BidService handles bid submission, revision, withdrawal and acceptance
type BidService struct {
	bidRepo         sourcing.BidRepository
	requirementRepo sourcing.RequirementRepository
	validator       *sourcing.IntegrityValidator
	historySource   ExporterHistorySource
	eventPublisher  shared.EventPublisher
}

// NewBidService creates a new BidService
func NewBidService(
	bidRepo sourcing.BidRepository,
	requirementRepo sourcing.RequirementRepository,
	validator *sourcing.IntegrityValidator,
	historySource ExporterHistorySource,
) *BidService {
	return &BidService{
		bidRepo:         bidRepo,
		requirementRepo: requirementRepo,
		validator:       validator,
		historySource:   historySource,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *BidService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Submit places a new bid on a requirement. The bid passes deadline,
// self-bid and integrity checks before it is admitted.
func (s *BidService) Submit(ctx context.Context, exporterID uuid.UUID, req SubmitBidRequest) (*BidResponse, error) {
	requirement, err := s.requirementRepo.FindByID(ctx, req.RequirementID)
	if err != nil {
		return nil, err
	}
	if !requirement.IsActive() {
		return nil, shared.NewDomainError("REQUIREMENT_NOT_ACTIVE", "Requirement is no longer open")
	}
	if !requirement.IsOpenForBids(time.Now()) {
		return nil, shared.NewDomainError("DEADLINE_PASSED", "Bid deadline has passed")
	}
	if requirement.IsOwnedBy(exporterID) {
		return nil, shared.NewDomainError("SELF_BID", "Cannot bid on your own requirement")
	}

	price, err := valueobject.NewMoney(req.Price, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}
	bid, err := sourcing.NewBid(sourcing.NewBidParams{
		RequirementID:    requirement.ID,
		ExporterID:       exporterID,
		Price:            price,
		DeliveryTime:     req.DeliveryTime,
		DeliveryTimeUnit: valueobject.DeliveryTimeUnit(req.DeliveryTimeUnit),
		PaymentTerms:     req.PaymentTerms,
		DeliveryTerms:    req.DeliveryTerms,
		ValidUntil:       req.ValidUntil,
	})
	if err != nil {
		return nil, err
	}

	existing, err := s.bidRepo.FindByRequirement(ctx, requirement.ID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(bid, existing, requirement); err != nil {
		return nil, err
	}

	requirement.RegisterBid()
	if err := s.bidRepo.Save(ctx, bid); err != nil {
		return nil, err
	}
	if err := s.requirementRepo.Save(ctx, requirement); err != nil {
		return nil, err
	}
	s.publishEvents(bid)

	response := ToBidResponse(bid)
	return &response, nil
}

// Update revises the terms of the exporter's own active bid. The revised
// terms are validated structurally but not re-screened against the
// integrity rules; see the validator for what submission-time screening
// covers.
func (s *BidService) Update(ctx context.Context, exporterID, bidID uuid.UUID, req UpdateBidRequest) (*BidResponse, error) {
	bid, err := s.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if !bid.IsOwnedBy(exporterID) {
		return nil, shared.ErrForbidden
	}

	requirement, err := s.requirementRepo.FindByID(ctx, bid.RequirementID)
	if err != nil {
		return nil, err
	}
	if !requirement.IsOpenForBids(time.Now()) {
		return nil, shared.NewDomainError("DEADLINE_PASSED", "Bid deadline has passed")
	}

	price, err := valueobject.NewMoney(req.Price, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}
	if err := bid.UpdateTerms(sourcing.UpdateTermsParams{
		Price:            price,
		DeliveryTime:     req.DeliveryTime,
		DeliveryTimeUnit: valueobject.DeliveryTimeUnit(req.DeliveryTimeUnit),
		PaymentTerms:     req.PaymentTerms,
		DeliveryTerms:    req.DeliveryTerms,
		ValidUntil:       req.ValidUntil,
	}); err != nil {
		return nil, err
	}

	if err := s.bidRepo.Save(ctx, bid); err != nil {
		return nil, err
	}

	response := ToBidResponse(bid)
	return &response, nil
}

// Withdraw withdraws the exporter's own active bid and releases its slot on
// the requirement.
func (s *BidService) Withdraw(ctx context.Context, exporterID, bidID uuid.UUID) (*BidResponse, error) {
	bid, err := s.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if !bid.IsOwnedBy(exporterID) {
		return nil, shared.ErrForbidden
	}
	if err := bid.Withdraw(); err != nil {
		return nil, err
	}

	requirement, err := s.requirementRepo.FindByID(ctx, bid.RequirementID)
	if err != nil {
		return nil, err
	}
	requirement.ReleaseBid()

	if err := s.bidRepo.Save(ctx, bid); err != nil {
		return nil, err
	}
	if err := s.requirementRepo.Save(ctx, requirement); err != nil {
		return nil, err
	}
	s.publishEvents(bid)

	response := ToBidResponse(bid)
	return &response, nil
}

// Accept accepts a bid on behalf of the requirement owner. The accepted
// bid, its rejected siblings and the awarded requirement are persisted in
// one transaction.
func (s *BidService) Accept(ctx context.Context, importerID, bidID uuid.UUID) (*BidResponse, error) {
	bid, err := s.bidRepo.FindByID(ctx, bidID)
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
	if !requirement.IsActive() {
		return nil, shared.NewDomainError("REQUIREMENT_NOT_ACTIVE", "Requirement is no longer open")
	}

	if err := bid.Accept(); err != nil {
		return nil, err
	}

	siblings, err := s.bidRepo.FindByRequirement(ctx, requirement.ID)
	if err != nil {
		return nil, err
	}
	rejected := make([]*sourcing.Bid, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == bid.ID || !sibling.IsActive() {
			continue
		}
		if err := sibling.Reject(); err != nil {
			return nil, err
		}
		rejected = append(rejected, sibling)
	}

	if err := requirement.Award(bid.ID); err != nil {
		return nil, err
	}

	if err := s.bidRepo.SaveAcceptance(ctx, bid, rejected, requirement); err != nil {
		return nil, err
	}
	s.publishEvents(bid)
	s.publishEvents(requirement)

	response := ToBidResponse(bid)
	return &response, nil
}

// GetByID retrieves a bid visible to the principal: the bidding exporter or
// the requirement owner.
func (s *BidService) GetByID(ctx context.Context, principalID, bidID uuid.UUID) (*BidResponse, error) {
	bid, err := s.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if !bid.IsOwnedBy(principalID) {
		requirement, err := s.requirementRepo.FindByID(ctx, bid.RequirementID)
		if err != nil {
			return nil, err
		}
		if !requirement.IsOwnedBy(principalID) {
			return nil, shared.ErrForbidden
		}
	}

	response := ToBidResponse(bid)
	return &response, nil
}

// ListMine retrieves the exporter's own bids
func (s *BidService) ListMine(ctx context.Context, exporterID uuid.UUID, filter BidListFilter) (*shared.Paginated[BidResponse], error) {
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

	result, err := s.bidRepo.FindByExporter(ctx, exporterID, domainFilter)
	if err != nil {
		return nil, err
	}
	return mapPage(result, ToBidResponse), nil
}

// RankForRequirement returns the requirement's active bids in ranked order.
// The requirement owner sees the full ranked board; a bidding exporter sees
// their own entry in full and every competitor reduced to the restricted
// field subset. Principals with no stake in the requirement are refused.
func (s *BidService) RankForRequirement(ctx context.Context, principalID, requirementID uuid.UUID) ([]RankedBidResponse, error) {
	requirement, err := s.requirementRepo.FindByID(ctx, requirementID)
	if err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.FindByRequirement(ctx, requirementID)
	if err != nil {
		return nil, err
	}

	histories := make(map[uuid.UUID]sourcing.ExporterHistory, len(bids))
	for _, bid := range bids {
		if _, ok := histories[bid.ExporterID]; ok {
			continue
		}
		history, err := s.historySource.HistoryFor(ctx, bid.ExporterID)
		if err != nil {
			return nil, err
		}
		histories[bid.ExporterID] = history
	}

	ranked := sourcing.RankBids(bids, func(exporterID uuid.UUID) sourcing.ExporterHistory {
		return histories[exporterID]
	})

	if requirement.IsOwnedBy(principalID) {
		responses := make([]RankedBidResponse, 0, len(ranked))
		for _, rb := range ranked {
			responses = append(responses, ToRankedBidResponse(rb))
		}
		return responses, nil
	}

	isBidder := false
	for _, rb := range ranked {
		if rb.Bid.IsOwnedBy(principalID) {
			isBidder = true
			break
		}
	}
	if !isBidder {
		return nil, shared.ErrForbidden
	}

	responses := make([]RankedBidResponse, 0, len(ranked))
	for _, rb := range ranked {
		if rb.Bid.IsOwnedBy(principalID) {
			responses = append(responses, ToRankedBidResponse(rb))
		} else {
			responses = append(responses, ToRestrictedRankedBidResponse(rb))
		}
	}
	return responses, nil
}

func (s *BidService) publishEvents(aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	s.eventPublisher.Publish(aggregate.GetDomainEvents()...)
	aggregate.ClearDomainEvents()
}
