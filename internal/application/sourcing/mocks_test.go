package sourcing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/sourcing"
)

// MockRequirementRepository is a mock implementation of RequirementRepository
type MockRequirementRepository struct {
	mock.Mock
}

func (m *MockRequirementRepository) FindByID(ctx context.Context, id uuid.UUID) (*sourcing.Requirement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sourcing.Requirement), args.Error(1)
}

func (m *MockRequirementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*sourcing.Requirement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sourcing.Requirement), args.Error(1)
}

func (m *MockRequirementRepository) Save(ctx context.Context, requirement *sourcing.Requirement) error {
	args := m.Called(ctx, requirement)
	return args.Error(0)
}

func (m *MockRequirementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequirementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequirementRepository) FindByImporter(ctx context.Context, importerID uuid.UUID, filter shared.Filter) (*shared.Paginated[*sourcing.Requirement], error) {
	args := m.Called(ctx, importerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*sourcing.Requirement]), args.Error(1)
}

func (m *MockRequirementRepository) FindOpen(ctx context.Context, filter shared.Filter) (*shared.Paginated[*sourcing.Requirement], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*sourcing.Requirement]), args.Error(1)
}

func (m *MockRequirementRepository) CountByStatus(ctx context.Context, status sourcing.RequirementStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockBidRepository is a mock implementation of BidRepository
type MockBidRepository struct {
	mock.Mock
}

func (m *MockBidRepository) FindByID(ctx context.Context, id uuid.UUID) (*sourcing.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sourcing.Bid), args.Error(1)
}

func (m *MockBidRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*sourcing.Bid, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sourcing.Bid), args.Error(1)
}

func (m *MockBidRepository) Save(ctx context.Context, bid *sourcing.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *MockBidRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBidRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBidRepository) FindByRequirement(ctx context.Context, requirementID uuid.UUID) ([]*sourcing.Bid, error) {
	args := m.Called(ctx, requirementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sourcing.Bid), args.Error(1)
}

func (m *MockBidRepository) FindByExporter(ctx context.Context, exporterID uuid.UUID, filter shared.Filter) (*shared.Paginated[*sourcing.Bid], error) {
	args := m.Called(ctx, exporterID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*sourcing.Bid]), args.Error(1)
}

func (m *MockBidRepository) CountByStatus(ctx context.Context, status sourcing.BidStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBidRepository) SaveAcceptance(ctx context.Context, accepted *sourcing.Bid, rejected []*sourcing.Bid, requirement *sourcing.Requirement) error {
	args := m.Called(ctx, accepted, rejected, requirement)
	return args.Error(0)
}

// MockHistorySource is a mock implementation of ExporterHistorySource
type MockHistorySource struct {
	mock.Mock
}

func (m *MockHistorySource) HistoryFor(ctx context.Context, exporterID uuid.UUID) (sourcing.ExporterHistory, error) {
	args := m.Called(ctx, exporterID)
	return args.Get(0).(sourcing.ExporterHistory), args.Error(1)
}
