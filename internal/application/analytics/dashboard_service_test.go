package analytics

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tradegate/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// MockStatsRepository is a mock implementation of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) RequirementCountsByStatus(ctx context.Context, importerID uuid.UUID) (map[string]int64, error) {
	args := m.Called(ctx, importerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStatsRepository) BidCountsByStatus(ctx context.Context, exporterID uuid.UUID) (map[string]int64, error) {
	args := m.Called(ctx, exporterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStatsRepository) OrderCountsByStatus(ctx context.Context, partyID uuid.UUID) (map[string]int64, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStatsRepository) OrderCountsByPhase(ctx context.Context, partyID uuid.UUID) (map[string]int64, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStatsRepository) TradeValuesByCurrency(ctx context.Context, partyID uuid.UUID) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func TestDashboardService_Summary(t *testing.T) {
	t.Run("importer sees requirement counts", func(t *testing.T) {
		stats := new(MockStatsRepository)
		service := NewDashboardService(stats, zap.NewNop())
		userID := uuid.New()

		stats.On("RequirementCountsByStatus", mock.Anything, userID).
			Return(map[string]int64{"active": 2, "awarded": 1}, nil)
		stats.On("OrderCountsByStatus", mock.Anything, userID).
			Return(map[string]int64{"active": 1}, nil)
		stats.On("OrderCountsByPhase", mock.Anything, userID).
			Return(map[string]int64{"production": 1}, nil)
		stats.On("TradeValuesByCurrency", mock.Anything, userID).
			Return(map[string]decimal.Decimal{"USD": decimal.NewFromInt(1000)}, nil)

		result, err := service.Summary(context.Background(), userID, identity.RoleImporter)

		require.NoError(t, err)
		assert.Equal(t, "importer", result.Role)
		assert.Equal(t, int64(2), result.Requirements["active"])
		assert.Nil(t, result.Bids)
		assert.Equal(t, int64(1), result.Orders.ByPhase["production"])
		assert.True(t, result.Orders.TotalTradeValueUSD.Equal(decimal.NewFromInt(1000)))
		stats.AssertNotCalled(t, "BidCountsByStatus", mock.Anything, mock.Anything)
	})

	t.Run("exporter sees bid counts", func(t *testing.T) {
		stats := new(MockStatsRepository)
		service := NewDashboardService(stats, zap.NewNop())
		userID := uuid.New()

		stats.On("BidCountsByStatus", mock.Anything, userID).
			Return(map[string]int64{"active": 3, "rejected": 2}, nil)
		stats.On("OrderCountsByStatus", mock.Anything, userID).
			Return(map[string]int64{}, nil)
		stats.On("OrderCountsByPhase", mock.Anything, userID).
			Return(map[string]int64{}, nil)
		stats.On("TradeValuesByCurrency", mock.Anything, userID).
			Return(map[string]decimal.Decimal{}, nil)

		result, err := service.Summary(context.Background(), userID, identity.RoleExporter)

		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Bids["active"])
		assert.Nil(t, result.Requirements)
		assert.True(t, result.Orders.TotalTradeValueUSD.IsZero())
	})

	t.Run("trade value normalizes currencies to USD", func(t *testing.T) {
		stats := new(MockStatsRepository)
		service := NewDashboardService(stats, zap.NewNop())
		userID := uuid.New()

		stats.On("BidCountsByStatus", mock.Anything, userID).
			Return(map[string]int64{}, nil)
		stats.On("OrderCountsByStatus", mock.Anything, userID).
			Return(map[string]int64{"completed": 2}, nil)
		stats.On("OrderCountsByPhase", mock.Anything, userID).
			Return(map[string]int64{}, nil)
		stats.On("TradeValuesByCurrency", mock.Anything, userID).
			Return(map[string]decimal.Decimal{
				"USD": decimal.NewFromInt(1000),
				"EUR": decimal.NewFromInt(1000),
			}, nil)

		result, err := service.Summary(context.Background(), userID, identity.RoleExporter)

		require.NoError(t, err)
		// 1000 USD + 1000 EUR at 1.1
		assert.True(t, result.Orders.TotalTradeValueUSD.Equal(decimal.NewFromInt(2100)),
			"got %s", result.Orders.TotalTradeValueUSD)
	})

	t.Run("propagates stats errors", func(t *testing.T) {
		stats := new(MockStatsRepository)
		service := NewDashboardService(stats, zap.NewNop())
		userID := uuid.New()

		stats.On("RequirementCountsByStatus", mock.Anything, userID).
			Return(nil, assert.AnError)

		_, err := service.Summary(context.Background(), userID, identity.RoleImporter)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
