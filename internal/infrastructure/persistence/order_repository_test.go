package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradegate/backend/internal/domain/fulfillment"
	"github.com/tradegate/backend/internal/domain/shared"
	"gorm.io/gorm"
)

func setupFulfillmentTestDB(t *testing.T) *gorm.DB {
	db := setupSourcingTestDB(t)
	err := db.AutoMigrate(&fulfillment.Order{}, &fulfillment.OrderPhase{})
	require.NoError(t, err)
	return db
}

func newTestOrder(t *testing.T, importerID, exporterID uuid.UUID) *fulfillment.Order {
	t.Helper()
	requirement := newTestRequirement(t, importerID)
	bid := newTestBid(t, requirement.ID, exporterID, 4.50)
	require.NoError(t, bid.Accept())
	require.NoError(t, requirement.Award(bid.ID))

	order, err := fulfillment.NewOrderFromBid(requirement, bid)
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestGormOrderRepository_SaveAndFindByID(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, uuid.New(), uuid.New())

	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, fulfillment.OrderStatusActive, found.Status)
	assert.Equal(t, fulfillment.PhaseConfirmation, found.CurrentPhase)
	assert.True(t, found.TotalValue.Equal(decimal.NewFromInt(22500)))

	// Phases load in sequence order
	require.Len(t, found.Phases, len(fulfillment.PhaseSequence))
	for i, phase := range found.Phases {
		assert.Equal(t, i, phase.Sequence)
		assert.Equal(t, fulfillment.PhaseSequence[i], phase.Name)
	}
	assert.Equal(t, fulfillment.PhaseStatusPending, found.Phases[0].Status)
	assert.Equal(t, fulfillment.PhaseStatusNotStarted, found.Phases[1].Status)
}

func TestGormOrderRepository_FindByID_NotFound(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormOrderRepository(db)

	found, err := repo.FindByID(context.Background(), uuid.New())

	assert.Nil(t, found)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormOrderRepository_FindByBidID(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, uuid.New(), uuid.New())
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByBidID(ctx, order.BidID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindByBidID(ctx, uuid.New())
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormOrderRepository_FindByParty(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	importerID := uuid.New()
	exporterID := uuid.New()

	asImporter := newTestOrder(t, importerID, uuid.New())
	asExporter := newTestOrder(t, uuid.New(), exporterID)
	unrelated := newTestOrder(t, uuid.New(), uuid.New())

	require.NoError(t, repo.Save(ctx, asImporter))
	require.NoError(t, repo.Save(ctx, asExporter))
	require.NoError(t, repo.Save(ctx, unrelated))

	importerPage, err := repo.FindByParty(ctx, importerID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, importerPage.Items, 1)
	assert.Equal(t, asImporter.ID, importerPage.Items[0].ID)
	require.Len(t, importerPage.Items[0].Phases, len(fulfillment.PhaseSequence))

	exporterPage, err := repo.FindByParty(ctx, exporterID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, exporterPage.Items, 1)
	assert.Equal(t, asExporter.ID, exporterPage.Items[0].ID)
}

func TestGormOrderRepository_SavePersistsPhaseProgress(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	importerID := uuid.New()
	order := newTestOrder(t, importerID, uuid.New())
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, order.Advance(fulfillment.AdvanceParams{ActorID: importerID}))
	order.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, fulfillment.PhasePayment, found.CurrentPhase)
	assert.Equal(t, fulfillment.PhaseStatusCompleted, found.Phases[0].Status)
	assert.Equal(t, fulfillment.PhaseStatusPending, found.Phases[1].Status)
}

func TestGormOrderRepository_CountByStatus(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	importerID := uuid.New()
	active := newTestOrder(t, importerID, uuid.New())
	cancelled := newTestOrder(t, importerID, uuid.New())
	require.NoError(t, cancelled.Cancel("supplier unresponsive", importerID))
	cancelled.ClearDomainEvents()

	require.NoError(t, repo.Save(ctx, active))
	require.NoError(t, repo.Save(ctx, cancelled))

	activeCount, err := repo.CountByStatus(ctx, fulfillment.OrderStatusActive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), activeCount)

	cancelledCount, err := repo.CountByStatus(ctx, fulfillment.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelledCount)
}

func TestGormOrderRepository_CompletedStats(t *testing.T) {
	db := setupFulfillmentTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	exporterID := uuid.New()

	onTime := newTestOrder(t, uuid.New(), exporterID)
	completeOrder(t, onTime)
	require.NoError(t, repo.Save(ctx, onTime))

	late := newTestOrder(t, uuid.New(), exporterID)
	completeOrder(t, late)
	// Push completion past the delivery estimate
	lateAt := late.EstimatedDelivery.Add(48 * time.Hour)
	late.CompletedAt = &lateAt
	require.NoError(t, repo.Save(ctx, late))

	stillActive := newTestOrder(t, uuid.New(), exporterID)
	require.NoError(t, repo.Save(ctx, stillActive))

	completed, onTimeCount, err := repo.CompletedStats(ctx, exporterID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), completed)
	assert.Equal(t, int64(1), onTimeCount)
}

// completeOrder walks an active order through every remaining phase.
func completeOrder(t *testing.T, order *fulfillment.Order) {
	t.Helper()
	for i := 0; i < len(fulfillment.PhaseSequence); i++ {
		require.NoError(t, order.Advance(fulfillment.AdvanceParams{ActorID: order.ImporterID}))
	}
	require.Equal(t, fulfillment.OrderStatusCompleted, order.Status)
	order.ClearDomainEvents()
}
