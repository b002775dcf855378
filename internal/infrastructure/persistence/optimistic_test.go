package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/sourcing"
)

func TestSaveVersioned_StaleUpdateConflicts(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)
	ctx := context.Background()

	requirement := newTestRequirement(t, uuid.New())
	require.NoError(t, repo.Save(ctx, requirement))

	first, err := repo.FindByID(ctx, requirement.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, requirement.ID)
	require.NoError(t, err)

	first.RegisterBid()
	require.NoError(t, repo.Save(ctx, first))

	second.RegisterBid()
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	// The stale snapshot keeps its loaded version so a retry can reload.
	assert.Equal(t, 1, second.Version)

	stored, err := repo.FindByID(ctx, requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version)
	assert.Equal(t, 1, stored.BidCount)
}

func TestSaveVersioned_InsertThenUpdate(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)
	ctx := context.Background()

	requirement := newTestRequirement(t, uuid.New())
	require.NoError(t, repo.Save(ctx, requirement))

	loaded, err := repo.FindByID(ctx, requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Version)

	loaded.RegisterBid()
	require.NoError(t, repo.Save(ctx, loaded))
	assert.Equal(t, 2, loaded.Version)
}

func TestSaveAcceptance_StaleCascadeConflicts(t *testing.T) {
	db := setupSourcingTestDB(t)
	requirementRepo := NewGormRequirementRepository(db)
	bidRepo := NewGormBidRepository(db)
	ctx := context.Background()

	importerID := uuid.New()
	requirement := newTestRequirement(t, importerID)
	require.NoError(t, requirementRepo.Save(ctx, requirement))

	bidA := newTestBid(t, requirement.ID, uuid.New(), 4.50)
	bidB := newTestBid(t, requirement.ID, uuid.New(), 5.25)
	require.NoError(t, bidRepo.Save(ctx, bidA))
	require.NoError(t, bidRepo.Save(ctx, bidB))

	// Two requests load the same state, each accepting a different bid.
	reqSnap1, err := requirementRepo.FindByID(ctx, requirement.ID)
	require.NoError(t, err)
	reqSnap2, err := requirementRepo.FindByID(ctx, requirement.ID)
	require.NoError(t, err)

	acceptA, err := bidRepo.FindByID(ctx, bidA.ID)
	require.NoError(t, err)
	rejectB1, err := bidRepo.FindByID(ctx, bidB.ID)
	require.NoError(t, err)

	acceptB, err := bidRepo.FindByID(ctx, bidB.ID)
	require.NoError(t, err)
	rejectA2, err := bidRepo.FindByID(ctx, bidA.ID)
	require.NoError(t, err)

	require.NoError(t, acceptA.Accept())
	require.NoError(t, rejectB1.Reject())
	require.NoError(t, reqSnap1.Award(acceptA.ID))
	require.NoError(t, bidRepo.SaveAcceptance(ctx, acceptA, []*sourcing.Bid{rejectB1}, reqSnap1))

	require.NoError(t, acceptB.Accept())
	require.NoError(t, rejectA2.Reject())
	require.NoError(t, reqSnap2.Award(acceptB.ID))
	err = bidRepo.SaveAcceptance(ctx, acceptB, []*sourcing.Bid{rejectA2}, reqSnap2)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	accepted, err := bidRepo.CountByStatus(ctx, sourcing.BidStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), accepted)

	stored, err := requirementRepo.FindByID(ctx, requirement.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AwardedBidID)
	assert.Equal(t, acceptA.ID, *stored.AwardedBidID)
}
