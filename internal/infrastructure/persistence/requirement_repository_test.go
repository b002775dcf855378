package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/shared/valueobject"
	"github.com/tradegate/backend/internal/domain/sourcing"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSourcingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&sourcing.Requirement{}, &sourcing.Bid{})
	require.NoError(t, err)

	return db
}

func newTestRequirement(t *testing.T, importerID uuid.UUID) *sourcing.Requirement {
	t.Helper()
	target := decimal.NewFromFloat(5.00)
	req, err := sourcing.NewRequirement(sourcing.NewRequirementParams{
		ImporterID:       importerID,
		Category:         "textiles",
		Description:      "Organic cotton fabric, 200gsm",
		Quantity:         decimal.NewFromInt(5000),
		Unit:             "meters",
		TargetPrice:      &target,
		Currency:         valueobject.USD,
		DeliveryLocation: "Rotterdam, NL",
		BidDeadline:      time.Now().Add(14 * 24 * time.Hour),
		DeliveryDeadline: time.Now().Add(60 * 24 * time.Hour),
	})
	require.NoError(t, err)
	req.ClearDomainEvents()
	return req
}

func TestGormRequirementRepository_SaveAndFindByID(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)
	ctx := context.Background()

	requirement := newTestRequirement(t, uuid.New())

	err := repo.Save(ctx, requirement)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, requirement.ID, found.ID)
	assert.Equal(t, "textiles", found.Category)
	assert.Equal(t, sourcing.RequirementStatusActive, found.Status)
	assert.True(t, found.Quantity.Equal(decimal.NewFromInt(5000)))
	require.NotNil(t, found.TargetPrice)
	assert.True(t, found.TargetPrice.Equal(decimal.NewFromFloat(5.00)))
}

func TestGormRequirementRepository_FindByID_NotFound(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)

	found, err := repo.FindByID(context.Background(), uuid.New())

	assert.Nil(t, found)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormRequirementRepository_FindByImporter(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)
	ctx := context.Background()

	importerID := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, newTestRequirement(t, importerID)))
	}
	require.NoError(t, repo.Save(ctx, newTestRequirement(t, uuid.New())))

	page, err := repo.FindByImporter(ctx, importerID, shared.DefaultFilter())

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 3)
	for _, item := range page.Items {
		assert.Equal(t, importerID, item.ImporterID)
	}
}

func TestGormRequirementRepository_FindByImporter_Pagination(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)
	ctx := context.Background()

	importerID := uuid.New()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, newTestRequirement(t, importerID)))
	}

	filter := shared.DefaultFilter()
	filter.Page = 2
	filter.PageSize = 2

	page, err := repo.FindByImporter(ctx, importerID, filter)

	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
}

func TestGormRequirementRepository_FindOpen(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)
	ctx := context.Background()

	open := newTestRequirement(t, uuid.New())
	require.NoError(t, repo.Save(ctx, open))

	closed := newTestRequirement(t, uuid.New())
	require.NoError(t, closed.Close())
	closed.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, closed))

	expired := newTestRequirement(t, uuid.New())
	expired.BidDeadline = time.Now().Add(-1 * time.Hour)
	require.NoError(t, repo.Save(ctx, expired))

	page, err := repo.FindOpen(ctx, shared.DefaultFilter())

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, open.ID, page.Items[0].ID)
}

func TestGormRequirementRepository_CountByStatus(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestRequirement(t, uuid.New())))
	require.NoError(t, repo.Save(ctx, newTestRequirement(t, uuid.New())))

	closed := newTestRequirement(t, uuid.New())
	require.NoError(t, closed.Close())
	closed.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, closed))

	active, err := repo.CountByStatus(ctx, sourcing.RequirementStatusActive)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	closedCount, err := repo.CountByStatus(ctx, sourcing.RequirementStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), closedCount)
}

func TestGormRequirementRepository_Delete(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)
	ctx := context.Background()

	requirement := newTestRequirement(t, uuid.New())
	require.NoError(t, repo.Save(ctx, requirement))

	require.NoError(t, repo.Delete(ctx, requirement.ID))

	_, err := repo.FindByID(ctx, requirement.ID)
	assert.Equal(t, shared.ErrNotFound, err)

	assert.Equal(t, shared.ErrNotFound, repo.Delete(ctx, requirement.ID))
}

func TestGormRequirementRepository_SavePersistsStatusTransitions(t *testing.T) {
	db := setupSourcingTestDB(t)
	repo := NewGormRequirementRepository(db)
	ctx := context.Background()

	requirement := newTestRequirement(t, uuid.New())
	require.NoError(t, repo.Save(ctx, requirement))

	requirement.RegisterBid()
	require.NoError(t, repo.Save(ctx, requirement))

	found, err := repo.FindByID(ctx, requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.BidCount)
}
