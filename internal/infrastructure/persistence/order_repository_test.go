package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/order"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, gatewayOrderID string, expiresAt time.Time) *order.Order {
	t.Helper()
	ord, err := order.New("user_1", uuid.New(), order.TypeTicket, expiresAt)
	require.NoError(t, err)
	require.NoError(t, ord.AddTicketItem(uuid.New(), "General", decimal.NewFromInt(500), 2))
	require.NoError(t, ord.AttachGatewayOrder(gatewayOrderID))
	require.NoError(t, db.Create(ord).Error)
	return ord
}

func TestOrderRepositoryFindByGatewayOrderID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	seeded := seedOrder(t, db, "order_rzp_1", time.Now().Add(30*time.Minute))

	t.Run("loads the order with items", func(t *testing.T) {
		found, err := repo.FindByGatewayOrderID(ctx, "order_rzp_1")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, found.ID)
		require.Len(t, found.Items, 1)
		assert.Equal(t, 2, found.Items[0].Quantity)
	})

	t.Run("unknown handle", func(t *testing.T) {
		_, err := repo.FindByGatewayOrderID(ctx, "order_rzp_unknown")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	ord := seedOrder(t, db, "order_rzp_2", time.Now().Add(30*time.Minute))

	t.Run("flips status when precondition holds", func(t *testing.T) {
		changed, err := repo.UpdateStatus(ctx, ord.ID, order.StatusReserved, order.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, int64(1), changed)

		found, err := repo.FindByID(ctx, ord.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, found.Status)
	})

	t.Run("zero rows when another writer won", func(t *testing.T) {
		changed, err := repo.UpdateStatus(ctx, ord.ID, order.StatusReserved, order.StatusExpired)
		require.NoError(t, err)
		assert.Zero(t, changed)

		found, err := repo.FindByID(ctx, ord.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, found.Status)
	})
}

func TestOrderRepositoryFindExpiredReserved(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)

	eventID := uuid.New()
	now := time.Now()

	stale, err := order.New("user_1", eventID, order.TypeTicket, now.Add(-time.Minute))
	require.NoError(t, err)
	require.NoError(t, stale.AddTicketItem(uuid.New(), "General", decimal.NewFromInt(500), 1))
	require.NoError(t, stale.AttachGatewayOrder("order_rzp_stale"))
	require.NoError(t, db.Create(stale).Error)

	fresh, err := order.New("user_2", eventID, order.TypeTicket, now.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, fresh.AttachGatewayOrder("order_rzp_fresh"))
	require.NoError(t, db.Create(fresh).Error)

	otherType, err := order.New("user_3", eventID, order.TypePackage, now.Add(-time.Minute))
	require.NoError(t, err)
	require.NoError(t, otherType.AttachGatewayOrder("order_rzp_pkg"))
	require.NoError(t, db.Create(otherType).Error)

	expired, err := repo.FindExpiredReserved(ctx, eventID, order.TypeTicket, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, stale.ID, expired[0].ID)
	assert.Len(t, expired[0].Items, 1)
}

func TestSponsorRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSponsorRepository(db)

	eventID := uuid.New()

	t.Run("first sponsorship creates the relation", func(t *testing.T) {
		created, err := repo.Create(ctx, event.NewSponsor(eventID, "user_1"))
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("repeat sponsorship is swallowed", func(t *testing.T) {
		created, err := repo.Create(ctx, event.NewSponsor(eventID, "user_1"))
		require.NoError(t, err)
		assert.False(t, created)

		sponsors, err := repo.FindByEvent(ctx, eventID)
		require.NoError(t, err)
		assert.Len(t, sponsors, 1)
	})

	t.Run("same user may sponsor another event", func(t *testing.T) {
		created, err := repo.Create(ctx, event.NewSponsor(uuid.New(), "user_1"))
		require.NoError(t, err)
		assert.True(t, created)

		sponsored, err := repo.FindBySponsor(ctx, "user_1")
		require.NoError(t, err)
		assert.Len(t, sponsored, 2)
	})
}

func TestRevenueRepositoryAccumulators(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormRevenueRepository(db)

	eventID := uuid.New()
	require.NoError(t, repo.Save(ctx, event.NewRevenue(eventID)))

	require.NoError(t, repo.AddTicketRevenue(ctx, eventID, 50000))
	require.NoError(t, repo.AddTicketRevenue(ctx, eventID, 25000))
	require.NoError(t, repo.AddPackageRevenue(ctx, eventID, 100000))

	rev, err := repo.FindByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), rev.TicketRevenueCents)
	assert.Equal(t, int64(100000), rev.PackageRevenueCents)
	assert.Equal(t, int64(175000), rev.TotalCents())

	t.Run("rejects negative increments", func(t *testing.T) {
		assert.Error(t, repo.AddTicketRevenue(ctx, eventID, -1))
	})

	t.Run("unknown event", func(t *testing.T) {
		assert.ErrorIs(t, repo.AddTicketRevenue(ctx, uuid.New(), 100), shared.ErrNotFound)
	})

	t.Run("payout is an absolute set", func(t *testing.T) {
		require.NoError(t, repo.RecordPayout(ctx, eventID, 50000))
		require.NoError(t, repo.RecordPayout(ctx, eventID, 50000))

		rev, err := repo.FindByEvent(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), rev.PaidCents)
		assert.Equal(t, int64(125000), rev.OutstandingCents())
	})
}
