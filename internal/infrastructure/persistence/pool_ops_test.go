package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/identity"
	"github.com/eventnexus/backend/internal/domain/order"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.User{},
		&event.Event{},
		&event.Ticket{},
		&event.Package{},
		&event.Revenue{},
		&event.Sponsor{},
		&order.Order{},
		&order.OrderItem{},
	)
	require.NoError(t, err)
	return db
}

func seedTicket(t *testing.T, db *gorm.DB, quantity int) *event.Ticket {
	t.Helper()
	ticket, err := event.NewTicket(uuid.New(), "General", decimal.NewFromInt(500), "INR", quantity)
	require.NoError(t, err)
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func reloadTicket(t *testing.T, db *gorm.DB, id uuid.UUID) *event.Ticket {
	t.Helper()
	var ticket event.Ticket
	require.NoError(t, db.First(&ticket, "id = ?", id).Error)
	return &ticket
}

func TestPoolOpsReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("holds available units", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormTicketRepository(db)
		ticket := seedTicket(t, db, 10)

		require.NoError(t, repo.Reserve(ctx, ticket.ID, 6))

		got := reloadTicket(t, db, ticket.ID)
		assert.Equal(t, 6, got.Reserved)
		assert.Equal(t, 4, got.Available())
	})

	t.Run("reports shortfall with details", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormTicketRepository(db)
		ticket := seedTicket(t, db, 10)

		require.NoError(t, repo.Reserve(ctx, ticket.ID, 6))

		err := repo.Reserve(ctx, ticket.ID, 6)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, 6, domainErr.Details["requested"])
		assert.Equal(t, 4, domainErr.Details["available"])
		assert.Equal(t, "General", domainErr.Details["title"])

		// The failed attempt must not have moved the counters.
		got := reloadTicket(t, db, ticket.ID)
		assert.Equal(t, 6, got.Reserved)
	})

	t.Run("exact remainder succeeds", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormTicketRepository(db)
		ticket := seedTicket(t, db, 10)

		require.NoError(t, repo.Reserve(ctx, ticket.ID, 10))
		assert.Error(t, repo.Reserve(ctx, ticket.ID, 1))
	})

	t.Run("unknown pool", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormTicketRepository(db)

		err := repo.Reserve(ctx, uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormTicketRepository(db)
		ticket := seedTicket(t, db, 10)

		assert.Error(t, repo.Reserve(ctx, ticket.ID, 0))
		assert.Error(t, repo.Reserve(ctx, ticket.ID, -2))
	})
}

func TestPoolOpsCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("moves held units to sold", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormTicketRepository(db)
		ticket := seedTicket(t, db, 10)

		require.NoError(t, repo.Reserve(ctx, ticket.ID, 4))
		require.NoError(t, repo.Commit(ctx, ticket.ID, 4))

		got := reloadTicket(t, db, ticket.ID)
		assert.Equal(t, 4, got.Sold)
		assert.Equal(t, 0, got.Reserved)
		assert.Equal(t, 6, got.Available())
	})

	t.Run("unknown pool", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormTicketRepository(db)
		assert.ErrorIs(t, repo.Commit(ctx, uuid.New(), 1), shared.ErrNotFound)
	})
}

func TestPoolOpsRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("returns held units", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormTicketRepository(db)
		ticket := seedTicket(t, db, 10)

		require.NoError(t, repo.Reserve(ctx, ticket.ID, 5))
		require.NoError(t, repo.Release(ctx, ticket.ID, 5))

		got := reloadTicket(t, db, ticket.ID)
		assert.Equal(t, 0, got.Reserved)
		assert.Equal(t, 10, got.Available())
	})

	t.Run("floors reserved at zero", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormTicketRepository(db)
		ticket := seedTicket(t, db, 10)

		require.NoError(t, repo.Reserve(ctx, ticket.ID, 2))
		require.NoError(t, repo.Release(ctx, ticket.ID, 5))

		got := reloadTicket(t, db, ticket.ID)
		assert.Equal(t, 0, got.Reserved)
	})
}

func TestPackageRepositoryPoolOps(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormPackageRepository(db)

	pkg, err := event.NewPackage(uuid.New(), "Gold", "Logo on banners", decimal.NewFromInt(100000), "INR", 3)
	require.NoError(t, err)
	require.NoError(t, db.Create(pkg).Error)

	require.NoError(t, repo.Reserve(ctx, pkg.ID, 2))
	err = repo.Reserve(ctx, pkg.ID, 2)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 1, domainErr.Details["available"])

	require.NoError(t, repo.Commit(ctx, pkg.ID, 2))

	var got event.Package
	require.NoError(t, db.First(&got, "id = ?", pkg.ID).Error)
	assert.Equal(t, 2, got.Sold)
	assert.Equal(t, 0, got.Reserved)
}
