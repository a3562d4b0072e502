package event_test

import (
	"context"
	"testing"
	"time"

	eventapp "github.com/eventnexus/backend/internal/application/event"
	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/identity"
	"github.com/eventnexus/backend/internal/domain/order"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/eventnexus/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&event.Event{},
		&event.Ticket{},
		&event.Package{},
		&event.Revenue{},
		&event.Sponsor{},
		&order.Order{},
		&order.OrderItem{},
	))
	return db
}

func newEventService(t *testing.T, db *gorm.DB) *eventapp.EventService {
	t.Helper()
	return eventapp.NewEventService(
		persistence.NewGormEventRepository(db),
		persistence.NewGormRevenueRepository(db),
		zap.NewNop(),
	)
}

func mustUser(t *testing.T, id string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(id, id+"@example.com", "Test", "User", "", role)
	require.NoError(t, err)
	return u
}

func validCreateRequest() eventapp.CreateEventRequest {
	start := time.Now().Add(96 * time.Hour)
	return eventapp.CreateEventRequest{
		Summary:     "Tech Summit 2026",
		Description: "Two days of talks and workshops.",
		StartTime:   start,
		EndTime:     start.Add(10 * time.Hour),
		Location:    "Bengaluru",
		LocationURL: "https://summit.example.com",
		Tickets: []eventapp.TicketInput{
			{Title: "General", Price: decimal.NewFromFloat(499.50), Quantity: 100},
			{Title: "VIP", Price: decimal.NewFromInt(1500), Quantity: 20},
		},
		Packages: []eventapp.PackageInput{
			{Title: "Gold", Benefits: "Logo on stage", Price: decimal.NewFromInt(50000), Quantity: 3},
		},
	}
}

func TestEventServiceCreate(t *testing.T) {
	ctx := context.Background()
	db := newServiceDB(t)
	svc := newEventService(t, db)
	organizer := mustUser(t, "user_org", identity.RoleUser)

	resp, err := svc.Create(ctx, organizer, validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "Tech Summit 2026", resp.Summary)
	assert.Equal(t, organizer.ID, resp.OrganizerID)
	require.Len(t, resp.Tickets, 2)
	require.Len(t, resp.Packages, 1)
	assert.Equal(t, 100, resp.Tickets[0].Available)

	// The revenue ledger opens zeroed alongside the event.
	var rev event.Revenue
	require.NoError(t, db.First(&rev, "event_id = ?", resp.ID).Error)
	assert.Zero(t, rev.TotalCents())

	t.Run("rejects an invalid tier", func(t *testing.T) {
		req := validCreateRequest()
		req.Tickets[0].Price = decimal.NewFromInt(-1)
		_, err := svc.Create(ctx, organizer, req)
		require.Error(t, err)
	})

	t.Run("rejects a window that ends before it starts", func(t *testing.T) {
		req := validCreateRequest()
		req.EndTime = req.StartTime.Add(-time.Hour)
		_, err := svc.Create(ctx, organizer, req)
		require.Error(t, err)
	})
}

func TestEventServiceGetAndList(t *testing.T) {
	ctx := context.Background()
	db := newServiceDB(t)
	svc := newEventService(t, db)
	organizer := mustUser(t, "user_org", identity.RoleUser)
	other := mustUser(t, "user_other", identity.RoleUser)

	created, err := svc.Create(ctx, organizer, validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, validCreateRequest())
	require.NoError(t, err)

	t.Run("get returns tiers", func(t *testing.T) {
		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, got.Tickets, 2)
	})

	t.Run("get unknown event", func(t *testing.T) {
		_, err := svc.Get(ctx, created.Tickets[0].ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("list all", func(t *testing.T) {
		events, err := svc.List(ctx, eventapp.ListEventsQuery{})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("list by organizer", func(t *testing.T) {
		events, err := svc.List(ctx, eventapp.ListEventsQuery{OrganizerID: organizer.ID})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, created.ID, events[0].ID)
	})
}

func TestEventServiceUpdate(t *testing.T) {
	ctx := context.Background()
	db := newServiceDB(t)
	svc := newEventService(t, db)
	organizer := mustUser(t, "user_org", identity.RoleUser)
	stranger := mustUser(t, "user_stranger", identity.RoleUser)
	admin := mustUser(t, "user_admin", identity.RoleAdmin)

	created, err := svc.Create(ctx, organizer, validCreateRequest())
	require.NoError(t, err)

	edit := eventapp.UpdateEventRequest{
		Summary:     "Tech Summit 2026, rescheduled",
		Description: created.Description,
		StartTime:   created.StartTime.Add(24 * time.Hour),
		EndTime:     created.EndTime.Add(24 * time.Hour),
		Location:    created.Location,
		LocationURL: created.LocationURL,
	}

	t.Run("strangers may not edit", func(t *testing.T) {
		_, err := svc.Update(ctx, stranger, created.ID, edit)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("organizer may", func(t *testing.T) {
		updated, err := svc.Update(ctx, organizer, created.ID, edit)
		require.NoError(t, err)
		assert.Equal(t, "Tech Summit 2026, rescheduled", updated.Summary)
	})

	t.Run("admin may", func(t *testing.T) {
		_, err := svc.Update(ctx, admin, created.ID, edit)
		require.NoError(t, err)
	})
}

func TestEventServiceDelete(t *testing.T) {
	ctx := context.Background()
	db := newServiceDB(t)
	svc := newEventService(t, db)
	organizer := mustUser(t, "user_org", identity.RoleUser)
	stranger := mustUser(t, "user_stranger", identity.RoleUser)

	created, err := svc.Create(ctx, organizer, validCreateRequest())
	require.NoError(t, err)

	t.Run("strangers may not delete", func(t *testing.T) {
		err := svc.Delete(ctx, stranger, created.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("held inventory blocks deletion", func(t *testing.T) {
		require.NoError(t, db.Model(&event.Ticket{}).
			Where("id = ?", created.Tickets[0].ID).
			Update("reserved", 1).Error)

		err := svc.Delete(ctx, organizer, created.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)

		require.NoError(t, db.Model(&event.Ticket{}).
			Where("id = ?", created.Tickets[0].ID).
			Update("reserved", 0).Error)
	})

	t.Run("organizer deletes a clean event", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, organizer, created.ID))
		_, err := svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestRevenueService(t *testing.T) {
	ctx := context.Background()
	db := newServiceDB(t)
	eventSvc := newEventService(t, db)
	revenueSvc := eventapp.NewRevenueService(persistence.NewGormRevenueRepository(db), zap.NewNop())
	organizer := mustUser(t, "user_org", identity.RoleUser)
	admin := mustUser(t, "user_admin", identity.RoleAdmin)

	created, err := eventSvc.Create(ctx, organizer, validCreateRequest())
	require.NoError(t, err)

	repo := persistence.NewGormRevenueRepository(db)
	require.NoError(t, repo.AddTicketRevenue(ctx, created.ID, 100000))

	t.Run("non-admins are refused", func(t *testing.T) {
		_, err := revenueSvc.List(ctx, organizer)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		_, err = revenueSvc.GetByEvent(ctx, organizer, created.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		_, err = revenueSvc.RecordPayout(ctx, organizer, eventapp.RecordPayoutRequest{EventID: created.ID, PaidCents: 1})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("list and get", func(t *testing.T) {
		rows, err := revenueSvc.List(ctx, admin)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		row, err := revenueSvc.GetByEvent(ctx, admin, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100000), row.TicketRevenueCents)
		assert.Equal(t, int64(100000), row.OutstandingCents)
	})

	t.Run("payout bounds", func(t *testing.T) {
		_, err := revenueSvc.RecordPayout(ctx, admin, eventapp.RecordPayoutRequest{EventID: created.ID, PaidCents: -1})
		require.Error(t, err)
		_, err = revenueSvc.RecordPayout(ctx, admin, eventapp.RecordPayoutRequest{EventID: created.ID, PaidCents: 100001})
		require.Error(t, err)
	})

	t.Run("payout is absolute", func(t *testing.T) {
		row, err := revenueSvc.RecordPayout(ctx, admin, eventapp.RecordPayoutRequest{EventID: created.ID, PaidCents: 60000})
		require.NoError(t, err)
		assert.Equal(t, int64(60000), row.PaidCents)

		row, err = revenueSvc.RecordPayout(ctx, admin, eventapp.RecordPayoutRequest{EventID: created.ID, PaidCents: 60000})
		require.NoError(t, err)
		assert.Equal(t, int64(60000), row.PaidCents)
		assert.Equal(t, int64(40000), row.OutstandingCents)
	})
}
