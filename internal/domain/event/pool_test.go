package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAvailable(t *testing.T) {
	p := Pool{Quantity: 100, Sold: 30, Reserved: 20}
	assert.Equal(t, 50, p.Available())

	assert.True(t, p.CanReserve(50))
	assert.False(t, p.CanReserve(51))
	assert.False(t, p.CanReserve(0))
	assert.False(t, p.CanReserve(-1))
}

func TestPoolPriceCents(t *testing.T) {
	p := Pool{Price: decimal.NewFromFloat(499.99)}
	assert.Equal(t, int64(49999), p.PriceCents())

	p = Pool{Price: decimal.NewFromFloat(0.005)}
	assert.Equal(t, int64(1), p.PriceCents())
}

func TestNewTicket(t *testing.T) {
	eventID := uuid.New()

	t.Run("creates a valid ticket tier", func(t *testing.T) {
		ticket, err := NewTicket(eventID, "General", decimal.NewFromInt(500), "INR", 100)
		require.NoError(t, err)
		assert.Equal(t, eventID, ticket.EventID)
		assert.Equal(t, 100, ticket.Available())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewTicket(eventID, "", decimal.NewFromInt(500), "INR", 100)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewTicket(eventID, "General", decimal.NewFromInt(-1), "INR", 100)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewTicket(eventID, "General", decimal.NewFromInt(500), "INR", -5)
		assert.Error(t, err)
	})
}

func TestNewPackage(t *testing.T) {
	eventID := uuid.New()

	t.Run("creates a valid package tier", func(t *testing.T) {
		pkg, err := NewPackage(eventID, "Gold", "Logo on banners", decimal.NewFromInt(50000), "INR", 5)
		require.NoError(t, err)
		assert.Equal(t, "Logo on banners", pkg.Benefits)
	})

	t.Run("rejects empty benefits", func(t *testing.T) {
		_, err := NewPackage(eventID, "Gold", "", decimal.NewFromInt(50000), "INR", 5)
		assert.Error(t, err)
	})
}

func TestRevenue(t *testing.T) {
	r := NewRevenue(uuid.New())
	assert.Zero(t, r.TotalCents())
	assert.Zero(t, r.OutstandingCents())

	r.TicketRevenueCents = 100000
	r.PackageRevenueCents = 250000
	r.PaidCents = 50000
	assert.Equal(t, int64(350000), r.TotalCents())
	assert.Equal(t, int64(300000), r.OutstandingCents())
}
