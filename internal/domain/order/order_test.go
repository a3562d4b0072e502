package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicketOrder(t *testing.T) *Order {
	t.Helper()
	o, err := New("user_1", uuid.New(), TypeTicket, time.Now().Add(30*time.Minute))
	require.NoError(t, err)
	return o
}

func TestParseType(t *testing.T) {
	t.Run("accepts known types case-insensitively", func(t *testing.T) {
		typ, err := ParseType("ticket")
		require.NoError(t, err)
		assert.Equal(t, TypeTicket, typ)

		typ, err = ParseType(" PACKAGE ")
		require.NoError(t, err)
		assert.Equal(t, TypePackage, typ)
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		_, err := ParseType("SUBSCRIPTION")
		assert.Error(t, err)
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusReserved.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
}

func TestNew(t *testing.T) {
	t.Run("creates a reserved order", func(t *testing.T) {
		o := newTicketOrder(t)
		assert.Equal(t, StatusReserved, o.Status)
		assert.Empty(t, o.Items)
		assert.Zero(t, o.TotalAmountCents)
	})

	t.Run("rejects empty buyer", func(t *testing.T) {
		_, err := New("", uuid.New(), TypeTicket, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects nil event", func(t *testing.T) {
		_, err := New("user_1", uuid.Nil, TypeTicket, time.Now())
		assert.Error(t, err)
	})
}

func TestOrderAddItems(t *testing.T) {
	t.Run("accumulates total in minor units", func(t *testing.T) {
		o := newTicketOrder(t)
		require.NoError(t, o.AddTicketItem(uuid.New(), "General", decimal.NewFromFloat(499.50), 2))
		require.NoError(t, o.AddTicketItem(uuid.New(), "VIP", decimal.NewFromInt(1500), 1))

		assert.Len(t, o.Items, 2)
		assert.Equal(t, int64(99900+150000), o.TotalAmountCents)
	})

	t.Run("rejects package items on ticket orders", func(t *testing.T) {
		o := newTicketOrder(t)
		err := o.AddPackageItem(uuid.New(), "Gold", decimal.NewFromInt(50000), 1)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		o := newTicketOrder(t)
		assert.Error(t, o.AddTicketItem(uuid.New(), "General", decimal.NewFromInt(100), 0))
	})

	t.Run("rejects items after settlement", func(t *testing.T) {
		o := newTicketOrder(t)
		require.NoError(t, o.Complete("pay_1"))
		assert.Error(t, o.AddTicketItem(uuid.New(), "General", decimal.NewFromInt(100), 1))
	})
}

func TestOrderItemPoolID(t *testing.T) {
	ticketID := uuid.New()
	item := OrderItem{TicketID: &ticketID}
	assert.Equal(t, ticketID, item.PoolID())

	packageID := uuid.New()
	item = OrderItem{PackageID: &packageID}
	assert.Equal(t, packageID, item.PoolID())

	item = OrderItem{}
	assert.Equal(t, uuid.Nil, item.PoolID())
}

func TestOrderTransitions(t *testing.T) {
	t.Run("complete records payment ID", func(t *testing.T) {
		o := newTicketOrder(t)
		require.NoError(t, o.Complete("pay_123"))
		assert.Equal(t, StatusCompleted, o.Status)
		assert.Equal(t, "pay_123", o.PaymentID)
	})

	t.Run("fail and expire", func(t *testing.T) {
		o := newTicketOrder(t)
		require.NoError(t, o.Fail())
		assert.Equal(t, StatusFailed, o.Status)

		o = newTicketOrder(t)
		require.NoError(t, o.Expire())
		assert.Equal(t, StatusExpired, o.Status)
	})

	t.Run("terminal states admit no transitions", func(t *testing.T) {
		o := newTicketOrder(t)
		require.NoError(t, o.Complete("pay_1"))
		assert.Error(t, o.Fail())
		assert.Error(t, o.Expire())
		assert.Error(t, o.Complete("pay_2"))
		assert.Equal(t, "pay_1", o.PaymentID)
	})
}

func TestOrderIsExpired(t *testing.T) {
	now := time.Now()
	o, err := New("user_1", uuid.New(), TypeTicket, now.Add(time.Minute))
	require.NoError(t, err)

	assert.False(t, o.IsExpired(now))
	assert.True(t, o.IsExpired(now.Add(2*time.Minute)))
}

func TestGatewayOrderRequestValidate(t *testing.T) {
	req := &CreateGatewayOrderRequest{AmountCents: 1000, Currency: "INR"}
	assert.NoError(t, req.Validate())

	assert.Error(t, (&CreateGatewayOrderRequest{AmountCents: 0, Currency: "INR"}).Validate())
	assert.Error(t, (&CreateGatewayOrderRequest{AmountCents: 1000}).Validate())
}
