package order

import (
	"context"

	"github.com/eventnexus/backend/internal/domain/order"
)

// Notifier delivers purchase-related notifications after settlement. Delivery
// happens outside the settlement transaction and failures are logged, never
// propagated: a lost email must not fail a paid order.
type Notifier interface {
	// PurchaseConfirmed tells the buyer their order was paid.
	PurchaseConfirmed(ctx context.Context, o *order.Order)
	// NewSponsor tells the event organizer about a first-time sponsor.
	NewSponsor(ctx context.Context, o *order.Order)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) PurchaseConfirmed(context.Context, *order.Order) {}

func (NopNotifier) NewSponsor(context.Context, *order.Order) {}
