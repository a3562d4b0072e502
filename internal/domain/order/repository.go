package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations for orders.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByGatewayOrderID loads an order (with items) by the external
	// gateway handle; webhook settlement is keyed on it.
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	// FindExpiredReserved returns RESERVED orders of the given event and
	// type whose expiry has passed, items included, for the lazy sweep.
	FindExpiredReserved(ctx context.Context, eventID uuid.UUID, orderType Type, now time.Time) ([]Order, error)
	FindByBuyer(ctx context.Context, buyerID string) ([]Order, error)
	Save(ctx context.Context, o *Order) error
	// UpdateStatus flips only the status column. It reports how many rows
	// changed so callers can detect idempotent replays.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (int64, error)
}
