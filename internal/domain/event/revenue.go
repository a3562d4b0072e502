package event

import (
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Revenue is the per-event revenue ledger: two monotonically increasing
// accumulators (ticket and package sales, in minor units) plus the amount
// already paid out to the organizer. The accumulators are incremented exactly
// once per completed order, inside the same transaction that completes the
// order; PaidCents is maintained manually by admins.
type Revenue struct {
	shared.BaseEntity
	EventID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	TicketRevenueCents  int64     `gorm:"not null;default:0"`
	PackageRevenueCents int64     `gorm:"not null;default:0"`
	PaidCents           int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Revenue) TableName() string {
	return "event_revenues"
}

// NewRevenue creates the zeroed ledger row for a freshly created event.
func NewRevenue(eventID uuid.UUID) *Revenue {
	return &Revenue{
		BaseEntity: shared.NewBaseEntity(),
		EventID:    eventID,
	}
}

// TotalCents returns accrued revenue across both accumulators.
func (r *Revenue) TotalCents() int64 {
	return r.TicketRevenueCents + r.PackageRevenueCents
}

// OutstandingCents returns accrued revenue not yet paid out.
func (r *Revenue) OutstandingCents() int64 {
	return r.TotalCents() - r.PaidCents
}
