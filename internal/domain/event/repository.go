package event

import (
	"context"

	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventRepository defines persistence operations for Event aggregates.
type EventRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Event, error)
	FindByOrganizer(ctx context.Context, organizerID string, filter shared.Filter) ([]Event, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PoolRepository defines the inventory operations shared by ticket and
// package pools. Reserve, Commit and Release are atomic relative updates:
// implementations must never write an absolute counter value computed in
// application memory.
type PoolRepository interface {
	// Reserve increments the pool's reserved counter by qty after an
	// availability check performed by the same UPDATE statement. It returns
	// an INSUFFICIENT_STOCK domain error carrying requested/available/item
	// details when the pool cannot cover the request.
	Reserve(ctx context.Context, id uuid.UUID, qty int) error
	// Commit converts a reservation into a sale: sold += qty and
	// reserved -= qty in a single UPDATE.
	Commit(ctx context.Context, id uuid.UUID, qty int) error
	// Release returns reserved units to the pool. The reserved counter is
	// floored at zero by the statement itself.
	Release(ctx context.Context, id uuid.UUID, qty int) error
}

// TicketRepository defines persistence operations for ticket pools.
type TicketRepository interface {
	PoolRepository
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	FindByIDForEvent(ctx context.Context, id, eventID uuid.UUID) (*Ticket, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]Ticket, error)
	Save(ctx context.Context, ticket *Ticket) error
}

// PackageRepository defines persistence operations for sponsorship packages.
type PackageRepository interface {
	PoolRepository
	FindByID(ctx context.Context, id uuid.UUID) (*Package, error)
	FindByIDForEvent(ctx context.Context, id, eventID uuid.UUID) (*Package, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]Package, error)
	Save(ctx context.Context, pkg *Package) error
}

// RevenueRepository defines persistence operations for per-event revenue rows.
type RevenueRepository interface {
	FindByEvent(ctx context.Context, eventID uuid.UUID) (*Revenue, error)
	FindAll(ctx context.Context) ([]Revenue, error)
	Save(ctx context.Context, revenue *Revenue) error
	// AddTicketRevenue and AddPackageRevenue increment the respective
	// accumulator by cents as an atomic relative update.
	AddTicketRevenue(ctx context.Context, eventID uuid.UUID, cents int64) error
	AddPackageRevenue(ctx context.Context, eventID uuid.UUID, cents int64) error
	// RecordPayout sets the amount paid out to the organizer.
	RecordPayout(ctx context.Context, eventID uuid.UUID, paidCents int64) error
}

// SponsorRepository defines persistence operations for sponsor relations.
type SponsorRepository interface {
	// Create inserts the relation. A duplicate (event, sponsor) pair is not
	// an error: Create reports created=false and the caller moves on.
	Create(ctx context.Context, sponsor *Sponsor) (created bool, err error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]Sponsor, error)
	FindBySponsor(ctx context.Context, sponsorID string) ([]Sponsor, error)
}
