package event

import (
	"time"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketInput defines one ticket tier on event creation.
type TicketInput struct {
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// PackageInput defines one sponsorship tier on event creation.
type PackageInput struct {
	Title    string          `json:"title"`
	Benefits string          `json:"benefits"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// CreateEventRequest carries the fields for a new event listing.
type CreateEventRequest struct {
	Summary     string         `json:"summary"`
	Description string         `json:"description"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Location    string         `json:"location"`
	LocationURL string         `json:"location_url"`
	ImageURL    string         `json:"image_url"`
	Tickets     []TicketInput  `json:"tickets"`
	Packages    []PackageInput `json:"packages"`
}

// UpdateEventRequest carries organizer edits to an event's details.
type UpdateEventRequest struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
	LocationURL string    `json:"location_url"`
}

// ListEventsQuery filters the event listing.
type ListEventsQuery struct {
	Page         int
	PageSize     int
	UpcomingOnly bool
	OrganizerID  string
}

// TicketResponse is the public view of a ticket tier.
type TicketResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Available int             `json:"available"`
}

// PackageResponse is the public view of a sponsorship tier.
type PackageResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Benefits  string          `json:"benefits"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Available int             `json:"available"`
}

// EventResponse is the public view of an event listing.
type EventResponse struct {
	ID          uuid.UUID         `json:"id"`
	Summary     string            `json:"summary"`
	Description string            `json:"description"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Location    string            `json:"location"`
	LocationURL string            `json:"location_url,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	OrganizerID string            `json:"organizer_id"`
	Tickets     []TicketResponse  `json:"tickets"`
	Packages    []PackageResponse `json:"packages"`
}

// RevenueResponse is the admin view of one event's revenue row.
type RevenueResponse struct {
	EventID             uuid.UUID `json:"event_id"`
	TicketRevenueCents  int64     `json:"ticket_revenue_cents"`
	PackageRevenueCents int64     `json:"package_revenue_cents"`
	TotalCents          int64     `json:"total_cents"`
	PaidCents           int64     `json:"paid_cents"`
	OutstandingCents    int64     `json:"outstanding_cents"`
}

// RecordPayoutRequest records an organizer payout against an event.
type RecordPayoutRequest struct {
	EventID   uuid.UUID `json:"event_id"`
	PaidCents int64     `json:"paid_cents"`
}

func toTicketResponse(t *event.Ticket) TicketResponse {
	return TicketResponse{
		ID:        t.ID,
		Title:     t.Title,
		Price:     t.Price,
		Currency:  t.Currency,
		Available: t.Available(),
	}
}

func toPackageResponse(p *event.Package) PackageResponse {
	return PackageResponse{
		ID:        p.ID,
		Title:     p.Title,
		Benefits:  p.Benefits,
		Price:     p.Price,
		Currency:  p.Currency,
		Available: p.Available(),
	}
}

func toEventResponse(e *event.Event) *EventResponse {
	resp := &EventResponse{
		ID:          e.ID,
		Summary:     e.Summary,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		LocationURL: e.LocationURL,
		ImageURL:    e.ImageURL,
		OrganizerID: e.OrganizerID,
		Tickets:     make([]TicketResponse, 0, len(e.Tickets)),
		Packages:    make([]PackageResponse, 0, len(e.Packages)),
	}
	for i := range e.Tickets {
		resp.Tickets = append(resp.Tickets, toTicketResponse(&e.Tickets[i]))
	}
	for i := range e.Packages {
		resp.Packages = append(resp.Packages, toPackageResponse(&e.Packages[i]))
	}
	return resp
}

func toRevenueResponse(r *event.Revenue) RevenueResponse {
	return RevenueResponse{
		EventID:             r.EventID,
		TicketRevenueCents:  r.TicketRevenueCents,
		PackageRevenueCents: r.PackageRevenueCents,
		TotalCents:          r.TotalCents(),
		PaidCents:           r.PaidCents,
		OutstandingCents:    r.OutstandingCents(),
	}
}
