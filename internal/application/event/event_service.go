package event

import (
	"context"
	"time"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/identity"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventService manages event listings with their ticket and package tiers.
type EventService struct {
	events   event.EventRepository
	revenues event.RevenueRepository
	logger   *zap.Logger
	nowFn    func() time.Time
}

// NewEventService creates an EventService.
func NewEventService(events event.EventRepository, revenues event.RevenueRepository, logger *zap.Logger) *EventService {
	return &EventService{
		events:   events,
		revenues: revenues,
		logger:   logger,
		nowFn:    time.Now,
	}
}

// Create lists a new event organized by the caller, with its ticket and
// package tiers, and opens the event's revenue row.
func (s *EventService) Create(ctx context.Context, organizer *identity.User, req CreateEventRequest) (*EventResponse, error) {
	evt, err := event.NewEvent(organizer.ID, req.Summary, req.Description, req.StartTime, req.EndTime, req.Location, req.LocationURL)
	if err != nil {
		return nil, err
	}
	evt.ImageURL = req.ImageURL

	for _, t := range req.Tickets {
		if _, err := evt.AddTicket(t.Title, event.NewPriceINR(t.Price), t.Quantity); err != nil {
			return nil, err
		}
	}
	for _, p := range req.Packages {
		if _, err := evt.AddPackage(p.Title, p.Benefits, event.NewPriceINR(p.Price), p.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.events.Save(ctx, evt); err != nil {
		return nil, err
	}
	if err := s.revenues.Save(ctx, event.NewRevenue(evt.ID)); err != nil {
		return nil, err
	}

	s.logger.Info("event created",
		zap.String("event_id", evt.ID.String()),
		zap.String("organizer_id", organizer.ID),
		zap.Int("tickets", len(evt.Tickets)),
		zap.Int("packages", len(evt.Packages)),
	)
	return toEventResponse(evt), nil
}

// Get returns one event with its tiers.
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	evt, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEventResponse(evt), nil
}

// List returns events matching the query, newest start time first.
func (s *EventService) List(ctx context.Context, query ListEventsQuery) ([]EventResponse, error) {
	filter := shared.NewFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	filter.OrderBy = "start_time"
	filter.OrderDir = "asc"
	if query.UpcomingOnly {
		filter.Filters["end_time_after"] = s.nowFn()
	}

	var (
		events []event.Event
		err    error
	)
	if query.OrganizerID != "" {
		events, err = s.events.FindByOrganizer(ctx, query.OrganizerID, filter)
	} else {
		events, err = s.events.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *toEventResponse(&events[i]))
	}
	return out, nil
}

// Update applies detail edits. Only the organizer or an admin may edit.
func (s *EventService) Update(ctx context.Context, caller *identity.User, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	evt, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !evt.IsOrganizedBy(caller.ID) && !caller.Role.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	if err := evt.UpdateDetails(req.Summary, req.Description, req.StartTime, req.EndTime, req.Location, req.LocationURL); err != nil {
		return nil, err
	}
	if err := s.events.Save(ctx, evt); err != nil {
		return nil, err
	}
	return toEventResponse(evt), nil
}

// Delete removes an event. Only the organizer or an admin may delete, and
// only while no units have been sold or are on hold.
func (s *EventService) Delete(ctx context.Context, caller *identity.User, id uuid.UUID) error {
	evt, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !evt.IsOrganizedBy(caller.ID) && !caller.Role.IsAdmin() {
		return shared.ErrForbidden
	}
	for i := range evt.Tickets {
		if evt.Tickets[i].Sold > 0 || evt.Tickets[i].Reserved > 0 {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete an event with sold or held tickets")
		}
	}
	for i := range evt.Packages {
		if evt.Packages[i].Sold > 0 || evt.Packages[i].Reserved > 0 {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete an event with sold or held packages")
		}
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("event deleted", zap.String("event_id", id.String()), zap.String("caller_id", caller.ID))
	return nil
}
