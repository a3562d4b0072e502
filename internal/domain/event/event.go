package event

import (
	"strings"
	"time"

	"github.com/eventnexus/backend/internal/domain/shared"
)

const (
	maxSummaryLength     = 80
	maxDescriptionLength = 800
	maxLocationLength    = 200
)

// Event is the aggregate root for a listed event with its ticket and package
// offerings. Events are created by an organizer and mutated only by that
// organizer or an admin; they are never hard-deleted once orders exist.
type Event struct {
	shared.BaseEntity
	Summary     string `gorm:"not null"`
	Description string `gorm:"type:text"`
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	LocationURL string
	ImageURL    string
	OrganizerID string `gorm:"not null;index"`

	Tickets  []Ticket  `gorm:"foreignKey:EventID;references:ID"`
	Packages []Package `gorm:"foreignKey:EventID;references:ID"`
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "events"
}

// NewEvent creates a new event for an organizer.
func NewEvent(organizerID, summary, description string, start, end time.Time, location, locationURL string) (*Event, error) {
	if organizerID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Organizer ID cannot be empty")
	}
	e := &Event{
		BaseEntity:  shared.NewBaseEntity(),
		Summary:     strings.TrimSpace(summary),
		Description: strings.TrimSpace(description),
		StartTime:   start,
		EndTime:     end,
		Location:    strings.TrimSpace(location),
		LocationURL: strings.TrimSpace(locationURL),
		OrganizerID: organizerID,
		Tickets:     make([]Ticket, 0),
		Packages:    make([]Package, 0),
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Event) validate() error {
	if e.Summary == "" {
		return shared.NewDomainError("INVALID_INPUT", "Event summary cannot be empty")
	}
	if len(e.Summary) > maxSummaryLength {
		return shared.NewDomainErrorf("INVALID_INPUT", "Event summary cannot exceed %d characters", maxSummaryLength)
	}
	if len(e.Description) > maxDescriptionLength {
		return shared.NewDomainErrorf("INVALID_INPUT", "Event description cannot exceed %d characters", maxDescriptionLength)
	}
	if !e.EndTime.After(e.StartTime) {
		return shared.NewDomainError("INVALID_INPUT", "Event end time must be after start time")
	}
	if e.Location == "" {
		return shared.NewDomainError("INVALID_INPUT", "Location cannot be empty")
	}
	if len(e.Location) > maxLocationLength {
		return shared.NewDomainErrorf("INVALID_INPUT", "Location cannot exceed %d characters", maxLocationLength)
	}
	if e.LocationURL != "" && !strings.HasPrefix(e.LocationURL, "http") {
		return shared.NewDomainError("INVALID_INPUT", "Invalid location URL")
	}
	return nil
}

// IsOrganizedBy reports whether the given user organizes this event.
func (e *Event) IsOrganizedBy(userID string) bool {
	return e.OrganizerID == userID
}

// HasEnded reports whether the event's time window has passed.
func (e *Event) HasEnded(now time.Time) bool {
	return now.After(e.EndTime)
}

// AddTicket attaches a new ticket tier to the event.
func (e *Event) AddTicket(title string, price Price, quantity int) (*Ticket, error) {
	t, err := NewTicket(e.ID, title, price.Amount, price.Currency, quantity)
	if err != nil {
		return nil, err
	}
	e.Tickets = append(e.Tickets, *t)
	e.Touch()
	return t, nil
}

// AddPackage attaches a new sponsorship tier to the event.
func (e *Event) AddPackage(title, benefits string, price Price, quantity int) (*Package, error) {
	p, err := NewPackage(e.ID, title, benefits, price.Amount, price.Currency, quantity)
	if err != nil {
		return nil, err
	}
	e.Packages = append(e.Packages, *p)
	e.Touch()
	return p, nil
}

// UpdateDetails applies organizer edits to the mutable fields.
func (e *Event) UpdateDetails(summary, description string, start, end time.Time, location, locationURL string) error {
	updated := *e
	updated.Summary = strings.TrimSpace(summary)
	updated.Description = strings.TrimSpace(description)
	updated.StartTime = start
	updated.EndTime = end
	updated.Location = strings.TrimSpace(location)
	updated.LocationURL = strings.TrimSpace(locationURL)
	if err := updated.validate(); err != nil {
		return err
	}
	e.Summary = updated.Summary
	e.Description = updated.Description
	e.StartTime = updated.StartTime
	e.EndTime = updated.EndTime
	e.Location = updated.Location
	e.LocationURL = updated.LocationURL
	e.Touch()
	return nil
}
