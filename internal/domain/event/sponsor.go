package event

import (
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Sponsor records that a user sponsors an event. The (event, sponsor) pair is
// unique; it is created at most once, when the user's first package order for
// the event completes. Duplicate creation attempts are detected at the
// database and swallowed by the repository.
type Sponsor struct {
	shared.BaseEntity
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sponsor_event_user,priority:1"`
	SponsorID string    `gorm:"not null;uniqueIndex:idx_sponsor_event_user,priority:2"`
}

// TableName returns the table name for GORM
func (Sponsor) TableName() string {
	return "sponsors"
}

// NewSponsor creates a sponsor relation.
func NewSponsor(eventID uuid.UUID, sponsorID string) *Sponsor {
	return &Sponsor{
		BaseEntity: shared.NewBaseEntity(),
		EventID:    eventID,
		SponsorID:  sponsorID,
	}
}
