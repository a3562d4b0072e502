package persistence

import (
	"context"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSponsorRepository implements SponsorRepository using GORM
type GormSponsorRepository struct {
	db *gorm.DB
}

// NewGormSponsorRepository creates a new GormSponsorRepository
func NewGormSponsorRepository(db *gorm.DB) *GormSponsorRepository {
	return &GormSponsorRepository{db: db}
}

// Create inserts the sponsor relation. The unique (event, sponsor) index
// makes a repeat purchase collide; ON CONFLICT DO NOTHING swallows it and the
// zero row count reports created=false.
func (r *GormSponsorRepository) Create(ctx context.Context, sponsor *event.Sponsor) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "sponsor_id"}},
			DoNothing: true,
		}).
		Create(sponsor)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByEvent finds the sponsors of an event
func (r *GormSponsorRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]event.Sponsor, error) {
	var sponsors []event.Sponsor
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&sponsors).Error; err != nil {
		return nil, err
	}
	return sponsors, nil
}

// FindBySponsor finds the events a user sponsors
func (r *GormSponsorRepository) FindBySponsor(ctx context.Context, sponsorID string) ([]event.Sponsor, error) {
	var sponsors []event.Sponsor
	if err := r.db.WithContext(ctx).
		Where("sponsor_id = ?", sponsorID).
		Order("created_at asc").
		Find(&sponsors).Error; err != nil {
		return nil, err
	}
	return sponsors, nil
}

// Ensure GormSponsorRepository implements SponsorRepository
var _ event.SponsorRepository = (*GormSponsorRepository)(nil)
