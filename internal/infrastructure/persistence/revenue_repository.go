package persistence

import (
	"context"
	"errors"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRevenueRepository implements RevenueRepository using GORM. The two
// revenue accumulators only ever grow, and only through the relative-update
// Add methods so concurrent settlements cannot lose increments.
type GormRevenueRepository struct {
	db *gorm.DB
}

// NewGormRevenueRepository creates a new GormRevenueRepository
func NewGormRevenueRepository(db *gorm.DB) *GormRevenueRepository {
	return &GormRevenueRepository{db: db}
}

// FindByEvent finds the revenue row of an event
func (r *GormRevenueRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) (*event.Revenue, error) {
	var rev event.Revenue
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&rev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// FindAll returns every event's revenue row
func (r *GormRevenueRepository) FindAll(ctx context.Context) ([]event.Revenue, error) {
	var rows []event.Revenue
	if err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates a revenue row
func (r *GormRevenueRepository) Save(ctx context.Context, revenue *event.Revenue) error {
	return r.db.WithContext(ctx).Save(revenue).Error
}

// AddTicketRevenue increments the ticket accumulator
func (r *GormRevenueRepository) AddTicketRevenue(ctx context.Context, eventID uuid.UUID, cents int64) error {
	return r.add(ctx, eventID, "ticket_revenue_cents", cents)
}

// AddPackageRevenue increments the package accumulator
func (r *GormRevenueRepository) AddPackageRevenue(ctx context.Context, eventID uuid.UUID, cents int64) error {
	return r.add(ctx, eventID, "package_revenue_cents", cents)
}

func (r *GormRevenueRepository) add(ctx context.Context, eventID uuid.UUID, column string, cents int64) error {
	if cents < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Revenue increment cannot be negative")
	}

	result := r.db.WithContext(ctx).
		Model(&event.Revenue{}).
		Where("event_id = ?", eventID).
		Update(column, gorm.Expr(column+" + ?", cents))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RecordPayout sets the amount paid out to the organizer
func (r *GormRevenueRepository) RecordPayout(ctx context.Context, eventID uuid.UUID, paidCents int64) error {
	result := r.db.WithContext(ctx).
		Model(&event.Revenue{}).
		Where("event_id = ?", eventID).
		Update("paid_cents", paidCents)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRevenueRepository implements RevenueRepository
var _ event.RevenueRepository = (*GormRevenueRepository)(nil)
