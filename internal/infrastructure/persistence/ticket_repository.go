package persistence

import (
	"context"
	"errors"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTicketRepository implements TicketRepository using GORM
type GormTicketRepository struct {
	gormPoolOps
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{gormPoolOps{db: db, model: &event.Ticket{}}}
}

// FindByID finds a ticket tier by its ID
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Ticket, error) {
	var ticket event.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// FindByIDForEvent finds a ticket tier by ID within an event
func (r *GormTicketRepository) FindByIDForEvent(ctx context.Context, id, eventID uuid.UUID) (*event.Ticket, error) {
	var ticket event.Ticket
	if err := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", id, eventID).
		First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// FindByEvent finds all ticket tiers of an event
func (r *GormTicketRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]event.Ticket, error) {
	var tickets []event.Ticket
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// Save creates or updates a ticket tier
func (r *GormTicketRepository) Save(ctx context.Context, ticket *event.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

// Ensure GormTicketRepository implements TicketRepository
var _ event.TicketRepository = (*GormTicketRepository)(nil)
