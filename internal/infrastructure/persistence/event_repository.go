package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEventRepository implements EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event with its ticket and package tiers
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	var evt event.Event
	if err := r.db.WithContext(ctx).
		Preload("Tickets").
		Preload("Packages").
		First(&evt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &evt, nil
}

// FindAll finds events matching the filter
func (r *GormEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]event.Event, error) {
	var events []event.Event
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&event.Event{}).
			Preload("Tickets").
			Preload("Packages"),
		filter,
	)
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindByOrganizer finds events organized by a user
func (r *GormEventRepository) FindByOrganizer(ctx context.Context, organizerID string, filter shared.Filter) ([]event.Event, error) {
	var events []event.Event
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&event.Event{}).
			Preload("Tickets").
			Preload("Packages").
			Where("organizer_id = ?", organizerID),
		filter,
	)
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Count counts events matching the filter
func (r *GormEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&event.Event{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an event and its tiers
func (r *GormEventRepository) Save(ctx context.Context, evt *event.Event) error {
	return r.db.WithContext(ctx).Save(evt).Error
}

// Delete deletes an event with its tiers
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&event.Ticket{}, "event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&event.Package{}, "event_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&event.Event{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := strings.ToLower(filter.OrderDir)
	if orderDir != "asc" && orderDir != "desc" {
		orderDir = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

func (r *GormEventRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("summary LIKE ? OR location LIKE ?", pattern, pattern)
	}
	if after, ok := filter.Filters["end_time_after"]; ok {
		query = query.Where("end_time > ?", after)
	}
	return query
}

// Ensure GormEventRepository implements EventRepository
var _ event.EventRepository = (*GormEventRepository)(nil)
