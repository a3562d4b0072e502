package persistence

import (
	"context"
	"errors"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM
type GormPackageRepository struct {
	gormPoolOps
}

// NewGormPackageRepository creates a new GormPackageRepository
func NewGormPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{gormPoolOps{db: db, model: &event.Package{}}}
}

// FindByID finds a sponsorship package by its ID
func (r *GormPackageRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Package, error) {
	var pkg event.Package
	if err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

// FindByIDForEvent finds a sponsorship package by ID within an event
func (r *GormPackageRepository) FindByIDForEvent(ctx context.Context, id, eventID uuid.UUID) (*event.Package, error) {
	var pkg event.Package
	if err := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", id, eventID).
		First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

// FindByEvent finds all sponsorship packages of an event
func (r *GormPackageRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]event.Package, error) {
	var pkgs []event.Package
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

// Save creates or updates a sponsorship package
func (r *GormPackageRepository) Save(ctx context.Context, pkg *event.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

// Ensure GormPackageRepository implements PackageRepository
var _ event.PackageRepository = (*GormPackageRepository)(nil)
