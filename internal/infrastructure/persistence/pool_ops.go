package persistence

import (
	"context"

	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormPoolOps implements the atomic Reserve/Commit/Release counter updates
// shared by the ticket and package repositories. Every mutation is a single
// relative UPDATE with its precondition in the WHERE clause, so two
// transactions racing for the last units serialize at the row and the loser's
// statement matches zero rows. Counter values computed in Go are never
// written back.
type gormPoolOps struct {
	db    *gorm.DB
	model any
}

type poolRow struct {
	Title    string
	Quantity int
	Sold     int
	Reserved int
}

// Reserve holds qty units: reserved += qty, guarded by the availability
// check inside the same UPDATE.
func (p *gormPoolOps) Reserve(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Reserve quantity must be positive")
	}

	result := p.db.WithContext(ctx).
		Model(p.model).
		Where("id = ? AND quantity - sold - reserved >= ?", id, qty).
		Update("reserved", gorm.Expr("reserved + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Zero rows means the pool is missing or short. Re-read for the error
	// details; the reservation itself already failed atomically.
	var row poolRow
	err := p.db.WithContext(ctx).
		Model(p.model).
		Select("title", "quantity", "sold", "reserved").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return shared.ErrNotFound
	}
	return shared.NewInsufficientStockError(id.String(), row.Title, qty, row.Quantity-row.Sold-row.Reserved)
}

// Commit converts a hold into a sale in one statement.
func (p *gormPoolOps) Commit(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Commit quantity must be positive")
	}

	result := p.db.WithContext(ctx).
		Model(p.model).
		Where("id = ?", id).
		Updates(map[string]any{
			"sold":     gorm.Expr("sold + ?", qty),
			"reserved": gorm.Expr("CASE WHEN reserved >= ? THEN reserved - ? ELSE 0 END", qty, qty),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Release returns held units to the pool, flooring reserved at zero in the
// statement itself.
func (p *gormPoolOps) Release(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Release quantity must be positive")
	}

	result := p.db.WithContext(ctx).
		Model(p.model).
		Where("id = ?", id).
		Update("reserved", gorm.Expr("CASE WHEN reserved >= ? THEN reserved - ? ELSE 0 END", qty, qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
