package event

import (
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pool holds the offering fields shared by tickets and sponsorship packages.
// Quantity/Sold/Reserved form the inventory invariant: at all times
// sold + reserved <= quantity, and both counters are non-negative. The
// counters are never written directly by callers; they only move through the
// repository's Reserve/Commit/Release operations, which are atomic relative
// updates at the database.
type Pool struct {
	Title    string          `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency string          `gorm:"type:varchar(8);not null;default:'INR'"`
	Quantity int             `gorm:"not null"`
	Sold     int             `gorm:"not null;default:0"`
	Reserved int             `gorm:"not null;default:0"`
}

// Available returns the quantity still open for reservation.
func (p *Pool) Available() int {
	return p.Quantity - p.Sold - p.Reserved
}

// CanReserve reports whether qty units are currently available.
func (p *Pool) CanReserve(qty int) bool {
	return qty > 0 && p.Available() >= qty
}

// PriceCents returns the unit price in minor units, rounded half-up the way
// the gateway expects amounts.
func (p *Pool) PriceCents() int64 {
	return p.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (p *Pool) validate() error {
	if p.Title == "" {
		return shared.NewDomainError("INVALID_INPUT", "Title cannot be empty")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}
	if p.Currency == "" {
		return shared.NewDomainError("INVALID_INPUT", "Currency is required")
	}
	if p.Quantity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	return nil
}

// Ticket is a purchasable admission tier of an event.
type Ticket struct {
	shared.BaseEntity
	EventID uuid.UUID `gorm:"type:uuid;not null;index"`
	Pool    `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (Ticket) TableName() string {
	return "tickets"
}

// NewTicket creates a ticket tier for an event.
func NewTicket(eventID uuid.UUID, title string, price decimal.Decimal, currency string, quantity int) (*Ticket, error) {
	t := &Ticket{
		BaseEntity: shared.NewBaseEntity(),
		EventID:    eventID,
		Pool: Pool{
			Title:    title,
			Price:    price,
			Currency: currency,
			Quantity: quantity,
		},
	}
	if err := t.Pool.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Package is a sponsorship tier of an event, purchasable by sponsors only.
type Package struct {
	shared.BaseEntity
	EventID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Benefits string    `gorm:"type:text"`
	Pool     `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (Package) TableName() string {
	return "packages"
}

// NewPackage creates a sponsorship package for an event.
func NewPackage(eventID uuid.UUID, title, benefits string, price decimal.Decimal, currency string, quantity int) (*Package, error) {
	if benefits == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Package benefits cannot be empty")
	}
	p := &Package{
		BaseEntity: shared.NewBaseEntity(),
		EventID:    eventID,
		Benefits:   benefits,
		Pool: Pool{
			Title:    title,
			Price:    price,
			Currency: currency,
			Quantity: quantity,
		},
	}
	if err := p.Pool.validate(); err != nil {
		return nil, err
	}
	return p, nil
}
