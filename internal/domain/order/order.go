package order

import (
	"strings"
	"time"

	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the order lifecycle state. RESERVED is the only non-terminal
// state; COMPLETED, FAILED and EXPIRED admit no further transitions.
type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusExpired   Status = "EXPIRED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s != StatusReserved
}

// Type distinguishes ticket purchases from sponsorship package purchases.
type Type string

const (
	TypeTicket  Type = "TICKET"
	TypePackage Type = "PACKAGE"
)

// ParseType validates an order type supplied by a client.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeTicket:
		return TypeTicket, nil
	case TypePackage:
		return TypePackage, nil
	default:
		return "", shared.NewDomainErrorf("INVALID_INPUT", "Invalid order type: %q", s)
	}
}

// OrderItem is one line of an order. It references either a ticket or a
// package, never both, and snapshots the title and unit price at checkout
// time so settlement and receipts do not depend on later price edits.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	TicketID  *uuid.UUID `gorm:"type:uuid;index"`
	PackageID *uuid.UUID `gorm:"type:uuid;index"`
	Title     string     `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity  int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// PoolID returns the referenced pool's ID regardless of item kind.
func (i *OrderItem) PoolID() uuid.UUID {
	if i.TicketID != nil {
		return *i.TicketID
	}
	if i.PackageID != nil {
		return *i.PackageID
	}
	return uuid.Nil
}

// AmountCents returns unit price times quantity in minor units.
func (i *OrderItem) AmountCents() int64 {
	return i.UnitPrice.
		Mul(decimal.NewFromInt(int64(i.Quantity))).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// Order is the aggregate root for a checkout. It is created RESERVED once
// inventory has been held and a gateway order exists, and is finalized by
// webhook-driven settlement.
type Order struct {
	shared.BaseEntity
	BuyerID          string    `gorm:"not null;index"`
	EventID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Type             Type      `gorm:"type:varchar(12);not null"`
	GatewayOrderID   string    `gorm:"not null;uniqueIndex"`
	PaymentID        string    `gorm:"index"`
	Status           Status    `gorm:"type:varchar(12);not null;index"`
	TotalAmountCents int64     `gorm:"not null"`
	ExpiresAt        time.Time `gorm:"not null;index"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// New creates an order in the RESERVED state.
func New(buyerID string, eventID uuid.UUID, orderType Type, expiresAt time.Time) (*Order, error) {
	if buyerID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Buyer ID cannot be empty")
	}
	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Event ID cannot be empty")
	}
	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		BuyerID:    buyerID,
		EventID:    eventID,
		Type:       orderType,
		Status:     StatusReserved,
		ExpiresAt:  expiresAt,
		Items:      make([]OrderItem, 0),
	}, nil
}

// AddTicketItem appends a ticket line to the order.
func (o *Order) AddTicketItem(ticketID uuid.UUID, title string, unitPrice decimal.Decimal, quantity int) error {
	if o.Type != TypeTicket {
		return shared.NewDomainError("INVALID_INPUT", "Ticket items are only valid on ticket orders")
	}
	return o.addItem(&ticketID, nil, title, unitPrice, quantity)
}

// AddPackageItem appends a sponsorship package line to the order.
func (o *Order) AddPackageItem(packageID uuid.UUID, title string, unitPrice decimal.Decimal, quantity int) error {
	if o.Type != TypePackage {
		return shared.NewDomainError("INVALID_INPUT", "Package items are only valid on package orders")
	}
	return o.addItem(nil, &packageID, title, unitPrice, quantity)
}

func (o *Order) addItem(ticketID, packageID *uuid.UUID, title string, unitPrice decimal.Decimal, quantity int) error {
	if o.Status != StatusReserved {
		return shared.ErrInvalidState
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Item quantity must be positive")
	}
	item := OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		TicketID:   ticketID,
		PackageID:  packageID,
		Title:      title,
		UnitPrice:  unitPrice,
		Quantity:   quantity,
	}
	o.Items = append(o.Items, item)
	o.TotalAmountCents += item.AmountCents()
	o.Touch()
	return nil
}

// AttachGatewayOrder records the external gateway order handle.
func (o *Order) AttachGatewayOrder(gatewayOrderID string) error {
	if gatewayOrderID == "" {
		return shared.NewDomainError("INVALID_INPUT", "Gateway order ID cannot be empty")
	}
	o.GatewayOrderID = gatewayOrderID
	o.Touch()
	return nil
}

// IsExpired reports whether the reservation window has passed.
func (o *Order) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// Complete transitions RESERVED -> COMPLETED, recording the gateway payment
// that settled the order.
func (o *Order) Complete(paymentID string) error {
	if err := o.transition(StatusCompleted); err != nil {
		return err
	}
	o.PaymentID = paymentID
	return nil
}

// Fail transitions RESERVED -> FAILED.
func (o *Order) Fail() error {
	return o.transition(StatusFailed)
}

// Expire transitions RESERVED -> EXPIRED.
func (o *Order) Expire() error {
	return o.transition(StatusExpired)
}

func (o *Order) transition(to Status) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainErrorf("INVALID_STATE", "Order is already %s", o.Status)
	}
	o.Status = to
	o.Touch()
	return nil
}
