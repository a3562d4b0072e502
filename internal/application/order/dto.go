package order

import (
	"time"

	"github.com/eventnexus/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutItemInput is one requested line of a checkout.
type CheckoutItemInput struct {
	ID       uuid.UUID
	Quantity int
}

// CheckoutRequest is the application-level checkout command.
type CheckoutRequest struct {
	EventID   uuid.UUID
	OrderType order.Type
	Items     []CheckoutItemInput
}

// CheckoutItemResponse is a confirmed line item returned to the client.
type CheckoutItemResponse struct {
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CheckoutResponse carries the gateway handle the hosted checkout needs.
type CheckoutResponse struct {
	GatewayOrderID string                 `json:"gateway_order_id"`
	AmountCents    int64                  `json:"amount_cents"`
	ExpiresAt      time.Time              `json:"expires_at"`
	Items          []CheckoutItemResponse `json:"items"`
}

// StatusResponse is what buyer polling gets back: the status and nothing else.
type StatusResponse struct {
	Status order.Status `json:"status"`
}

func toCheckoutResponse(o *order.Order) *CheckoutResponse {
	items := make([]CheckoutItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, CheckoutItemResponse{
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
	}
	return &CheckoutResponse{
		GatewayOrderID: o.GatewayOrderID,
		AmountCents:    o.TotalAmountCents,
		ExpiresAt:      o.ExpiresAt,
		Items:          items,
	}
}
