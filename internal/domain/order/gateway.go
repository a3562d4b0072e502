package order

import (
	"context"
	"time"

	"github.com/eventnexus/backend/internal/domain/shared"
)

// PaymentGateway is the port to the hosted payment provider. The adapter in
// infrastructure/payment implements it against Razorpay's Orders API.
type PaymentGateway interface {
	// CreateOrder registers a payable order with the gateway and returns
	// the gateway's order handle for the hosted checkout.
	CreateOrder(ctx context.Context, req *CreateGatewayOrderRequest) (*CreateGatewayOrderResponse, error)
	// VerifyWebhookSignature checks the keyed hash the gateway computes
	// over the exact raw webhook body.
	VerifyWebhookSignature(rawBody []byte, signature string) bool
}

// CreateGatewayOrderRequest describes the order to register with the gateway.
// Amounts are in minor units (paise for INR).
type CreateGatewayOrderRequest struct {
	AmountCents int64
	Currency    string
	// Notes are free-form reconciliation hints stored on the gateway order.
	Notes map[string]string
}

// Validate checks the request before it leaves the process.
func (r *CreateGatewayOrderRequest) Validate() error {
	if r.AmountCents <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Gateway order amount must be positive")
	}
	if r.Currency == "" {
		return shared.NewDomainError("INVALID_INPUT", "Gateway order currency is required")
	}
	return nil
}

// CreateGatewayOrderResponse is the gateway's view of the created order.
type CreateGatewayOrderResponse struct {
	GatewayOrderID string
	AmountCents    int64
	Currency       string
	CreatedAt      time.Time
}
