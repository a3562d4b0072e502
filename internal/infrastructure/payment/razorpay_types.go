package payment

// razorpayCreateOrderRequest is the Orders API request body. Amount is in
// minor units (paise).
type razorpayCreateOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// razorpayOrder is the Orders API response body
type razorpayOrder struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// razorpayErrorResponse is the error envelope the API returns on non-2xx
type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// RazorpayWebhookEvent is the envelope of a webhook delivery. Payload entity
// shapes differ per event; only the fields settlement needs are declared.
type RazorpayWebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Order struct {
			Entity struct {
				ID     string `json:"id"`
				Amount int64  `json:"amount"`
				Status string `json:"status"`
			} `json:"entity"`
		} `json:"order"`
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook event names settlement dispatches on
const (
	WebhookEventOrderPaid     = "order.paid"
	WebhookEventPaymentFailed = "payment.failed"
	WebhookEventOrderFailed   = "order.failed"
)

// GatewayOrderID returns the gateway order handle regardless of which entity
// the event carries it on.
func (e *RazorpayWebhookEvent) GatewayOrderID() string {
	if e.Payload.Order.Entity.ID != "" {
		return e.Payload.Order.Entity.ID
	}
	return e.Payload.Payment.Entity.OrderID
}

// PaymentID returns the payment handle, empty for order-only events.
func (e *RazorpayWebhookEvent) PaymentID() string {
	return e.Payload.Payment.Entity.ID
}
