package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	orderapp "github.com/eventnexus/backend/internal/application/order"
	"github.com/eventnexus/backend/internal/infrastructure/payment"
	"github.com/eventnexus/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Razorpay webhook headers
const (
	razorpaySignatureHeader = "X-Razorpay-Signature"
	razorpayEventIDHeader   = "X-Razorpay-Event-Id"
)

// idempotencyTTL bounds how long a delivery ID stays marked. Razorpay stops
// retrying a delivery after 24 hours.
const idempotencyTTL = 24 * time.Hour

// RazorpayWebhookHandler receives payment lifecycle events from Razorpay.
// The endpoint is unauthenticated; the HMAC signature over the raw body is
// the only trust anchor.
type RazorpayWebhookHandler struct {
	BaseHandler
	settlementService *orderapp.SettlementService
	idempotency       orderapp.IdempotencyStore
	webhookSecret     string
	logger            *zap.Logger
}

// NewRazorpayWebhookHandler creates a new RazorpayWebhookHandler
func NewRazorpayWebhookHandler(
	settlementService *orderapp.SettlementService,
	idempotency orderapp.IdempotencyStore,
	webhookSecret string,
	logger *zap.Logger,
) *RazorpayWebhookHandler {
	return &RazorpayWebhookHandler{
		settlementService: settlementService,
		idempotency:       idempotency,
		webhookSecret:     webhookSecret,
		logger:            logger,
	}
}

// Handle processes POST /webhooks/razorpay. Signature verification happens
// before the body is parsed; unknown event types are acknowledged so Razorpay
// does not retry them.
func (h *RazorpayWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader(razorpaySignatureHeader)
	if !payment.VerifySignature(body, signature, h.webhookSecret) {
		h.logger.Warn("Rejected webhook with bad signature",
			zap.String("event_id", c.GetHeader(razorpayEventIDHeader)))
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeSignatureInvalid, "Webhook signature verification failed")
		return
	}

	var event payment.RazorpayWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Malformed webhook payload")
		return
	}

	// Duplicate deliveries are cheap to drop here, but the status guard in
	// settlement is what actually makes processing idempotent.
	deliveryID := c.GetHeader(razorpayEventIDHeader)
	if deliveryID != "" {
		first, err := h.idempotency.MarkProcessed(c.Request.Context(), deliveryID, idempotencyTTL)
		if err != nil {
			h.logger.Warn("Idempotency check failed, processing anyway",
				zap.String("event_id", deliveryID), zap.Error(err))
		} else if !first {
			h.logger.Info("Skipping duplicate webhook delivery",
				zap.String("event_id", deliveryID), zap.String("event", event.Event))
			h.Success(c, gin.H{"status": "duplicate"})
			return
		}
	}

	gatewayOrderID := event.GatewayOrderID()
	if gatewayOrderID == "" {
		h.logger.Warn("Webhook carries no order reference", zap.String("event", event.Event))
		h.Success(c, gin.H{"status": "ignored"})
		return
	}

	switch event.Event {
	case payment.WebhookEventOrderPaid:
		err = h.settlementService.HandlePaid(c.Request.Context(), gatewayOrderID, event.PaymentID())
	case payment.WebhookEventPaymentFailed:
		err = h.settlementService.HandlePaymentFailed(c.Request.Context(), gatewayOrderID)
	case payment.WebhookEventOrderFailed:
		err = h.settlementService.HandleOrderFailed(c.Request.Context(), gatewayOrderID)
	default:
		h.logger.Info("Ignoring unhandled webhook event", zap.String("event", event.Event))
		h.Success(c, gin.H{"status": "ignored"})
		return
	}

	if err != nil {
		// Non-2xx makes Razorpay redeliver, which is what we want for
		// transient failures. The delivery ID must stay claimable for that
		// retry or the redelivery would be dropped as a duplicate.
		if deliveryID != "" {
			if ferr := h.idempotency.Forget(c.Request.Context(), deliveryID); ferr != nil {
				h.logger.Warn("Failed to release delivery ID for redelivery",
					zap.String("event_id", deliveryID), zap.Error(ferr))
			}
		}
		h.logger.Error("Webhook settlement failed",
			zap.String("event", event.Event),
			zap.String("gateway_order_id", gatewayOrderID),
			zap.Error(err))
		h.InternalError(c, "Failed to process webhook")
		return
	}

	h.Success(c, gin.H{"status": "processed"})
}
