package handler

import (
	"encoding/json"
	"io"
	"net/http"

	identityapp "github.com/eventnexus/backend/internal/application/identity"
	"github.com/eventnexus/backend/internal/infrastructure/auth"
	"github.com/eventnexus/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// userWebhookSignatureHeader carries the HMAC over the raw delivery body
const userWebhookSignatureHeader = "X-Webhook-Signature"

// Identity provider event names
const (
	userEventCreated = "user.created"
	userEventUpdated = "user.updated"
	userEventDeleted = "user.deleted"
)

// userWebhookEvent is the identity provider's delivery envelope
type userWebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ImageURL  string `json:"image_url"`
		Role      string `json:"role"`
	} `json:"data"`
}

// UserWebhookHandler mirrors identity provider accounts into the local user
// table. Like the payment webhook it is unauthenticated and trusts only the
// body signature.
type UserWebhookHandler struct {
	BaseHandler
	userService   *identityapp.UserService
	webhookSecret string
	logger        *zap.Logger
}

// NewUserWebhookHandler creates a new UserWebhookHandler
func NewUserWebhookHandler(userService *identityapp.UserService, webhookSecret string, logger *zap.Logger) *UserWebhookHandler {
	return &UserWebhookHandler{
		userService:   userService,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// Handle processes POST /webhooks/users
func (h *UserWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader(userWebhookSignatureHeader)
	if !auth.VerifyHMAC(body, signature, h.webhookSecret) {
		h.logger.Warn("Rejected user webhook with bad signature")
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeSignatureInvalid, "Webhook signature verification failed")
		return
	}

	var event userWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Malformed webhook payload")
		return
	}
	if event.Data.ID == "" {
		h.BadRequest(c, "Missing user ID in webhook payload")
		return
	}

	switch event.Type {
	case userEventCreated, userEventUpdated:
		err = h.userService.Sync(c.Request.Context(), identityapp.SyncUserRequest{
			ID:        event.Data.ID,
			Email:     event.Data.Email,
			FirstName: event.Data.FirstName,
			LastName:  event.Data.LastName,
			ImageURL:  event.Data.ImageURL,
			Role:      event.Data.Role,
		})
	case userEventDeleted:
		err = h.userService.Remove(c.Request.Context(), event.Data.ID)
	default:
		h.logger.Info("Ignoring unhandled user webhook event", zap.String("type", event.Type))
		h.Success(c, gin.H{"status": "ignored"})
		return
	}

	if err != nil {
		h.logger.Error("User webhook processing failed",
			zap.String("type", event.Type),
			zap.String("user_id", event.Data.ID),
			zap.Error(err))
		h.InternalError(c, "Failed to process webhook")
		return
	}

	h.Success(c, gin.H{"status": "processed"})
}
