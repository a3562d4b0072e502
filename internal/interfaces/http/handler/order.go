package handler

import (
	orderapp "github.com/eventnexus/backend/internal/application/order"
	"github.com/eventnexus/backend/internal/domain/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles checkout and order status API endpoints
type OrderHandler struct {
	BaseHandler
	checkoutService *orderapp.CheckoutService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkoutService *orderapp.CheckoutService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
	}
}

// CheckoutItemInput represents one requested line of a checkout
type CheckoutItemInput struct {
	ID       string `json:"id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest represents a request to reserve inventory and open a
// payment gateway order
type CheckoutRequest struct {
	EventID string              `json:"event_id" binding:"required,uuid"`
	Type    string              `json:"type" binding:"required,oneof=TICKET PACKAGE"`
	Items   []CheckoutItemInput `json:"items" binding:"required,min=1,dive"`
}

// Checkout handles POST /orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}
	orderType, err := order.ParseType(req.Type)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	appReq := orderapp.CheckoutRequest{
		EventID:   eventID,
		OrderType: orderType,
	}
	for _, item := range req.Items {
		itemID, err := uuid.Parse(item.ID)
		if err != nil {
			h.BadRequest(c, "Invalid item ID: "+item.ID)
			return
		}
		appReq.Items = append(appReq.Items, orderapp.CheckoutItemInput{
			ID:       itemID,
			Quantity: item.Quantity,
		})
	}

	resp, err := h.checkoutService.Checkout(c.Request.Context(), user, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// Status handles GET /orders/:gateway_order_id/status. The hosted checkout
// page polls this while the gateway webhook settles the order.
func (h *OrderHandler) Status(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	gatewayOrderID := c.Param("gateway_order_id")
	if gatewayOrderID == "" {
		h.BadRequest(c, "Missing gateway order ID")
		return
	}

	resp, err := h.checkoutService.Status(c.Request.Context(), user, gatewayOrderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
