package handler

import (
	eventapp "github.com/eventnexus/backend/internal/application/event"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RevenueHandler handles admin revenue and payout API endpoints
type RevenueHandler struct {
	BaseHandler
	revenueService *eventapp.RevenueService
}

// NewRevenueHandler creates a new RevenueHandler
func NewRevenueHandler(revenueService *eventapp.RevenueService) *RevenueHandler {
	return &RevenueHandler{
		revenueService: revenueService,
	}
}

// RecordPayoutRequest represents a recorded organizer payout
type RecordPayoutRequest struct {
	PaidCents int64 `json:"paid_cents" binding:"min=0"`
}

// List handles GET /revenues
func (h *RevenueHandler) List(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.revenueService.List(c.Request.Context(), user)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByEvent handles GET /revenues/:event_id
func (h *RevenueHandler) GetByEvent(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	resp, err := h.revenueService.GetByEvent(c.Request.Context(), user, eventID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordPayout handles PUT /revenues/:event_id/payout
func (h *RevenueHandler) RecordPayout(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req RecordPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.revenueService.RecordPayout(c.Request.Context(), user, eventapp.RecordPayoutRequest{
		EventID:   eventID,
		PaidCents: req.PaidCents,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
