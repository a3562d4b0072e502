package handler

import (
	"time"

	eventapp "github.com/eventnexus/backend/internal/application/event"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventHandler handles event listing API endpoints
type EventHandler struct {
	BaseHandler
	eventService *eventapp.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *eventapp.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// TicketTierInput represents a ticket tier in the create event request
type TicketTierInput struct {
	Title    string  `json:"title" binding:"required,min=1,max=200"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
}

// PackageTierInput represents a sponsorship tier in the create event request
type PackageTierInput struct {
	Title    string  `json:"title" binding:"required,min=1,max=200"`
	Benefits string  `json:"benefits" binding:"max=2000"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
}

// CreateEventRequest represents a request to publish a new event
type CreateEventRequest struct {
	Summary     string             `json:"summary" binding:"required,min=1,max=300"`
	Description string             `json:"description" binding:"max=10000"`
	StartTime   time.Time          `json:"start_time" binding:"required"`
	EndTime     time.Time          `json:"end_time" binding:"required"`
	Location    string             `json:"location" binding:"required,min=1,max=300"`
	LocationURL string             `json:"location_url" binding:"omitempty,url"`
	ImageURL    string             `json:"image_url" binding:"omitempty,url"`
	Tickets     []TicketTierInput  `json:"tickets"`
	Packages    []PackageTierInput `json:"packages"`
}

// UpdateEventRequest represents organizer edits to an event
type UpdateEventRequest struct {
	Summary     string    `json:"summary" binding:"required,min=1,max=300"`
	Description string    `json:"description" binding:"max=10000"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Location    string    `json:"location" binding:"required,min=1,max=300"`
	LocationURL string    `json:"location_url" binding:"omitempty,url"`
}

// ListEventsRequest represents the event listing query string
type ListEventsRequest struct {
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Upcoming  bool   `form:"upcoming"`
	Organizer string `form:"organizer"`
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := eventapp.CreateEventRequest{
		Summary:     req.Summary,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		LocationURL: req.LocationURL,
		ImageURL:    req.ImageURL,
	}
	for _, t := range req.Tickets {
		appReq.Tickets = append(appReq.Tickets, eventapp.TicketInput{
			Title:    t.Title,
			Price:    decimal.NewFromFloat(t.Price),
			Quantity: t.Quantity,
		})
	}
	for _, p := range req.Packages {
		appReq.Packages = append(appReq.Packages, eventapp.PackageInput{
			Title:    p.Title,
			Benefits: p.Benefits,
			Price:    decimal.NewFromFloat(p.Price),
			Quantity: p.Quantity,
		})
	}

	resp, err := h.eventService.Create(c.Request.Context(), user, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID handles GET /events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	resp, err := h.eventService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	var req ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.eventService.List(c.Request.Context(), eventapp.ListEventsQuery{
		Page:         req.Page,
		PageSize:     req.PageSize,
		UpcomingOnly: req.Upcoming,
		OrganizerID:  req.Organizer,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update handles PUT /events/:id
func (h *EventHandler) Update(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.eventService.Update(c.Request.Context(), user, id, eventapp.UpdateEventRequest{
		Summary:     req.Summary,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		LocationURL: req.LocationURL,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), user, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
