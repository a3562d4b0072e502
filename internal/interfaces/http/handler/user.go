package handler

import (
	identityapp "github.com/eventnexus/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user profile API endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.userService.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Profile handles GET /users/:id/profile. Profiles are public; no session
// is required.
func (h *UserHandler) Profile(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		h.BadRequest(c, "Missing user ID")
		return
	}

	resp, err := h.userService.Profile(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
