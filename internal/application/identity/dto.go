package identity

import (
	"github.com/eventnexus/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// SyncUserRequest carries the attributes of an identity-provider account
// delivered by its user lifecycle webhook.
type SyncUserRequest struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
	Role      string `json:"role"`
}

// UserResponse is the caller-facing view of a user record.
type UserResponse struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	DisplayName string        `json:"display_name"`
	ImageURL    string        `json:"image_url,omitempty"`
	Role        identity.Role `json:"role"`
}

// ProfileResponse is the public profile with the user's event involvement.
type ProfileResponse struct {
	User            UserResponse `json:"user"`
	OrganizedEvents []uuid.UUID  `json:"organized_events"`
	SponsoredEvents []uuid.UUID  `json:"sponsored_events"`
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName(),
		ImageURL:    u.ImageURL,
		Role:        u.Role,
	}
}
