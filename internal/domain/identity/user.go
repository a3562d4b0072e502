package identity

import (
	"strings"
	"time"

	"github.com/eventnexus/backend/internal/domain/shared"
)

// Role enumerates the roles assigned by the identity provider.
type Role string

const (
	RoleUser    Role = "USER"
	RoleSponsor Role = "SPONSOR"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole normalizes a role string coming from identity-provider metadata.
// Unknown or empty values fall back to the plain USER role.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleSponsor:
		return RoleSponsor
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// CanPurchasePackages reports whether the role may order sponsorship packages.
func (r Role) CanPurchasePackages() bool {
	return r == RoleSponsor
}

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is the local mirror of an identity-provider account. The ID is the
// provider's subject identifier, not a locally generated UUID, so User does not
// embed shared.BaseEntity.
type User struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"not null;index"`
	FirstName string
	LastName  string
	ImageURL  string
	Role      Role `gorm:"type:varchar(16);not null;default:'USER'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a local user record from provider attributes.
func NewUser(id, email, firstName, lastName, imageURL string, role Role) (*User, error) {
	if id == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User ID cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User email cannot be empty")
	}
	now := time.Now()
	return &User{
		ID:        id,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		ImageURL:  imageURL,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DisplayName returns the user's name for notifications, falling back to the
// email local part when no name is set.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// Update applies provider attribute changes.
func (u *User) Update(email, firstName, lastName, imageURL string, role Role) {
	if email != "" {
		u.Email = email
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.ImageURL = imageURL
	u.Role = role
	u.UpdatedAt = time.Now()
}
