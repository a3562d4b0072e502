package identity

import (
	"context"
	"errors"

	"github.com/eventnexus/backend/internal/domain/event"
	"github.com/eventnexus/backend/internal/domain/identity"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService maintains the local mirror of identity-provider accounts and
// serves public profiles.
type UserService struct {
	users    identity.UserRepository
	events   event.EventRepository
	sponsors event.SponsorRepository
	logger   *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(users identity.UserRepository, events event.EventRepository, sponsors event.SponsorRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, events: events, sponsors: sponsors, logger: logger}
}

// Sync upserts a user from a provider user.created or user.updated delivery.
// Deliveries can arrive out of order or twice; the upsert makes both safe.
func (s *UserService) Sync(ctx context.Context, req SyncUserRequest) error {
	role := identity.ParseRole(req.Role)

	existing, err := s.users.FindByID(ctx, req.ID)
	switch {
	case err == nil:
		existing.Update(req.Email, req.FirstName, req.LastName, req.ImageURL, role)
		if err := s.users.Save(ctx, existing); err != nil {
			return err
		}
	case errors.Is(err, shared.ErrNotFound):
		user, err := identity.NewUser(req.ID, req.Email, req.FirstName, req.LastName, req.ImageURL, role)
		if err != nil {
			return err
		}
		if err := s.users.Save(ctx, user); err != nil {
			return err
		}
	default:
		return err
	}

	s.logger.Info("user synced", zap.String("user_id", req.ID), zap.String("role", string(role)))
	return nil
}

// Remove handles a provider user.deleted delivery. Deleting an unknown user
// is acknowledged without effect.
func (s *UserService) Remove(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	s.logger.Info("user removed", zap.String("user_id", userID))
	return nil
}

// Get returns a user by provider subject ID.
func (s *UserService) Get(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Profile returns the public profile: the user plus the events they organize
// and sponsor.
func (s *UserService) Profile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := shared.NewFilter()
	filter.PageSize = 100
	organized, err := s.events.FindByOrganizer(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	sponsored, err := s.sponsors.FindBySponsor(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{
		User:            toUserResponse(user),
		OrganizedEvents: make([]uuid.UUID, 0, len(organized)),
		SponsoredEvents: make([]uuid.UUID, 0, len(sponsored)),
	}
	for i := range organized {
		resp.OrganizedEvents = append(resp.OrganizedEvents, organized[i].ID)
	}
	for i := range sponsored {
		resp.SponsoredEvents = append(resp.SponsoredEvents, sponsored[i].EventID)
	}
	return resp, nil
}
