package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tvules/Foodgram/internal/domain"
	domainerrors "github.com/tvules/Foodgram/internal/errors"
	"github.com/tvules/Foodgram/internal/store"
)

// UserService serves user profiles and listings.
type UserService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(s *store.Store, logger *slog.Logger) *UserService {
	return &UserService{store: s, logger: logger}
}

// UserPage is one page of user profiles.
type UserPage struct {
	Users []domain.UserProfile `json:"users"`
	Total int                  `json:"total"`
}

// GetProfile returns a user as seen by the viewer. An empty viewerID
// (anonymous) yields is_subscribed = false.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID string) (*domain.UserProfile, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.toProfile(ctx, viewerID, user)
}

// ListProfiles returns a page of all users as seen by the viewer.
func (s *UserService) ListProfiles(ctx context.Context, viewerID string, page store.Page) (*UserPage, error) {
	users, total, err := s.store.ListUsers(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	profiles := make([]domain.UserProfile, 0, len(users))
	for _, user := range users {
		profile, err := s.toProfile(ctx, viewerID, user)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	return &UserPage{Users: profiles, Total: total}, nil
}

func (s *UserService) toProfile(ctx context.Context, viewerID string, user *domain.User) (*domain.UserProfile, error) {
	profile := &domain.UserProfile{User: *user}
	if viewerID == "" || viewerID == user.ID {
		return profile, nil
	}

	subscribed, err := s.store.FollowExists(ctx, viewerID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("check follow: %w", err)
	}
	profile.IsSubscribed = subscribed
	return profile, nil
}
