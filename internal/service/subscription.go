package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tvules/Foodgram/internal/domain"
	domainerrors "github.com/tvules/Foodgram/internal/errors"
	"github.com/tvules/Foodgram/internal/store"
)

// SubscriptionService manages user-to-user follows. Follows get their
// own service rather than the recipe relation contract because of the
// self-follow rule and the enriched subscription listing.
type SubscriptionService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(s *store.Store, logger *slog.Logger) *SubscriptionService {
	return &SubscriptionService{store: s, logger: logger}
}

// SubscriptionPage is one page of followed authors.
type SubscriptionPage struct {
	Subscriptions []domain.Subscription `json:"subscriptions"`
	Total         int                   `json:"total"`
}

// Follow subscribes the follower to the followee and returns the
// followee's subscription entry.
func (s *SubscriptionService) Follow(ctx context.Context, followerID, followeeID string, recipesLimit int) (*domain.Subscription, error) {
	follow := &domain.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := follow.Validate(); err != nil {
		return nil, err
	}

	followee, err := s.store.GetUser(ctx, followeeID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.store.CreateFollow(ctx, followerID, followeeID); err != nil {
		switch err {
		case store.ErrAlreadyExists:
			return nil, domainerrors.Validation("You are already a follower.")
		case store.ErrInvalidReference:
			return nil, domainerrors.NotFound("user not found")
		default:
			return nil, fmt.Errorf("create follow: %w", err)
		}
	}

	s.logger.Debug("follow created", "follower_id", followerID, "followee_id", followeeID)

	return s.toSubscription(ctx, followee, recipesLimit)
}

// Unfollow removes the subscription.
func (s *SubscriptionService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	exists, err := s.store.UserExists(ctx, followeeID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return domainerrors.NotFound("user not found")
	}

	if err := s.store.DeleteFollow(ctx, followerID, followeeID); err != nil {
		if err == store.ErrNotFound {
			return domainerrors.Validation("You are not a follower.")
		}
		return fmt.Errorf("delete follow: %w", err)
	}

	s.logger.Debug("follow removed", "follower_id", followerID, "followee_id", followeeID)
	return nil
}

// List returns the users the follower subscribes to, most recently
// followed first, each with their recipes trimmed to recipesLimit
// (non-positive = all) and total recipe count.
func (s *SubscriptionService) List(ctx context.Context, followerID string, page store.Page, recipesLimit int) (*SubscriptionPage, error) {
	followees, total, err := s.store.ListFollowees(ctx, followerID, page)
	if err != nil {
		return nil, fmt.Errorf("list followees: %w", err)
	}

	subscriptions := make([]domain.Subscription, 0, len(followees))
	for _, followee := range followees {
		sub, err := s.toSubscription(ctx, followee, recipesLimit)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, *sub)
	}

	return &SubscriptionPage{Subscriptions: subscriptions, Total: total}, nil
}

func (s *SubscriptionService) toSubscription(ctx context.Context, followee *domain.User, recipesLimit int) (*domain.Subscription, error) {
	previews, err := s.store.ListRecipePreviewsByAuthor(ctx, followee.ID, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	count, err := s.store.CountRecipesByAuthor(ctx, followee.ID)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}

	return &domain.Subscription{
		UserProfile: domain.UserProfile{
			User: *followee,
			// Listed users are followed by definition.
			IsSubscribed: true,
		},
		Recipes:      previews,
		RecipesCount: count,
	}, nil
}
