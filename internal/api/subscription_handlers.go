package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tvules/Foodgram/internal/domain"
	domainerrors "github.com/tvules/Foodgram/internal/errors"
)

func (s *Server) registerSubscriptionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSubscriptions",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/subscriptions",
		Summary:     "List subscriptions",
		Description: "Returns the authors the current user follows, with their recipes",
		Tags:        []string{"Subscriptions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSubscriptions)

	huma.Register(s.api, huma.Operation{
		OperationID: "subscribe",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{id}/subscribe",
		Summary:     "Subscribe to user",
		Description: "Follows the given author",
		Tags:        []string{"Subscriptions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSubscribe)

	huma.Register(s.api, huma.Operation{
		OperationID: "unsubscribe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{id}/subscribe",
		Summary:     "Unsubscribe from user",
		Description: "Unfollows the given author",
		Tags:        []string{"Subscriptions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnsubscribe)
}

// === DTOs ===

// ListSubscriptionsInput contains parameters for listing subscriptions.
type ListSubscriptionsInput struct {
	Authorization string `header:"Authorization"`
	Page          int    `query:"page" doc:"1-based page number"`
	Limit         int    `query:"limit" doc:"Page size"`
	RecipesLimit  string `query:"recipes_limit" doc:"Max recipes per author (integer)"`
}

// SubscribeInput contains parameters for following a user.
type SubscribeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Author ID"`
	RecipesLimit  string `query:"recipes_limit" doc:"Max recipes in the response (integer)"`
}

// UnsubscribeInput contains parameters for unfollowing a user.
type UnsubscribeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Author ID"`
}

// SubscriptionResponse is a followed author with their recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipePreviewResponse `json:"recipes" doc:"Author's recipes, newest first"`
	RecipesCount int                     `json:"recipes_count" doc:"Total recipe count"`
}

// SubscriptionListResponse contains a page of subscriptions.
type SubscriptionListResponse struct {
	Count   int                    `json:"count" doc:"Total number of subscriptions"`
	Results []SubscriptionResponse `json:"results" doc:"Subscriptions on this page"`
}

// SubscriptionListOutput wraps the subscription list response for Huma.
type SubscriptionListOutput struct {
	Body SubscriptionListResponse
}

// SubscriptionOutput wraps a single subscription for Huma.
type SubscriptionOutput struct {
	Body SubscriptionResponse
}

// === Handlers ===

func (s *Server) handleListSubscriptions(ctx context.Context, input *ListSubscriptionsInput) (*SubscriptionListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipesLimit, err := parseRecipesLimit(input.RecipesLimit)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Subscription.List(ctx, userID, pageFromInput(input.Page, input.Limit), recipesLimit)
	if err != nil {
		return nil, err
	}

	results := make([]SubscriptionResponse, len(page.Subscriptions))
	for i, sub := range page.Subscriptions {
		results[i] = mapSubscription(sub)
	}

	return &SubscriptionListOutput{
		Body: SubscriptionListResponse{Count: page.Total, Results: results},
	}, nil
}

func (s *Server) handleSubscribe(ctx context.Context, input *SubscribeInput) (*SubscriptionOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipesLimit, err := parseRecipesLimit(input.RecipesLimit)
	if err != nil {
		return nil, err
	}

	sub, err := s.services.Subscription.Follow(ctx, userID, input.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	return &SubscriptionOutput{Body: mapSubscription(*sub)}, nil
}

func (s *Server) handleUnsubscribe(ctx context.Context, input *UnsubscribeInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Subscription.Unfollow(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Unsubscribed"}}, nil
}

// === Helpers ===

// parseRecipesLimit parses the recipes_limit query parameter. The
// parameter is optional; a non-integer value is a validation error with
// a fixed message clients match on.
func parseRecipesLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerrors.Validation("Incorrect type. Expected `int` value")
	}
	return limit, nil
}

func mapSubscription(sub domain.Subscription) SubscriptionResponse {
	recipes := make([]RecipePreviewResponse, len(sub.Recipes))
	for i, preview := range sub.Recipes {
		recipes[i] = mapRecipePreview(preview)
	}

	return SubscriptionResponse{
		UserResponse: mapProfile(sub.UserProfile),
		Recipes:      recipes,
		RecipesCount: sub.RecipesCount,
	}
}
