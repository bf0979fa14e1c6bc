package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tvules/Foodgram/internal/service"
)

func (s *Server) registerRelationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "addFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes/{id}/favorite",
		Summary:     "Add favorite",
		Description: "Adds the recipe to the current user's favorites",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.relationAddHandler(s.services.Favorite))

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}/favorite",
		Summary:     "Remove favorite",
		Description: "Removes the recipe from the current user's favorites",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.relationRemoveHandler(s.services.Favorite))

	huma.Register(s.api, huma.Operation{
		OperationID: "addToShoppingCart",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes/{id}/shopping_cart",
		Summary:     "Add to shopping cart",
		Description: "Adds the recipe to the current user's shopping cart",
		Tags:        []string{"Shopping cart"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.relationAddHandler(s.services.ShoppingCart))

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromShoppingCart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}/shopping_cart",
		Summary:     "Remove from shopping cart",
		Description: "Removes the recipe from the current user's shopping cart",
		Tags:        []string{"Shopping cart"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.relationRemoveHandler(s.services.ShoppingCart))
}

// === DTOs ===

// RelationInput identifies the recipe for a relation change.
type RelationInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
}

// RecipePreviewOutput wraps the recipe preview for Huma.
type RecipePreviewOutput struct {
	Body RecipePreviewResponse
}

// === Handlers ===

// relationAddHandler builds the add handler for one relation.
func (s *Server) relationAddHandler(svc *service.RelationService) func(context.Context, *RelationInput) (*RecipePreviewOutput, error) {
	return func(ctx context.Context, input *RelationInput) (*RecipePreviewOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		preview, err := svc.Add(ctx, userID, input.ID)
		if err != nil {
			return nil, err
		}

		return &RecipePreviewOutput{Body: mapRecipePreview(*preview)}, nil
	}
}

// relationRemoveHandler builds the remove handler for one relation.
func (s *Server) relationRemoveHandler(svc *service.RelationService) func(context.Context, *RelationInput) (*MessageOutput, error) {
	return func(ctx context.Context, input *RelationInput) (*MessageOutput, error) {
		userID, err := s.authenticateRequest(ctx, input.Authorization)
		if err != nil {
			return nil, err
		}

		if err := svc.Remove(ctx, userID, input.ID); err != nil {
			return nil, err
		}

		return &MessageOutput{Body: MessageResponse{Message: "Removed"}}, nil
	}
}
