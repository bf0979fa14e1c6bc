package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tvules/Foodgram/internal/domain"
	domainerrors "github.com/tvules/Foodgram/internal/errors"
	"github.com/tvules/Foodgram/internal/store"
)

// relationOps abstracts the two user-to-recipe relation tables so one
// service implementation covers both favorites and the shopping cart.
type relationOps struct {
	name          string
	add           func(ctx context.Context, userID, recipeID string) error
	remove        func(ctx context.Context, userID, recipeID string) error
	list          func(ctx context.Context, userID string) ([]domain.RecipePreview, error)
	alreadyAdded  string
	notInRelation string
}

// RelationService manages one user-to-recipe relation (favorites or
// shopping cart) with the shared add/remove/list contract.
type RelationService struct {
	store  *store.Store
	ops    relationOps
	logger *slog.Logger
}

// NewFavoriteService creates the favorites relation service.
func NewFavoriteService(s *store.Store, logger *slog.Logger) *RelationService {
	return &RelationService{
		store:  s,
		logger: logger,
		ops: relationOps{
			name:          "favorites",
			add:           s.AddFavorite,
			remove:        s.RemoveFavorite,
			list:          s.ListFavoriteRecipes,
			alreadyAdded:  "The recipe has already been added to favorites.",
			notInRelation: "The recipe does not exist in your favorites list.",
		},
	}
}

// NewShoppingCartService creates the shopping cart relation service.
func NewShoppingCartService(s *store.Store, logger *slog.Logger) *RelationService {
	return &RelationService{
		store:  s,
		logger: logger,
		ops: relationOps{
			name:          "shopping_cart",
			add:           s.AddToShoppingCart,
			remove:        s.RemoveFromShoppingCart,
			list:          s.ListShoppingCartRecipes,
			alreadyAdded:  "The recipe has already been added to the shopping cart",
			notInRelation: "The recipe does not exist in your shopping cart.",
		},
	}
}

// Add puts the recipe into the user's relation and returns its preview.
// A missing recipe is NotFound; a duplicate pair is a validation error.
func (s *RelationService) Add(ctx context.Context, userID, recipeID string) (*domain.RecipePreview, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	if err := s.ops.add(ctx, userID, recipeID); err != nil {
		switch err {
		case store.ErrAlreadyExists:
			return nil, domainerrors.Validation(s.ops.alreadyAdded)
		case store.ErrInvalidReference:
			return nil, domainerrors.NotFound("recipe not found")
		default:
			return nil, fmt.Errorf("add %s: %w", s.ops.name, err)
		}
	}

	s.logger.Debug("relation added",
		"relation", s.ops.name,
		"user_id", userID,
		"recipe_id", recipeID,
	)

	return &domain.RecipePreview{
		ID:          recipe.ID,
		Name:        recipe.Name,
		ImagePath:   recipe.ImagePath,
		CookingTime: recipe.CookingTime,
	}, nil
}

// Remove takes the recipe out of the user's relation. A missing recipe
// is NotFound; a missing pair is a validation error.
func (s *RelationService) Remove(ctx context.Context, userID, recipeID string) error {
	exists, err := s.store.RecipeExists(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("check recipe: %w", err)
	}
	if !exists {
		return domainerrors.NotFound("recipe not found")
	}

	if err := s.ops.remove(ctx, userID, recipeID); err != nil {
		if err == store.ErrNotFound {
			return domainerrors.Validation(s.ops.notInRelation)
		}
		return fmt.Errorf("remove %s: %w", s.ops.name, err)
	}

	s.logger.Debug("relation removed",
		"relation", s.ops.name,
		"user_id", userID,
		"recipe_id", recipeID,
	)
	return nil
}

// List returns the user's related recipes, most recently added first.
func (s *RelationService) List(ctx context.Context, userID string) ([]domain.RecipePreview, error) {
	previews, err := s.ops.list(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.ops.name, err)
	}
	return previews, nil
}
