package api

import (
	"github.com/tvules/Foodgram/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth         *service.AuthService
	User         *service.UserService
	Tag          *service.TagService
	Ingredient   *service.IngredientService
	Recipe       *service.RecipeService
	Favorite     *service.RelationService
	ShoppingCart *service.RelationService
	ShoppingList *service.ShoppingListService
	Subscription *service.SubscriptionService
}
