package providers

import (
	"github.com/samber/do/v2"

	"github.com/tvules/Foodgram/internal/auth"
	"github.com/tvules/Foodgram/internal/logger"
	"github.com/tvules/Foodgram/internal/media/images"
	"github.com/tvules/Foodgram/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideUserService provides the user profile service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, log.Logger), nil
}

// ProvideIngredientService provides the ingredient catalog service.
func ProvideIngredientService(i do.Injector) (*service.IngredientService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewIngredientService(storeHandle.Store, indexHandle.SearchIndex, log.Logger), nil
}

// ProvideRecipeService provides the recipe service.
func ProvideRecipeService(i do.Injector) (*service.RecipeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	storageHandle := do.MustInvoke[*ImageStorageHandle](i)
	processor := do.MustInvoke[*images.Processor](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecipeService(
		storeHandle.Store,
		storageHandle.Storage,
		processor,
		indexHandle.SearchIndex,
		log.Logger,
	), nil
}

// FavoriteService marks the favorites variant of the relation service.
type FavoriteService struct {
	*service.RelationService
}

// ShoppingCartService marks the shopping cart variant of the relation service.
type ShoppingCartService struct {
	*service.RelationService
}

// ProvideFavoriteService provides the favorites relation service.
func ProvideFavoriteService(i do.Injector) (*FavoriteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &FavoriteService{RelationService: service.NewFavoriteService(storeHandle.Store, log.Logger)}, nil
}

// ProvideShoppingCartService provides the shopping cart relation service.
func ProvideShoppingCartService(i do.Injector) (*ShoppingCartService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &ShoppingCartService{RelationService: service.NewShoppingCartService(storeHandle.Store, log.Logger)}, nil
}

// ProvideShoppingListService provides the shopping list renderer.
func ProvideShoppingListService(i do.Injector) (*service.ShoppingListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewShoppingListService(storeHandle.Store, log.Logger), nil
}

// ProvideSubscriptionService provides the author subscription service.
func ProvideSubscriptionService(i do.Injector) (*service.SubscriptionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSubscriptionService(storeHandle.Store, log.Logger), nil
}
