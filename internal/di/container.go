// Package di provides dependency injection configuration for the Foodgram server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/tvules/Foodgram/internal/auth"
	"github.com/tvules/Foodgram/internal/catalog"
	"github.com/tvules/Foodgram/internal/config"
	"github.com/tvules/Foodgram/internal/di/providers"
	"github.com/tvules/Foodgram/internal/logger"
	"github.com/tvules/Foodgram/internal/media/images"
	"github.com/tvules/Foodgram/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideImageStorage)
	do.Provide(injector, providers.ProvideImageProcessor)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideIngredientService)
	do.Provide(injector, providers.ProvideRecipeService)
	do.Provide(injector, providers.ProvideFavoriteService)
	do.Provide(injector, providers.ProvideShoppingCartService)
	do.Provide(injector, providers.ProvideShoppingListService)
	do.Provide(injector, providers.ProvideSubscriptionService)

	// Catalog imports
	do.Provide(injector, providers.ProvideCatalogLoader)
	do.Provide(injector, providers.ProvideCatalogWatcher)

	// Workers
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.ImageStorageHandle](injector)
	_ = do.MustInvoke[*images.Processor](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.IngredientService](injector)
	_ = do.MustInvoke[*service.RecipeService](injector)
	_ = do.MustInvoke[*providers.FavoriteService](injector)
	_ = do.MustInvoke[*providers.ShoppingCartService](injector)
	_ = do.MustInvoke[*service.ShoppingListService](injector)
	_ = do.MustInvoke[*service.SubscriptionService](injector)

	// Catalog imports
	_ = do.MustInvoke[*catalog.Loader](injector)
	_ = do.MustInvoke[*providers.CatalogWatcherHandle](injector)

	// Workers
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Rebuild the ingredient index if it is empty
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
