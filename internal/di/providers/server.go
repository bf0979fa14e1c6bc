package providers

import (
	"context"
	"net"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/tvules/Foodgram/internal/api"
	"github.com/tvules/Foodgram/internal/config"
	"github.com/tvules/Foodgram/internal/logger"
	"github.com/tvules/Foodgram/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	storageHandle := do.MustInvoke[*ImageStorageHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	authService := do.MustInvoke[*service.AuthService](i)
	userService := do.MustInvoke[*service.UserService](i)
	tagService := do.MustInvoke[*service.TagService](i)
	ingredientService := do.MustInvoke[*service.IngredientService](i)
	recipeService := do.MustInvoke[*service.RecipeService](i)
	favoriteService := do.MustInvoke[*FavoriteService](i)
	shoppingCartService := do.MustInvoke[*ShoppingCartService](i)
	shoppingListService := do.MustInvoke[*service.ShoppingListService](i)
	subscriptionService := do.MustInvoke[*service.SubscriptionService](i)

	services := &api.Services{
		Auth:         authService,
		User:         userService,
		Tag:          tagService,
		Ingredient:   ingredientService,
		Recipe:       recipeService,
		Favorite:     favoriteService.RelationService,
		ShoppingCart: shoppingCartService.RelationService,
		ShoppingList: shoppingListService,
		Subscription: subscriptionService,
	}

	handler := api.NewServer(storeHandle.Store, services, storageHandle.Storage, cfg, log.Logger)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
