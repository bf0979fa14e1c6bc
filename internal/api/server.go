// Package api provides the HTTP API server and handlers for the Foodgram application.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tvules/Foodgram/internal/config"
	"github.com/tvules/Foodgram/internal/media/images"
	"github.com/tvules/Foodgram/internal/store"
)

// shoppingListFilename is the attachment name for the downloaded list.
const shoppingListFilename = "shopping_cart_list.txt"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	images          *images.Storage
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, imageStorage *images.Storage, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		store:    st,
		services: services,
		images:   imageStorage,
		router:   chi.NewRouter(),
		logger:   logger,
		authRateLimiter: NewRateLimiter(
			cfg.Auth.LoginRatePerMinute, time.Minute, cfg.Auth.LoginBurst,
		),
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("Foodgram API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	s.api.UseMiddleware(s.requireBearerOperations)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerSubscriptionRoutes()
	s.registerTagRoutes()
	s.registerIngredientRoutes()
	s.registerRecipeRoutes()
	s.registerRelationRoutes()

	// Raw chi routes for non-JSON responses.
	s.router.Get("/api/v1/recipes/download_shopping_cart", s.handleDownloadShoppingList)
	s.router.Get("/media/recipes/{file}", s.handleServeRecipeImage)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack. StripSlashes lets
// clients use trailing-slash route forms interchangeably.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.StripSlashes)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	s.router.Use(s.rateLimitAuth)
}

// handleDownloadShoppingList streams the aggregated shopping list as a
// text attachment. Served outside huma to control the content type.
func (s *Server) handleDownloadShoppingList(w http.ResponseWriter, r *http.Request) {
	userID, err := s.requireBearerUser(r)
	if err != nil {
		s.writeErrorJSON(w, http.StatusUnauthorized, err.Error())
		return
	}

	text, err := s.services.ShoppingList.Render(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to render shopping list", "error", err, "user_id", userID)
		s.writeErrorJSON(w, http.StatusInternalServerError, "Failed to build shopping list")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+shoppingListFilename+`"`)
	_, _ = w.Write([]byte(text))
}

// handleServeRecipeImage serves a recipe image blob with ETag-based
// cache revalidation.
func (s *Server) handleServeRecipeImage(w http.ResponseWriter, r *http.Request) {
	path := "recipes/" + chi.URLParam(r, "file")

	hash, err := s.images.Hash(path)
	if err != nil {
		if errors.Is(err, images.ErrNotFound) {
			s.writeErrorJSON(w, http.StatusNotFound, "Image not found")
			return
		}
		s.logger.Error("failed to load image", "error", err, "path", path)
		s.writeErrorJSON(w, http.StatusInternalServerError, "Failed to load image")
		return
	}

	etag := `"` + hash + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	data, err := s.images.Get(path)
	if err != nil {
		s.logger.Error("failed to load image", "error", err, "path", path)
		s.writeErrorJSON(w, http.StatusInternalServerError, "Failed to load image")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("ETag", etag)
	_, _ = w.Write(data)
}

// requireBearerUser authenticates a raw chi request.
func (s *Server) requireBearerUser(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	userID, err := s.authenticateRequest(r.Context(), authHeader)
	if err != nil {
		return "", errors.New("Invalid or missing access token")
	}
	return userID, nil
}

// writeErrorJSON writes an enveloped error outside of huma handlers.
func (s *Server) writeErrorJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&errorEnvelope{
		V:     envelopeVersion,
		Error: message,
	})
}
