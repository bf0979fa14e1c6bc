package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvules/Foodgram/internal/auth"
	"github.com/tvules/Foodgram/internal/config"
	"github.com/tvules/Foodgram/internal/domain"
	"github.com/tvules/Foodgram/internal/id"
	"github.com/tvules/Foodgram/internal/media/images"
	"github.com/tvules/Foodgram/internal/search"
	"github.com/tvules/Foodgram/internal/service"
	"github.com/tvules/Foodgram/internal/store"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api   humatest.TestAPI
	index *search.SearchIndex
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()

	st, err := store.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	imageStorage, err := images.NewStorage(filepath.Join(dir, "blobs"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = imageStorage.Close() })

	index, err := search.NewSearchIndex(search.Options{Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	authKey, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(
		hex.EncodeToString(authKey), 15*time.Minute, 30*24*time.Hour,
	)
	require.NoError(t, err)

	processor := images.NewProcessor(imageStorage, logger)

	services := &Services{
		Auth:         service.NewAuthService(st, tokenService, logger),
		User:         service.NewUserService(st, logger),
		Tag:          service.NewTagService(st, logger),
		Ingredient:   service.NewIngredientService(st, index, logger),
		Recipe:       service.NewRecipeService(st, imageStorage, processor, index, logger),
		Favorite:     service.NewFavoriteService(st, logger),
		ShoppingCart: service.NewShoppingCartService(st, logger),
		ShoppingList: service.NewShoppingListService(st, logger),
		Subscription: service.NewSubscriptionService(st, logger),
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			CORSOrigins: []string{"*"},
		},
		Auth: config.AuthConfig{
			LoginRatePerMinute: 6000,
			LoginBurst:         100,
		},
	}

	s := NewServer(st, services, imageStorage, cfg, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		index:  index,
	}
}

// registerTestUser creates an account through the API and returns the
// bearer header value and user ID.
func (ts *testServer) registerTestUser(t *testing.T, username string) (bearer, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  username,
		"password":   "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.Code, "register failed: %s", resp.Body.String())

	env := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())
	require.NotEmpty(t, env.Data.AccessToken)

	return "Bearer " + env.Data.AccessToken, env.Data.User.ID
}

func (ts *testServer) seedTag(t *testing.T, name, color string) *domain.Tag {
	t.Helper()

	tag := &domain.Tag{
		ID:        id.MustGenerate("tag"),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	tag.Normalize()
	require.NoError(t, ts.store.CreateTag(context.Background(), tag))
	return tag
}

func (ts *testServer) seedIngredient(t *testing.T, name, unitName string) *domain.Ingredient {
	t.Helper()
	ctx := context.Background()

	unit, err := ts.store.GetMeasurementUnitByName(ctx, unitName)
	if err == store.ErrNotFound {
		unit = &domain.MeasurementUnit{ID: id.MustGenerate("unit"), Name: unitName}
		require.NoError(t, ts.store.CreateMeasurementUnit(ctx, unit))
	} else {
		require.NoError(t, err)
	}

	ing := &domain.Ingredient{ID: id.MustGenerate("ing"), Name: name, Unit: *unit}
	require.NoError(t, ts.store.CreateIngredient(ctx, ing))
	return ing
}

// createRecipe posts a recipe through the API and returns its response.
func (ts *testServer) createRecipe(t *testing.T, bearer, name string, tagID, ingredientID string) RecipeResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/recipes",
		"Authorization: "+bearer,
		map[string]any{
			"name":         name,
			"text":         "Instructions for " + name,
			"cooking_time": 25,
			"image":        testImageDataURI(t),
			"ingredients":  []map[string]any{{"id": ingredientID, "amount": 150}},
			"tags":         []string{tagID},
		})
	require.Equal(t, http.StatusOK, resp.Code, "create recipe failed: %s", resp.Body.String())

	return decodeEnvelope[RecipeResponse](t, resp.Body.Bytes()).Data
}

// testImageDataURI renders a tiny PNG and wraps it as a data URI.
func testImageDataURI(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 80, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeEnvelope[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()

	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env))
	assert.Equal(t, envelopeVersion, env.V)
	return env
}

func TestServer_HealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decodeEnvelope[HealthResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data.Status)
}

func TestServer_DownloadShoppingList(t *testing.T) {
	ts := setupTestServer(t)

	bearer, _ := ts.registerTestUser(t, "shopper")
	tag := ts.seedTag(t, "Dinner", "#49B64E")
	flour := ts.seedIngredient(t, "Flour", "g")
	recipe := ts.createRecipe(t, bearer, "Bread", tag.ID, flour.ID)

	resp := ts.api.Post("/api/v1/recipes/"+recipe.ID+"/shopping_cart", "Authorization: "+bearer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/download_shopping_cart/", nil)
	req.Header.Set("Authorization", bearer)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="shopping_cart_list.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Flour (g) — 150\n", rec.Body.String())
}

func TestServer_DownloadShoppingList_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/download_shopping_cart/", nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_ServeRecipeImage(t *testing.T) {
	ts := setupTestServer(t)

	bearer, _ := ts.registerTestUser(t, "chef")
	tag := ts.seedTag(t, "Dinner", "#49B64E")
	ing := ts.seedIngredient(t, "Flour", "g")
	recipe := ts.createRecipe(t, bearer, "Pancakes", tag.ID, ing.ID)

	require.NotEmpty(t, recipe.Image)

	req := httptest.NewRequest(http.MethodGet, recipe.Image, nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())

	// A conditional re-request with the returned ETag revalidates.
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req = httptest.NewRequest(http.MethodGet, recipe.Image, nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestServer_ServeRecipeImage_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/media/recipes/img-ghost.jpg", nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
