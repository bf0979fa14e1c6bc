package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tvules/Foodgram/internal/domain"
	"github.com/tvules/Foodgram/internal/id"
	"github.com/tvules/Foodgram/internal/media/images"
	"github.com/tvules/Foodgram/internal/search"
	"github.com/tvules/Foodgram/internal/store"
)

// testEnv bundles the infrastructure every service test needs.
type testEnv struct {
	store  *store.Store
	images *images.Storage
	index  *search.SearchIndex
	logger *slog.Logger
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()

	testStore, err := store.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = testStore.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	imageStorage, err := images.NewStorage(filepath.Join(dir, "blobs"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = imageStorage.Close() })

	index, err := search.NewSearchIndex(search.Options{Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return &testEnv{
		store:  testStore,
		images: imageStorage,
		index:  index,
		logger: logger,
	}
}

func (e *testEnv) recipeService() *RecipeService {
	processor := images.NewProcessor(e.images, e.logger)
	return NewRecipeService(e.store, e.images, processor, e.index, e.logger)
}

func createTestUser(t *testing.T, s *store.Store, username string) *domain.User {
	t.Helper()

	now := time.Now()
	user := &domain.User{
		ID:           id.MustGenerate("user"),
		CreatedAt:    now,
		UpdatedAt:    now,
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     username,
		PasswordHash: "$argon2id$test",
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createTestTag(t *testing.T, s *store.Store, name, color string) *domain.Tag {
	t.Helper()

	tag := &domain.Tag{
		ID:        id.MustGenerate("tag"),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	tag.Normalize()
	require.NoError(t, s.CreateTag(context.Background(), tag))
	return tag
}

func createTestIngredient(t *testing.T, s *store.Store, name, unitName string) *domain.Ingredient {
	t.Helper()
	ctx := context.Background()

	unit, err := s.GetMeasurementUnitByName(ctx, unitName)
	if err == store.ErrNotFound {
		unit = &domain.MeasurementUnit{ID: id.MustGenerate("unit"), Name: unitName}
		require.NoError(t, s.CreateMeasurementUnit(ctx, unit))
	} else {
		require.NoError(t, err)
	}

	ing := &domain.Ingredient{
		ID:   id.MustGenerate("ing"),
		Name: name,
		Unit: *unit,
	}
	require.NoError(t, s.CreateIngredient(ctx, ing))
	return ing
}

// testImageDataURI renders a tiny PNG and wraps it as a data URI.
func testImageDataURI(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
