package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/tvules/Foodgram/internal/errors"
)

func setupTestIngredientService(t *testing.T) (*IngredientService, *testEnv) {
	t.Helper()

	env := setupTestEnv(t)
	svc := NewIngredientService(env.store, env.index, env.logger)

	createTestIngredient(t, env.store, "Sugar", "g")
	createTestIngredient(t, env.store, "Sunflower oil", "ml")
	createTestIngredient(t, env.store, "Salt", "g")
	require.NoError(t, svc.ReindexAll(context.Background()))

	return svc, env
}

func TestIngredientService_List_All(t *testing.T) {
	svc, _ := setupTestIngredientService(t)

	ingredients, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, ingredients, 3)

	// Alphabetical by name.
	assert.Equal(t, "Salt", ingredients[0].Name)
	assert.Equal(t, "Sugar", ingredients[1].Name)
	assert.Equal(t, "Sunflower oil", ingredients[2].Name)
}

func TestIngredientService_List_Prefix(t *testing.T) {
	svc, _ := setupTestIngredientService(t)
	ctx := context.Background()

	ingredients, err := svc.List(ctx, "su")
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "Sugar", ingredients[0].Name)
	assert.Equal(t, "Sunflower oil", ingredients[1].Name)

	// Prefix matching is case-insensitive.
	ingredients, err = svc.List(ctx, "SAL")
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Salt", ingredients[0].Name)

	ingredients, err = svc.List(ctx, "pepper")
	require.NoError(t, err)
	assert.Empty(t, ingredients)
}

func TestIngredientService_Get(t *testing.T) {
	svc, env := setupTestIngredientService(t)
	ctx := context.Background()

	created := createTestIngredient(t, env.store, "Butter", "g")

	ing, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Butter", ing.Name)
	assert.Equal(t, "g", ing.Unit.Name)

	_, err = svc.Get(ctx, "ing-ghost")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
