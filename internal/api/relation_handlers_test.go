package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationHandlers_Favorite(t *testing.T) {
	ts := setupTestServer(t)

	bearer, _ := ts.registerTestUser(t, "chef")
	tag := ts.seedTag(t, "Dinner", "#49B64E")
	ing := ts.seedIngredient(t, "Flour", "g")
	recipe := ts.createRecipe(t, bearer, "Pancakes", tag.ID, ing.ID)

	resp := ts.api.Post("/api/v1/recipes/"+recipe.ID+"/favorite", "Authorization: "+bearer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[RecipePreviewResponse](t, resp.Body.Bytes())
	assert.Equal(t, recipe.ID, env.Data.ID)
	assert.Equal(t, "Pancakes", env.Data.Name)

	// Adding twice yields the exact duplicate message.
	dup := ts.api.Post("/api/v1/recipes/"+recipe.ID+"/favorite", "Authorization: "+bearer)
	require.Equal(t, http.StatusBadRequest, dup.Code)
	dupEnv := decodeEnvelope[struct{}](t, dup.Body.Bytes())
	assert.Equal(t, "The recipe has already been added to favorites.", dupEnv.Message)

	del := ts.api.Delete("/api/v1/recipes/"+recipe.ID+"/favorite", "Authorization: "+bearer)
	require.Equal(t, http.StatusOK, del.Code)

	missing := ts.api.Delete("/api/v1/recipes/"+recipe.ID+"/favorite", "Authorization: "+bearer)
	require.Equal(t, http.StatusBadRequest, missing.Code)
	missingEnv := decodeEnvelope[struct{}](t, missing.Body.Bytes())
	assert.Equal(t, "The recipe does not exist in your favorites list.", missingEnv.Message)
}

func TestRelationHandlers_ShoppingCart(t *testing.T) {
	ts := setupTestServer(t)

	bearer, _ := ts.registerTestUser(t, "chef")
	tag := ts.seedTag(t, "Dinner", "#49B64E")
	ing := ts.seedIngredient(t, "Flour", "g")
	recipe := ts.createRecipe(t, bearer, "Pancakes", tag.ID, ing.ID)

	resp := ts.api.Post("/api/v1/recipes/"+recipe.ID+"/shopping_cart", "Authorization: "+bearer)
	require.Equal(t, http.StatusOK, resp.Code)

	dup := ts.api.Post("/api/v1/recipes/"+recipe.ID+"/shopping_cart", "Authorization: "+bearer)
	require.Equal(t, http.StatusBadRequest, dup.Code)
	dupEnv := decodeEnvelope[struct{}](t, dup.Body.Bytes())
	assert.Equal(t, "The recipe has already been added to the shopping cart", dupEnv.Message)

	del := ts.api.Delete("/api/v1/recipes/"+recipe.ID+"/shopping_cart", "Authorization: "+bearer)
	require.Equal(t, http.StatusOK, del.Code)

	missing := ts.api.Delete("/api/v1/recipes/"+recipe.ID+"/shopping_cart", "Authorization: "+bearer)
	require.Equal(t, http.StatusBadRequest, missing.Code)
	missingEnv := decodeEnvelope[struct{}](t, missing.Body.Bytes())
	assert.Equal(t, "The recipe does not exist in your shopping cart.", missingEnv.Message)
}

func TestRelationHandlers_MissingRecipe(t *testing.T) {
	ts := setupTestServer(t)
	bearer, _ := ts.registerTestUser(t, "chef")

	resp := ts.api.Post("/api/v1/recipes/recipe-ghost/favorite", "Authorization: "+bearer)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Delete("/api/v1/recipes/recipe-ghost/shopping_cart", "Authorization: "+bearer)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRelationHandlers_RequireAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/recipes/recipe-x/favorite")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
