package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionHandlers_SubscribeAndList(t *testing.T) {
	ts := setupTestServer(t)

	authorBearer, authorID := ts.registerTestUser(t, "author")
	bearer, _ := ts.registerTestUser(t, "reader")
	tag := ts.seedTag(t, "Dinner", "#49B64E")
	ing := ts.seedIngredient(t, "Flour", "g")
	ts.createRecipe(t, authorBearer, "Pancakes", tag.ID, ing.ID)
	ts.createRecipe(t, authorBearer, "Bread", tag.ID, ing.ID)

	resp := ts.api.Post("/api/v1/users/"+authorID+"/subscribe", "Authorization: "+bearer)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[SubscriptionResponse](t, resp.Body.Bytes())
	assert.Equal(t, authorID, env.Data.ID)
	assert.True(t, env.Data.IsSubscribed)
	assert.Equal(t, 2, env.Data.RecipesCount)
	assert.Len(t, env.Data.Recipes, 2)

	// recipes_limit trims previews but not the count.
	list := ts.api.Get("/api/v1/users/subscriptions?recipes_limit=1", "Authorization: "+bearer)
	require.Equal(t, http.StatusOK, list.Code, list.Body.String())
	listEnv := decodeEnvelope[SubscriptionListResponse](t, list.Body.Bytes())
	require.Equal(t, 1, listEnv.Data.Count)
	require.Len(t, listEnv.Data.Results, 1)
	assert.Len(t, listEnv.Data.Results[0].Recipes, 1)
	assert.Equal(t, 2, listEnv.Data.Results[0].RecipesCount)
}

func TestSubscriptionHandlers_RecipesLimitNotInt(t *testing.T) {
	ts := setupTestServer(t)
	bearer, _ := ts.registerTestUser(t, "reader")

	resp := ts.api.Get("/api/v1/users/subscriptions?recipes_limit=abc", "Authorization: "+bearer)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	env := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.Equal(t, "Incorrect type. Expected `int` value", env.Message)
}

func TestSubscriptionHandlers_SelfFollow(t *testing.T) {
	ts := setupTestServer(t)
	bearer, userID := ts.registerTestUser(t, "solo")

	resp := ts.api.Post("/api/v1/users/"+userID+"/subscribe", "Authorization: "+bearer)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	env := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.Equal(t, "You cannot follow to yourself.", env.Message)
}

func TestSubscriptionHandlers_DuplicateAndUnfollow(t *testing.T) {
	ts := setupTestServer(t)

	_, authorID := ts.registerTestUser(t, "author")
	bearer, _ := ts.registerTestUser(t, "reader")

	resp := ts.api.Post("/api/v1/users/"+authorID+"/subscribe", "Authorization: "+bearer)
	require.Equal(t, http.StatusOK, resp.Code)

	dup := ts.api.Post("/api/v1/users/"+authorID+"/subscribe", "Authorization: "+bearer)
	require.Equal(t, http.StatusBadRequest, dup.Code)
	dupEnv := decodeEnvelope[struct{}](t, dup.Body.Bytes())
	assert.Equal(t, "You are already a follower.", dupEnv.Message)

	del := ts.api.Delete("/api/v1/users/"+authorID+"/subscribe", "Authorization: "+bearer)
	require.Equal(t, http.StatusOK, del.Code)

	again := ts.api.Delete("/api/v1/users/"+authorID+"/subscribe", "Authorization: "+bearer)
	require.Equal(t, http.StatusBadRequest, again.Code)
	againEnv := decodeEnvelope[struct{}](t, again.Body.Bytes())
	assert.Equal(t, "You are not a follower.", againEnv.Message)
}

func TestSubscriptionHandlers_UnknownUser(t *testing.T) {
	ts := setupTestServer(t)
	bearer, _ := ts.registerTestUser(t, "reader")

	resp := ts.api.Post("/api/v1/users/user-ghost/subscribe", "Authorization: "+bearer)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
