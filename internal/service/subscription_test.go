package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/tvules/Foodgram/internal/errors"
	"github.com/tvules/Foodgram/internal/store"
)

func TestSubscriptionService_Follow(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSubscriptionService(env.store, env.logger)
	ctx := context.Background()

	author, recipes := seedRecipes(t, env, "Pancakes")
	follower := createTestUser(t, env.store, "follower")

	sub, err := svc.Follow(ctx, follower.ID, author.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, author.ID, sub.ID)
	assert.True(t, sub.IsSubscribed)
	assert.Equal(t, 1, sub.RecipesCount)
	require.Len(t, sub.Recipes, 1)
	assert.Equal(t, recipes[0].ID, sub.Recipes[0].ID)
}

func TestSubscriptionService_Follow_Self(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSubscriptionService(env.store, env.logger)

	user := createTestUser(t, env.store, "solo")

	_, err := svc.Follow(context.Background(), user.ID, user.ID, 0)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	assert.Equal(t, "You cannot follow to yourself.", domainErr.Message)
}

func TestSubscriptionService_Follow_Duplicate(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSubscriptionService(env.store, env.logger)
	ctx := context.Background()

	author := createTestUser(t, env.store, "author")
	follower := createTestUser(t, env.store, "follower")

	_, err := svc.Follow(ctx, follower.ID, author.ID, 0)
	require.NoError(t, err)

	_, err = svc.Follow(ctx, follower.ID, author.ID, 0)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "You are already a follower.", domainErr.Message)
}

func TestSubscriptionService_Follow_UnknownUser(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSubscriptionService(env.store, env.logger)

	follower := createTestUser(t, env.store, "follower")

	_, err := svc.Follow(context.Background(), follower.ID, "user-ghost", 0)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSubscriptionService_Unfollow(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSubscriptionService(env.store, env.logger)
	ctx := context.Background()

	author := createTestUser(t, env.store, "author")
	follower := createTestUser(t, env.store, "follower")

	_, err := svc.Follow(ctx, follower.ID, author.ID, 0)
	require.NoError(t, err)
	require.NoError(t, svc.Unfollow(ctx, follower.ID, author.ID))

	err = svc.Unfollow(ctx, follower.ID, author.ID)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "You are not a follower.", domainErr.Message)

	assert.ErrorIs(t, svc.Unfollow(ctx, follower.ID, "user-ghost"), domainerrors.ErrNotFound)
}

func TestSubscriptionService_List(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSubscriptionService(env.store, env.logger)
	ctx := context.Background()

	author, _ := seedRecipes(t, env, "First", "Second", "Third")
	other := createTestUser(t, env.store, "other")
	follower := createTestUser(t, env.store, "follower")

	_, err := svc.Follow(ctx, follower.ID, other.ID, 0)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = svc.Follow(ctx, follower.ID, author.ID, 0)
	require.NoError(t, err)

	// recipesLimit trims previews but not the count.
	page, err := svc.List(ctx, follower.ID, store.Page{}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Subscriptions, 2)

	// Most recently followed first.
	assert.Equal(t, author.ID, page.Subscriptions[0].ID)
	assert.Equal(t, other.ID, page.Subscriptions[1].ID)

	assert.Len(t, page.Subscriptions[0].Recipes, 2)
	assert.Equal(t, 3, page.Subscriptions[0].RecipesCount)
	assert.Empty(t, page.Subscriptions[1].Recipes)
}
