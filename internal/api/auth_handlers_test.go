package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandlers_Register(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":      "alice@example.com",
		"username":   "alice",
		"first_name": "Alice",
		"last_name":  "Smith",
		"password":   "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, "alice", env.Data.User.Username)
	assert.Equal(t, "Bearer", env.Data.TokenType)
	assert.NotEmpty(t, env.Data.AccessToken)
	assert.NotEmpty(t, env.Data.RefreshToken)
	assert.Positive(t, env.Data.ExpiresIn)
}

func TestAuthHandlers_Register_Duplicate(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "bob")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":      "bob@example.com",
		"username":   "bob2",
		"first_name": "Bob",
		"last_name":  "Jones",
		"password":   "correct-horse-battery",
	})
	require.Equal(t, http.StatusConflict, resp.Code)

	env := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "ALREADY_EXISTS", env.Code)
}

func TestAuthHandlers_Register_InvalidBody(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":      "not-an-email",
		"username":   "carol",
		"first_name": "Carol",
		"last_name":  "White",
		"password":   "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAuthHandlers_LoginAndMe(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "dave")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "dave@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	env := decodeEnvelope[AuthResponse](t, resp.Body.Bytes())

	me := ts.api.Get("/api/v1/users/me", "Authorization: Bearer "+env.Data.AccessToken)
	require.Equal(t, http.StatusOK, me.Code)
	meEnv := decodeEnvelope[UserResponse](t, me.Body.Bytes())
	assert.Equal(t, "dave", meEnv.Data.Username)
}

func TestAuthHandlers_Login_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "erin")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "erin@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	env := decodeEnvelope[struct{}](t, resp.Body.Bytes())
	assert.Equal(t, "INVALID_CREDENTIALS", env.Code)
}

func TestAuthHandlers_RefreshRotation(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":      "frank@example.com",
		"username":   "frank",
		"first_name": "Frank",
		"last_name":  "Miller",
		"password":   "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, reg.Code)
	regEnv := decodeEnvelope[AuthResponse](t, reg.Body.Bytes())

	refresh := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": regEnv.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, refresh.Code, refresh.Body.String())
	refreshEnv := decodeEnvelope[AuthResponse](t, refresh.Body.Bytes())
	assert.NotEqual(t, regEnv.Data.RefreshToken, refreshEnv.Data.RefreshToken)

	// The rotated-out token no longer works.
	again := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": regEnv.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, again.Code)
}

func TestAuthHandlers_Logout(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":      "grace@example.com",
		"username":   "grace",
		"first_name": "Grace",
		"last_name":  "Lee",
		"password":   "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, reg.Code)
	regEnv := decodeEnvelope[AuthResponse](t, reg.Body.Bytes())

	out := ts.api.Post("/api/v1/auth/logout", map[string]any{
		"refresh_token": regEnv.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, out.Code)

	refresh := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": regEnv.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, refresh.Code)
}

func TestUsersMe_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/users/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
