package service

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvules/Foodgram/internal/auth"
	domainerrors "github.com/tvules/Foodgram/internal/errors"
)

func setupTestAuthService(t *testing.T) (*AuthService, *testEnv) {
	t.Helper()

	env := setupTestEnv(t)

	key, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	return NewAuthService(env.store, tokenService, env.logger), env
}

func validRegisterRequest(username string) RegisterRequest {
	return RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "correct-horse-battery",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegisterRequest("alice"))
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash, "hash must not leave the service layer")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest("bob"))
	require.NoError(t, err)

	dup := validRegisterRequest("bob2")
	dup.Email = "BOB@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuthService_Register_InvalidRequest(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	req := validRegisterRequest("carol")
	req.Password = "short"
	_, err := svc.Register(ctx, req)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	req = validRegisterRequest("carol")
	req.Email = "not-an-email"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest("dave"))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "dave@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "dave", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash, "hash must not leave the service layer")

	// Access token round-trips through verification.
	user, claims, err := svc.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest("erin"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "erin@example.com", Password: "wrong"})
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeInvalidCredentials, domainErr.Code)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	})
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeInvalidCredentials, domainErr.Code)
}

func TestAuthService_RefreshTokens_Rotation(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegisterRequest("frank"))
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is single-use.
	_, err = svc.RefreshTokens(ctx, RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _ := setupTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegisterRequest("grace"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))

	_, err = svc.RefreshTokens(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.Error(t, err)

	// Logging out twice is fine.
	assert.NoError(t, svc.Logout(ctx, resp.RefreshToken))
}

func TestAuthService_VerifyAccessToken_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, _, err := svc.VerifyAccessToken(context.Background(), "v4.local.garbage")
	assert.Error(t, err)
}
