package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/tvules/Foodgram/internal/id"
)

const (
	tokenIssuer   = "foodgram-server"
	tokenAudience = "foodgram-clients"

	// refreshTokenBytes of entropy per opaque refresh token.
	refreshTokenBytes = 32
)

// TokenService issues and verifies PASETO v4.local access tokens and
// opaque refresh tokens.
type TokenService struct {
	key             paseto.V4SymmetricKey
	accessDuration  time.Duration
	refreshDuration time.Duration
	parser          paseto.Parser
}

// NewTokenService creates a token service from a hex-encoded 32-byte key.
func NewTokenService(keyHex string, accessDuration, refreshDuration time.Duration) (*TokenService, error) {
	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("parse token key: %w", err)
	}

	parser := paseto.NewParser()
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.NotExpired())

	return &TokenService{
		key:             key,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
		parser:          parser,
	}, nil
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *TokenService) AccessTokenDuration() time.Duration {
	return s.accessDuration
}

// RefreshTokenDuration returns the configured refresh token lifetime.
func (s *TokenService) RefreshTokenDuration() time.Duration {
	return s.refreshDuration
}

// GenerateAccessToken creates a signed access token for the given user.
func (s *TokenService) GenerateAccessToken(userID, email string) (string, error) {
	now := time.Now()

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.accessDuration))
	token.SetIssuer(tokenIssuer)
	token.SetAudience(tokenAudience)
	token.SetSubject(userID)
	token.SetJti(tokenID)
	token.SetString("user_id", userID)
	token.SetString("email", email)

	return token.V4Encrypt(s.key, nil), nil
}

// VerifyAccessToken validates a token string and returns its claims.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := s.parser.ParseV4Local(s.key, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims := &AccessClaims{}
	if claims.UserID, err = token.GetString("user_id"); err != nil {
		return nil, fmt.Errorf("missing user_id claim: %w", err)
	}
	if claims.Email, err = token.GetString("email"); err != nil {
		return nil, fmt.Errorf("missing email claim: %w", err)
	}
	if claims.Issuer, err = token.GetIssuer(); err != nil {
		return nil, err
	}
	if claims.Subject, err = token.GetSubject(); err != nil {
		return nil, err
	}
	if claims.Audience, err = token.GetAudience(); err != nil {
		return nil, err
	}
	if claims.Expiration, err = token.GetExpiration(); err != nil {
		return nil, err
	}
	if claims.IssuedAt, err = token.GetIssuedAt(); err != nil {
		return nil, err
	}
	if claims.TokenID, err = token.GetJti(); err != nil {
		return nil, err
	}

	return claims, nil
}

// GenerateRefreshToken creates an opaque refresh token. Only its hash is
// stored server-side.
func (s *TokenService) GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashRefreshToken returns the hex SHA-256 digest used for storage and lookup.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
