package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tvules/Foodgram/internal/store"
)

// authenticateRequest validates the Authorization header and returns the user ID.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (string, error) {
	if authHeader == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", huma.Error401Unauthorized("Invalid authorization header format")
	}

	user, _, err := s.services.Auth.VerifyAccessToken(ctx, parts[1])
	if err != nil {
		return "", huma.Error401Unauthorized("Invalid or expired token")
	}

	return user.ID, nil
}

// optionalUserID resolves the Authorization header to a user ID for
// endpoints that work anonymously. Missing or invalid tokens yield "".
func (s *Server) optionalUserID(ctx context.Context, authHeader string) string {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}

	user, _, err := s.services.Auth.VerifyAccessToken(ctx, authHeader[7:])
	if err != nil {
		return ""
	}
	return user.ID
}

// pageFromInput builds a store page from query parameters, falling back
// to the store defaults for missing or out-of-range values.
func pageFromInput(page, limit int) store.Page {
	p := store.Page{Number: page, Limit: limit}
	p.Normalize()
	return p
}
