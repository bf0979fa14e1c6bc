package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns a paginated list of registered users",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns a user profile by ID",
		Tags:        []string{"Users"},
	}, s.handleGetUser)
}

// === DTOs ===

// ListUsersInput contains parameters for listing users.
type ListUsersInput struct {
	Authorization string `header:"Authorization"`
	Page          int    `query:"page" doc:"1-based page number"`
	Limit         int    `query:"limit" doc:"Page size"`
}

// UserListResponse contains a page of user profiles.
type UserListResponse struct {
	Count   int            `json:"count" doc:"Total number of users"`
	Results []UserResponse `json:"results" doc:"Users on this page"`
}

// UserListOutput wraps the user list response for Huma.
type UserListOutput struct {
	Body UserListResponse
}

// GetUserInput contains parameters for getting a user.
type GetUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

// CurrentUserInput contains parameters for the current user endpoint.
type CurrentUserInput struct {
	Authorization string `header:"Authorization"`
}

// UserOutput wraps a single user profile for Huma.
type UserOutput struct {
	Body UserResponse
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*UserListOutput, error) {
	viewerID := s.optionalUserID(ctx, input.Authorization)

	page, err := s.services.User.ListProfiles(ctx, viewerID, pageFromInput(input.Page, input.Limit))
	if err != nil {
		return nil, err
	}

	results := make([]UserResponse, len(page.Users))
	for i, profile := range page.Users {
		results[i] = mapProfile(profile)
	}

	return &UserListOutput{Body: UserListResponse{Count: page.Total, Results: results}}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	viewerID := s.optionalUserID(ctx, input.Authorization)

	profile, err := s.services.User.GetProfile(ctx, viewerID, input.ID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapProfile(*profile)}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, input *CurrentUserInput) (*UserOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.User.GetProfile(ctx, userID, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapProfile(*profile)}, nil
}
