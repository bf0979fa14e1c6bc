package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tvules/Foodgram/internal/domain"
	"github.com/tvules/Foodgram/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns a filtered, paginated recipe listing, newest first",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "createRecipe",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes",
		Summary:     "Create recipe",
		Description: "Creates a recipe with its image, ingredients, and tags",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/search",
		Summary:     "Search recipes",
		Description: "Free-text search over recipe names and instructions",
		Tags:        []string{"Recipes"},
	}, s.handleSearchRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe by ID",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Partially updates the caller's recipe; omitted association fields stay untouched",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Delete recipe",
		Description: "Deletes the caller's recipe",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// RecipeIngredientRequest is one ingredient line in a submission.
type RecipeIngredientRequest struct {
	ID     string `json:"id" doc:"Ingredient ID"`
	Amount int    `json:"amount" doc:"Quantity in the ingredient's unit"`
}

// CreateRecipeRequest is the request body for creating a recipe.
type CreateRecipeRequest struct {
	Name        string                    `json:"name" doc:"Recipe name"`
	Text        string                    `json:"text" doc:"Cooking instructions"`
	CookingTime int                       `json:"cooking_time" doc:"Cooking time in minutes"`
	Image       string                    `json:"image" doc:"Base64-encoded image (data URI)"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" doc:"Ingredient lines"`
	Tags        []string                  `json:"tags" doc:"Tag IDs"`
}

// CreateRecipeInput wraps the create recipe request for Huma.
type CreateRecipeInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateRecipeRequest
}

// UpdateRecipeRequest is the request body for a partial recipe update.
type UpdateRecipeRequest struct {
	Name        *string                   `json:"name,omitempty" doc:"Recipe name"`
	Text        *string                   `json:"text,omitempty" doc:"Cooking instructions"`
	CookingTime *int                      `json:"cooking_time,omitempty" doc:"Cooking time in minutes"`
	Image       *string                   `json:"image,omitempty" doc:"Replacement image (data URI)"`
	Ingredients []RecipeIngredientRequest `json:"ingredients,omitempty" doc:"Replacement ingredient lines"`
	Tags        []string                  `json:"tags,omitempty" doc:"Replacement tag IDs"`
}

// UpdateRecipeInput wraps the update recipe request for Huma.
type UpdateRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
	Body          UpdateRecipeRequest
}

// GetRecipeInput contains parameters for getting a recipe.
type GetRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
}

// DeleteRecipeInput contains parameters for deleting a recipe.
type DeleteRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Recipe ID"`
}

// ListRecipesInput contains recipe listing filters.
type ListRecipesInput struct {
	Authorization  string   `header:"Authorization"`
	Page           int      `query:"page" doc:"1-based page number"`
	Limit          int      `query:"limit" doc:"Page size"`
	Author         string   `query:"author" doc:"Filter by author ID"`
	Tags           []string `query:"tags" doc:"Filter by tag slugs (OR)"`
	IsFavorited    string   `query:"is_favorited" doc:"1/true: only the viewer's favorites"`
	IsInCart       string   `query:"is_in_shopping_cart" doc:"1/true: only the viewer's cart"`
}

// SearchRecipesInput contains recipe search parameters.
type SearchRecipesInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" doc:"Search text"`
	Limit         int    `query:"limit" doc:"Max results"`
}

// RecipeIngredientResponse is a hydrated ingredient line.
type RecipeIngredientResponse struct {
	ID              string `json:"id" doc:"Ingredient ID"`
	Name            string `json:"name" doc:"Ingredient name"`
	MeasurementUnit string `json:"measurement_unit" doc:"Unit name"`
	Amount          int    `json:"amount" doc:"Quantity"`
}

// RecipeResponse is the full recipe representation.
type RecipeResponse struct {
	ID               string                     `json:"id" doc:"Recipe ID"`
	Author           UserResponse               `json:"author" doc:"Recipe author"`
	Name             string                     `json:"name" doc:"Recipe name"`
	Text             string                     `json:"text" doc:"Cooking instructions"`
	Image            string                     `json:"image" doc:"Image URL"`
	BlurHash         string                     `json:"blur_hash,omitempty" doc:"Image placeholder hash"`
	CookingTime      int                        `json:"cooking_time" doc:"Cooking time in minutes"`
	Tags             []TagResponse              `json:"tags" doc:"Recipe tags"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients" doc:"Ingredient lines"`
	IsFavorited      bool                       `json:"is_favorited" doc:"Viewer has favorited this recipe"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart" doc:"Recipe is in the viewer's cart"`
	CreatedAt        time.Time                  `json:"created_at" doc:"Creation timestamp"`
}

// RecipeOutput wraps a single recipe for Huma.
type RecipeOutput struct {
	Body RecipeResponse
}

// RecipeListResponse contains a page of recipes.
type RecipeListResponse struct {
	Count   int              `json:"count" doc:"Total matching recipes"`
	Results []RecipeResponse `json:"results" doc:"Recipes on this page"`
}

// RecipeListOutput wraps the recipe list response for Huma.
type RecipeListOutput struct {
	Body RecipeListResponse
}

// RecipePreviewResponse is the trimmed recipe representation.
type RecipePreviewResponse struct {
	ID          string `json:"id" doc:"Recipe ID"`
	Name        string `json:"name" doc:"Recipe name"`
	Image       string `json:"image" doc:"Image URL"`
	CookingTime int    `json:"cooking_time" doc:"Cooking time in minutes"`
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, input *ListRecipesInput) (*RecipeListOutput, error) {
	viewerID := s.optionalUserID(ctx, input.Authorization)

	page, err := s.services.Recipe.List(ctx, viewerID, service.ListRecipesParams{
		AuthorID:      input.Author,
		TagSlugs:      input.Tags,
		FavoritedOnly: isTruthy(input.IsFavorited),
		InCartOnly:    isTruthy(input.IsInCart),
		Page:          pageFromInput(input.Page, input.Limit),
	})
	if err != nil {
		return nil, err
	}

	results := make([]RecipeResponse, len(page.Recipes))
	for i, detail := range page.Recipes {
		results[i] = mapRecipeDetail(detail)
	}

	return &RecipeListOutput{Body: RecipeListResponse{Count: page.Total, Results: results}}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Recipe.Create(ctx, userID, service.CreateRecipeRequest{
		Name:        input.Body.Name,
		Text:        input.Body.Text,
		CookingTime: input.Body.CookingTime,
		Image:       input.Body.Image,
		Ingredients: mapIngredientLines(input.Body.Ingredients),
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeDetail(detail)}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *GetRecipeInput) (*RecipeOutput, error) {
	viewerID := s.optionalUserID(ctx, input.Authorization)

	detail, err := s.services.Recipe.Get(ctx, viewerID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeDetail(detail)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	req := service.UpdateRecipeRequest{
		Name:        input.Body.Name,
		Text:        input.Body.Text,
		CookingTime: input.Body.CookingTime,
		Image:       input.Body.Image,
		Tags:        input.Body.Tags,
	}
	if input.Body.Ingredients != nil {
		req.Ingredients = mapIngredientLines(input.Body.Ingredients)
	}

	detail, err := s.services.Recipe.Update(ctx, userID, input.ID, req)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeDetail(detail)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *DeleteRecipeInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Recipe deleted"}}, nil
}

func (s *Server) handleSearchRecipes(ctx context.Context, input *SearchRecipesInput) (*RecipeListOutput, error) {
	viewerID := s.optionalUserID(ctx, input.Authorization)

	details, err := s.services.Recipe.Search(ctx, viewerID, input.Query, input.Limit)
	if err != nil {
		return nil, err
	}

	results := make([]RecipeResponse, len(details))
	for i, detail := range details {
		results[i] = mapRecipeDetail(detail)
	}

	return &RecipeListOutput{Body: RecipeListResponse{Count: len(results), Results: results}}, nil
}

// === Helpers ===

// isTruthy interprets the flag filters, which clients send as 1/0 or
// true/false.
func isTruthy(s string) bool {
	return s == "1" || s == "true"
}

// imageURL converts a stored blob path into its public URL.
func imageURL(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}

func mapIngredientLines(lines []RecipeIngredientRequest) []domain.RecipeIngredient {
	out := make([]domain.RecipeIngredient, len(lines))
	for i, line := range lines {
		out[i] = domain.RecipeIngredient{IngredientID: line.ID, Amount: line.Amount}
	}
	return out
}

func mapRecipeDetail(detail *domain.RecipeDetail) RecipeResponse {
	tags := make([]TagResponse, len(detail.Tags))
	for i, t := range detail.Tags {
		tags[i] = mapTag(t)
	}

	ingredients := make([]RecipeIngredientResponse, len(detail.Ingredients))
	for i, line := range detail.Ingredients {
		ingredients[i] = RecipeIngredientResponse{
			ID:              line.ID,
			Name:            line.Name,
			MeasurementUnit: line.Unit.Name,
			Amount:          line.Amount,
		}
	}

	return RecipeResponse{
		ID:               detail.ID,
		Author:           mapProfile(detail.Author),
		Name:             detail.Name,
		Text:             detail.Text,
		Image:            imageURL(detail.ImagePath),
		BlurHash:         detail.BlurHash,
		CookingTime:      detail.CookingTime,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      detail.IsFavorited,
		IsInShoppingCart: detail.IsInShoppingCart,
		CreatedAt:        detail.CreatedAt,
	}
}

func mapRecipePreview(preview domain.RecipePreview) RecipePreviewResponse {
	return RecipePreviewResponse{
		ID:          preview.ID,
		Name:        preview.Name,
		Image:       imageURL(preview.ImagePath),
		CookingTime: preview.CookingTime,
	}
}
