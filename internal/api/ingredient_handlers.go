package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tvules/Foodgram/internal/domain"
)

func (s *Server) registerIngredientRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients",
		Summary:     "List ingredients",
		Description: "Returns ingredients, optionally narrowed by a case-insensitive name prefix",
		Tags:        []string{"Ingredients"},
	}, s.handleListIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIngredient",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Get ingredient",
		Description: "Returns an ingredient by ID",
		Tags:        []string{"Ingredients"},
	}, s.handleGetIngredient)
}

// === DTOs ===

// ListIngredientsInput contains parameters for listing ingredients.
type ListIngredientsInput struct {
	Name string `query:"name" doc:"Name prefix filter"`
}

// IngredientResponse contains ingredient data in API responses.
type IngredientResponse struct {
	ID              string `json:"id" doc:"Ingredient ID"`
	Name            string `json:"name" doc:"Ingredient name"`
	MeasurementUnit string `json:"measurement_unit" doc:"Unit name"`
}

// IngredientListResponse contains matching ingredients.
type IngredientListResponse struct {
	Ingredients []IngredientResponse `json:"ingredients" doc:"Matching ingredients"`
}

// IngredientListOutput wraps the ingredient list response for Huma.
type IngredientListOutput struct {
	Body IngredientListResponse
}

// GetIngredientInput contains parameters for getting an ingredient.
type GetIngredientInput struct {
	ID string `path:"id" doc:"Ingredient ID"`
}

// IngredientOutput wraps the ingredient response for Huma.
type IngredientOutput struct {
	Body IngredientResponse
}

// === Handlers ===

func (s *Server) handleListIngredients(ctx context.Context, input *ListIngredientsInput) (*IngredientListOutput, error) {
	ingredients, err := s.services.Ingredient.List(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	resp := make([]IngredientResponse, len(ingredients))
	for i, ing := range ingredients {
		resp[i] = mapIngredient(*ing)
	}

	return &IngredientListOutput{Body: IngredientListResponse{Ingredients: resp}}, nil
}

func (s *Server) handleGetIngredient(ctx context.Context, input *GetIngredientInput) (*IngredientOutput, error) {
	ing, err := s.services.Ingredient.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &IngredientOutput{Body: mapIngredient(*ing)}, nil
}

func mapIngredient(ing domain.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              ing.ID,
		Name:            ing.Name,
		MeasurementUnit: ing.Unit.Name,
	}
}
