package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tvules/Foodgram/internal/domain"
	domainerrors "github.com/tvules/Foodgram/internal/errors"
	"github.com/tvules/Foodgram/internal/search"
	"github.com/tvules/Foodgram/internal/store"
)

// IngredientService serves the ingredient catalog with prefix search.
type IngredientService struct {
	store  *store.Store
	index  *search.SearchIndex
	logger *slog.Logger
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(s *store.Store, index *search.SearchIndex, logger *slog.Logger) *IngredientService {
	return &IngredientService{store: s, index: index, logger: logger}
}

// List returns ingredients ordered by name. A non-empty name narrows the
// result to ingredients whose name starts with it, case-insensitively.
func (s *IngredientService) List(ctx context.Context, namePrefix string) ([]*domain.Ingredient, error) {
	if namePrefix == "" {
		ingredients, err := s.store.ListIngredients(ctx)
		if err != nil {
			return nil, fmt.Errorf("list ingredients: %w", err)
		}
		return ingredients, nil
	}

	hits, err := s.index.SearchIngredients(ctx, namePrefix, 0)
	if err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}
	if len(hits) == 0 {
		return []*domain.Ingredient{}, nil
	}

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}

	ingredients, err := s.store.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate ingredients: %w", err)
	}
	return ingredients, nil
}

// Get returns a single ingredient with its unit.
func (s *IngredientService) Get(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	ing, err := s.store.GetIngredient(ctx, ingredientID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("ingredient not found")
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// ReindexAll rebuilds the ingredient search documents from the store.
// Called on startup so the in-memory index reflects the database.
func (s *IngredientService) ReindexAll(ctx context.Context) error {
	ingredients, err := s.store.ListIngredients(ctx)
	if err != nil {
		return fmt.Errorf("list ingredients: %w", err)
	}

	docs := make([]*search.SearchDocument, 0, len(ingredients))
	for _, ing := range ingredients {
		docs = append(docs, search.IngredientDocument(ing.ID, ing.Name, ing.Unit.Name))
	}
	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index ingredients: %w", err)
	}

	s.logger.Info("ingredient index rebuilt", "count", len(docs))
	return nil
}
