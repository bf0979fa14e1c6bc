package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tvules/Foodgram/internal/store"
)

// ShoppingListService renders the aggregated shopping list.
type ShoppingListService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewShoppingListService creates a new shopping list service.
func NewShoppingListService(s *store.Store, logger *slog.Logger) *ShoppingListService {
	return &ShoppingListService{store: s, logger: logger}
}

// Render produces the downloadable shopping list: one line per
// ingredient summed across every carted recipe, ordered by name.
func (s *ShoppingListService) Render(ctx context.Context, userID string) (string, error) {
	items, err := s.store.AggregateShoppingList(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("aggregate shopping list: %w", err)
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) — %d\n", item.Name, item.Unit, item.Total)
	}
	return b.String(), nil
}
