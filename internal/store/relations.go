package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/tvules/Foodgram/internal/domain"
)

// recipeRelation identifies one of the user-to-recipe relation tables.
// Both share the same shape, so the queries are parameterized by table
// name; the constants below are the only values ever interpolated.
type recipeRelation string

const (
	relationFavorites    recipeRelation = "favorite_recipes"
	relationShoppingCart recipeRelation = "shopping_carts"
)

// addRecipeRelation inserts a (user, recipe) pair.
// Returns ErrAlreadyExists on a duplicate pair and ErrInvalidReference
// when either side is missing.
func (s *Store) addRecipeRelation(ctx context.Context, table recipeRelation, userID, recipeID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+string(table)+` (user_id, recipe_id, created_at) VALUES (?, ?, ?)`,
		userID, recipeID, formatTime(time.Now()))
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return err
	}
	return nil
}

// removeRecipeRelation deletes a (user, recipe) pair.
// Returns ErrNotFound if the pair does not exist.
func (s *Store) removeRecipeRelation(ctx context.Context, table recipeRelation, userID, recipeID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM `+string(table)+` WHERE user_id = ? AND recipe_id = ?`,
		userID, recipeID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// recipeRelationExists reports whether the (user, recipe) pair exists.
func (s *Store) recipeRelationExists(ctx context.Context, table recipeRelation, userID, recipeID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM `+string(table)+` WHERE user_id = ? AND recipe_id = ?`,
		userID, recipeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// listRelatedRecipes returns previews of the user's related recipes,
// most recently added first.
func (s *Store) listRelatedRecipes(ctx context.Context, table recipeRelation, userID string) ([]domain.RecipePreview, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.name, r.image_path, r.cooking_time
		FROM `+string(table)+` rel
		JOIN recipes r ON r.id = rel.recipe_id
		WHERE rel.user_id = ?
		ORDER BY rel.created_at DESC, r.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	previews := []domain.RecipePreview{}
	for rows.Next() {
		var p domain.RecipePreview
		if err := rows.Scan(&p.ID, &p.Name, &p.ImagePath, &p.CookingTime); err != nil {
			return nil, err
		}
		previews = append(previews, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return previews, nil
}

// AddFavorite marks a recipe as a favorite of the user.
func (s *Store) AddFavorite(ctx context.Context, userID, recipeID string) error {
	return s.addRecipeRelation(ctx, relationFavorites, userID, recipeID)
}

// RemoveFavorite unmarks a favorite.
func (s *Store) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return s.removeRecipeRelation(ctx, relationFavorites, userID, recipeID)
}

// FavoriteExists reports whether the user favorited the recipe.
func (s *Store) FavoriteExists(ctx context.Context, userID, recipeID string) (bool, error) {
	return s.recipeRelationExists(ctx, relationFavorites, userID, recipeID)
}

// ListFavoriteRecipes returns the user's favorites, newest first.
func (s *Store) ListFavoriteRecipes(ctx context.Context, userID string) ([]domain.RecipePreview, error) {
	return s.listRelatedRecipes(ctx, relationFavorites, userID)
}

// AddToShoppingCart puts a recipe in the user's cart.
func (s *Store) AddToShoppingCart(ctx context.Context, userID, recipeID string) error {
	return s.addRecipeRelation(ctx, relationShoppingCart, userID, recipeID)
}

// RemoveFromShoppingCart takes a recipe out of the user's cart.
func (s *Store) RemoveFromShoppingCart(ctx context.Context, userID, recipeID string) error {
	return s.removeRecipeRelation(ctx, relationShoppingCart, userID, recipeID)
}

// ShoppingCartContains reports whether the recipe is in the user's cart.
func (s *Store) ShoppingCartContains(ctx context.Context, userID, recipeID string) (bool, error) {
	return s.recipeRelationExists(ctx, relationShoppingCart, userID, recipeID)
}

// ListShoppingCartRecipes returns the user's carted recipes, newest first.
func (s *Store) ListShoppingCartRecipes(ctx context.Context, userID string) ([]domain.RecipePreview, error) {
	return s.listRelatedRecipes(ctx, relationShoppingCart, userID)
}
