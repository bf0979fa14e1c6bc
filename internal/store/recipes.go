package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tvules/Foodgram/internal/domain"
)

// RecipeFilter narrows a recipe listing. ViewerID drives the per-viewer
// flags and the favorited/cart filters; empty means anonymous.
type RecipeFilter struct {
	ViewerID      string
	AuthorID      string
	TagSlugs      []string
	FavoritedOnly bool
	InCartOnly    bool
	Page          Page
}

// recipeDetailColumns must match the scan order in scanRecipeDetail.
// The three trailing expressions are per-viewer flags.
const recipeDetailColumns = `
	r.id, r.author_id, r.name, r.text, r.image_path, r.blur_hash, r.cooking_time, r.created_at, r.updated_at,
	u.id, u.created_at, u.updated_at, u.email, u.username, u.first_name, u.last_name,
	EXISTS(SELECT 1 FROM favorite_recipes f WHERE f.user_id = ?1 AND f.recipe_id = r.id),
	EXISTS(SELECT 1 FROM shopping_carts c WHERE c.user_id = ?1 AND c.recipe_id = r.id),
	EXISTS(SELECT 1 FROM follows fo WHERE fo.follower_id = ?1 AND fo.followee_id = r.author_id)`

func scanRecipeDetail(scanner interface{ Scan(dest ...any) error }) (*domain.RecipeDetail, error) {
	var (
		d                domain.RecipeDetail
		createdAt        string
		updatedAt        string
		authorCreatedAt  string
		authorUpdatedAt  string
		isFavorited      int
		isInShoppingCart int
		isSubscribed     int
	)

	err := scanner.Scan(
		&d.ID,
		&d.AuthorID,
		&d.Name,
		&d.Text,
		&d.ImagePath,
		&d.BlurHash,
		&d.CookingTime,
		&createdAt,
		&updatedAt,
		&d.Author.ID,
		&authorCreatedAt,
		&authorUpdatedAt,
		&d.Author.Email,
		&d.Author.Username,
		&d.Author.FirstName,
		&d.Author.LastName,
		&isFavorited,
		&isInShoppingCart,
		&isSubscribed,
	)
	if err != nil {
		return nil, err
	}

	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if d.Author.CreatedAt, err = parseTime(authorCreatedAt); err != nil {
		return nil, err
	}
	if d.Author.UpdatedAt, err = parseTime(authorUpdatedAt); err != nil {
		return nil, err
	}

	d.IsFavorited = isFavorited != 0
	d.IsInShoppingCart = isInShoppingCart != 0
	d.Author.IsSubscribed = isSubscribed != 0
	return &d, nil
}

// CreateRecipe inserts a recipe with its ingredient lines and tag set in
// one transaction. Any constraint failure rolls back the whole aggregate.
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe, lines []domain.RecipeIngredient, tagIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (id, author_id, name, text, image_path, blur_hash, cooking_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID,
		recipe.AuthorID,
		recipe.Name,
		recipe.Text,
		recipe.ImagePath,
		recipe.BlurHash,
		recipe.CookingTime,
		formatTime(recipe.CreatedAt),
		formatTime(recipe.UpdatedAt),
	)
	if err != nil {
		return translateRecipeWriteError(err)
	}

	if err := insertRecipeIngredients(ctx, tx, recipe.ID, lines); err != nil {
		return err
	}
	if err := insertRecipeTags(ctx, tx, recipe.ID, tagIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateRecipe updates the recipe row and synchronizes associations in one
// transaction. A nil lines or tagIDs slice leaves that association set
// untouched; a non-nil slice fully replaces it.
func (s *Store) UpdateRecipe(ctx context.Context, recipe *domain.Recipe, lines []domain.RecipeIngredient, tagIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE recipes SET
			name = ?,
			text = ?,
			image_path = ?,
			blur_hash = ?,
			cooking_time = ?,
			updated_at = ?
		WHERE id = ?`,
		recipe.Name,
		recipe.Text,
		recipe.ImagePath,
		recipe.BlurHash,
		recipe.CookingTime,
		formatTime(recipe.UpdatedAt),
		recipe.ID,
	)
	if err != nil {
		return translateRecipeWriteError(err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	if lines != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipe.ID); err != nil {
			return err
		}
		if err := insertRecipeIngredients(ctx, tx, recipe.ID, lines); err != nil {
			return err
		}
	}

	if tagIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, recipe.ID); err != nil {
			return err
		}
		if err := insertRecipeTags(ctx, tx, recipe.ID, tagIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteRecipe removes a recipe; associations cascade.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
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

// GetRecipe retrieves the bare recipe row, without associations or flags.
// Used for ownership checks and image bookkeeping.
func (s *Store) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	var (
		r         domain.Recipe
		createdAt string
		updatedAt string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, author_id, name, text, image_path, blur_hash, cooking_time, created_at, updated_at
		FROM recipes WHERE id = ?`, id).
		Scan(&r.ID, &r.AuthorID, &r.Name, &r.Text, &r.ImagePath, &r.BlurHash, &r.CookingTime, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// RecipeExists reports whether a recipe with the given ID exists.
func (s *Store) RecipeExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM recipes WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetRecipeDetail retrieves a recipe with hydrated associations and flags
// computed for the given viewer. Anonymous viewers get false flags.
func (s *Store) GetRecipeDetail(ctx context.Context, id, viewerID string) (*domain.RecipeDetail, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recipeDetailColumns+`
		FROM recipes r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = ?2`, viewerID, id)

	d, err := scanRecipeDetail(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRecipeAssociations(ctx, []*domain.RecipeDetail{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// ListRecipes returns a filtered page of recipes ordered newest first,
// along with the total match count.
func (s *Store) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*domain.RecipeDetail, int, error) {
	filter.Page.Normalize()

	where, whereArgs := buildRecipeFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM recipes r` + where
	if err := s.db.QueryRowContext(ctx, countQuery, append([]any{filter.ViewerID}, whereArgs...)...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + recipeDetailColumns + `
		FROM recipes r
		JOIN users u ON u.id = r.author_id` + where + `
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ? OFFSET ?`

	args := append([]any{filter.ViewerID}, whereArgs...)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var details []*domain.RecipeDetail
	for rows.Next() {
		d, err := scanRecipeDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := s.loadRecipeAssociations(ctx, details); err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// ListRecipePreviewsByAuthor returns the author's recipes newest first.
// A non-positive limit returns all of them.
func (s *Store) ListRecipePreviewsByAuthor(ctx context.Context, authorID string, limit int) ([]domain.RecipePreview, error) {
	query := `
		SELECT id, name, image_path, cooking_time
		FROM recipes WHERE author_id = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{authorID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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

// CountRecipesByAuthor returns the author's total recipe count.
func (s *Store) CountRecipesByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipes WHERE author_id = ?`, authorID).Scan(&count)
	return count, err
}

// buildRecipeFilter renders the WHERE clause for a filter. The returned
// args follow the ?1 viewer parameter already present in the base query.
func buildRecipeFilter(filter RecipeFilter) (string, []any) {
	// The leading tautology keeps the ?1 viewer parameter referenced even
	// when no flag filter needs it; SQLite rejects unbound extra args.
	clauses := []string{`?1 = ?1`}
	var args []any

	if filter.AuthorID != "" {
		clauses = append(clauses, `r.author_id = ?`)
		args = append(args, filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		clauses = append(clauses, `EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug IN (`+placeholders(len(filter.TagSlugs))+`))`)
		for _, slug := range filter.TagSlugs {
			args = append(args, slug)
		}
	}
	if filter.FavoritedOnly {
		clauses = append(clauses, `EXISTS (SELECT 1 FROM favorite_recipes f2 WHERE f2.user_id = ?1 AND f2.recipe_id = r.id)`)
	}
	if filter.InCartOnly {
		clauses = append(clauses, `EXISTS (SELECT 1 FROM shopping_carts c2 WHERE c2.user_id = ?1 AND c2.recipe_id = r.id)`)
	}

	return ` WHERE ` + strings.Join(clauses, ` AND `), args
}

// loadRecipeAssociations hydrates tags and ingredient lines for a batch of
// recipes in two queries.
func (s *Store) loadRecipeAssociations(ctx context.Context, details []*domain.RecipeDetail) error {
	if len(details) == 0 {
		return nil
	}

	byID := make(map[string]*domain.RecipeDetail, len(details))
	args := make([]any, 0, len(details))
	for _, d := range details {
		d.Tags = []domain.Tag{}
		d.Ingredients = []domain.IngredientAmount{}
		byID[d.ID] = d
		args = append(args, d.ID)
	}
	in := placeholders(len(details))

	// Columns must be qualified here: recipe_tags has its own created_at.
	tagRows, err := s.db.QueryContext(ctx, `
		SELECT rt.recipe_id, tags.id, tags.name, tags.color, tags.slug, tags.created_at
		FROM recipe_tags rt
		JOIN tags ON tags.id = rt.tag_id
		WHERE rt.recipe_id IN (`+in+`)
		ORDER BY tags.name ASC`, args...)
	if err != nil {
		return err
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var (
			recipeID  string
			t         domain.Tag
			createdAt string
		)
		if err := tagRows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug, &createdAt); err != nil {
			return err
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		if d, ok := byID[recipeID]; ok {
			d.Tags = append(d.Tags, t)
		}
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	ingRows, err := s.db.QueryContext(ctx, `
		SELECT ri.recipe_id, `+ingredientColumns+`, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		JOIN measurement_units u ON u.id = i.unit_id
		WHERE ri.recipe_id IN (`+in+`)
		ORDER BY i.name ASC`, args...)
	if err != nil {
		return err
	}
	defer ingRows.Close()

	for ingRows.Next() {
		var (
			recipeID string
			line     domain.IngredientAmount
		)
		if err := ingRows.Scan(&recipeID, &line.ID, &line.Name, &line.Unit.ID, &line.Unit.Name, &line.Amount); err != nil {
			return err
		}
		if d, ok := byID[recipeID]; ok {
			d.Ingredients = append(d.Ingredients, line)
		}
	}
	return ingRows.Err()
}

func insertRecipeIngredients(ctx context.Context, tx *sql.Tx, recipeID string, lines []domain.RecipeIngredient) error {
	for _, line := range lines {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (?, ?, ?)`,
			recipeID, line.IngredientID, line.Amount)
		if err != nil {
			return translateRecipeWriteError(err)
		}
	}
	return nil
}

func insertRecipeTags(ctx context.Context, tx *sql.Tx, recipeID string, tagIDs []string) error {
	now := formatTime(time.Now())
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id, created_at) VALUES (?, ?, ?)`,
			recipeID, tagID, now)
		if err != nil {
			return translateRecipeWriteError(err)
		}
	}
	return nil
}

// translateRecipeWriteError maps SQLite constraint failures onto sentinels.
func translateRecipeWriteError(err error) error {
	switch {
	case isUniqueViolation(err, ""):
		return ErrAlreadyExists
	case isForeignKeyViolation(err):
		return ErrInvalidReference
	case strings.Contains(err.Error(), "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	default:
		return err
	}
}
