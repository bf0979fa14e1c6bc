package domain

import (
	"time"

	"github.com/tvules/Foodgram/internal/errors"
)

// Bounds shared by ingredient amounts and cooking time. Values are stored
// in small integer columns; anything outside is rejected before write.
const (
	MinAmount      = 1
	MaxAmount      = 32767
	MinCookingTime = 1
	MaxCookingTime = 32767
)

// Recipe is the recipe aggregate root. Ingredient and tag associations are
// always written together with the row, never independently.
type Recipe struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	Name        string    `json:"name"`
	Text        string    `json:"text"`
	ImagePath   string    `json:"image"`
	BlurHash    string    `json:"blur_hash,omitempty"`
	CookingTime int       `json:"cooking_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Touch updates the modification timestamp.
func (r *Recipe) Touch() {
	r.UpdatedAt = time.Now()
}

// RecipeIngredient is one ingredient line of a recipe submission.
type RecipeIngredient struct {
	IngredientID string `json:"id"`
	Amount       int    `json:"amount"`
}

// IngredientAmount is a hydrated ingredient line for reads.
type IngredientAmount struct {
	Ingredient
	Amount int `json:"amount"`
}

// RecipeDetail is the full read representation of a recipe: hydrated
// associations plus per-viewer flags. Flags are false for anonymous viewers.
type RecipeDetail struct {
	Recipe
	Author           UserProfile        `json:"author"`
	Tags             []Tag              `json:"tags"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
}

// RecipePreview is the trimmed representation used in relation listings.
type RecipePreview struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImagePath   string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ValidateCookingTime checks the cooking time bounds.
func ValidateCookingTime(minutes int) error {
	if minutes < MinCookingTime || minutes > MaxCookingTime {
		return errors.Validationf("cooking_time must be between %d and %d", MinCookingTime, MaxCookingTime)
	}
	return nil
}

// ValidateAmount checks an ingredient amount against the allowed bounds.
func ValidateAmount(amount int) error {
	if amount < MinAmount || amount > MaxAmount {
		return errors.Validationf("amount must be between %d and %d", MinAmount, MaxAmount)
	}
	return nil
}

// DuplicateIngredient returns the first ingredient ID that appears more
// than once in the submission, if any.
func DuplicateIngredient(lines []RecipeIngredient) (string, bool) {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.IngredientID]; dup {
			return line.IngredientID, true
		}
		seen[line.IngredientID] = struct{}{}
	}
	return "", false
}

// ValidateIngredientLines checks that a submission is non-empty, has no
// duplicates, and every amount is in bounds. The duplicate ID is reported
// via the error details so callers can name the ingredient.
func ValidateIngredientLines(lines []RecipeIngredient) error {
	if len(lines) == 0 {
		return errors.Validation("recipe must have at least one ingredient")
	}
	if dupID, ok := DuplicateIngredient(lines); ok {
		return errors.ValidationWithDetails("duplicate ingredient in recipe", map[string]string{"ingredient_id": dupID})
	}
	for _, line := range lines {
		if err := ValidateAmount(line.Amount); err != nil {
			return err
		}
	}
	return nil
}
