package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tvules/Foodgram/internal/domain"
	domainerrors "github.com/tvules/Foodgram/internal/errors"
	"github.com/tvules/Foodgram/internal/id"
	"github.com/tvules/Foodgram/internal/media/images"
	"github.com/tvules/Foodgram/internal/search"
	"github.com/tvules/Foodgram/internal/store"
)

// RecipeService owns the recipe aggregate: validation, image lifecycle,
// persistence, and search indexing.
type RecipeService struct {
	store     *store.Store
	images    *images.Storage
	processor *images.Processor
	index     *search.SearchIndex
	logger    *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	s *store.Store,
	imageStorage *images.Storage,
	processor *images.Processor,
	index *search.SearchIndex,
	logger *slog.Logger,
) *RecipeService {
	return &RecipeService{
		store:     s,
		images:    imageStorage,
		processor: processor,
		index:     index,
		logger:    logger,
	}
}

// CreateRecipeRequest contains a full recipe submission.
type CreateRecipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=200"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"required"`
	Image       string                    `json:"image" validate:"required"`
	Ingredients []domain.RecipeIngredient `json:"ingredients" validate:"required"`
	Tags        []string                  `json:"tags" validate:"required"`
}

// UpdateRecipeRequest contains a partial recipe update. Nil fields are
// left untouched; a present-but-empty association list is rejected.
type UpdateRecipeRequest struct {
	Name        *string                   `json:"name,omitempty" validate:"omitempty,max=200"`
	Text        *string                   `json:"text,omitempty"`
	CookingTime *int                      `json:"cooking_time,omitempty"`
	Image       *string                   `json:"image,omitempty"`
	Ingredients []domain.RecipeIngredient `json:"ingredients,omitempty"`
	Tags        []string                  `json:"tags,omitempty"`
}

// ListRecipesParams narrows a recipe listing.
type ListRecipesParams struct {
	AuthorID      string
	TagSlugs      []string
	FavoritedOnly bool
	InCartOnly    bool
	Page          store.Page
}

// RecipeListPage is one page of recipe details.
type RecipeListPage struct {
	Recipes []*domain.RecipeDetail `json:"recipes"`
	Total   int                    `json:"total"`
}

// Create validates and persists a new recipe with its image.
func (s *RecipeService) Create(ctx context.Context, authorID string, req CreateRecipeRequest) (*domain.RecipeDetail, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.validateAggregate(ctx, req.CookingTime, req.Ingredients, req.Tags); err != nil {
		return nil, err
	}

	recipeID, err := id.Generate("recipe")
	if err != nil {
		return nil, fmt.Errorf("generate recipe ID: %w", err)
	}

	imagePath, blurHash, err := s.storeImage(req.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &domain.Recipe{
		ID:          recipeID,
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		ImagePath:   imagePath,
		BlurHash:    blurHash,
		CookingTime: req.CookingTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateRecipe(ctx, recipe, req.Ingredients, req.Tags); err != nil {
		// The aggregate was rolled back; free the orphaned blob.
		s.discardImage(imagePath)
		return nil, translateAggregateError(err)
	}

	s.indexRecipe(ctx, recipe, authorID)

	s.logger.Info("recipe created", "recipe_id", recipeID, "author_id", authorID)
	return s.Get(ctx, authorID, recipeID)
}

// Update applies a partial update to the caller's recipe.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID string, req UpdateRecipeRequest) (*domain.RecipeDetail, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	recipe, err := s.getOwned(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}

	cookingTime := recipe.CookingTime
	lines := req.Ingredients
	tagIDs := req.Tags
	if err := s.validatePartialAggregate(ctx, cookingTime, lines, tagIDs); err != nil {
		return nil, err
	}

	oldImagePath := recipe.ImagePath
	newImagePath := ""
	if req.Image != nil {
		newImagePath, recipe.BlurHash, err = s.storeImage(*req.Image)
		if err != nil {
			return nil, err
		}
		recipe.ImagePath = newImagePath
	}

	recipe.Touch()
	if err := s.store.UpdateRecipe(ctx, recipe, lines, tagIDs); err != nil {
		if newImagePath != "" {
			s.discardImage(newImagePath)
		}
		return nil, translateAggregateError(err)
	}

	// The commit succeeded; the prior blob is no longer referenced.
	if newImagePath != "" && oldImagePath != "" {
		s.discardImage(oldImagePath)
	}

	s.indexRecipe(ctx, recipe, userID)

	return s.Get(ctx, userID, recipeID)
}

// Delete removes the caller's recipe, its associations, and its image.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID string) error {
	recipe, err := s.getOwned(ctx, userID, recipeID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(ctx, recipeID); err != nil {
		if err == store.ErrNotFound {
			return domainerrors.NotFound("recipe not found")
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	// Blob and index cleanup happen after the commit; failures here must
	// not undo the delete.
	s.discardImage(recipe.ImagePath)
	if err := s.index.DeleteDocument(recipeID); err != nil {
		s.logger.Warn("failed to deindex recipe", "recipe_id", recipeID, "error", err)
	}

	s.logger.Info("recipe deleted", "recipe_id", recipeID, "author_id", userID)
	return nil
}

// Get returns the full recipe representation as seen by the viewer.
func (s *RecipeService) Get(ctx context.Context, viewerID, recipeID string) (*domain.RecipeDetail, error) {
	detail, err := s.store.GetRecipeDetail(ctx, recipeID, viewerID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return detail, nil
}

// List returns a filtered, paginated recipe listing, newest first.
func (s *RecipeService) List(ctx context.Context, viewerID string, params ListRecipesParams) (*RecipeListPage, error) {
	if (params.FavoritedOnly || params.InCartOnly) && viewerID == "" {
		// Anonymous viewers have no favorites or cart; match nothing.
		return &RecipeListPage{Recipes: []*domain.RecipeDetail{}, Total: 0}, nil
	}

	details, total, err := s.store.ListRecipes(ctx, store.RecipeFilter{
		ViewerID:      viewerID,
		AuthorID:      params.AuthorID,
		TagSlugs:      params.TagSlugs,
		FavoritedOnly: params.FavoritedOnly,
		InCartOnly:    params.InCartOnly,
		Page:          params.Page,
	})
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	if details == nil {
		details = []*domain.RecipeDetail{}
	}
	return &RecipeListPage{Recipes: details, Total: total}, nil
}

// Search runs a free-text query over recipe names and bodies and
// hydrates the hits as full recipe details.
func (s *RecipeService) Search(ctx context.Context, viewerID, query string, limit int) ([]*domain.RecipeDetail, error) {
	hits, err := s.index.SearchRecipes(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}

	details := make([]*domain.RecipeDetail, 0, len(hits))
	for _, hit := range hits {
		detail, err := s.store.GetRecipeDetail(ctx, hit.ID, viewerID)
		if err == store.ErrNotFound {
			// Index can briefly trail the store; skip stale hits.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("hydrate recipe: %w", err)
		}
		details = append(details, detail)
	}
	return details, nil
}

// getOwned loads a recipe and enforces that userID is its author.
func (s *RecipeService) getOwned(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if recipe.AuthorID != userID {
		return nil, domainerrors.Forbidden("only the author can modify this recipe")
	}
	return recipe, nil
}

// validateAggregate checks the full-submission invariants for create.
func (s *RecipeService) validateAggregate(ctx context.Context, cookingTime int, lines []domain.RecipeIngredient, tagIDs []string) error {
	if err := domain.ValidateCookingTime(cookingTime); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return domainerrors.Validation("recipe must have at least one tag")
	}
	return s.validateIngredientLines(ctx, lines)
}

// validatePartialAggregate checks update invariants: nil association
// slices mean "leave untouched", present-but-empty is rejected.
func (s *RecipeService) validatePartialAggregate(ctx context.Context, cookingTime int, lines []domain.RecipeIngredient, tagIDs []string) error {
	if err := domain.ValidateCookingTime(cookingTime); err != nil {
		return err
	}
	if tagIDs != nil && len(tagIDs) == 0 {
		return domainerrors.Validation("recipe must have at least one tag")
	}
	if lines != nil {
		return s.validateIngredientLines(ctx, lines)
	}
	return nil
}

// validateIngredientLines applies the domain checks and names the
// repeated ingredient when a submission contains a duplicate.
func (s *RecipeService) validateIngredientLines(ctx context.Context, lines []domain.RecipeIngredient) error {
	if dupID, ok := domain.DuplicateIngredient(lines); ok {
		name := dupID
		if ing, err := s.store.GetIngredient(ctx, dupID); err == nil {
			name = ing.Name
		}
		return domainerrors.Validationf("Ingredient %q is repeated.", name)
	}
	return domain.ValidateIngredientLines(lines)
}

// storeImage decodes and persists a submitted image under a fresh path.
// Each upload gets its own path so a rolled-back write never clobbers
// the blob still referenced by the committed row.
func (s *RecipeService) storeImage(dataURI string) (path, blurHash string, err error) {
	imageID, err := id.Generate("img")
	if err != nil {
		return "", "", fmt.Errorf("generate image ID: %w", err)
	}
	path = "recipes/" + imageID + ".jpg"

	blurHash, err = s.processor.ProcessDataURI(dataURI, path)
	if err != nil {
		return "", "", domainerrors.Validation("image must be a base64-encoded image").WithCause(err)
	}
	return path, blurHash, nil
}

// discardImage removes a blob, logging rather than failing on error.
func (s *RecipeService) discardImage(path string) {
	if path == "" {
		return
	}
	if err := s.images.Delete(path); err != nil {
		s.logger.Warn("failed to delete image blob", "path", path, "error", err)
	}
}

func (s *RecipeService) indexRecipe(ctx context.Context, recipe *domain.Recipe, authorID string) {
	author := ""
	if user, err := s.store.GetUser(ctx, authorID); err == nil {
		author = user.Username
	}
	if err := s.index.IndexDocument(search.RecipeDocument(recipe.ID, recipe.Name, recipe.Text, author)); err != nil {
		s.logger.Warn("failed to index recipe", "recipe_id", recipe.ID, "error", err)
	}
}

// translateAggregateError maps store sentinels from a recipe write onto
// the API error taxonomy.
func translateAggregateError(err error) error {
	switch {
	case domainerrors.Is(err, store.ErrInvalidReference):
		return domainerrors.Validation("recipe references a missing ingredient or tag")
	case domainerrors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Validation("recipe contains a duplicate ingredient or tag")
	case domainerrors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound("recipe not found")
	default:
		return fmt.Errorf("write recipe: %w", err)
	}
}
