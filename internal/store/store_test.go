package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tvules/Foodgram/internal/domain"
	"github.com/tvules/Foodgram/internal/id"
)

// newTestStore creates a store backed by a temp database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// makeTestUser inserts a user with unique email and username.
func makeTestUser(t *testing.T, s *Store, name string) *domain.User {
	t.Helper()

	now := time.Now()
	u := &domain.User{
		ID:           id.MustGenerate("user"),
		CreatedAt:    now,
		UpdatedAt:    now,
		Email:        name + "@example.com",
		Username:     name,
		FirstName:    "Test",
		LastName:     name,
		PasswordHash: "$argon2id$test",
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", name, err)
	}
	return u
}

// makeTestTag inserts a tag.
func makeTestTag(t *testing.T, s *Store, name, color string) *domain.Tag {
	t.Helper()

	tag := &domain.Tag{
		ID:        id.MustGenerate("tag"),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	tag.Normalize()
	if err := s.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("CreateTag(%s) error = %v", name, err)
	}
	return tag
}

// makeTestIngredient inserts an ingredient, creating the unit if needed.
func makeTestIngredient(t *testing.T, s *Store, name, unitName string) *domain.Ingredient {
	t.Helper()
	ctx := context.Background()

	unit, err := s.GetMeasurementUnitByName(ctx, unitName)
	if err == ErrNotFound {
		unit = &domain.MeasurementUnit{ID: id.MustGenerate("unit"), Name: unitName}
		if err := s.CreateMeasurementUnit(ctx, unit); err != nil {
			t.Fatalf("CreateMeasurementUnit(%s) error = %v", unitName, err)
		}
	} else if err != nil {
		t.Fatalf("GetMeasurementUnitByName(%s) error = %v", unitName, err)
	}

	ing := &domain.Ingredient{
		ID:   id.MustGenerate("ing"),
		Name: name,
		Unit: *unit,
	}
	if err := s.CreateIngredient(ctx, ing); err != nil {
		t.Fatalf("CreateIngredient(%s) error = %v", name, err)
	}
	return ing
}

// makeTestRecipe inserts a recipe with the given associations.
func makeTestRecipe(t *testing.T, s *Store, author *domain.User, name string, lines []domain.RecipeIngredient, tagIDs []string) *domain.Recipe {
	t.Helper()

	now := time.Now()
	r := &domain.Recipe{
		ID:          id.MustGenerate("recipe"),
		AuthorID:    author.ID,
		Name:        name,
		Text:        "Steps for " + name,
		ImagePath:   "recipes/" + name + ".jpg",
		CookingTime: 30,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CreateRecipe(context.Background(), r, lines, tagIDs); err != nil {
		t.Fatalf("CreateRecipe(%s) error = %v", name, err)
	}
	return r
}
