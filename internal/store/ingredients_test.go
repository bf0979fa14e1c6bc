package store

import (
	"context"
	"testing"

	"github.com/tvules/Foodgram/internal/domain"
	"github.com/tvules/Foodgram/internal/id"
)

func TestCreateIngredient_DuplicateNameAndUnit(t *testing.T) {
	s := newTestStore(t)

	first := makeTestIngredient(t, s, "Flour", "g")

	dup := &domain.Ingredient{
		ID:   id.MustGenerate("ing"),
		Name: "Flour",
		Unit: first.Unit,
	}
	if err := s.CreateIngredient(context.Background(), dup); err != ErrAlreadyExists {
		t.Errorf("CreateIngredient() error = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateIngredient_SameNameDifferentUnit(t *testing.T) {
	s := newTestStore(t)

	makeTestIngredient(t, s, "Sugar", "g")
	makeTestIngredient(t, s, "Sugar", "tbsp")

	ings, err := s.ListIngredients(context.Background())
	if err != nil {
		t.Fatalf("ListIngredients() error = %v", err)
	}
	if len(ings) != 2 {
		t.Errorf("len(ingredients) = %d, want 2", len(ings))
	}
}

func TestCreateIngredient_MissingUnit(t *testing.T) {
	s := newTestStore(t)

	ing := &domain.Ingredient{
		ID:   id.MustGenerate("ing"),
		Name: "Salt",
		Unit: domain.MeasurementUnit{ID: "unit-ghost", Name: "pinch"},
	}
	if err := s.CreateIngredient(context.Background(), ing); err != ErrInvalidReference {
		t.Errorf("CreateIngredient() error = %v, want ErrInvalidReference", err)
	}
}

func TestGetIngredient_HydratesUnit(t *testing.T) {
	s := newTestStore(t)

	ing := makeTestIngredient(t, s, "Milk", "ml")

	got, err := s.GetIngredient(context.Background(), ing.ID)
	if err != nil {
		t.Fatalf("GetIngredient() error = %v", err)
	}
	if got.Unit.Name != "ml" {
		t.Errorf("Unit.Name = %s, want ml", got.Unit.Name)
	}
}

func TestListIngredients_OrderedByName(t *testing.T) {
	s := newTestStore(t)

	makeTestIngredient(t, s, "Zucchini", "pcs")
	makeTestIngredient(t, s, "Apple", "pcs")

	ings, err := s.ListIngredients(context.Background())
	if err != nil {
		t.Fatalf("ListIngredients() error = %v", err)
	}
	if len(ings) != 2 || ings[0].Name != "Apple" {
		t.Errorf("first ingredient = %s, want Apple", ings[0].Name)
	}
}

func TestDeleteIngredient_InUse(t *testing.T) {
	s := newTestStore(t)

	author := makeTestUser(t, s, "chef")
	ing := makeTestIngredient(t, s, "Butter", "g")
	makeTestRecipe(t, s, author, "Toast",
		[]domain.RecipeIngredient{{IngredientID: ing.ID, Amount: 20}}, nil)

	if err := s.DeleteIngredient(context.Background(), ing.ID); err != ErrInUse {
		t.Errorf("DeleteIngredient() error = %v, want ErrInUse", err)
	}
}

func TestDeleteIngredient_Unused(t *testing.T) {
	s := newTestStore(t)

	ing := makeTestIngredient(t, s, "Pepper", "g")

	if err := s.DeleteIngredient(context.Background(), ing.ID); err != nil {
		t.Fatalf("DeleteIngredient() error = %v", err)
	}
	if _, err := s.GetIngredient(context.Background(), ing.ID); err != ErrNotFound {
		t.Errorf("GetIngredient() after delete error = %v, want ErrNotFound", err)
	}
}
