package domain

import "testing"

func TestValidateCookingTime(t *testing.T) {
	for _, minutes := range []int{1, 20, 32767} {
		if err := ValidateCookingTime(minutes); err != nil {
			t.Errorf("ValidateCookingTime(%d) = %v, want nil", minutes, err)
		}
	}
	for _, minutes := range []int{0, -1, 32768} {
		if err := ValidateCookingTime(minutes); err == nil {
			t.Errorf("ValidateCookingTime(%d) = nil, want error", minutes)
		}
	}
}

func TestValidateAmount_Bounds(t *testing.T) {
	if err := ValidateAmount(1); err != nil {
		t.Errorf("amount 1 should be valid: %v", err)
	}
	if err := ValidateAmount(32767); err != nil {
		t.Errorf("amount 32767 should be valid: %v", err)
	}
	if err := ValidateAmount(0); err == nil {
		t.Error("amount 0 should be rejected")
	}
	if err := ValidateAmount(32768); err == nil {
		t.Error("amount 32768 should be rejected")
	}
}

func TestDuplicateIngredient(t *testing.T) {
	lines := []RecipeIngredient{
		{IngredientID: "ing-a", Amount: 10},
		{IngredientID: "ing-b", Amount: 20},
		{IngredientID: "ing-a", Amount: 30},
	}

	dupID, ok := DuplicateIngredient(lines)
	if !ok || dupID != "ing-a" {
		t.Errorf("DuplicateIngredient = (%q, %v), want (\"ing-a\", true)", dupID, ok)
	}

	if _, ok := DuplicateIngredient(lines[:2]); ok {
		t.Error("no duplicate expected for distinct ingredients")
	}
}

func TestValidateIngredientLines(t *testing.T) {
	if err := ValidateIngredientLines(nil); err == nil {
		t.Error("empty submission should be rejected")
	}

	ok := []RecipeIngredient{{IngredientID: "ing-a", Amount: 5}}
	if err := ValidateIngredientLines(ok); err != nil {
		t.Errorf("valid submission rejected: %v", err)
	}

	badAmount := []RecipeIngredient{{IngredientID: "ing-a", Amount: 0}}
	if err := ValidateIngredientLines(badAmount); err == nil {
		t.Error("zero amount should be rejected")
	}
}

func TestTagNormalizeAndValidate(t *testing.T) {
	tag := &Tag{Name: "Slow Cooker", Color: "#ab1"}
	tag.Normalize()

	if tag.Color != "#AB1" {
		t.Errorf("color = %q, want canonical uppercase", tag.Color)
	}
	if tag.Slug != "slow-cooker" {
		t.Errorf("slug = %q, want slow-cooker", tag.Slug)
	}
	if err := tag.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	bad := &Tag{Name: "Dinner", Color: "green"}
	bad.Normalize()
	if err := bad.Validate(); err == nil {
		t.Error("non-hex color should be rejected")
	}
}

func TestFollowValidate_RejectsSelfFollow(t *testing.T) {
	f := &Follow{FollowerID: "user-a", FolloweeID: "user-a"}
	if err := f.Validate(); err == nil {
		t.Error("self-follow should be rejected")
	}

	f.FolloweeID = "user-b"
	if err := f.Validate(); err != nil {
		t.Errorf("distinct users should be allowed: %v", err)
	}
}
