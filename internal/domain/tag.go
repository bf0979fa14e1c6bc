package domain

import (
	"time"

	"github.com/tvules/Foodgram/internal/errors"
	"github.com/tvules/Foodgram/internal/normalize"
)

// Tag is a curated recipe label with a display color and URL slug.
// Tags are maintained administratively; recipes reference them by ID.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalize brings the tag to canonical form: the color is uppercased and
// a missing slug is derived from the name.
func (t *Tag) Normalize() {
	if normalize.IsHexColor(t.Color) {
		t.Color = normalize.HexColor(t.Color)
	}
	if t.Slug == "" {
		t.Slug = normalize.Slugify(t.Name)
	}
}

// Validate checks tag invariants. Call after Normalize.
func (t *Tag) Validate() error {
	if t.Name == "" {
		return errors.Validation("tag name must not be empty")
	}
	if !normalize.IsHexColor(t.Color) {
		return errors.Validationf("tag color %q is not a hex color", t.Color)
	}
	if t.Slug == "" {
		return errors.Validationf("tag name %q produces an empty slug", t.Name)
	}
	return nil
}
