package search

// DocType identifies what kind of entity a search document describes.
type DocType string

const (
	DocTypeIngredient DocType = "ingredient"
	DocTypeRecipe     DocType = "recipe"
)

// SearchDocument is the flattened form of an entity held in the index.
type SearchDocument struct {
	ID     string
	Type   DocType
	Name   string
	Text   string // Recipe body; empty for ingredients
	Unit   string // Measurement unit; empty for recipes
	Author string // Recipe author username; empty for ingredients
}

// ToMap converts the document to a map so field names match the
// lowercase names in the index mapping.
func (d *SearchDocument) ToMap() map[string]any {
	return map[string]any{
		"id":     d.ID,
		"type":   string(d.Type),
		"name":   d.Name,
		"text":   d.Text,
		"unit":   d.Unit,
		"author": d.Author,
	}
}

// IngredientDocument builds a search document for an ingredient.
func IngredientDocument(id, name, unit string) *SearchDocument {
	return &SearchDocument{
		ID:   id,
		Type: DocTypeIngredient,
		Name: name,
		Unit: unit,
	}
}

// RecipeDocument builds a search document for a recipe.
func RecipeDocument(id, name, text, author string) *SearchDocument {
	return &SearchDocument{
		ID:     id,
		Type:   DocTypeRecipe,
		Name:   name,
		Text:   text,
		Author: author,
	}
}
