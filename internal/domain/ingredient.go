package domain

// MeasurementUnit is a unit ingredients are measured in ("g", "ml", "pcs").
type MeasurementUnit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ingredient is a catalog entry. The same name may appear with different
// units; the (name, unit) pair is unique.
type Ingredient struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Unit MeasurementUnit `json:"measurement_unit"`
}
