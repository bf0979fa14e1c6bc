package store

import (
	"context"
	"database/sql"

	"github.com/tvules/Foodgram/internal/domain"
)

// ingredientColumns joins the unit so reads hydrate in one query.
const ingredientColumns = `i.id, i.name, u.id, u.name`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := scanner.Scan(&ing.ID, &ing.Name, &ing.Unit.ID, &ing.Unit.Name)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// CreateMeasurementUnit inserts a unit.
// Returns ErrAlreadyExists if the name is taken.
func (s *Store) CreateMeasurementUnit(ctx context.Context, unit *domain.MeasurementUnit) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO measurement_units (id, name) VALUES (?, ?)`,
		unit.ID, unit.Name)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetMeasurementUnitByName retrieves a unit by exact name.
func (s *Store) GetMeasurementUnitByName(ctx context.Context, name string) (*domain.MeasurementUnit, error) {
	var unit domain.MeasurementUnit
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM measurement_units WHERE name = ?`, name).
		Scan(&unit.ID, &unit.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// CreateIngredient inserts an ingredient.
// Returns ErrAlreadyExists if the (name, unit) pair is taken and
// ErrInvalidReference if the unit does not exist.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ingredients (id, name, unit_id) VALUES (?, ?, ?)`,
		ing.ID, ing.Name, ing.Unit.ID)
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

// GetIngredient retrieves an ingredient with its unit.
func (s *Store) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients i
		JOIN measurement_units u ON u.id = i.unit_id
		WHERE i.id = ?`, id)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// GetIngredientByNameAndUnit retrieves an ingredient by its unique pair.
func (s *Store) GetIngredientByNameAndUnit(ctx context.Context, name, unitID string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients i
		JOIN measurement_units u ON u.id = i.unit_id
		WHERE i.name = ? AND i.unit_id = ?`, name, unitID)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns all ingredients ordered by name.
func (s *Store) ListIngredients(ctx context.Context) ([]*domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients i
		JOIN measurement_units u ON u.id = i.unit_id
		ORDER BY i.name ASC, u.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIngredients(rows)
}

// GetIngredientsByIDs returns ingredients for the given IDs ordered by name.
func (s *Store) GetIngredientsByIDs(ctx context.Context, ids []string) ([]*domain.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients i
		JOIN measurement_units u ON u.id = i.unit_id
		WHERE i.id IN (`+placeholders(len(ids))+`)
		ORDER BY i.name ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIngredients(rows)
}

// DeleteIngredient removes an ingredient.
// Returns ErrInUse if any recipe still references it.
func (s *Store) DeleteIngredient(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrInUse
		}
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

func collectIngredients(rows *sql.Rows) ([]*domain.Ingredient, error) {
	var ingredients []*domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ingredients, nil
}
