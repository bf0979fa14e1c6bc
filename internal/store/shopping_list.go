package store

import "context"

// ShoppingListItem is one aggregated ingredient across all carted recipes.
type ShoppingListItem struct {
	Name  string
	Unit  string
	Total int
}

// AggregateShoppingList sums ingredient amounts over every recipe in the
// user's cart, one row per (ingredient, unit), ordered by ingredient name.
func (s *Store) AggregateShoppingList(ctx context.Context, userID string) ([]ShoppingListItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.name, u.name, SUM(ri.amount)
		FROM shopping_carts sc
		JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		JOIN measurement_units u ON u.id = i.unit_id
		WHERE sc.user_id = ?
		GROUP BY i.id
		ORDER BY i.name ASC, u.name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ShoppingListItem{}
	for rows.Next() {
		var item ShoppingListItem
		if err := rows.Scan(&item.Name, &item.Unit, &item.Total); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
