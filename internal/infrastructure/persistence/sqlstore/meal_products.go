package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calories/backend/internal/domain"
)

const mealProductColumns = `id, grams, meal_id, product_id`

// CreateMealProduct inserts mp and assigns its generated id
func (s *Store) CreateMealProduct(ctx context.Context, mp *domain.MealProduct) error {
	if mp.Grams <= 0 {
		return fmt.Errorf("%w: grams must be positive, got %d", domain.ErrBadInput, mp.Grams)
	}
	id, err := s.insert(ctx, s.db,
		`INSERT INTO meal_products (grams, meal_id, product_id) VALUES (?, ?, ?)`,
		mp.Grams, mp.MealID, mp.ProductID)
	if err != nil {
		return fmt.Errorf("sqlstore: insert meal product (meal %d, product %d): %w", mp.MealID, mp.ProductID, err)
	}
	mp.ID = id
	return nil
}

// GetMealProduct returns the link with the given id
func (s *Store) GetMealProduct(ctx context.Context, id int64) (*domain.MealProduct, error) {
	var mp domain.MealProduct
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+mealProductColumns+` FROM meal_products WHERE id = ?`), id).
		Scan(&mp.ID, &mp.Grams, &mp.MealID, &mp.ProductID)
	if err != nil {
		return nil, notFound(err, "meal product", id)
	}
	return &mp, nil
}

// ListMealProducts returns all links in id order
func (s *Store) ListMealProducts(ctx context.Context) ([]domain.MealProduct, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+mealProductColumns+` FROM meal_products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list meal products: %w", err)
	}
	return scanMealProducts(rows)
}

// ListMealProductsByMeal returns the links of one meal in id order
func (s *Store) ListMealProductsByMeal(ctx context.Context, mealID int64) ([]domain.MealProduct, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+mealProductColumns+` FROM meal_products WHERE meal_id = ? ORDER BY id`), mealID)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list meal products of meal %d: %w", mealID, err)
	}
	return scanMealProducts(rows)
}

// UpdateMealProduct changes the gram weight of an existing link
func (s *Store) UpdateMealProduct(ctx context.Context, mp *domain.MealProduct) error {
	if mp.Grams <= 0 {
		return fmt.Errorf("%w: grams must be positive, got %d", domain.ErrBadInput, mp.Grams)
	}
	return s.execAffecting(ctx, "update", "meal product", mp.ID,
		`UPDATE meal_products SET grams = ? WHERE id = ?`, mp.Grams, mp.ID)
}

// DeleteMealProduct removes a link
func (s *Store) DeleteMealProduct(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, "delete", "meal product", id, `DELETE FROM meal_products WHERE id = ?`, id)
}

func scanMealProducts(rows *sql.Rows) ([]domain.MealProduct, error) {
	defer rows.Close()

	out := []domain.MealProduct{}
	for rows.Next() {
		var mp domain.MealProduct
		if err := rows.Scan(&mp.ID, &mp.Grams, &mp.MealID, &mp.ProductID); err != nil {
			return nil, fmt.Errorf("sqlstore: scan meal product: %w", err)
		}
		out = append(out, mp)
	}
	return out, rows.Err()
}
