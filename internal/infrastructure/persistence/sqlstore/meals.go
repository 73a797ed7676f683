package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calories/backend/internal/domain"
)

// CreateMeal inserts m and assigns its generated id
func (s *Store) CreateMeal(ctx context.Context, m *domain.Meal) error {
	id, err := s.insert(ctx, s.db, `INSERT INTO meals (name) VALUES (?)`, m.Name)
	if err != nil {
		return fmt.Errorf("sqlstore: insert meal %q: %w", m.Name, err)
	}
	m.ID = id
	return nil
}

// CreateMeals inserts all meals in one transaction; either every meal gets an id or none is stored
func (s *Store) CreateMeals(ctx context.Context, meals []*domain.Meal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlstore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	ids := make([]int64, len(meals))
	for i, m := range meals {
		id, err := s.insert(ctx, tx, `INSERT INTO meals (name) VALUES (?)`, m.Name)
		if err != nil {
			return fmt.Errorf("sqlstore: insert meal %q: %w", m.Name, err)
		}
		ids[i] = id
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlstore: commit meals: %w", err)
	}

	for i, m := range meals {
		m.ID = ids[i]
	}
	return nil
}

// GetMeal returns the meal with the given id
func (s *Store) GetMeal(ctx context.Context, id int64) (*domain.Meal, error) {
	var m domain.Meal
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, name FROM meals WHERE id = ?`), id).Scan(&m.ID, &m.Name)
	if err != nil {
		return nil, notFound(err, "meal", id)
	}
	return &m, nil
}

// ListMeals returns all meals in id order
func (s *Store) ListMeals(ctx context.Context) ([]domain.Meal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM meals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list meals: %w", err)
	}
	return scanMeals(rows)
}

// FindMealsByProductName returns meals linked to a product whose name contains productName, ignoring case
func (s *Store) FindMealsByProductName(ctx context.Context, productName string) ([]domain.Meal, error) {
	query := `
		SELECT m.id, m.name FROM meals m
		WHERE EXISTS (
			SELECT 1 FROM meal_products mp
			JOIN products p ON p.id = mp.product_id
			WHERE mp.meal_id = m.id AND ` + s.lower("p.name") + ` LIKE ? ESCAPE '\'
		)
		ORDER BY m.id`
	rows, err := s.db.QueryContext(ctx, s.rebind(query), likePattern(productName))
	if err != nil {
		return nil, fmt.Errorf("sqlstore: find meals by product %q: %w", productName, err)
	}
	return scanMeals(rows)
}

// UpdateMeal renames an existing meal
func (s *Store) UpdateMeal(ctx context.Context, m *domain.Meal) error {
	return s.execAffecting(ctx, "update", "meal", m.ID, `UPDATE meals SET name = ? WHERE id = ?`, m.Name, m.ID)
}

// DeleteMeal removes a meal; its links are left in place
func (s *Store) DeleteMeal(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, "delete", "meal", id, `DELETE FROM meals WHERE id = ?`, id)
}

func scanMeals(rows *sql.Rows) ([]domain.Meal, error) {
	defer rows.Close()

	out := []domain.Meal{}
	for rows.Next() {
		var m domain.Meal
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("sqlstore: scan meal: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
