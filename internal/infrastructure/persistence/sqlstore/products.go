package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calories/backend/internal/domain"
)

const productColumns = `id, name, calories_per_100g`

// CreateProduct inserts p and assigns its generated id
func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	id, err := s.insert(ctx, s.db,
		`INSERT INTO products (name, calories_per_100g) VALUES (?, ?)`,
		p.Name, p.CaloriesPer100g)
	if err != nil {
		return fmt.Errorf("sqlstore: insert product %q: %w", p.Name, err)
	}
	p.ID = id
	return nil
}

// GetProduct returns the product with the given id
func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id).
		Scan(&p.ID, &p.Name, &p.CaloriesPer100g)
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	return &p, nil
}

// FindProductsByName returns products whose name contains name, ignoring case, in id order
func (s *Store) FindProductsByName(ctx context.Context, name string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + s.lower("name") + ` LIKE ? ESCAPE '\' ORDER BY id`
	rows, err := s.db.QueryContext(ctx, s.rebind(query), likePattern(name))
	if err != nil {
		return nil, fmt.Errorf("sqlstore: find products by name %q: %w", name, err)
	}
	return scanProducts(rows)
}

// ListProducts returns all products in id order
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list products: %w", err)
	}
	return scanProducts(rows)
}

// UpdateProduct overwrites the name and calories of an existing product
func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	return s.execAffecting(ctx, "update", "product", p.ID,
		`UPDATE products SET name = ?, calories_per_100g = ? WHERE id = ?`,
		p.Name, p.CaloriesPer100g, p.ID)
}

// DeleteProduct removes a product; links pointing at it are left in place
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.execAffecting(ctx, "delete", "product", id, `DELETE FROM products WHERE id = ?`, id)
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CaloriesPer100g); err != nil {
			return nil, fmt.Errorf("sqlstore: scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
