package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/calories/backend/internal/domain"
)

// ProductService handles product CRUD with read-through caching in the
// products namespace
type ProductService struct {
	cache domain.NamespacedCache
	repo  domain.ProductRepository
}

// NewProductService creates a product service
func NewProductService(cache domain.NamespacedCache, repo domain.ProductRepository) *ProductService {
	return &ProductService{cache: cache, repo: repo}
}

// Create stores a new product
func (s *ProductService) Create(ctx context.Context, name string, caloriesPer100g int) (*domain.Product, error) {
	if err := validateProduct(name, caloriesPer100g); err != nil {
		return nil, err
	}

	s.cache.Invalidate(domain.NamespaceProducts)
	product := &domain.Product{Name: name, CaloriesPer100g: caloriesPer100g}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns a product by id
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return readOne(s.cache, domain.NamespaceProducts, id, func() (*domain.Product, error) {
		return s.repo.GetProduct(ctx, id)
	})
}

// Update replaces the name and calories of a product
func (s *ProductService) Update(ctx context.Context, id int64, name string, caloriesPer100g int) (*domain.Product, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if err := validateProduct(name, caloriesPer100g); err != nil {
		return nil, err
	}

	s.cache.Invalidate(domain.NamespaceProducts)
	product := &domain.Product{ID: id, Name: name, CaloriesPer100g: caloriesPer100g}
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := validateID("id", id); err != nil {
		return err
	}
	s.cache.Invalidate(domain.NamespaceProducts)
	return s.repo.DeleteProduct(ctx, id)
}

// List returns all products
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return readThrough(s.cache, domain.NamespaceProducts, keyAll, func() ([]domain.Product, error) {
		return s.repo.ListProducts(ctx)
	})
}

// FindByName returns products whose name contains name, ignoring case
func (s *ProductService) FindByName(ctx context.Context, name string) ([]domain.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: parameter 'name' must not be blank", domain.ErrBadInput)
	}
	return readThrough(s.cache, domain.NamespaceProducts, "name:"+name, func() ([]domain.Product, error) {
		return s.repo.FindProductsByName(ctx, name)
	})
}

func validateProduct(name string, caloriesPer100g int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: parameter 'name' must not be blank", domain.ErrBadInput)
	}
	if caloriesPer100g < 0 {
		return fmt.Errorf("%w: parameter 'caloriesPer100g' must not be negative, got %d", domain.ErrBadInput, caloriesPer100g)
	}
	return nil
}
