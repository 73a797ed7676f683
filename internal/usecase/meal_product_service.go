package usecase

import (
	"context"
	"fmt"

	"github.com/calories/backend/internal/domain"
)

// MealProductService handles meal/product links with read-through caching in
// the mealProducts namespace
type MealProductService struct {
	cache    domain.NamespacedCache
	repo     domain.MealProductRepository
	meals    *MealService
	products *ProductService
}

// NewMealProductService creates a meal product service. Meal and product
// existence is checked through their own services.
func NewMealProductService(
	cache domain.NamespacedCache,
	repo domain.MealProductRepository,
	meals *MealService,
	products *ProductService,
) *MealProductService {
	return &MealProductService{cache: cache, repo: repo, meals: meals, products: products}
}

// Create links an existing product to an existing meal
func (s *MealProductService) Create(ctx context.Context, grams int, mealID, productID int64) (*domain.MealProduct, error) {
	if err := validateGrams(grams); err != nil {
		return nil, err
	}
	if err := validateID("mealId", mealID); err != nil {
		return nil, err
	}
	if err := validateID("productId", productID); err != nil {
		return nil, err
	}

	s.cache.Invalidate(domain.NamespaceMealProducts)

	meal, err := s.meals.Get(ctx, mealID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	link := &domain.MealProduct{Grams: grams, MealID: meal.ID, ProductID: product.ID}
	if err := s.repo.CreateMealProduct(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Get returns a link by id
func (s *MealProductService) Get(ctx context.Context, id int64) (*domain.MealProduct, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return readOne(s.cache, domain.NamespaceMealProducts, id, func() (*domain.MealProduct, error) {
		return s.repo.GetMealProduct(ctx, id)
	})
}

// UpdateGrams changes the weight of a link
func (s *MealProductService) UpdateGrams(ctx context.Context, id int64, grams int) (*domain.MealProduct, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if err := validateGrams(grams); err != nil {
		return nil, err
	}

	s.cache.Invalidate(domain.NamespaceMealProducts)
	link, err := s.repo.GetMealProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	link.Grams = grams
	if err := s.repo.UpdateMealProduct(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Delete removes a link
func (s *MealProductService) Delete(ctx context.Context, id int64) error {
	if err := validateID("id", id); err != nil {
		return err
	}
	s.cache.Invalidate(domain.NamespaceMealProducts)
	return s.repo.DeleteMealProduct(ctx, id)
}

// List returns all links
func (s *MealProductService) List(ctx context.Context) ([]domain.MealProduct, error) {
	return readThrough(s.cache, domain.NamespaceMealProducts, keyAll, func() ([]domain.MealProduct, error) {
		return s.repo.ListMealProducts(ctx)
	})
}

// ListByMeal returns the links of one meal
func (s *MealProductService) ListByMeal(ctx context.Context, mealID int64) ([]domain.MealProduct, error) {
	if err := validateID("mealId", mealID); err != nil {
		return nil, err
	}
	if _, err := s.meals.Get(ctx, mealID); err != nil {
		return nil, err
	}
	return readThrough(s.cache, domain.NamespaceMealProducts, fmt.Sprintf("meal:%d", mealID), func() ([]domain.MealProduct, error) {
		return s.repo.ListMealProductsByMeal(ctx, mealID)
	})
}

func validateGrams(grams int) error {
	if grams <= 0 {
		return fmt.Errorf("%w: parameter 'grams' must be a positive number, got %d", domain.ErrBadInput, grams)
	}
	return nil
}
