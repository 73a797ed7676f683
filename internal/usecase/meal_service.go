package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/calories/backend/internal/domain"
)

// MealService handles meal CRUD with read-through caching in the meals namespace
type MealService struct {
	cache domain.NamespacedCache
	repo  domain.MealRepository
}

// NewMealService creates a meal service
func NewMealService(cache domain.NamespacedCache, repo domain.MealRepository) *MealService {
	return &MealService{cache: cache, repo: repo}
}

// Create stores a new meal
func (s *MealService) Create(ctx context.Context, name string) (*domain.Meal, error) {
	if err := validateMealName("mealName", name); err != nil {
		return nil, err
	}

	s.cache.Invalidate(domain.NamespaceMeals)
	meal := &domain.Meal{Name: name}
	if err := s.repo.CreateMeal(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// BulkCreate stores several meals at once; no meal is stored if any fails
func (s *MealService) BulkCreate(ctx context.Context, names []string) ([]domain.Meal, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: list 'mealNames' must not be empty", domain.ErrBadInput)
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: meal name at index %d must not be blank", domain.ErrBadInput, i)
		}
	}

	s.cache.Invalidate(domain.NamespaceMeals)
	meals := make([]*domain.Meal, len(names))
	for i, name := range names {
		meals[i] = &domain.Meal{Name: name}
	}
	if err := s.repo.CreateMeals(ctx, meals); err != nil {
		return nil, err
	}

	out := make([]domain.Meal, len(meals))
	for i, m := range meals {
		out[i] = *m
	}
	return out, nil
}

// Get returns a meal by id
func (s *MealService) Get(ctx context.Context, id int64) (*domain.Meal, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	return readOne(s.cache, domain.NamespaceMeals, id, func() (*domain.Meal, error) {
		return s.repo.GetMeal(ctx, id)
	})
}

// Update renames a meal
func (s *MealService) Update(ctx context.Context, id int64, newName string) (*domain.Meal, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if err := validateMealName("newName", newName); err != nil {
		return nil, err
	}

	s.cache.Invalidate(domain.NamespaceMeals)
	meal := &domain.Meal{ID: id, Name: newName}
	if err := s.repo.UpdateMeal(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// Delete removes a meal
func (s *MealService) Delete(ctx context.Context, id int64) error {
	if err := validateID("id", id); err != nil {
		return err
	}
	s.cache.Invalidate(domain.NamespaceMeals)
	return s.repo.DeleteMeal(ctx, id)
}

// List returns all meals
func (s *MealService) List(ctx context.Context) ([]domain.Meal, error) {
	return readThrough(s.cache, domain.NamespaceMeals, keyAll, func() ([]domain.Meal, error) {
		return s.repo.ListMeals(ctx)
	})
}

// FindByProductName returns meals containing a product whose name matches productName
func (s *MealService) FindByProductName(ctx context.Context, productName string) ([]domain.Meal, error) {
	if strings.TrimSpace(productName) == "" {
		return nil, fmt.Errorf("%w: parameter 'productName' must not be blank", domain.ErrBadInput)
	}
	return readThrough(s.cache, domain.NamespaceMeals, "productName:"+productName, func() ([]domain.Meal, error) {
		return s.repo.FindMealsByProductName(ctx, productName)
	})
}

func validateMealName(param, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: parameter '%s' must not be blank", domain.ErrBadInput, param)
	}
	return nil
}
