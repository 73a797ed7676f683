package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/calories/backend/internal/domain"
	"github.com/calories/backend/internal/infrastructure/cache"
	"github.com/calories/backend/internal/logging"
	"github.com/rs/zerolog"
)

// cacheKeySeparator joins names and gram weights into the batch cache key
const cacheKeySeparator = ":"

// CalorieService resolves food names into calorie totals and records each
// calculated batch as a meal.
//
// A batch is not atomic: the meal row is written before the first item is
// resolved, and a failing item leaves the meal and the links of the items
// before it in the store.
type CalorieService struct {
	cache  domain.NamespacedCache
	store  domain.Store
	client domain.CalorieClient
	logger zerolog.Logger
	now    func() time.Time
}

// NewCalorieService creates a calorie service with its dependencies
func NewCalorieService(
	cache domain.NamespacedCache,
	store domain.Store,
	client domain.CalorieClient,
) *CalorieService {
	return &CalorieService{
		cache:  cache,
		store:  store,
		client: client,
		logger: logging.NewLogger("calories"),
		now:    time.Now,
	}
}

// CalculateCalories returns one line per (name, grams) pair, in input order,
// followed by a "Total calories: <n>" line.
// Flow: validate -> check cache -> create meal -> per item: lookup, persist, link -> cache -> return
func (s *CalorieService) CalculateCalories(ctx context.Context, count int, names []string, grams []int) ([]string, error) {
	if err := validateBatch(count, names, grams); err != nil {
		return nil, err
	}

	key := batchCacheKey(names, grams)
	if lines, ok := cache.GetList[string](s.cache, domain.NamespaceCalories, key); ok {
		s.logger.Debug().Str("key", key).Msg("calorie batch served from cache")
		return lines, nil
	}

	meal := &domain.Meal{Name: "Meal created on " + s.now().Format(time.UnixDate)}
	s.cache.Invalidate(domain.NamespaceMeals)
	if err := s.store.CreateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("create meal for batch: %w", err)
	}

	lines := make([]string, 0, count+1)
	total := 0
	for i := 0; i < count; i++ {
		match, product, err := s.resolve(ctx, names[i])
		if err != nil {
			s.logger.Warn().Err(err).Int64("meal_id", meal.ID).Int("index", i).Msg("calorie batch aborted")
			return nil, err
		}

		// the freshly resolved figure is authoritative for this batch
		total += match.CaloriesPer100g * grams[i] / 100
		lines = append(lines, formatLine(grams[i], match))

		s.cache.Invalidate(domain.NamespaceMealProducts)
		link := &domain.MealProduct{Grams: grams[i], MealID: meal.ID, ProductID: product.ID}
		if err := s.store.CreateMealProduct(ctx, link); err != nil {
			return nil, fmt.Errorf("link %q to meal %d: %w", match.Name, meal.ID, err)
		}
	}
	lines = append(lines, fmt.Sprintf("Total calories: %d", total))

	cache.PutList(s.cache, domain.NamespaceCalories, key, lines)
	s.logger.Info().Int64("meal_id", meal.ID).Int("items", count).Int("total", total).Msg("calorie batch calculated")
	return lines, nil
}

// ResolveAndPersistProduct looks query up remotely, stores the product if no
// local product matches the resolved name, and returns the resolved match.
func (s *CalorieService) ResolveAndPersistProduct(ctx context.Context, query string) (*domain.CalorieMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: parameter 'query' must not be blank", domain.ErrBadInput)
	}
	match, _, err := s.resolve(ctx, query)
	if err != nil {
		return nil, err
	}
	return match, nil
}

// AddProductToMeal links an already stored product, found by name, to a meal.
// No remote lookup is made.
func (s *CalorieService) AddProductToMeal(ctx context.Context, mealID int64, productName string, grams int) (string, error) {
	if err := validateID("mealId", mealID); err != nil {
		return "", err
	}
	if strings.TrimSpace(productName) == "" {
		return "", fmt.Errorf("%w: parameter 'productName' must not be blank", domain.ErrBadInput)
	}
	if grams <= 0 {
		return "", fmt.Errorf("%w: parameter 'grams' must be a positive number, got %d", domain.ErrBadInput, grams)
	}

	s.cache.Invalidate(domain.NamespaceMeals)
	s.cache.Invalidate(domain.NamespaceMealProducts)

	meal, err := s.store.GetMeal(ctx, mealID)
	if err != nil {
		return "", err
	}

	products, err := s.store.FindProductsByName(ctx, productName)
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "", fmt.Errorf("%w: product with name %q; add it first, for example through the calorie calculation", domain.ErrNotFound, productName)
	}
	product := products[0]

	link := &domain.MealProduct{Grams: grams, MealID: meal.ID, ProductID: product.ID}
	if err := s.store.CreateMealProduct(ctx, link); err != nil {
		return "", err
	}

	calories := product.CaloriesPer100g * grams / 100
	return fmt.Sprintf("Added %dg of %s (%d kcal) to meal '%s'", grams, product.Name, calories, meal.Name), nil
}

// resolve performs the remote lookup and makes sure a canonical product exists
// for the resolved name. The remote call is always made, even when a local
// product already matches.
func (s *CalorieService) resolve(ctx context.Context, query string) (*domain.CalorieMatch, *domain.Product, error) {
	match, err := s.client.Lookup(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	if match.CaloriesPer100g < 0 {
		s.logger.Warn().Str("product", match.Name).Int("remote", match.CaloriesPer100g).Msg("negative calories from calorie service, using 0")
		match.CaloriesPer100g = 0
	}

	existing, err := s.store.FindProductsByName(ctx, match.Name)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) == 0 {
		product := &domain.Product{Name: match.Name, CaloriesPer100g: match.CaloriesPer100g}
		if err := s.store.CreateProduct(ctx, product); err != nil {
			return nil, nil, fmt.Errorf("save product %q: %w", match.Name, err)
		}
		s.cache.Invalidate(domain.NamespaceProducts)
		s.logger.Info().Str("product", match.Name).Int("cal", match.CaloriesPer100g).Int64("id", product.ID).Msg("saved new product")
	} else if stored := existing[0]; stored.CaloriesPer100g != match.CaloriesPer100g {
		// stored record is left as is
		s.logger.Warn().
			Str("product", match.Name).
			Int("stored", stored.CaloriesPer100g).
			Int("remote", match.CaloriesPer100g).
			Msg("calorie mismatch between store and calorie service, using remote value")
	}

	persisted, err := s.store.FindProductsByName(ctx, match.Name)
	if err != nil {
		return nil, nil, err
	}
	if len(persisted) == 0 {
		s.logger.Error().Str("product", match.Name).Str("query", query).Msg("product not visible after save")
		return nil, nil, fmt.Errorf("%w: product %q could not be processed and saved", domain.ErrPersistenceInconsistency, match.Name)
	}

	product := persisted[0]
	return match, &product, nil
}

func validateBatch(count int, names []string, grams []int) error {
	if count <= 0 {
		return fmt.Errorf("%w: parameter 'productCount' must be a positive number, got %d", domain.ErrBadInput, count)
	}
	if len(names) != count || len(grams) != count {
		return fmt.Errorf("%w: lengths of 'food' (%d) and 'gram' (%d) must match 'productCount' (%d)",
			domain.ErrBadInput, len(names), len(grams), count)
	}
	for i := 0; i < count; i++ {
		if strings.TrimSpace(names[i]) == "" {
			return fmt.Errorf("%w: food name at index %d must not be blank", domain.ErrBadInput, i)
		}
		if grams[i] <= 0 {
			return fmt.Errorf("%w: weight at index %d for %q must be a positive number, got %d", domain.ErrBadInput, i, names[i], grams[i])
		}
	}
	return nil
}

// batchCacheKey joins all names, then all gram weights. Order matters.
func batchCacheKey(names []string, grams []int) string {
	parts := make([]string, 0, len(names)+len(grams))
	parts = append(parts, names...)
	for _, g := range grams {
		parts = append(parts, strconv.Itoa(g))
	}
	return strings.Join(parts, cacheKeySeparator)
}

func formatLine(grams int, match *domain.CalorieMatch) string {
	return fmt.Sprintf("%dg. %s / cal/100g: %d", grams, match.Name, match.CaloriesPer100g)
}
