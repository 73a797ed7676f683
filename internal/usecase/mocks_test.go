package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/calories/backend/internal/domain"
)

// fakeStore is an in-memory domain.Store
type fakeStore struct {
	mu           sync.Mutex
	nextID       int64
	products     map[int64]domain.Product
	meals        map[int64]domain.Meal
	mealProducts map[int64]domain.MealProduct

	// hideNewProducts makes created products invisible to FindProductsByName
	hideNewProducts bool
	hidden          map[int64]bool

	createProductErr error
	listCalls        int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:     make(map[int64]domain.Product),
		meals:        make(map[int64]domain.Meal),
		mealProducts: make(map[int64]domain.MealProduct),
		hidden:       make(map[int64]bool),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createProductErr != nil {
		return f.createProductErr
	}
	p.ID = f.id()
	f.products[p.ID] = *p
	if f.hideNewProducts {
		f.hidden[p.ID] = true
	}
	return nil
}

func (f *fakeStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product with id %d", domain.ErrNotFound, id)
	}
	return &p, nil
}

func (f *fakeStore) FindProductsByName(ctx context.Context, name string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Product{}
	for _, p := range f.products {
		if f.hidden[p.ID] {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := []domain.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return fmt.Errorf("%w: product with id %d", domain.ErrNotFound, p.ID)
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return fmt.Errorf("%w: product with id %d", domain.ErrNotFound, id)
	}
	delete(f.products, id)
	return nil
}

func (f *fakeStore) CreateMeal(ctx context.Context, m *domain.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.id()
	f.meals[m.ID] = *m
	return nil
}

func (f *fakeStore) CreateMeals(ctx context.Context, meals []*domain.Meal) error {
	for _, m := range meals {
		if err := f.CreateMeal(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) GetMeal(ctx context.Context, id int64) (*domain.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meals[id]
	if !ok {
		return nil, fmt.Errorf("%w: meal with id %d", domain.ErrNotFound, id)
	}
	return &m, nil
}

func (f *fakeStore) ListMeals(ctx context.Context) ([]domain.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := []domain.Meal{}
	for _, m := range f.meals {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) FindMealsByProductName(ctx context.Context, productName string) ([]domain.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[int64]bool{}
	out := []domain.Meal{}
	for _, mp := range f.mealProducts {
		p, ok := f.products[mp.ProductID]
		if !ok || !strings.Contains(strings.ToLower(p.Name), strings.ToLower(productName)) {
			continue
		}
		if m, ok := f.meals[mp.MealID]; ok && !seen[m.ID] {
			seen[m.ID] = true
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdateMeal(ctx context.Context, m *domain.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.meals[m.ID]; !ok {
		return fmt.Errorf("%w: meal with id %d", domain.ErrNotFound, m.ID)
	}
	f.meals[m.ID] = *m
	return nil
}

func (f *fakeStore) DeleteMeal(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.meals[id]; !ok {
		return fmt.Errorf("%w: meal with id %d", domain.ErrNotFound, id)
	}
	delete(f.meals, id)
	return nil
}

func (f *fakeStore) CreateMealProduct(ctx context.Context, mp *domain.MealProduct) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	mp.ID = f.id()
	f.mealProducts[mp.ID] = *mp
	return nil
}

func (f *fakeStore) GetMealProduct(ctx context.Context, id int64) (*domain.MealProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mp, ok := f.mealProducts[id]
	if !ok {
		return nil, fmt.Errorf("%w: meal product with id %d", domain.ErrNotFound, id)
	}
	return &mp, nil
}

func (f *fakeStore) ListMealProducts(ctx context.Context) ([]domain.MealProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := []domain.MealProduct{}
	for _, mp := range f.mealProducts {
		out = append(out, mp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListMealProductsByMeal(ctx context.Context, mealID int64) ([]domain.MealProduct, error) {
	all, _ := f.ListMealProducts(ctx)
	out := []domain.MealProduct{}
	for _, mp := range all {
		if mp.MealID == mealID {
			out = append(out, mp)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateMealProduct(ctx context.Context, mp *domain.MealProduct) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.mealProducts[mp.ID]; !ok {
		return fmt.Errorf("%w: meal product with id %d", domain.ErrNotFound, mp.ID)
	}
	f.mealProducts[mp.ID] = *mp
	return nil
}

func (f *fakeStore) DeleteMealProduct(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.mealProducts[id]; !ok {
		return fmt.Errorf("%w: meal product with id %d", domain.ErrNotFound, id)
	}
	delete(f.mealProducts, id)
	return nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) productCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products)
}

func (f *fakeStore) mealCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.meals)
}

func (f *fakeStore) links() []domain.MealProduct {
	all, _ := f.ListMealProducts(context.Background())
	return all
}

// mockCalorieClient answers lookups from a fixed table
type mockCalorieClient struct {
	mu      sync.Mutex
	matches map[string]domain.CalorieMatch
	errs    map[string]error
	calls   []string
}

func newMockCalorieClient() *mockCalorieClient {
	return &mockCalorieClient{
		matches: make(map[string]domain.CalorieMatch),
		errs:    make(map[string]error),
	}
}

func (m *mockCalorieClient) on(query, name string, cal int) *mockCalorieClient {
	m.matches[query] = domain.CalorieMatch{Name: name, CaloriesPer100g: cal}
	return m
}

func (m *mockCalorieClient) fail(query string, err error) *mockCalorieClient {
	m.errs[query] = err
	return m
}

func (m *mockCalorieClient) Lookup(ctx context.Context, query string) (*domain.CalorieMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, query)
	if err, ok := m.errs[query]; ok {
		return nil, err
	}
	match, ok := m.matches[query]
	if !ok {
		return nil, fmt.Errorf("%w for %q", domain.ErrLookupNotFound, query)
	}
	return &match, nil
}

func (m *mockCalorieClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
