package domain

import "context"

// NamespacedCache is a process-wide cache partitioned by namespace.
// Values are opaque to the cache; callers store and read back slices.
type NamespacedCache interface {
	Get(namespace, key string) (any, bool)
	Put(namespace, key string, value any)
	Invalidate(namespace string)
}

// CalorieClient resolves a free-text food name via the remote calorie service
type CalorieClient interface {
	Lookup(ctx context.Context, query string) (*CalorieMatch, error)
}

// ProductRepository persists products
type ProductRepository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id int64) (*Product, error)
	// FindProductsByName returns products whose name contains name, ignoring case,
	// ordered by id so the first element is the canonical match.
	FindProductsByName(ctx context.Context, name string) ([]Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// MealRepository persists meals
type MealRepository interface {
	CreateMeal(ctx context.Context, m *Meal) error
	CreateMeals(ctx context.Context, meals []*Meal) error
	GetMeal(ctx context.Context, id int64) (*Meal, error)
	ListMeals(ctx context.Context) ([]Meal, error)
	FindMealsByProductName(ctx context.Context, productName string) ([]Meal, error)
	UpdateMeal(ctx context.Context, m *Meal) error
	DeleteMeal(ctx context.Context, id int64) error
}

// MealProductRepository persists meal/product links
type MealProductRepository interface {
	CreateMealProduct(ctx context.Context, mp *MealProduct) error
	GetMealProduct(ctx context.Context, id int64) (*MealProduct, error)
	ListMealProducts(ctx context.Context) ([]MealProduct, error)
	ListMealProductsByMeal(ctx context.Context, mealID int64) ([]MealProduct, error)
	UpdateMealProduct(ctx context.Context, mp *MealProduct) error
	DeleteMealProduct(ctx context.Context, id int64) error
}

// Store is the full persistent store
type Store interface {
	ProductRepository
	MealRepository
	MealProductRepository
	Close() error
}
