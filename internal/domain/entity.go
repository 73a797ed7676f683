package domain

// Product is a food with a known calorie density
type Product struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	CaloriesPer100g int    `json:"caloriesPer100g"`
}

// Meal is a named composition of products
type Meal struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MealProduct links a product to a meal with a gram weight.
// Neither side is owned; rows are deleted independently.
type MealProduct struct {
	ID        int64 `json:"id"`
	Grams     int   `json:"grams"`
	MealID    int64 `json:"mealId"`
	ProductID int64 `json:"productId"`
}

// CalorieMatch is the best match returned by the calorie service for a query
type CalorieMatch struct {
	Name            string
	CaloriesPer100g int
}

// Cache namespaces
const (
	NamespaceProducts     = "products"
	NamespaceMeals        = "meals"
	NamespaceMealProducts = "mealProducts"
	NamespaceCalories     = "calories"
)
