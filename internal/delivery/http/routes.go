package http

import (
	"github.com/calories/backend/config"
	"github.com/calories/backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.NewLogger("http")
	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/stats/requests", handler.RequestStats)

	products := router.Group("/products")
	{
		products.GET("/CalculateCalories", handler.CalculateCalories)
		products.POST("/create", handler.CreateProduct)
		products.GET("/", handler.ListProducts)
		products.GET("/:id", handler.GetProduct)
		products.PUT("/update/:id", handler.UpdateProduct)
		products.DELETE("/delete/:id", handler.DeleteProduct)
	}

	meals := router.Group("/meals", RequestCounterMiddleware(handler.counter))
	{
		meals.GET("/", handler.ListMeals)
		meals.GET("/by-product", handler.FindMealsByProduct)
		meals.POST("/create", handler.CreateMeal)
		meals.POST("/bulk-create", handler.BulkCreateMeals)
		meals.POST("/:id/products", handler.AddProductToMeal)
		meals.GET("/:id/products", handler.ListMealProductsOfMeal)
		meals.GET("/:id", handler.GetMeal)
		meals.PUT("/update/:id", handler.UpdateMeal)
		meals.DELETE("/delete/:id", handler.DeleteMeal)
	}

	mealProducts := router.Group("/mealProducts")
	{
		mealProducts.GET("/", handler.ListMealProducts)
		mealProducts.POST("/create", handler.CreateMealProduct)
		mealProducts.GET("/:id", handler.GetMealProduct)
		mealProducts.PUT("/update/:id", handler.UpdateMealProduct)
		mealProducts.DELETE("/delete/:id", handler.DeleteMealProduct)
	}

	return router
}
