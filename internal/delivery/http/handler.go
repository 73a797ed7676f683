package http

import (
	"fmt"
	"net/http"

	"github.com/calories/backend/internal/logging"
	"github.com/calories/backend/internal/metrics"
	"github.com/calories/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Services groups the usecases served over HTTP
type Services struct {
	Calories     *usecase.CalorieService
	Products     *usecase.ProductService
	Meals        *usecase.MealService
	MealProducts *usecase.MealProductService
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	calories     *usecase.CalorieService
	products     *usecase.ProductService
	meals        *usecase.MealService
	mealProducts *usecase.MealProductService
	counter      *metrics.RequestCounter
	logger       zerolog.Logger
}

// MessageResponse carries a confirmation message for a mutation
type MessageResponse struct {
	Message string `json:"message"`
}

// NewHandler creates a new HTTP handler
func NewHandler(services Services, counter *metrics.RequestCounter) *Handler {
	return &Handler{
		calories:     services.Calories,
		products:     services.Products,
		meals:        services.Meals,
		mealProducts: services.MealProducts,
		counter:      counter,
		logger:       logging.NewLogger("http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "calories-backend",
		"version": "1.0.0",
	})
}

// RequestStats returns the /meals request counters
func (h *Handler) RequestStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.counter.Snapshot())
}

// CalculateCalories resolves a batch of foods and returns one line per item
// plus the total
func (h *Handler) CalculateCalories(c *gin.Context) {
	count, foods, grams, err := bindCalculateQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	lines, err := h.calories.CalculateCalories(c.Request.Context(), count, foods, grams)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *Handler) message(c *gin.Context, status int, format string, args ...any) {
	c.JSON(status, MessageResponse{Message: fmt.Sprintf(format, args...)})
}
