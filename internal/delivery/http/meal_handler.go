package http

import (
	"fmt"
	"net/http"

	"github.com/calories/backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// ListMeals handles GET /meals/
func (h *Handler) ListMeals(c *gin.Context) {
	meals, err := h.meals.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// FindMealsByProduct handles GET /meals/by-product
func (h *Handler) FindMealsByProduct(c *gin.Context) {
	productName, err := requiredQuery(c, "productName")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	meals, err := h.meals.FindByProductName(c.Request.Context(), productName)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// CreateMeal handles POST /meals/create
func (h *Handler) CreateMeal(c *gin.Context) {
	name, err := requiredQuery(c, "mealName")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	meal, err := h.meals.Create(c.Request.Context(), name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusCreated, "Meal '%s' created with ID: %d", meal.Name, meal.ID)
}

// BulkCreateMeals handles POST /meals/bulk-create with a JSON array of names
func (h *Handler) BulkCreateMeals(c *gin.Context) {
	var names []string
	if err := c.ShouldBindJSON(&names); err != nil {
		respondError(c, h.logger, wrapBadInput("body must be a JSON array of meal names", err))
		return
	}

	meals, err := h.meals.BulkCreate(c.Request.Context(), names)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	messages := make([]string, len(meals))
	for i, meal := range meals {
		messages[i] = fmt.Sprintf("Meal '%s' created with ID: %d", meal.Name, meal.ID)
	}
	c.JSON(http.StatusCreated, messages)
}

// AddProductToMeal handles POST /meals/:id/products
func (h *Handler) AddProductToMeal(c *gin.Context) {
	mealID, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	productName, err := requiredQuery(c, "productName")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	grams, err := requiredIntQuery(c, "grams")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	msg, err := h.calories.AddProductToMeal(c.Request.Context(), mealID, productName, grams)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusCreated, "%s", msg)
}

// ListMealProductsOfMeal handles GET /meals/:id/products
func (h *Handler) ListMealProductsOfMeal(c *gin.Context) {
	mealID, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	links, err := h.mealProducts.ListByMeal(c.Request.Context(), mealID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// GetMeal handles GET /meals/:id
func (h *Handler) GetMeal(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	meal, err := h.meals.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// UpdateMeal handles PUT /meals/update/:id
func (h *Handler) UpdateMeal(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	newName, err := requiredQuery(c, "newName")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	meal, err := h.meals.Update(c.Request.Context(), id, newName)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusOK, "Meal updated to '%s'", meal.Name)
}

// DeleteMeal handles DELETE /meals/delete/:id
func (h *Handler) DeleteMeal(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.meals.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusOK, "Meal with ID %d deleted", id)
}

func wrapBadInput(msg string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrBadInput, msg, err)
}
