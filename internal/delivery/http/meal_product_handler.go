package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMealProducts handles GET /mealProducts/
func (h *Handler) ListMealProducts(c *gin.Context) {
	links, err := h.mealProducts.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// CreateMealProduct handles POST /mealProducts/create
func (h *Handler) CreateMealProduct(c *gin.Context) {
	grams, err := requiredIntQuery(c, "grams")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	mealID, err := requiredIDQuery(c, "mealId")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	productID, err := requiredIDQuery(c, "productId")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	link, err := h.mealProducts.Create(c.Request.Context(), grams, mealID, productID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusCreated, "MealProduct created with ID: %d", link.ID)
}

// GetMealProduct handles GET /mealProducts/:id
func (h *Handler) GetMealProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	link, err := h.mealProducts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// UpdateMealProduct handles PUT /mealProducts/update/:id
func (h *Handler) UpdateMealProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	grams, err := requiredIntQuery(c, "grams")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	link, err := h.mealProducts.UpdateGrams(c.Request.Context(), id, grams)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusOK, "MealProduct with ID %d updated to %dg", link.ID, link.Grams)
}

// DeleteMealProduct handles DELETE /mealProducts/delete/:id
func (h *Handler) DeleteMealProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.mealProducts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusOK, "MealProduct with ID %d deleted", id)
}
