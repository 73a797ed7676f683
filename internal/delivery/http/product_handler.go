package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateProduct handles POST /products/create
func (h *Handler) CreateProduct(c *gin.Context) {
	name, err := requiredQuery(c, "name")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	calories, err := requiredIntQuery(c, "caloriesPer100g")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), name, calories)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusCreated, "Product created with ID: %d", product.ID)
}

// ListProducts handles GET /products/
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/update/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	name, err := requiredQuery(c, "name")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	calories, err := requiredIntQuery(c, "caloriesPer100g")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, name, calories)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusOK, "Product with ID %d updated to '%s' (%d cal/100g)", product.ID, product.Name, product.CaloriesPer100g)
}

// DeleteProduct handles DELETE /products/delete/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.message(c, http.StatusOK, "Product with ID %d deleted", id)
}
