package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookbookhq/backend/internal/service"
)

type CategoryHandler struct {
	recipes *service.RecipeService
	queries *service.QueryService
}

func NewCategoryHandler(recipes *service.RecipeService, queries *service.QueryService) *CategoryHandler {
	return &CategoryHandler{recipes: recipes, queries: queries}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.queries.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "name is required"})
		return
	}

	category, err := h.recipes.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}
