package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookbookhq/backend/internal/middleware"
	"github.com/cookbookhq/backend/internal/service"
)

type BookmarkHandler struct {
	recipes *service.RecipeService
	queries *service.QueryService
}

func NewBookmarkHandler(recipes *service.RecipeService, queries *service.QueryService) *BookmarkHandler {
	return &BookmarkHandler{recipes: recipes, queries: queries}
}

// ListSaved returns the caller's bookmarked recipes, resolved.
func (h *BookmarkHandler) ListSaved(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.queries.ListBookmarked(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savedRecipes": recipes})
}

// Save adds a recipe to the caller's bookmarks. Idempotent.
func (h *BookmarkHandler) Save(c *gin.Context) {
	h.toggle(c, true)
}

// Unsave removes a recipe from the caller's bookmarks; a no-op when it was
// not bookmarked.
func (h *BookmarkHandler) Unsave(c *gin.Context) {
	h.toggle(c, false)
}

func (h *BookmarkHandler) toggle(c *gin.Context, add bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "recipe is required"})
		return
	}

	if err := h.recipes.ToggleBookmark(c.Request.Context(), userID, req.Recipe, add); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "successfully updated"})
}
