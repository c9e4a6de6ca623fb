package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cookbookhq/backend/internal/middleware"
	"github.com/cookbookhq/backend/internal/model"
	"github.com/cookbookhq/backend/internal/service"
)

type RecipeHandler struct {
	recipes *service.RecipeService
	queries *service.QueryService
}

func NewRecipeHandler(recipes *service.RecipeService, queries *service.QueryService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, queries: queries}
}

// List returns every recipe with unresolved references.
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.queries.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Get returns one recipe with owner and comment authors resolved to
// display names.
func (h *RecipeHandler) Get(c *gin.Context) {
	detail, err := h.queries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeDetailResponse(detail))
}

// ListMine returns the caller's own recipes.
func (h *RecipeHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.queries.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Search filters by tags and/or categories, conjunctively.
func (h *RecipeHandler) Search(c *gin.Context) {
	var tags, categories []string
	if raw := c.Query("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}
	if raw := c.Query("category"); raw != "" {
		categories = strings.Split(raw, ",")
	}

	recipes, err := h.queries.Search(c.Request.Context(), tags, categories)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Create stores a new recipe owned by the caller.
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var recipe model.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid recipe document"})
		return
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), userID, &recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Rate stores or replaces the caller's rating for a recipe.
func (h *RecipeHandler) Rate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "recipe and rating are required"})
		return
	}
	if *req.Rating < 1 || *req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be a number between 1 and 5"})
		return
	}

	rating, err := h.recipes.RateRecipe(c.Request.Context(), req.Recipe, userID, *req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}

// Comment appends a comment to a recipe.
func (h *RecipeHandler) Comment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CommentRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "recipe and comment are required"})
		return
	}

	if err := h.recipes.AddComment(c.Request.Context(), req.Recipe, userID, req.Comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "successfully updated"})
}

// CommentAndRate applies a comment and a rating as one document update.
func (h *RecipeHandler) CommentAndRate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CommentRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "recipe, comment and rating are required"})
		return
	}
	if *req.Rating < 1 || *req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be a number between 1 and 5"})
		return
	}

	err := h.recipes.CommentAndRate(c.Request.Context(), req.Recipe, userID, req.Comment, *req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "successfully updated"})
}

// Delete removes a recipe; only its owner may do so.
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	outcome, err := h.recipes.DeleteRecipe(c.Request.Context(), c.Param("recipeId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	switch outcome {
	case service.DeleteOutcomeDeleted:
		c.JSON(http.StatusCreated, gin.H{"message": "successfully deleted"})
	case service.DeleteOutcomeForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can delete a recipe"})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	}
}

func toRecipeDetailResponse(detail *service.RecipeDetail) RecipeDetailResponse {
	r := detail.Recipe

	resp := RecipeDetailResponse{
		ID:                r.ID.Hex(),
		Name:              r.Name,
		Ingredients:       r.Ingredients,
		Portion:           r.Portion,
		NutritionalValues: r.NutritionalValues,
		Directions:        r.Directions,
		Tags:              r.Tags,
		Href:              r.Href,
		Time:              r.Time,
		Categories:        make([]string, 0, len(r.Categories)),
		User:              r.OwnerID.Hex(),
		Owner:             detail.Owner,
		Comments:          make([]CommentView, 0, len(r.Comments)),
		Rating:            r.Rating,
	}
	for _, id := range r.Categories {
		resp.Categories = append(resp.Categories, id.Hex())
	}
	for _, comment := range r.Comments {
		resp.Comments = append(resp.Comments, CommentView{
			User:    comment.UserID.Hex(),
			Author:  detail.Authors[comment.UserID.Hex()],
			Comment: comment.Comment,
		})
	}
	if avg, ok := r.AverageRating(); ok {
		resp.AverageRating = &avg
	}
	return resp
}
