package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cookbookhq/backend/internal/api"
	"github.com/cookbookhq/backend/internal/middleware"
	"github.com/cookbookhq/backend/internal/pkg/logger"
)

// Setup configures the application routes.
func Setup(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	bookmarkHandler *api.BookmarkHandler,
	categoryHandler *api.CategoryHandler,
	validator middleware.TokenValidator,
	limiter *middleware.RateLimiter,
	corsOrigins []string,
	log *logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes
	router.POST("/user/register", authHandler.Register)
	router.POST("/user/login", authHandler.Login)
	router.GET("/recipes", recipeHandler.List)
	router.GET("/recipe/:id", recipeHandler.Get)
	router.GET("/categories", categoryHandler.List)
	router.GET("/search", recipeHandler.Search)
	router.POST("/category", categoryHandler.Create)

	// Protected routes
	protected := router.Group("")
	protected.Use(middleware.Auth(validator))
	if limiter != nil {
		protected.Use(limiter.Middleware())
	}
	{
		protected.GET("/user/recipe", recipeHandler.ListMine)
		protected.GET("/saved", bookmarkHandler.ListSaved)
		protected.POST("/recipe", recipeHandler.Create)
		protected.PUT("/save/recipe", bookmarkHandler.Save)
		protected.PUT("/save/delete/recipe", bookmarkHandler.Unsave)
		protected.PUT("/rate/recipe", recipeHandler.Rate)
		protected.PUT("/comment/recipe", recipeHandler.Comment)
		protected.PUT("/commentrate/recipe", recipeHandler.CommentAndRate)
		protected.DELETE("/delete/:recipeId", recipeHandler.Delete)
	}

	return router
}
