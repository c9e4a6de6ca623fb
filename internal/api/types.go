package api

import "github.com/cookbookhq/backend/internal/model"

type RegisterRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserInfo struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type SaveRecipeRequest struct {
	Recipe string `json:"recipe" binding:"required"`
}

// Rating is a pointer so a literal 0 survives binding and reaches the range
// check instead of being rejected as a missing field.
type RateRecipeRequest struct {
	Recipe string `json:"recipe" binding:"required"`
	Rating *int   `json:"rating" binding:"required"`
}

type CommentRecipeRequest struct {
	Recipe  string `json:"recipe" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

type CommentRateRequest struct {
	Recipe  string `json:"recipe" binding:"required"`
	Comment string `json:"comment" binding:"required"`
	Rating  *int   `json:"rating" binding:"required"`
}

// CommentView is a comment with its author resolved to a display name.
type CommentView struct {
	User    string `json:"user"`
	Author  string `json:"author"`
	Comment string `json:"comment"`
}

// RecipeDetailResponse is a single recipe with references resolved.
// AverageRating is nil when the recipe has no ratings; an unrated recipe is
// never reported as zero.
type RecipeDetailResponse struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Ingredients       []model.Ingredient       `json:"ingredients"`
	Portion           int                      `json:"portion"`
	NutritionalValues []model.NutritionalValue `json:"nutritionalValues"`
	Directions        string                   `json:"directions"`
	Tags              []string                 `json:"tags"`
	Href              string                   `json:"href"`
	Time              int                      `json:"time"`
	Categories        []string                 `json:"categories"`
	User              string                   `json:"user"`
	Owner             string                   `json:"owner"`
	Comments          []CommentView            `json:"comments"`
	Rating            []model.RatingEntry      `json:"rating"`
	AverageRating     *float64                 `json:"averageRating"`
}
