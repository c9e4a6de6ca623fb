package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cookbookhq/backend/internal/model"
	"github.com/cookbookhq/backend/internal/pkg/logger"
)

// Cache keys shared by the read and write sides. Mutations drop the keys so
// the next list read repopulates them.
const (
	cacheKeyRecipes    = "cookbook:recipes"
	cacheKeyCategories = "cookbook:categories"
	cacheTTL           = time.Minute
)

// RecipeService mutates a single recipe's sub-collections (ratings,
// comments) and a user's bookmark set. No multi-document transactions:
// every operation is one document update and the store's per-document
// atomicity carries the invariants.
type RecipeService struct {
	recipes    RecipeStore
	users      UserStore
	categories CategoryStore
	cache      Cache
	log        *logger.Logger
}

func NewRecipeService(recipes RecipeStore, users UserStore, categories CategoryStore, cache Cache, log *logger.Logger) *RecipeService {
	return &RecipeService{
		recipes:    recipes,
		users:      users,
		categories: categories,
		cache:      cache,
		log:        log,
	}
}

// CreateRecipe validates and stores a new recipe owned by ownerID. Tags are
// lowercased before the write; comments and ratings always start empty no
// matter what the caller sent.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID string, recipe *model.Recipe) (*model.Recipe, error) {
	owner, err := parseID(ownerID)
	if err != nil {
		return nil, err
	}
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	recipe.ID = primitive.NilObjectID
	recipe.OwnerID = owner
	recipe.Tags = model.NormalizeTags(recipe.Tags)
	recipe.Comments = []model.Comment{}
	recipe.Rating = []model.RatingEntry{}
	if recipe.Categories == nil {
		recipe.Categories = []primitive.ObjectID{}
	}

	id, err := s.recipes.Insert(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	recipe.ID = id
	s.invalidate(ctx, cacheKeyRecipes)
	s.log.Info("recipe created", "recipe_id", id.Hex(), "owner_id", ownerID)
	return recipe, nil
}

// AddComment appends a comment entry. No de-duplication: a user may post
// unlimited comments.
func (s *RecipeService) AddComment(ctx context.Context, recipeID, userID, text string) error {
	rid, err := parseID(recipeID)
	if err != nil {
		return err
	}
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: comment must not be empty", ErrInvalidInput)
	}

	if err := s.recipes.PushComment(ctx, rid, model.Comment{UserID: uid, Comment: text}); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyRecipes)
	return nil
}

// RateRecipe stores the user's rating, replacing any prior value in place.
// The store applies this as one atomic update, so two near-simultaneous
// re-ratings by the same user end with exactly one entry (last writer wins
// on the value). Returns the updated rating set.
func (s *RecipeService) RateRecipe(ctx context.Context, recipeID, userID string, value int) ([]model.RatingEntry, error) {
	rid, err := parseID(recipeID)
	if err != nil {
		return nil, err
	}
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	if value < 1 || value > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	rating, err := s.recipes.ReplaceRating(ctx, rid, model.RatingEntry{UserID: uid, Value: value})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyRecipes)
	return rating, nil
}

// CommentAndRate applies a comment and a rating as a single document
// update. Both inputs are validated up front; if either is invalid nothing
// is written.
func (s *RecipeService) CommentAndRate(ctx context.Context, recipeID, userID, text string, value int) error {
	rid, err := parseID(recipeID)
	if err != nil {
		return err
	}
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: comment must not be empty", ErrInvalidInput)
	}
	if value < 1 || value > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	err = s.recipes.PushCommentAndReplaceRating(ctx, rid,
		model.Comment{UserID: uid, Comment: text},
		model.RatingEntry{UserID: uid, Value: value},
	)
	if err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyRecipes)
	return nil
}

// ToggleBookmark adds or removes recipeID from the user's saved set. Adding
// is idempotent, removing an absent bookmark is a no-op.
func (s *RecipeService) ToggleBookmark(ctx context.Context, userID, recipeID string, add bool) error {
	uid, err := parseID(userID)
	if err != nil {
		return err
	}
	rid, err := parseID(recipeID)
	if err != nil {
		return err
	}

	if add {
		return s.users.AddSavedRecipe(ctx, uid, rid)
	}
	return s.users.RemoveSavedRecipe(ctx, uid, rid)
}

// DeleteRecipe removes the recipe only when the requester owns it. The
// outcome is tagged so callers can distinguish a missing recipe from an
// ownership mismatch.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, requesterID string) (DeleteOutcome, error) {
	rid, err := parseID(recipeID)
	if err != nil {
		return DeleteOutcomeNotFound, err
	}
	owner, err := parseID(requesterID)
	if err != nil {
		return DeleteOutcomeNotFound, err
	}

	deleted, err := s.recipes.DeleteOwned(ctx, rid, owner)
	if err != nil {
		return DeleteOutcomeNotFound, fmt.Errorf("delete recipe: %w", err)
	}
	if deleted > 0 {
		s.invalidate(ctx, cacheKeyRecipes)
		s.log.Info("recipe deleted", "recipe_id", recipeID, "owner_id", requesterID)
		return DeleteOutcomeDeleted, nil
	}

	exists, err := s.recipes.Exists(ctx, rid)
	if err != nil {
		return DeleteOutcomeNotFound, fmt.Errorf("delete recipe: %w", err)
	}
	if !exists {
		return DeleteOutcomeNotFound, nil
	}
	return DeleteOutcomeForbidden, nil
}

// CreateCategory stores a new category with a non-empty unique name.
func (s *RecipeService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name must not be empty", ErrInvalidInput)
	}

	category := &model.Category{Name: name}
	id, err := s.categories.Insert(ctx, category)
	if err != nil {
		return nil, err
	}
	category.ID = id
	s.invalidate(ctx, cacheKeyCategories)
	return category, nil
}

func (s *RecipeService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

func validateRecipe(r *model.Recipe) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(r.Directions) == "" {
		return fmt.Errorf("%w: directions must not be empty", ErrInvalidInput)
	}
	if r.Portion <= 0 {
		return fmt.Errorf("%w: portion must be positive", ErrInvalidInput)
	}
	if r.Time <= 0 {
		return fmt.Errorf("%w: time must be positive", ErrInvalidInput)
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Ingredient) == "" {
			return fmt.Errorf("%w: ingredient %d has no name", ErrInvalidInput, i)
		}
		if ing.Amount <= 0 {
			return fmt.Errorf("%w: ingredient %q amount must be positive", ErrInvalidInput, ing.Ingredient)
		}
	}
	return nil
}

// parseID converts a hex id into an ObjectID, mapping bad input onto the
// service error taxonomy.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", ErrInvalidInput, id)
	}
	return oid, nil
}
