package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cookbookhq/backend/internal/model"
	"github.com/cookbookhq/backend/internal/pkg/logger"
)

// RecipeDetail is a recipe with its user references resolved to display
// names. Only first/last name leaves the service; emails never do.
type RecipeDetail struct {
	Recipe model.Recipe
	Owner  string
	// Authors maps a comment author's hex id to their display name.
	Authors map[string]string
}

// QueryService is the read side: listing, filtering and reference
// resolution. List endpoints are served from the cache when it is warm.
type QueryService struct {
	recipes    RecipeStore
	users      UserStore
	categories CategoryStore
	cache      Cache
	log        *logger.Logger
}

func NewQueryService(recipes RecipeStore, users UserStore, categories CategoryStore, cache Cache, log *logger.Logger) *QueryService {
	return &QueryService{
		recipes:    recipes,
		users:      users,
		categories: categories,
		cache:      cache,
		log:        log,
	}
}

// ListAll returns every recipe, unfiltered and unpaginated.
func (s *QueryService) ListAll(ctx context.Context) ([]model.Recipe, error) {
	var cached []model.Recipe
	if s.cacheGet(ctx, cacheKeyRecipes, &cached) {
		return cached, nil
	}

	recipes, err := s.recipes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	s.cacheSet(ctx, cacheKeyRecipes, recipes)
	return recipes, nil
}

// GetByID fetches a single recipe and resolves its owner and comment
// authors to display names.
func (s *QueryService) GetByID(ctx context.Context, recipeID string) (*RecipeDetail, error) {
	rid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: recipe %q", ErrNotFound, recipeID)
	}

	recipe, err := s.recipes.FindByID(ctx, rid)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(recipe.Comments)+1)
	ids = append(ids, recipe.OwnerID)
	for _, c := range recipe.Comments {
		ids = append(ids, c.UserID)
	}
	names, err := s.users.NamesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve names: %w", err)
	}

	detail := &RecipeDetail{
		Recipe:  *recipe,
		Owner:   names[recipe.OwnerID],
		Authors: make(map[string]string, len(recipe.Comments)),
	}
	for _, c := range recipe.Comments {
		detail.Authors[c.UserID.Hex()] = names[c.UserID]
	}
	return detail, nil
}

// ListByOwner returns the recipes created by the given user.
func (s *QueryService) ListByOwner(ctx context.Context, userID string) ([]model.Recipe, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user id %q", ErrInvalidInput, userID)
	}
	recipes, err := s.recipes.FindByOwner(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list by owner: %w", err)
	}
	return recipes, nil
}

// ListCategories returns every category.
func (s *QueryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if s.cacheGet(ctx, cacheKeyCategories, &cached) {
		return cached, nil
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	s.cacheSet(ctx, cacheKeyCategories, categories)
	return categories, nil
}

// Search filters recipes by tags and/or categories, case-insensitively.
// A recipe matches the tag predicate when its tag set intersects the given
// tags, and the category predicate when its category refs intersect the
// resolved categories. With both filters present a recipe must satisfy
// both; an absent filter is vacuously true. Category tokens may be hex ids
// or category names.
func (s *QueryService) Search(ctx context.Context, tags, categories []string) ([]model.Recipe, error) {
	filter := RecipeFilter{Tags: model.NormalizeTags(tags)}

	var names []string
	for _, token := range categories {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if oid, err := primitive.ObjectIDFromHex(token); err == nil {
			filter.CategoryIDs = append(filter.CategoryIDs, oid)
			continue
		}
		names = append(names, token)
	}
	if len(names) > 0 {
		ids, err := s.categories.IDsByNames(ctx, names)
		if err != nil {
			return nil, fmt.Errorf("resolve categories: %w", err)
		}
		filter.CategoryIDs = append(filter.CategoryIDs, ids...)
	}

	// A category filter was given but nothing resolved: the category
	// predicate can never hold, and the match is conjunctive.
	if categoriesRequested(categories) && len(filter.CategoryIDs) == 0 {
		return []model.Recipe{}, nil
	}

	recipes, err := s.recipes.FindFiltered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return recipes, nil
}

// ListBookmarked returns the user's saved recipes in the order they were
// bookmarked. The store keeps the set duplicate-free, so no render-time
// de-duplication is needed.
func (s *QueryService) ListBookmarked(ctx context.Context, userID string) ([]model.Recipe, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user id %q", ErrInvalidInput, userID)
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(user.SavedRecipes) == 0 {
		return []model.Recipe{}, nil
	}

	recipes, err := s.recipes.FindByIDs(ctx, user.SavedRecipes)
	if err != nil {
		return nil, fmt.Errorf("resolve bookmarks: %w", err)
	}

	// $in gives no ordering guarantee; restore bookmark order.
	byID := make(map[primitive.ObjectID]model.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	ordered := make([]model.Recipe, 0, len(recipes))
	for _, id := range user.SavedRecipes {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

func categoriesRequested(tokens []string) bool {
	for _, t := range tokens {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

func (s *QueryService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (s *QueryService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, cacheTTL); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}
