// Package mocks provides in-memory store implementations for tests. They
// mirror the update-operator semantics of the MongoDB stores: sub-collection
// mutations are applied under one lock so the per-document invariants hold
// under concurrent use, the same way a single-document update does.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cookbookhq/backend/internal/model"
	"github.com/cookbookhq/backend/internal/service"
)

type RecipeStore struct {
	mu      sync.Mutex
	recipes map[primitive.ObjectID]*model.Recipe
}

func NewRecipeStore() *RecipeStore {
	return &RecipeStore{recipes: make(map[primitive.ObjectID]*model.Recipe)}
}

func (s *RecipeStore) Insert(_ context.Context, recipe *model.Recipe) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := primitive.NewObjectID()
	clone := *recipe
	clone.ID = id
	s.recipes[id] = &clone
	return id, nil
}

func (s *RecipeStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, ok := s.recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: recipe %s", service.ErrNotFound, id.Hex())
	}
	clone := *recipe
	return &clone, nil
}

func (s *RecipeStore) FindAll(_ context.Context) ([]model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Recipe{}
	for _, r := range s.recipes {
		out = append(out, *r)
	}
	return out, nil
}

func (s *RecipeStore) FindByOwner(_ context.Context, ownerID primitive.ObjectID) ([]model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Recipe{}
	for _, r := range s.recipes {
		if r.OwnerID == ownerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *RecipeStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Recipe{}
	for _, id := range ids {
		if r, ok := s.recipes[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *RecipeStore) FindFiltered(_ context.Context, filter service.RecipeFilter) ([]model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Recipe{}
	for _, r := range s.recipes {
		if len(filter.Tags) > 0 && !intersects(r.Tags, filter.Tags) {
			continue
		}
		if len(filter.CategoryIDs) > 0 && !intersectsIDs(r.Categories, filter.CategoryIDs) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *RecipeStore) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.recipes[id]
	return ok, nil
}

func (s *RecipeStore) PushComment(_ context.Context, id primitive.ObjectID, comment model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, ok := s.recipes[id]
	if !ok {
		return fmt.Errorf("%w: recipe %s", service.ErrNotFound, id.Hex())
	}
	recipe.Comments = append(recipe.Comments, comment)
	return nil
}

func (s *RecipeStore) ReplaceRating(_ context.Context, id primitive.ObjectID, entry model.RatingEntry) ([]model.RatingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, ok := s.recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: recipe %s", service.ErrNotFound, id.Hex())
	}
	recipe.Rating = replaceRating(recipe.Rating, entry)

	out := make([]model.RatingEntry, len(recipe.Rating))
	copy(out, recipe.Rating)
	return out, nil
}

func (s *RecipeStore) PushCommentAndReplaceRating(_ context.Context, id primitive.ObjectID, comment model.Comment, entry model.RatingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, ok := s.recipes[id]
	if !ok {
		return fmt.Errorf("%w: recipe %s", service.ErrNotFound, id.Hex())
	}
	recipe.Comments = append(recipe.Comments, comment)
	recipe.Rating = replaceRating(recipe.Rating, entry)
	return nil
}

func (s *RecipeStore) DeleteOwned(_ context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, ok := s.recipes[id]
	if !ok || recipe.OwnerID != ownerID {
		return 0, nil
	}
	delete(s.recipes, id)
	return 1, nil
}

// replaceRating builds a fresh slice so clones handed out earlier keep
// their snapshot, the same isolation a real document store gives.
func replaceRating(rating []model.RatingEntry, entry model.RatingEntry) []model.RatingEntry {
	out := make([]model.RatingEntry, 0, len(rating)+1)
	for _, e := range rating {
		if e.UserID != entry.UserID {
			out = append(out, e)
		}
	}
	return append(out, entry)
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func intersectsIDs(a, b []primitive.ObjectID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

type UserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]*model.User)}
}

func (s *UserStore) Insert(_ context.Context, user *model.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, fmt.Errorf("%w: email already registered", service.ErrInvalidInput)
		}
	}

	id := primitive.NewObjectID()
	clone := *user
	clone.ID = id
	s.users[id] = &clone
	return id, nil
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", service.ErrNotFound, id.Hex())
	}
	clone := *user
	clone.SavedRecipes = append([]primitive.ObjectID(nil), user.SavedRecipes...)
	return &clone, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: no user for email", service.ErrNotFound)
}

func (s *UserStore) NamesByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make(map[primitive.ObjectID]string)
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			names[id] = u.DisplayName()
		}
	}
	return names, nil
}

func (s *UserStore) AddSavedRecipe(_ context.Context, userID, recipeID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %s", service.ErrNotFound, userID.Hex())
	}
	for _, id := range user.SavedRecipes {
		if id == recipeID {
			return nil
		}
	}
	user.SavedRecipes = append(user.SavedRecipes, recipeID)
	return nil
}

func (s *UserStore) RemoveSavedRecipe(_ context.Context, userID, recipeID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %s", service.ErrNotFound, userID.Hex())
	}
	kept := user.SavedRecipes[:0]
	for _, id := range user.SavedRecipes {
		if id != recipeID {
			kept = append(kept, id)
		}
	}
	user.SavedRecipes = kept
	return nil
}

type CategoryStore struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]*model.Category
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[primitive.ObjectID]*model.Category)}
}

func (s *CategoryStore) Insert(_ context.Context, category *model.Category) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return primitive.NilObjectID, fmt.Errorf("%w: category %q already exists", service.ErrInvalidInput, category.Name)
		}
	}

	id := primitive.NewObjectID()
	clone := *category
	clone.ID = id
	s.categories[id] = &clone
	return id, nil
}

func (s *CategoryStore) FindAll(_ context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Category{}
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *CategoryStore) IDsByNames(_ context.Context, names []string) ([]primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []primitive.ObjectID{}
	for _, c := range s.categories {
		for _, name := range names {
			if strings.EqualFold(c.Name, name) {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	return ids, nil
}
