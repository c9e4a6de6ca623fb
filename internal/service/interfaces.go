package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cookbookhq/backend/internal/model"
)

// RecipeFilter narrows recipe queries. Empty slices mean "no constraint";
// both set means both must match (conjunction).
type RecipeFilter struct {
	Tags        []string
	CategoryIDs []primitive.ObjectID
}

// RecipeStore is the document-store access for the recipes collection.
// Every mutation is a single-document update so concurrent writers on the
// same recipe cannot lose each other's sub-collection changes.
type RecipeStore interface {
	Insert(ctx context.Context, recipe *model.Recipe) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error)
	FindAll(ctx context.Context) ([]model.Recipe, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]model.Recipe, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Recipe, error)
	FindFiltered(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)

	// PushComment appends a comment. ErrNotFound when the recipe is absent.
	PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) error
	// ReplaceRating removes any prior rating by the same user and appends the
	// new entry in one atomic update, returning the resulting rating set.
	ReplaceRating(ctx context.Context, id primitive.ObjectID, entry model.RatingEntry) ([]model.RatingEntry, error)
	// PushCommentAndReplaceRating applies both sub-collection mutations as a
	// single document update; partial application cannot occur.
	PushCommentAndReplaceRating(ctx context.Context, id primitive.ObjectID, comment model.Comment, entry model.RatingEntry) error
	// DeleteOwned removes the recipe only when ownerID matches, reporting the
	// number of documents removed.
	DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error)
}

type UserStore interface {
	Insert(ctx context.Context, user *model.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// NamesByIDs resolves user ids to display names (first/last name only).
	NamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
	// AddSavedRecipe is idempotent; the bookmark set never holds duplicates.
	AddSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error
	// RemoveSavedRecipe is a no-op when the recipe is not bookmarked.
	RemoveSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error
}

type CategoryStore interface {
	Insert(ctx context.Context, category *model.Category) (primitive.ObjectID, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	// IDsByNames resolves category names case-insensitively.
	IDsByNames(ctx context.Context, names []string) ([]primitive.ObjectID, error)
}

// Cache is a read-side cache for hot list endpoints. Implementations must
// treat a miss as (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
