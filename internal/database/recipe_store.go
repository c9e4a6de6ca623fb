package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cookbookhq/backend/internal/model"
	"github.com/cookbookhq/backend/internal/service"
)

// RecipeStore is the MongoDB implementation of service.RecipeStore.
type RecipeStore struct {
	col *mongo.Collection
}

func NewRecipeStore(m *Mongo) *RecipeStore {
	return &RecipeStore{col: m.db.Collection(collectionRecipes)}
}

func (s *RecipeStore) Insert(ctx context.Context, recipe *model.Recipe) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, recipe)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *RecipeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: recipe %s", service.ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeStore) FindAll(ctx context.Context) ([]model.Recipe, error) {
	return s.find(ctx, bson.M{})
}

func (s *RecipeStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]model.Recipe, error) {
	return s.find(ctx, bson.M{"user": ownerID})
}

func (s *RecipeStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Recipe, error) {
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *RecipeStore) FindFiltered(ctx context.Context, filter service.RecipeFilter) ([]model.Recipe, error) {
	query := bson.M{}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$in": filter.Tags}
	}
	if len(filter.CategoryIDs) > 0 {
		query["categories"] = bson.M{"$in": filter.CategoryIDs}
	}
	return s.find(ctx, query)
}

func (s *RecipeStore) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *RecipeStore) PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: recipe %s", service.ErrNotFound, id.Hex())
	}
	return nil
}

// ReplaceRating drops any prior entry by the same user and appends the new
// one in a single aggregation-pipeline update. The whole replacement is one
// document write, so the at-most-one-entry-per-user invariant holds under
// concurrent requests.
func (s *RecipeStore) ReplaceRating(ctx context.Context, id primitive.ObjectID, entry model.RatingEntry) ([]model.RatingEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "rating", Value: replaceRatingExpr(entry)},
		}}},
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"rating": 1})

	var updated struct {
		Rating []model.RatingEntry `bson:"rating"`
	}
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: recipe %s", service.ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return updated.Rating, nil
}

func (s *RecipeStore) PushCommentAndReplaceRating(ctx context.Context, id primitive.ObjectID, comment model.Comment, entry model.RatingEntry) error {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "comments", Value: bson.D{
				{Key: "$concatArrays", Value: bson.A{
					"$comments",
					bson.A{bson.D{{Key: "user", Value: comment.UserID}, {Key: "comment", Value: comment.Comment}}},
				}},
			}},
			{Key: "rating", Value: replaceRatingExpr(entry)},
		}}},
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, pipeline)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: recipe %s", service.ErrNotFound, id.Hex())
	}
	return nil
}

func (s *RecipeStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "user": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *RecipeStore) find(ctx context.Context, query bson.M) ([]model.Recipe, error) {
	cursor, err := s.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	recipes := []model.Recipe{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// replaceRatingExpr builds the rating array with any entry for entry.UserID
// filtered out and the new entry appended.
func replaceRatingExpr(entry model.RatingEntry) bson.D {
	return bson.D{
		{Key: "$concatArrays", Value: bson.A{
			bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: "$rating"},
				{Key: "as", Value: "r"},
				{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$r.user", entry.UserID}}}},
			}}},
			bson.A{bson.D{{Key: "user", Value: entry.UserID}, {Key: "value", Value: entry.Value}}},
		}},
	}
}
