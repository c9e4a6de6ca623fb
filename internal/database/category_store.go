package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cookbookhq/backend/internal/model"
	"github.com/cookbookhq/backend/internal/service"
)

// CategoryStore is the MongoDB implementation of service.CategoryStore.
type CategoryStore struct {
	col *mongo.Collection
}

func NewCategoryStore(m *Mongo) *CategoryStore {
	return &CategoryStore{col: m.db.Collection(collectionCategories)}
}

func (s *CategoryStore) Insert(ctx context.Context, category *model.Category) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("%w: category %q already exists", service.ErrInvalidInput, category.Name)
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *CategoryStore) FindAll(ctx context.Context) ([]model.Category, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	categories := []model.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// IDsByNames matches names case-insensitively via a strength-2 collation,
// the same collation the unique name index uses.
func (s *CategoryStore) IDsByNames(ctx context.Context, names []string) ([]primitive.ObjectID, error) {
	cursor, err := s.col.Find(ctx, bson.M{"name": bson.M{"$in": names}},
		options.Find().
			SetCollation(&options.Collation{Locale: "en", Strength: 2}).
			SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids, nil
}
