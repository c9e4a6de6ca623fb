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

// UserStore is the MongoDB implementation of service.UserStore.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(m *Mongo) *UserStore {
	return &UserStore{col: m.db.Collection(collectionUsers)}
}

func (s *UserStore) Insert(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("%w: email already registered", service.ErrInvalidInput)
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", service.ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: no user for email", service.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) NamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"firstname": 1, "lastname": 1}))
	if err != nil {
		return nil, err
	}

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}
	return names, nil
}

// AddSavedRecipe relies on $addToSet for idempotence: bookmarking an
// already-saved recipe leaves the set unchanged.
func (s *UserStore) AddSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"savedRecipes": recipeID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", service.ErrNotFound, userID.Hex())
	}
	return nil
}

// RemoveSavedRecipe pulls the id; removing an absent bookmark is a no-op.
func (s *UserStore) RemoveSavedRecipe(ctx context.Context, userID, recipeID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"savedRecipes": recipeID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", service.ErrNotFound, userID.Hex())
	}
	return nil
}
