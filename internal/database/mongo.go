package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cookbookhq/backend/config"
	"github.com/cookbookhq/backend/internal/pkg/logger"
)

const (
	collectionRecipes    = "recipes"
	collectionCategories = "categories"
	collectionUsers      = "users"

	connectTimeout = 10 * time.Second
)

// Mongo wraps the client and the application database handle.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB, verifies the connection and makes sure the indexes
// the stores rely on exist.
func Connect(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	m := &Mongo{client: client, db: client.Database(cfg.MongoDatabase)}
	if err := m.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	log.Info("connected to mongodb", "database", cfg.MongoDatabase)
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(collectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = m.db.Collection(collectionCategories).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})
	if err != nil {
		return fmt.Errorf("create categories name index: %w", err)
	}

	_, err = m.db.Collection(collectionRecipes).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "categories", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create recipe indexes: %w", err)
	}
	return nil
}

// Database exposes the raw handle for store constructors.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// HealthCheck verifies the server is still reachable.
func (m *Mongo) HealthCheck(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close releases the underlying connections.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
