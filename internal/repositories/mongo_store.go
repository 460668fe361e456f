package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the MongoDB backend.
const (
	usersCollection      = "users"
	itemsCollection      = "items"
	categoriesCollection = "categories"
)

// NewMongoStore connects to uri and returns repositories backed by database.
func NewMongoStore(ctx context.Context, uri, database string) (Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return Store{}, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return Store{}, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	users := db.Collection(usersCollection)
	_, err = users.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return Store{}, fmt.Errorf("failed to create users email index: %w", err)
	}

	return Store{
		Users:      NewMongoUserRepository(users),
		Items:      NewMongoItemRepository(db.Collection(itemsCollection)),
		Categories: NewMongoCategoryRepository(db.Collection(categoriesCollection)),
		Close:      client.Disconnect,
	}, nil
}
