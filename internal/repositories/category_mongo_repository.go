package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shelves/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCategoryRepository is a MongoDB implementation of CategoryRepository.
// The item snapshot is stored as an embedded sub-document.
type MongoCategoryRepository struct {
	coll *mongo.Collection
}

// NewMongoCategoryRepository creates a new instance of MongoCategoryRepository.
func NewMongoCategoryRepository(coll *mongo.Collection) *MongoCategoryRepository {
	return &MongoCategoryRepository{coll: coll}
}

// GetAll retrieves every category in insertion order.
func (r *MongoCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	return r.find(ctx, bson.M{})
}

// GetByName retrieves every category carrying label name.
func (r *MongoCategoryRepository) GetByName(ctx context.Context, name string) ([]models.Category, error) {
	return r.find(ctx, bson.M{"name": name})
}

func (r *MongoCategoryRepository) find(ctx context.Context, filter bson.M) ([]models.Category, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by its own ID.
func (r *MongoCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// Create inserts category at version 1.
func (r *MongoCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.Version = 1
	category.CreatedAt = time.Now().UTC()
	category.UpdatedAt = category.CreatedAt
	if _, err := r.coll.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update replaces label and snapshot, matching on both id and version.
func (r *MongoCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": category.ID, "version": category.Version},
		bson.M{
			"$set": bson.M{"name": category.Name, "item": category.Item, "updatedAt": now},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, category.ID); err != nil {
			return err
		}
		return fmt.Errorf("category with ID %s: %w", category.ID, ErrVersionConflict)
	}
	category.Version++
	category.UpdatedAt = now
	return nil
}

// Delete deletes a category by its ID.
func (r *MongoCategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
