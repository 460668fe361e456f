package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shelves/internal/models"

	"github.com/google/uuid"
)

// MemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type MemoryCategoryRepository struct {
	categories map[string]models.Category
	order      []string
	mu         sync.RWMutex
}

// NewMemoryCategoryRepository creates a new instance of MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: make(map[string]models.Category),
	}
}

// GetAll returns all categories in insertion order.
func (r *MemoryCategoryRepository) GetAll(_ context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Category, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.categories[id])
	}
	return list, nil
}

// GetByID returns a category by its ID.
func (r *MemoryCategoryRepository) GetByID(_ context.Context, id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	return &category, nil
}

// GetByName returns the categories labelled name in insertion order.
func (r *MemoryCategoryRepository) GetByName(_ context.Context, name string) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Category
	for _, id := range r.order {
		if c := r.categories[id]; c.Name == name {
			list = append(list, c)
		}
	}
	return list, nil
}

// Create adds a new category at version 1.
func (r *MemoryCategoryRepository) Create(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.Version = 1
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	r.categories[category.ID] = *category
	r.order = append(r.order, category.ID)
	return nil
}

// Update replaces label and snapshot if the stored version matches.
func (r *MemoryCategoryRepository) Update(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.categories[category.ID]
	if !ok {
		return fmt.Errorf("category with ID %s: %w", category.ID, ErrNotFound)
	}
	if stored.Version != category.Version {
		return fmt.Errorf("category with ID %s: %w", category.ID, ErrVersionConflict)
	}
	stored.Name = category.Name
	stored.Item = category.Item
	stored.Version++
	stored.UpdatedAt = time.Now()
	r.categories[category.ID] = stored
	*category = stored
	return nil
}

// Delete removes a category by its ID.
func (r *MemoryCategoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	delete(r.categories, id)
	r.order = remove(r.order, id)
	return nil
}
