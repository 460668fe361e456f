package services

import (
	"context"
	"errors"
	"fmt"

	"shelves/internal/models"
	"shelves/internal/repositories"
	"shelves/internal/validation"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	categories repositories.CategoryRepository
	items      repositories.ItemRepository
	validator  *validation.Validator
	events     EventPublisher
}

// NewCategoryService creates a new CategoryService. events may be nil.
func NewCategoryService(categories repositories.CategoryRepository, items repositories.ItemRepository, validator *validation.Validator, events EventPublisher) *CategoryService {
	return &CategoryService{
		categories: categories,
		items:      items,
		validator:  validator,
		events:     events,
	}
}

// List retrieves all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

// FindByItemID returns the first category whose embedded snapshot has
// itemID. It loads the whole collection and scans it linearly, so every
// get, update and delete costs O(n) in the number of categories.
func (s *CategoryService) FindByItemID(ctx context.Context, itemID string) (*models.Category, error) {
	all, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	for i := range all {
		if all[i].Item.ID == itemID {
			return &all[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "category", Key: itemID}
}

// Create labels a snapshot of the item referenced by payload.ItemID.
func (s *CategoryService) Create(ctx context.Context, payload validation.CategoryPayload) (*models.Category, error) {
	if err := check(s.validator, payload); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, payload.ItemID)
	if err != nil {
		return nil, lookupErr(err, "item", payload.ItemID)
	}

	category := &models.Category{
		Name: payload.Name,
		Item: item.Snapshot(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	publishEvent(s.events, "category.created", category.ID)
	return category, nil
}

// Update finds the category embedding itemID and replaces its label and its
// snapshot with a fresh copy of the item named by payload.ItemID. Nothing is
// written when either lookup fails.
func (s *CategoryService) Update(ctx context.Context, itemID string, payload validation.CategoryPayload) (*models.Category, error) {
	if err := check(s.validator, payload); err != nil {
		return nil, err
	}

	category, err := s.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, payload.ItemID)
	if err != nil {
		return nil, lookupErr(err, "item", payload.ItemID)
	}

	category.Name = payload.Name
	category.Item = item.Snapshot()
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrStaleWrite
		}
		return nil, lookupErr(err, "category", itemID)
	}
	publishEvent(s.events, "category.updated", category.ID)
	return category, nil
}

// Remove deletes the category embedding itemID and returns it.
func (s *CategoryService) Remove(ctx context.Context, itemID string) (*models.Category, error) {
	category, err := s.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Delete(ctx, category.ID); err != nil {
		return nil, lookupErr(err, "category", itemID)
	}
	publishEvent(s.events, "category.deleted", category.ID)
	return category, nil
}
