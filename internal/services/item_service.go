package services

import (
	"context"
	"fmt"

	"shelves/internal/models"
	"shelves/internal/repositories"
	"shelves/internal/validation"
)

// ItemService handles business logic related to catalog items.
type ItemService struct {
	repo      repositories.ItemRepository
	validator *validation.Validator
	events    EventPublisher
}

// NewItemService creates a new ItemService. events may be nil.
func NewItemService(repo repositories.ItemRepository, validator *validation.Validator, events EventPublisher) *ItemService {
	return &ItemService{
		repo:      repo,
		validator: validator,
		events:    events,
	}
}

// List retrieves all items.
func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	return s.repo.GetAll(ctx)
}

// Get retrieves a single item by its ID.
func (s *ItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "item", id)
	}
	return item, nil
}

// Create validates payload and stores a new item.
func (s *ItemService) Create(ctx context.Context, payload validation.ItemPayload) (*models.Item, error) {
	if err := check(s.validator, payload); err != nil {
		return nil, err
	}

	item := &models.Item{Name: payload.Name}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	publishEvent(s.events, "item.created", item.ID)
	return item, nil
}

// Update renames an existing item. Category snapshots already taken of the
// item keep the old name.
func (s *ItemService) Update(ctx context.Context, id string, payload validation.ItemPayload) (*models.Item, error) {
	if err := check(s.validator, payload); err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = payload.Name
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, lookupErr(err, "item", id)
	}
	publishEvent(s.events, "item.updated", item.ID)
	return item, nil
}

// Remove deletes an item and returns it as it was.
func (s *ItemService) Remove(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupErr(err, "item", id)
	}
	publishEvent(s.events, "item.deleted", item.ID)
	return item, nil
}
