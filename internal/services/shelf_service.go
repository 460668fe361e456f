package services

import (
	"context"

	"shelves/internal/models"
	"shelves/internal/repositories"
)

// ShelfService builds read-only shelf views from the category collection.
type ShelfService struct {
	categories repositories.CategoryRepository
}

// NewShelfService creates a new ShelfService.
func NewShelfService(categories repositories.CategoryRepository) *ShelfService {
	return &ShelfService{categories: categories}
}

// Overview groups every category by label. The food and hygiene shelves are
// always present, possibly empty.
func (s *ShelfService) Overview(ctx context.Context) (map[string]models.Shelf, error) {
	all, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	shelves := map[string]models.Shelf{
		models.CategoryFood:    {Categories: []string{}},
		models.CategoryHygiene: {Categories: []string{}},
	}
	for _, c := range all {
		shelf, ok := shelves[c.Name]
		if !ok {
			shelf.Categories = []string{}
		}
		shelf.Categories = append(shelf.Categories, c.Item.Name)
		shelf.Items = len(shelf.Categories)
		shelves[c.Name] = shelf
	}
	return shelves, nil
}

// ByCategory lists the item names labelled categoryName.
func (s *ShelfService) ByCategory(ctx context.Context, categoryName string) (models.Shelf, error) {
	named, err := s.categories.GetByName(ctx, categoryName)
	if err != nil {
		return models.Shelf{}, err
	}
	if len(named) == 0 {
		return models.Shelf{}, &NotFoundError{Resource: "shelf", Key: categoryName}
	}

	names := make([]string, 0, len(named))
	for _, c := range named {
		names = append(names, c.Item.Name)
	}
	return models.Shelf{Items: len(names), Categories: names}, nil
}

// ByCategoryAndItem lists the products named itemName on the categoryName
// shelf, one entry per matching category.
func (s *ShelfService) ByCategoryAndItem(ctx context.Context, categoryName, itemName string) ([]string, error) {
	shelf, err := s.ByCategory(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	var products []string
	for _, name := range shelf.Categories {
		if name == itemName {
			products = append(products, name)
		}
	}
	if len(products) == 0 {
		return nil, &NotFoundError{Resource: "product", Key: itemName}
	}
	return products, nil
}
