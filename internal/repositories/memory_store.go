package repositories

import "context"

// NewMemoryStore returns empty in-memory repositories. Data lives for the
// life of the process.
func NewMemoryStore() Store {
	return Store{
		Users:      NewMemoryUserRepository(),
		Items:      NewMemoryItemRepository(),
		Categories: NewMemoryCategoryRepository(),
		Close:      func(context.Context) error { return nil },
	}
}

// remove deletes id from an insertion-order slice.
func remove(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
