package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"shelves/internal/models"
	"shelves/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stores returns every backend that can run without external services.
func stores(t *testing.T) map[string]repositories.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := repositories.OpenGORM("sqlite", dsn)
	require.NoError(t, err)
	sqliteStore := repositories.NewGORMStore(db)
	t.Cleanup(func() { _ = sqliteStore.Close(context.Background()) })

	return map[string]repositories.Store{
		"memory": repositories.NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestItemRepository(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			repo := store.Items

			milk := &models.Item{Name: "milk"}
			require.NoError(t, repo.Create(ctx, milk))
			assert.NotEmpty(t, milk.ID)
			require.NoError(t, repo.Create(ctx, &models.Item{Name: "bread"}))

			items, err := repo.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, "bread", items[0].Name)
			assert.Equal(t, "milk", items[1].Name)

			milk.Name = "oat milk"
			require.NoError(t, repo.Update(ctx, milk))
			got, err := repo.GetByID(ctx, milk.ID)
			require.NoError(t, err)
			assert.Equal(t, "oat milk", got.Name)

			err = repo.Update(ctx, &models.Item{ID: uuid.New().String(), Name: "ghost"})
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			require.NoError(t, repo.Delete(ctx, milk.ID))
			_, err = repo.GetByID(ctx, milk.ID)
			assert.ErrorIs(t, err, repositories.ErrNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, milk.ID), repositories.ErrNotFound)
		})
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			repo := store.Users

			user := &models.User{Username: "user22", Email: "user22@example.com", Password: "hash"}
			require.NoError(t, repo.Create(ctx, user))
			assert.NotEmpty(t, user.ID)

			dup := &models.User{Username: "user23", Email: "user22@example.com", Password: "hash"}
			assert.ErrorIs(t, repo.Create(ctx, dup), repositories.ErrDuplicate)

			other := &models.User{Username: "user24", Email: "user24@example.com", Password: "hash"}
			require.NoError(t, repo.Create(ctx, other))
			other.Email = "user22@example.com"
			assert.ErrorIs(t, repo.Update(ctx, other), repositories.ErrDuplicate)
			require.NoError(t, repo.Delete(ctx, other.ID))

			got, err := repo.GetByEmail(ctx, "user22@example.com")
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)

			_, err = repo.GetByEmail(ctx, "USER22@example.com")
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			user.IsAdmin = true
			user.Username = "renamed"
			require.NoError(t, repo.Update(ctx, user))
			got, err = repo.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.True(t, got.IsAdmin)
			assert.Equal(t, "renamed", got.Username)

			users, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, users, 1)

			require.NoError(t, repo.Delete(ctx, user.ID))
			assert.ErrorIs(t, repo.Delete(ctx, user.ID), repositories.ErrNotFound)
		})
	}
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			repo := store.Categories

			milk := models.ItemSnapshot{ID: uuid.New().String(), Name: "milk"}
			soap := models.ItemSnapshot{ID: uuid.New().String(), Name: "soap"}

			food := &models.Category{Name: models.CategoryFood, Item: milk}
			require.NoError(t, repo.Create(ctx, food))
			assert.Equal(t, 1, food.Version)
			require.NoError(t, repo.Create(ctx, &models.Category{Name: models.CategoryHygiene, Item: soap}))

			named, err := repo.GetByName(ctx, models.CategoryFood)
			require.NoError(t, err)
			require.Len(t, named, 1)
			assert.Equal(t, milk, named[0].Item)

			stale := *food
			food.Item = soap
			require.NoError(t, repo.Update(ctx, food))
			assert.Equal(t, 2, food.Version)

			stale.Name = "drinks"
			assert.ErrorIs(t, repo.Update(ctx, &stale), repositories.ErrVersionConflict)

			got, err := repo.GetByID(ctx, food.ID)
			require.NoError(t, err)
			assert.Equal(t, models.CategoryFood, got.Name)
			assert.Equal(t, soap, got.Item)
			assert.Equal(t, 2, got.Version)

			missing := &models.Category{ID: uuid.New().String(), Version: 1}
			assert.ErrorIs(t, repo.Update(ctx, missing), repositories.ErrNotFound)

			all, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2)

			require.NoError(t, repo.Delete(ctx, food.ID))
			assert.ErrorIs(t, repo.Delete(ctx, food.ID), repositories.ErrNotFound)
		})
	}
}
