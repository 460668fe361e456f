package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelves/internal/credentials"
	"shelves/internal/middleware"
	"shelves/internal/repositories"
	"shelves/internal/server"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
)

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type testEnv struct {
	t      *testing.T
	app    *server.App
	tokens *credentials.Tokens
}

// backends lists the stores every scenario runs against.
var backends = map[string]func(t *testing.T) repositories.Store{
	"memory": func(*testing.T) repositories.Store { return repositories.NewMemoryStore() },
	"sqlite": func(t *testing.T) repositories.Store {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
		db, err := repositories.OpenGORM("sqlite", dsn)
		require.NoError(t, err)
		return repositories.NewGORMStore(db)
	},
}

// setupApp builds the full application over store and seeds an admin.
func setupApp(t *testing.T, store repositories.Store) *testEnv {
	t.Helper()
	tokens, err := credentials.NewTokens("test_jwt_secret")
	require.NoError(t, err)

	logger := log.New()
	logger.SetOutput(io.Discard)

	app := server.New("shelves-test", server.Deps{
		Store:  store,
		Tokens: tokens,
		Hasher: credentials.NewHasher(credentials.HashCost),
		Logger: logger,
	})
	require.NoError(t, app.Users.EnsureAdmin(context.Background(), "administrator", adminEmail, adminPassword))
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return &testEnv{t: t, app: app, tokens: tokens}
}

// forEachBackend runs fn once per store.
func forEachBackend(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, setupApp(t, open(t)))
		})
	}
}

type response struct {
	status int
	header http.Header
	raw    string
	body   map[string]interface{}
}

func (e *testEnv) do(method, path, token string, payload interface{}) response {
	e.t.Helper()
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(e.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := e.app.Test(req, -1) // -1 for no timeout
	require.NoError(e.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	out := response{status: resp.StatusCode, header: resp.Header, raw: string(raw)}
	if len(raw) > 0 {
		require.NoError(e.t, json.Unmarshal(raw, &out.body), string(raw))
	}
	return out
}

func (e *testEnv) login(email, password string) string {
	e.t.Helper()
	resp := e.do(fiber.MethodPost, "/api/auth", "", map[string]string{"email": email, "password": password})
	require.Equal(e.t, fiber.StatusAccepted, resp.status, resp.raw)
	return resp.body["token"].(string)
}

func (e *testEnv) adminToken() string {
	return e.login(adminEmail, adminPassword)
}

func (e *testEnv) userToken() string {
	e.t.Helper()
	resp := e.do(fiber.MethodPost, "/api/users", "", map[string]interface{}{
		"username": "regular",
		"email":    "regular@example.com",
		"password": "password123",
	})
	require.Equal(e.t, fiber.StatusCreated, resp.status, resp.raw)
	return resp.header.Get(middleware.TokenHeader)
}

func (e *testEnv) createItem(token, name string) string {
	e.t.Helper()
	resp := e.do(fiber.MethodPost, "/api/items", token, map[string]string{"name": name})
	require.Equal(e.t, fiber.StatusCreated, resp.status, resp.raw)
	return resp.body["item"].(map[string]interface{})["id"].(string)
}

func TestRegisterAndLogin(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		resp := env.do(fiber.MethodPost, "/api/users", "", map[string]interface{}{
			"username": "testuser",
			"email":    "test@example.com",
			"password": "password123",
			"isAdmin":  true,
		})
		require.Equal(t, fiber.StatusCreated, resp.status, resp.raw)
		assert.NotEmpty(t, resp.header.Get(middleware.TokenHeader))
		user := resp.body["user"].(map[string]interface{})
		assert.Equal(t, "testuser", user["username"])
		assert.Equal(t, false, user["isAdmin"])
		assert.NotContains(t, resp.raw, "password")

		identity, err := env.tokens.Verify(resp.header.Get(middleware.TokenHeader))
		require.NoError(t, err)
		assert.Equal(t, user["id"], identity.SubjectID)
		assert.False(t, identity.IsAdmin)

		// Duplicate email.
		resp = env.do(fiber.MethodPost, "/api/users", "", map[string]interface{}{
			"username": "otheruser",
			"email":    "test@example.com",
			"password": "password456",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.status)
		assert.Equal(t, "User already registered.", resp.body["message"])

		token := env.login("test@example.com", "password123")
		assert.NotEmpty(t, token)

		wrong := env.do(fiber.MethodPost, "/api/auth", "", map[string]string{"email": "test@example.com", "password": "wrong-password"})
		unknown := env.do(fiber.MethodPost, "/api/auth", "", map[string]string{"email": "ghost@example.com", "password": "password123"})
		assert.Equal(t, fiber.StatusBadRequest, wrong.status)
		assert.Equal(t, wrong.status, unknown.status)
		assert.Equal(t, wrong.raw, unknown.raw)
	})
}

func TestLongPasswords(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		password := strings.Repeat("p", 100)
		resp := env.do(fiber.MethodPost, "/api/users", "", map[string]string{
			"username": "longpw",
			"email":    "longpw@example.com",
			"password": password,
		})
		require.Equal(t, fiber.StatusCreated, resp.status, resp.raw)
		assert.NotContains(t, resp.raw, password)
		id := resp.body["user"].(map[string]interface{})["id"].(string)

		assert.NotEmpty(t, env.login("longpw@example.com", password))
		wrong := env.do(fiber.MethodPost, "/api/auth", "", map[string]string{
			"email":    "longpw@example.com",
			"password": strings.Repeat("p", 99) + "q",
		})
		assert.Equal(t, fiber.StatusBadRequest, wrong.status)

		longest := strings.Repeat("x", 1024)
		resp = env.do(fiber.MethodPut, "/api/users/"+id, env.adminToken(), map[string]string{
			"username": "longpw",
			"email":    "longpw@example.com",
			"password": longest,
		})
		require.Equal(t, fiber.StatusAccepted, resp.status, resp.raw)
		assert.NotEmpty(t, env.login("longpw@example.com", longest))
	})
}

func TestValidationMessages(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		resp := env.do(fiber.MethodPost, "/api/users", "", map[string]string{
			"username": "abc",
			"email":    "abc@example.com",
			"password": "password123",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.status)
		assert.Equal(t, `"username" length must be at least 5 characters long`, resp.body["message"])

		resp = env.do(fiber.MethodPost, "/api/items", env.adminToken(), map[string]string{})
		assert.Equal(t, fiber.StatusBadRequest, resp.status)
		assert.Equal(t, `"name" is required`, resp.body["message"])
	})
}

func TestUsersNeverExposePasswords(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		env.userToken()

		resp := env.do(fiber.MethodGet, "/api/users", "", nil)
		require.Equal(t, fiber.StatusOK, resp.status)
		assert.Len(t, resp.body["users"], 2)
		assert.NotContains(t, resp.raw, "password")
		assert.NotContains(t, resp.raw, "$2a$")
	})
}

func TestAccessControl(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		resp := env.do(fiber.MethodPost, "/api/items", "", map[string]string{"name": "milk"})
		assert.Equal(t, fiber.StatusUnauthorized, resp.status)
		assert.Equal(t, "Access denied. No token provided.", resp.body["message"])

		resp = env.do(fiber.MethodPost, "/api/items", "not-a-token", map[string]string{"name": "milk"})
		assert.Equal(t, fiber.StatusUnauthorized, resp.status)
		assert.Equal(t, "The token is expired or invalid.", resp.body["message"])

		userToken := env.userToken()
		resp = env.do(fiber.MethodPost, "/api/items", userToken, map[string]string{"name": "milk"})
		assert.Equal(t, fiber.StatusForbidden, resp.status)
		assert.Equal(t, "Access denied.", resp.body["message"])

		resp = env.do(fiber.MethodGet, "/api/shelves/categories", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.status)

		resp = env.do(fiber.MethodGet, "/api/shelves/categories", userToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.status)

		resp = env.do(fiber.MethodGet, "/api/items", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.status)
	})
}

func TestItemLifecycle(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		admin := env.adminToken()

		resp := env.do(fiber.MethodPost, "/api/items", admin, map[string]string{"name": "milk"})
		require.Equal(t, fiber.StatusCreated, resp.status, resp.raw)
		assert.Contains(t, resp.raw, `"name":"milk"`)
		id := resp.body["item"].(map[string]interface{})["id"].(string)

		resp = env.do(fiber.MethodGet, "/api/items", "", nil)
		require.Equal(t, fiber.StatusOK, resp.status)
		assert.Equal(t, 1, strings.Count(resp.raw, `"name":"milk"`))

		resp = env.do(fiber.MethodPut, "/api/items/"+id, admin, map[string]string{"name": "oat milk"})
		assert.Equal(t, fiber.StatusAccepted, resp.status)
		assert.Equal(t, "oat milk", resp.body["item"].(map[string]interface{})["name"])

		resp = env.do(fiber.MethodGet, "/api/items/"+id, "", nil)
		assert.Equal(t, fiber.StatusOK, resp.status)
		assert.Equal(t, "oat milk", resp.body["item"].(map[string]interface{})["name"])

		resp = env.do(fiber.MethodDelete, "/api/items/"+id, admin, nil)
		assert.Equal(t, fiber.StatusOK, resp.status)

		resp = env.do(fiber.MethodGet, "/api/items/"+id, "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.status)
		assert.Equal(t, "The item does not exist.", resp.body["message"])

		resp = env.do(fiber.MethodGet, "/api/items/not-even-a-uuid", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.status)
	})
}

func TestCategoriesAndShelves(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		admin := env.adminToken()
		milk := env.createItem(admin, "milk")
		soap := env.createItem(admin, "soap")
		bread := env.createItem(admin, "bread")

		resp := env.do(fiber.MethodPost, "/api/categories", admin, map[string]string{"name": "food", "itemId": milk})
		require.Equal(t, fiber.StatusCreated, resp.status, resp.raw)
		category := resp.body["category"].(map[string]interface{})
		assert.Equal(t, "milk", category["item"].(map[string]interface{})["name"])
		assert.Equal(t, float64(1), category["version"])

		resp = env.do(fiber.MethodPost, "/api/categories", admin, map[string]string{"name": "hygiene", "itemId": soap})
		require.Equal(t, fiber.StatusCreated, resp.status, resp.raw)

		resp = env.do(fiber.MethodPost, "/api/categories", admin, map[string]string{"name": "food", "itemId": uuid.NewString()})
		assert.Equal(t, fiber.StatusNotFound, resp.status)
		assert.Equal(t, "The item does not exist.", resp.body["message"])

		resp = env.do(fiber.MethodGet, "/api/categories/"+soap, "", nil)
		require.Equal(t, fiber.StatusOK, resp.status)
		assert.Equal(t, "hygiene", resp.body["category"].(map[string]interface{})["name"])

		user := env.userToken()
		resp = env.do(fiber.MethodGet, "/api/shelves/categories/food", user, nil)
		require.Equal(t, fiber.StatusOK, resp.status, resp.raw)
		assert.Equal(t, float64(1), resp.body["items"])
		assert.Equal(t, []interface{}{"milk"}, resp.body["categories"])

		resp = env.do(fiber.MethodGet, "/api/shelves/categories/food/milk", user, nil)
		require.Equal(t, fiber.StatusOK, resp.status, resp.raw)
		assert.Equal(t, []interface{}{"milk"}, resp.body["products"])

		resp = env.do(fiber.MethodGet, "/api/shelves/categories/food/cheese", user, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.status)
		assert.Equal(t, "The given item does not exist", resp.body["message"])

		resp = env.do(fiber.MethodGet, "/api/shelves/categories/toys", user, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.status)
		assert.Equal(t, "The given category was not found.", resp.body["message"])

		// Renaming the source item leaves the snapshot untouched.
		resp = env.do(fiber.MethodPut, "/api/items/"+milk, admin, map[string]string{"name": "oat milk"})
		require.Equal(t, fiber.StatusAccepted, resp.status)
		resp = env.do(fiber.MethodGet, "/api/categories/"+milk, "", nil)
		assert.Equal(t, "milk", resp.body["category"].(map[string]interface{})["item"].(map[string]interface{})["name"])

		// Update to an unknown replacement item changes nothing.
		resp = env.do(fiber.MethodPut, "/api/categories/"+milk, admin, map[string]string{"name": "dairy", "itemId": uuid.NewString()})
		assert.Equal(t, fiber.StatusNotFound, resp.status)
		resp = env.do(fiber.MethodGet, "/api/categories/"+milk, "", nil)
		assert.Equal(t, "food", resp.body["category"].(map[string]interface{})["name"])

		// Update of a category no item id matches changes nothing.
		before := env.do(fiber.MethodGet, "/api/categories", "", nil)
		resp = env.do(fiber.MethodPut, "/api/categories/"+uuid.NewString(), admin, map[string]string{"name": "dairy", "itemId": bread})
		assert.Equal(t, fiber.StatusNotFound, resp.status)
		assert.Equal(t, "The category does not exist.", resp.body["message"])
		after := env.do(fiber.MethodGet, "/api/categories", "", nil)
		assert.Equal(t, before.raw, after.raw)

		resp = env.do(fiber.MethodPut, "/api/categories/"+milk, admin, map[string]string{"name": "bakery", "itemId": bread})
		require.Equal(t, fiber.StatusAccepted, resp.status, resp.raw)
		updated := resp.body["category"].(map[string]interface{})
		assert.Equal(t, "bread", updated["item"].(map[string]interface{})["name"])
		assert.Equal(t, float64(2), updated["version"])

		resp = env.do(fiber.MethodGet, "/api/categories/"+milk, "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.status)
		assert.Equal(t, "The category does not exist.", resp.body["message"])

		resp = env.do(fiber.MethodGet, "/api/shelves/categories", user, nil)
		require.Equal(t, fiber.StatusOK, resp.status)
		shelves := resp.body["shelves"].(map[string]interface{})
		assert.Equal(t, map[string]interface{}{"items": float64(0), "categories": []interface{}{}}, shelves["food"])
		assert.Equal(t, map[string]interface{}{"items": float64(1), "categories": []interface{}{"bread"}}, shelves["bakery"])

		resp = env.do(fiber.MethodDelete, "/api/categories/"+bread, admin, nil)
		assert.Equal(t, fiber.StatusOK, resp.status)
		resp = env.do(fiber.MethodDelete, "/api/categories/"+bread, admin, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.status)
	})
}

func TestUserAdministration(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		admin := env.adminToken()
		env.userToken()

		resp := env.do(fiber.MethodGet, "/api/users", "", nil)
		require.Equal(t, fiber.StatusOK, resp.status)
		var id string
		for _, u := range resp.body["users"].([]interface{}) {
			user := u.(map[string]interface{})
			if user["email"] == "regular@example.com" {
				id = user["id"].(string)
			}
		}
		require.NotEmpty(t, id)

		resp = env.do(fiber.MethodPut, "/api/users/"+id, admin, map[string]interface{}{
			"username": "promoted",
			"email":    "regular@example.com",
			"password": "password123",
			"isAdmin":  true,
		})
		require.Equal(t, fiber.StatusAccepted, resp.status, resp.raw)
		assert.Equal(t, true, resp.body["user"].(map[string]interface{})["isAdmin"])

		identity, err := env.tokens.Verify(env.login("regular@example.com", "password123"))
		require.NoError(t, err)
		assert.True(t, identity.IsAdmin)

		resp = env.do(fiber.MethodDelete, "/api/users/"+id, admin, nil)
		assert.Equal(t, fiber.StatusOK, resp.status)
		resp = env.do(fiber.MethodGet, "/api/users/"+id, "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.status)
		assert.Equal(t, "This user does not exist.", resp.body["message"])
	})
}

func TestMalformedBody(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		req := httptest.NewRequest(fiber.MethodPost, "/api/auth", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
