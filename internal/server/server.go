// Package server assembles the fiber application from its dependencies.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"shelves/internal/config"
	"shelves/internal/credentials"
	"shelves/internal/handlers"
	"shelves/internal/middleware"
	"shelves/internal/repositories"
	"shelves/internal/services"
	"shelves/internal/validation"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Store  repositories.Store
	Tokens *credentials.Tokens
	Hasher services.PasswordHasher
	// Events is nil when no broker is configured.
	Events services.EventPublisher
	Logger *log.Logger
}

// App bundles the fiber app with the services main needs at startup.
type App struct {
	*fiber.App
	Users *services.UserService
}

// New builds the application: request id, request logging, panic recovery,
// the /api routes and the health check.
func New(appName string, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	validator := validation.New()
	itemService := services.NewItemService(deps.Store.Items, validator, deps.Events)
	categoryService := services.NewCategoryService(deps.Store.Categories, deps.Store.Items, validator, deps.Events)
	shelfService := services.NewShelfService(deps.Store.Categories)
	userService := services.NewUserService(deps.Store.Users, validator, deps.Hasher, deps.Tokens, deps.Events)
	authService := services.NewAuthService(deps.Store.Users, validator, deps.Hasher, deps.Tokens)

	app := fiber.New(fiber.Config{
		AppName:               appName,
		ErrorHandler:          ErrorHandler(logger),
		DisableStartupMessage: true,
	})
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())

	guard := middleware.NewGuard(deps.Tokens)
	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api, guard)
	handlers.NewUserHandler(userService).RegisterRoutes(api, guard)
	handlers.NewItemHandler(itemService).RegisterRoutes(api, guard)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, guard)
	handlers.NewShelfHandler(shelfService).RegisterRoutes(api, guard)

	events := "disabled"
	if deps.Events != nil {
		events = "enabled"
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": events,
		})
	})

	return &App{App: app, Users: userService}
}

// ErrorHandler answers every error that reaches fiber. A *fiber.Error keeps
// its status and message; anything else is logged and answered with a
// generic 500.
func ErrorHandler(logger *log.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		logger.WithError(err).WithFields(log.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": c.Locals("requestid"),
		}).Error("Request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something failed.",
		})
	}
}

// OpenStore opens the repositories for the configured database driver.
func OpenStore(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	switch cfg.DatabaseDriver {
	case "memory":
		return repositories.NewMemoryStore(), nil
	case "mongodb":
		return repositories.NewMongoStore(ctx, cfg.DatabaseDSN, cfg.MongoDatabase)
	case "postgres", "sqlite":
		db, err := repositories.OpenGORM(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return repositories.Store{}, err
		}
		return repositories.NewGORMStore(db), nil
	default:
		return repositories.Store{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}
