package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelves/internal/middleware"
	"shelves/internal/services"
	"shelves/internal/validation"
)

// UserHandler handles registration and user administration.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Routes is the user permission table.
func (h *UserHandler) Routes() []Route {
	return []Route{
		{fiber.MethodGet, "/users", middleware.Public, h.HandleList},
		{fiber.MethodGet, "/users/:id", middleware.Public, h.HandleGet},
		{fiber.MethodPost, "/users", middleware.Public, h.HandleRegister},
		{fiber.MethodPut, "/users/:id", middleware.Admin, h.HandleUpdate},
		{fiber.MethodDelete, "/users/:id", middleware.Admin, h.HandleDelete},
	}
}

// RegisterRoutes registers the user routes with the router.
func (h *UserHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	mount(router, guard, h.Routes())
}

// HandleList retrieves all users.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// HandleGet retrieves a single user by ID.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// HandleRegister creates a user and returns its token in the x-auth-token
// header.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var payload validation.UserPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	user, token, err := h.service.Register(c.UserContext(), payload)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(middleware.TokenHeader, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// HandleUpdate overwrites a user's profile.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var payload validation.UserPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	user, err := h.service.Update(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"user": user})
}

// HandleDelete removes a user.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	user, err := h.service.Remove(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}
