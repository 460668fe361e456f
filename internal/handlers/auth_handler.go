package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelves/internal/middleware"
	"shelves/internal/services"
	"shelves/internal/validation"
)

// AuthHandler exchanges credentials for a token.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Routes is the authentication permission table.
func (h *AuthHandler) Routes() []Route {
	return []Route{
		{fiber.MethodPost, "/auth", middleware.Public, h.HandleLogin},
	}
}

// RegisterRoutes registers the authentication routes with the router.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	mount(router, guard, h.Routes())
}

// HandleLogin issues a token for valid credentials.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var payload validation.LoginPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	token, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"token":   token,
		"message": "Login successful",
	})
}
