package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelves/internal/middleware"
	"shelves/internal/services"
	"shelves/internal/validation"
)

// CategoryHandler handles HTTP requests for categories. Single categories
// are addressed by the id of the item they embed.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Routes is the category permission table.
func (h *CategoryHandler) Routes() []Route {
	return []Route{
		{fiber.MethodGet, "/categories", middleware.Public, h.HandleList},
		{fiber.MethodGet, "/categories/:itemId", middleware.Public, h.HandleGet},
		{fiber.MethodPost, "/categories", middleware.Admin, h.HandleCreate},
		{fiber.MethodPut, "/categories/:itemId", middleware.Admin, h.HandleUpdate},
		{fiber.MethodDelete, "/categories/:itemId", middleware.Admin, h.HandleDelete},
	}
}

// RegisterRoutes registers the category routes with the router.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	mount(router, guard, h.Routes())
}

// HandleList retrieves all categories.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleGet retrieves the category embedding the item in the path.
func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	category, err := h.service.FindByItemID(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

// HandleCreate labels an item.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var payload validation.CategoryPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	category, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

// HandleUpdate relabels the category embedding the item in the path.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	var payload validation.CategoryPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	category, err := h.service.Update(c.UserContext(), c.Params("itemId"), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"category": category})
}

// HandleDelete removes the category embedding the item in the path.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	category, err := h.service.Remove(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}
