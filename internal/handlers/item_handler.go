package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelves/internal/middleware"
	"shelves/internal/services"
	"shelves/internal/validation"
)

// ItemHandler handles HTTP requests for catalog items.
type ItemHandler struct {
	service *services.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// Routes is the item permission table.
func (h *ItemHandler) Routes() []Route {
	return []Route{
		{fiber.MethodGet, "/items", middleware.Public, h.HandleList},
		{fiber.MethodGet, "/items/:id", middleware.Public, h.HandleGet},
		{fiber.MethodPost, "/items", middleware.Admin, h.HandleCreate},
		{fiber.MethodPut, "/items/:id", middleware.Admin, h.HandleUpdate},
		{fiber.MethodDelete, "/items/:id", middleware.Admin, h.HandleDelete},
	}
}

// RegisterRoutes registers the item routes with the router.
func (h *ItemHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	mount(router, guard, h.Routes())
}

// HandleList retrieves all items.
func (h *ItemHandler) HandleList(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleGet retrieves a single item by its ID.
func (h *ItemHandler) HandleGet(c *fiber.Ctx) error {
	item, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item": item})
}

// HandleCreate creates a new item.
func (h *ItemHandler) HandleCreate(c *fiber.Ctx) error {
	var payload validation.ItemPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	item, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": item})
}

// HandleUpdate renames an item.
func (h *ItemHandler) HandleUpdate(c *fiber.Ctx) error {
	var payload validation.ItemPayload
	if ok, err := parseBody(c, &payload); !ok {
		return err
	}

	item, err := h.service.Update(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"item": item})
}

// HandleDelete removes an item.
func (h *ItemHandler) HandleDelete(c *fiber.Ctx) error {
	item, err := h.service.Remove(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item": item})
}
