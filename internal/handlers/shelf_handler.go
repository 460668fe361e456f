package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelves/internal/middleware"
	"shelves/internal/services"
)

// ShelfHandler serves the read-only shelf views.
type ShelfHandler struct {
	service *services.ShelfService
}

// NewShelfHandler creates a new ShelfHandler.
func NewShelfHandler(service *services.ShelfService) *ShelfHandler {
	return &ShelfHandler{service: service}
}

// Routes is the shelf permission table. Every view needs a token.
func (h *ShelfHandler) Routes() []Route {
	return []Route{
		{fiber.MethodGet, "/shelves/categories", middleware.Authenticated, h.HandleOverview},
		{fiber.MethodGet, "/shelves/categories/:categoryName", middleware.Authenticated, h.HandleByCategory},
		{fiber.MethodGet, "/shelves/categories/:categoryName/:itemName", middleware.Authenticated, h.HandleByCategoryAndItem},
	}
}

// RegisterRoutes registers the shelf routes with the router.
func (h *ShelfHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	mount(router, guard, h.Routes())
}

// HandleOverview lists every shelf with the item names on it.
func (h *ShelfHandler) HandleOverview(c *fiber.Ctx) error {
	shelves, err := h.service.Overview(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"shelves": shelves})
}

// HandleByCategory lists the item names labelled with the category in the path.
func (h *ShelfHandler) HandleByCategory(c *fiber.Ctx) error {
	shelf, err := h.service.ByCategory(c.UserContext(), c.Params("categoryName"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shelf)
}

// HandleByCategoryAndItem lists the matching products on one shelf.
func (h *ShelfHandler) HandleByCategoryAndItem(c *fiber.Ctx) error {
	products, err := h.service.ByCategoryAndItem(c.UserContext(), c.Params("categoryName"), c.Params("itemName"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": len(products), "products": products})
}
