package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shelves/internal/middleware"
)

// Route is one entry of a handler's permission table.
type Route struct {
	Method  string
	Path    string
	Access  middleware.Access
	Handler fiber.Handler
}

// mount installs routes on router, each behind the checks its access level
// requires.
func mount(router fiber.Router, guard *middleware.Guard, routes []Route) {
	for _, r := range routes {
		router.Add(r.Method, r.Path, guard.Chain(r.Access, r.Handler)...)
	}
}
