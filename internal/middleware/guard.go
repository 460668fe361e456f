// Package middleware holds the fiber handlers that run ahead of the
// resource handlers.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"shelves/internal/credentials"
)

// TokenHeader carries the signed token on requests and on registration
// responses.
const TokenHeader = "x-auth-token"

// Access is the permission level a route requires.
type Access int

const (
	// Public routes need no token.
	Public Access = iota
	// Authenticated routes need a valid token.
	Authenticated
	// Admin routes need a valid token whose identity is an admin.
	Admin
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// TokenVerifier decodes a signed token.
type TokenVerifier interface {
	Verify(token string) (credentials.Identity, error)
}

type identityKey struct{}

// Guard builds the handler chain for each access level.
type Guard struct {
	tokens TokenVerifier
}

// NewGuard creates a Guard that checks tokens with tokens.
func NewGuard(tokens TokenVerifier) *Guard {
	return &Guard{tokens: tokens}
}

// Chain returns handler preceded by the checks access requires. The admin
// check is only ever placed after authentication.
func (g *Guard) Chain(access Access, handler fiber.Handler) []fiber.Handler {
	switch access {
	case Authenticated:
		return []fiber.Handler{g.authenticate, handler}
	case Admin:
		return []fiber.Handler{g.authenticate, requireAdmin, handler}
	default:
		return []fiber.Handler{handler}
	}
}

// IdentityFrom returns the identity decoded by an earlier authenticate stage.
func IdentityFrom(c *fiber.Ctx) (credentials.Identity, bool) {
	id, ok := c.Locals(identityKey{}).(credentials.Identity)
	return id, ok
}

func (g *Guard) authenticate(c *fiber.Ctx) error {
	token := c.Get(TokenHeader)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Access denied. No token provided.",
		})
	}

	identity, err := g.tokens.Verify(token)
	if err != nil {
		log.WithError(err).WithField("path", c.Path()).Debug("Rejected token")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "The token is expired or invalid.",
		})
	}

	c.Locals(identityKey{}, identity)
	return c.Next()
}

func requireAdmin(c *fiber.Ctx) error {
	identity, ok := IdentityFrom(c)
	if !ok || !identity.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied.",
		})
	}
	return c.Next()
}
