package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"shelves/internal/services"
)

var notFoundMessages = map[string]string{
	"item":     "The item does not exist.",
	"category": "The category does not exist.",
	"user":     "This user does not exist.",
	"shelf":    "The given category was not found.",
	"product":  "The given item does not exist",
}

// respondError maps service errors to responses. Anything unmapped is
// returned to fiber so the server's error handler answers with a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var (
		verr *services.ValidationError
		nf   *services.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		return message(c, fiber.StatusBadRequest, verr.Result.First())
	case errors.As(err, &nf):
		msg, ok := notFoundMessages[nf.Resource]
		if !ok {
			msg = "Not found."
		}
		return message(c, fiber.StatusNotFound, msg)
	case errors.Is(err, services.ErrEmailTaken):
		return message(c, fiber.StatusBadRequest, "User already registered.")
	case errors.Is(err, services.ErrInvalidCredentials):
		return message(c, fiber.StatusBadRequest, "Invalid email or password.")
	case errors.Is(err, services.ErrStaleWrite):
		return message(c, fiber.StatusConflict, "The resource was modified by another request.")
	}

	log.WithError(err).WithFields(log.Fields{
		"method":     c.Method(),
		"path":       c.Path(),
		"request_id": c.Locals("requestid"),
	}).Error("Unhandled error")
	return err
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// parseBody decodes the JSON body into payload, answering 400 when it is
// malformed.
func parseBody(c *fiber.Ctx, payload interface{}) (bool, error) {
	if err := c.BodyParser(payload); err != nil {
		log.WithError(err).WithField("path", c.Path()).Debug("Error parsing request body")
		return false, message(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	return true, nil
}
