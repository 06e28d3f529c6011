package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// idParam reads a path parameter and rejects anything that is not a
// UUID before it reaches the persistence layer.
func idParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", apperrors.NewValidationError("Invalid id: "+raw, nil)
	}
	return raw, nil
}
