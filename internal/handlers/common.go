package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/services/lifecycle"
)

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}

func getAuth(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("userId")
	if raw == nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}

// lifecycleFail translates the lifecycle sentinels into the HTTP taxonomy:
// 404 unknown request, 403 wrong actor, 400 guard violations and lost
// races, 500 for everything unexpected.
func lifecycleFail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Service request not found")
	case errors.Is(err, lifecycle.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "You are not authorized for this service request")
	case errors.Is(err, lifecycle.ErrCategoryMismatch):
		return fail(c, fiber.StatusBadRequest, "Service request does not match professional service type")
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return fail(c, fiber.StatusBadRequest, "Service request is not in a valid status for this action")
	case errors.Is(err, lifecycle.ErrConflict):
		return fail(c, fiber.StatusBadRequest, "Service request was already taken by another professional")
	default:
		return fail(c, fiber.StatusInternalServerError, "Unexpected server error")
	}
}
