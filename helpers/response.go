package helpers

import (
	"errors"

	"sbook/ledger"

	"github.com/gofiber/fiber/v2"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

// JSONDomainError maps engine errors onto the response envelope. Taxonomy
// errors stay 400 (409 for conflicts) so the UI can render them; anything
// else is storage loss and surfaces as a 500.
func JSONDomainError(c *fiber.Ctx, err error) error {
	code, ok := ledger.ErrorCode(err)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "INTERNAL_ERROR",
			"data":    nil,
		})
	}

	status := fiber.StatusBadRequest
	if errors.Is(err, ledger.ErrConcurrencyConflict) {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": code,
		"data":    nil,
	})
}
