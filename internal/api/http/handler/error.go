package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mvillagra/gradebook-server/internal/model"
)

// handleError maps a classified error to its HTTP status and writes a
// client-safe JSON body. Unclassified errors become opaque 500s; no
// store detail ever reaches the client.
func handleError(c *fiber.Ctx, err error) error {
	kind, ok := model.KindOf(err)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	var status int
	switch kind {
	case model.KindInvalidInput:
		status = fiber.StatusBadRequest
	case model.KindUnauthenticated:
		status = fiber.StatusUnauthorized
	case model.KindForbidden:
		status = fiber.StatusForbidden
	case model.KindNotFound:
		status = fiber.StatusNotFound
	case model.KindConflict:
		status = fiber.StatusConflict
	case model.KindUnavailable:
		status = fiber.StatusServiceUnavailable
	default:
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{"error": model.MessageOf(err)})
}

// parseIDParam reads an integer path parameter, reporting a classified
// InvalidInput error for malformed values.
func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, model.NewInvalidInput(name + " must be a positive integer")
	}
	return int64(id), nil
}
