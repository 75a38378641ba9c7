package apperror

import "github.com/gofiber/fiber/v2"

// Status maps an error to the HTTP status a handler should answer with.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindCapacity:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	case KindTransientStorage, KindAllocationFailure:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err as {"error": ..., "kind": ...} with the mapped status.
func Respond(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	if kind := KindOf(err); kind != "" {
		body["kind"] = kind
	}
	return c.Status(Status(err)).JSON(body)
}
