package presenters

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse writes the payload as-is. Handlers own the response
// shape because the dashboard client consumes top-level fields
// (access_token, receipts, admins) rather than an envelope.
func SuccessResponse(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse writes an error body with a "detail" field, which is
// what the dashboard surfaces in its notifications.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	detail := message
	if err != nil {
		detail = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}
