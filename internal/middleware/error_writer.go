package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorWriter renders a failure detected by a middleware.
type ErrorWriter func(c *fiber.Ctx, status int, message string, err error) error

// PlainError answers with {"error": message}.
func PlainError(c *fiber.Ctx, status int, message string, _ error) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// ByPathPrefix uses matched for request paths under prefix and other for
// the rest.
func ByPathPrefix(prefix string, matched, other ErrorWriter) ErrorWriter {
	return func(c *fiber.Ctx, status int, message string, err error) error {
		if strings.HasPrefix(c.Path(), prefix) {
			return matched(c, status, message, err)
		}
		return other(c, status, message, err)
	}
}
