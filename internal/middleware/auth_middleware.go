package middleware

import (
	"errors"
	"strings"

	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/fadilmartias/nexo-carreira/internal/service"
	"github.com/gofiber/fiber/v2"
)

const (
	userLocalKey = "auth_user"
	bearerPrefix = "Bearer "
)

const (
	authRequiredMessage = "Autenticação necessária"
	invalidTokenMessage = "Token inválido ou expirado"
)

// Auth requires a Bearer access token and stores the verified user in the
// request locals. Preflight requests pass through untouched.
func Auth(verifier service.TokenVerifier, log *logger.Logger, writeErr ErrorWriter) fiber.Handler {
	if writeErr == nil {
		writeErr = PlainError
	}
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			return writeErr(c, fiber.StatusUnauthorized, authRequiredMessage, nil)
		}
		token := header
		if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			token = strings.TrimSpace(header[len(bearerPrefix):])
		}
		if token == "" {
			return writeErr(c, fiber.StatusUnauthorized, invalidTokenMessage, nil)
		}

		user, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				log.Debug("Rejected access token", "path", c.Path(), "error", err)
				return writeErr(c, fiber.StatusUnauthorized, invalidTokenMessage, err)
			}
			log.Error("Token verification failed", "path", c.Path(), "error", err)
			return writeErr(c, fiber.StatusInternalServerError, err.Error(), err)
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by Auth.
func CurrentUser(c *fiber.Ctx) (*service.AuthUser, bool) {
	user, ok := c.Locals(userLocalKey).(*service.AuthUser)
	return user, ok && user != nil
}
