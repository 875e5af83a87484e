package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const tooManyRequestsMessage = "Muitas requisições. Aguarde alguns segundos e tente novamente."

// RateLimiter is a sliding-window limiter keyed by the authenticated user
// and route, or by client IP before authentication. A nil storage keeps counters in
// process memory; a nil writeErr answers with PlainError.
func RateLimiter(max int, expiration time.Duration, storage fiber.Storage, writeErr ErrorWriter) fiber.Handler {
	if writeErr == nil {
		writeErr = PlainError
	}
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			if user, ok := CurrentUser(c); ok {
				return "user:" + user.ID.String() + ":" + c.Route().Path
			}
			return "ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return writeErr(c, fiber.StatusTooManyRequests, tooManyRequestsMessage, nil)
		},
		Storage:           storage,
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
