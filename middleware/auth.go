package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the participant identity forwarded by the
// gateway. Submission routes refuse requests without it.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		participantID := c.Get("X-User-ID")
		if participantID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID missing on %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		c.Locals("participant_id", participantID)
		c.Locals("display_name", c.Get("X-User-Name"))
		return c.Next()
	}
}
