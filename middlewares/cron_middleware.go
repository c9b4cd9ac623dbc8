package middlewares

import (
	"crypto/subtle"

	"kartim.link/pkg/responder"

	"github.com/gofiber/fiber/v2"
)

// NewCronAuthMiddleware /cron endpoint'lerini harici zamanlayıcının
// paylaşılan secret'ı ile korur: Authorization: Bearer <CRON_SECRET>.
// Secret konfigüre edilmemişse endpoint'ler tamamen kapalıdır.
func NewCronAuthMiddleware(secret string) fiber.Handler {
	expected := []byte("Bearer " + secret)
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return responder.Unauthorized(c)
		}
		header := []byte(c.Get(fiber.HeaderAuthorization))
		if subtle.ConstantTimeCompare(header, expected) != 1 {
			return responder.Unauthorized(c)
		}
		return c.Next()
	}
}
