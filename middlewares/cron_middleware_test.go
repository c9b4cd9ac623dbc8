package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCronTestApp(secret string) *fiber.App {
	app := fiber.New()
	app.Post("/cron/test", NewCronAuthMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func TestCronAuthMiddleware(t *testing.T) {
	app := newCronTestApp("cok-gizli")

	t.Run("doğru secret geçer", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/cron/test", nil)
		req.Header.Set("Authorization", "Bearer cok-gizli")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("yanlış secret 401", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/cron/test", nil)
		req.Header.Set("Authorization", "Bearer yanlis")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("başlık yoksa 401", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/cron/test", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCronAuthMiddleware_NoSecretConfigured(t *testing.T) {
	app := newCronTestApp("")

	// Secret konfigüre edilmemişse boş Bearer bile kabul edilmez.
	req := httptest.NewRequest("POST", "/cron/test", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
