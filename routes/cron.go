package routes

import (
	"kartim.link/configs"
	cron_handlers "kartim.link/handlers/cron"
	"kartim.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerCronRoutes /cron altındaki bakım rotalarını tanımlar.
// Rotalar CRON_SECRET ile korunur; secret yoksa her istek 401 alır.
func registerCronRoutes(app *fiber.App) {
	cronHandler := cron_handlers.NewCronHandler()

	cronGroup := app.Group("/cron")
	cronGroup.Use(middlewares.NewCronAuthMiddleware(configs.Get().CronSecret))

	cronGroup.Post("/purge-tokens", cronHandler.PurgeTokens)   // POST /cron/purge-tokens
	cronGroup.Post("/trial-notices", cronHandler.TrialNotices) // POST /cron/trial-notices
}
