package routes

import (
	public_handlers "kartim.link/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes oturum gerektirmeyen rotaları tanımlar.
func registerPublicRoutes(app *fiber.App) {
	pageHandler := public_handlers.NewPublicPageHandler()
	inviteHandler := public_handlers.NewInviteHandler()

	app.Get("/check-slug", pageHandler.CheckSlug) // GET /check-slug?slug=...

	app.Get("/invite/:token", inviteHandler.Preview) // GET /invite/{token}
	app.Post("/invite/accept", inviteHandler.Accept) // POST /invite/accept

	app.Get("/p/:slug", pageHandler.ShowProfile) // GET /p/{slug}
	app.Get("/q/:slug", pageHandler.ShowQr)      // GET /q/{slug}
}
