package routes

import (
	panel_handlers "kartim.link/handlers/panel"
	"kartim.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları ve middleware'leri tanımlar.
// Oturum açmış her kullanıcı erişebilir.
func registerPanelRoutes(app *fiber.App) {
	// Handler instance'larını başta oluştur
	profileHandler := panel_handlers.NewPanelProfileHandler()
	linkHandler := panel_handlers.NewPanelLinkHandler()
	qrHandler := panel_handlers.NewPanelQrHandler()
	notificationHandler := panel_handlers.NewPanelNotificationHandler()
	subscriptionHandler := panel_handlers.NewPanelSubscriptionHandler()

	// /panel grubu oluştur ve middleware'leri uygula
	panelGroup := app.Group("/panel")
	panelGroup.Use(middlewares.AuthMiddleware)

	// --- Profil ---
	panelGroup.Get("/profile", profileHandler.Show)   // GET /panel/profile
	panelGroup.Put("/profile", profileHandler.Update) // PUT /panel/profile

	// --- Profil Linkleri ---
	panelGroup.Get("/links", linkHandler.List)          // GET /panel/links
	panelGroup.Post("/links", linkHandler.Create)       // POST /panel/links
	panelGroup.Put("/links/:id", linkHandler.Update)    // PUT /panel/links/{id}
	panelGroup.Delete("/links/:id", linkHandler.Delete) // DELETE /panel/links/{id}

	// --- QR Sayfası ---
	panelGroup.Get("/qr", qrHandler.Show) // GET /panel/qr
	panelGroup.Put("/qr", qrHandler.Save) // PUT /panel/qr

	// --- Bildirimler ---
	panelGroup.Get("/notifications", notificationHandler.List)               // GET /panel/notifications
	panelGroup.Post("/notifications/:id/read", notificationHandler.MarkRead) // POST /panel/notifications/{id}/read

	// --- Abonelik ---
	panelGroup.Get("/subscription", subscriptionHandler.Show)           // GET /panel/subscription
	panelGroup.Post("/subscription/cancel", subscriptionHandler.Cancel) // POST /panel/subscription/cancel
}
