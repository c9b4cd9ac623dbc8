package routes

import (
	dashboard_handlers "kartim.link/handlers/dashboard"
	"kartim.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar.
// /dashboard/org tenant yöneticisine, /dashboard/admin platform
// yöneticisine açıktır; rol her istekte veritabanından yeniden türetilir.
func registerDashboardRoutes(app *fiber.App) {
	memberHandler := dashboard_handlers.NewDashboardMemberHandler()
	orgNotificationHandler := dashboard_handlers.NewDashboardNotificationHandler()
	adminHandler := dashboard_handlers.NewDashboardAdminHandler()

	// --- Tenant Yöneticisi ---
	orgGroup := app.Group("/dashboard/org")
	orgGroup.Use(middlewares.AuthMiddleware, middlewares.NewOrgAdminMiddleware())

	orgGroup.Get("/members", memberHandler.List)                   // GET /dashboard/org/members
	orgGroup.Post("/members/invite", memberHandler.Invite)         // POST /dashboard/org/members/invite
	orgGroup.Delete("/members/:id", memberHandler.Remove)          // DELETE /dashboard/org/members/{id}
	orgGroup.Get("/members/export", memberHandler.Export)          // GET /dashboard/org/members/export
	orgGroup.Post("/notifications", orgNotificationHandler.Create) // POST /dashboard/org/notifications

	// --- Platform Yöneticisi ---
	adminGroup := app.Group("/dashboard/admin")
	adminGroup.Use(middlewares.AuthMiddleware, middlewares.NewPlatformAdminMiddleware())

	adminGroup.Get("/organizations", adminHandler.ListOrganizations)                  // GET /dashboard/admin/organizations
	adminGroup.Post("/organizations/:id/suspend", adminHandler.SuspendOrganization)   // POST /dashboard/admin/organizations/{id}/suspend
	adminGroup.Post("/organizations/:id/activate", adminHandler.ActivateOrganization) // POST /dashboard/admin/organizations/{id}/activate
	adminGroup.Post("/announcements", adminHandler.CreateAnnouncement)                // POST /dashboard/admin/announcements
	adminGroup.Get("/cancel-requests", adminHandler.ListCancelRequests)               // GET /dashboard/admin/cancel-requests
}
