package routes

import (
	auth_handlers "kartim.link/handlers/auth"
	"kartim.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAuthRoutes /auth altındaki rotaları tanımlar.
func registerAuthRoutes(app *fiber.App) {
	authHandler := auth_handlers.NewAuthHandler()

	authGroup := app.Group("/auth")

	// --- Public ---
	authGroup.Post("/register/start", authHandler.StartSignup)            // POST /auth/register/start
	authGroup.Post("/register", authHandler.Register)                     // POST /auth/register
	authGroup.Post("/login", authHandler.Login)                           // POST /auth/login
	authGroup.Post("/logout", authHandler.Logout)                         // POST /auth/logout
	authGroup.Post("/password/request", authHandler.RequestPasswordReset) // POST /auth/password/request
	authGroup.Post("/password/reset", authHandler.ResetPassword)          // POST /auth/password/reset

	// --- Oturum Gerektiren ---
	authGroup.Get("/me", middlewares.AuthMiddleware, authHandler.Me)                           // GET /auth/me
	authGroup.Post("/password/update", middlewares.AuthMiddleware, authHandler.UpdatePassword) // POST /auth/password/update
}
