package middlewares

import (
	"strings"

	"kartim.link/configs"
	"kartim.link/pkg/responder"
	"kartim.link/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware oturum kimliğini çözer. Kimlik bilgisi HTTP-only cookie
// veya Authorization: Bearer başlığıyla taşınan JWT'dir. Geçersiz/eksik
// kimlik 401 döner ve istek işlenmez.
//
// Başarıda Locals'a yazılanlar: userID (uint), userEmail (string),
// isSystem (bool), orgID (*uint, üyelik yoksa nil).
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies(utils.SessionCookieName)
	if tokenString == "" {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if tokenString == "" {
		return responder.Unauthorized(c)
	}

	claims, err := utils.ParseSessionToken(configs.Get().JWTSecret, tokenString)
	if err != nil {
		return responder.Unauthorized(c)
	}

	c.Locals("userID", claims.UserID)
	c.Locals("userEmail", claims.Email)
	c.Locals("isSystem", claims.IsSystem)
	c.Locals("orgID", claims.OrganizationID)
	return c.Next()
}

// CurrentUserID Locals'taki kullanıcı ID'sini okur (yoksa 0).
func CurrentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// CurrentOrgID Locals'taki tenant ID'sini okur (üyelik yoksa nil).
func CurrentOrgID(c *fiber.Ctx) *uint {
	if orgID, ok := c.Locals("orgID").(*uint); ok {
		return orgID
	}
	return nil
}
