package middlewares

import (
	"errors"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/pkg/responder"
	"kartim.link/repositories"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewPlatformAdminMiddleware yalnızca platform yöneticilerini geçirir.
// Rol, istek anında yüklenen kullanıcı satırı + allow-list üzerinden
// saf predicate ile yeniden türetilir (oturumdaki bayrağa güvenilmez).
// AuthMiddleware'den sonra kullanılmalıdır.
func NewPlatformAdminMiddleware() fiber.Handler {
	return platformAdminWith(repositories.NewUserRepository())
}

func platformAdminWith(userRepo repositories.IUserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := CurrentUserID(c)
		if userID == 0 {
			return responder.Unauthorized(c)
		}
		user, err := userRepo.FindByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return responder.Unauthorized(c)
			}
			configslog.Log.Error("PlatformAdminMiddleware: kullanıcı yüklenemedi", zap.Uint("user_id", userID), zap.Error(err))
			return responder.InternalError(c)
		}
		if !services.IsPlatformAdmin(user, configs.Get().AdminEmails) {
			return responder.Forbidden(c)
		}
		c.Locals("currentUser", user)
		return c.Next()
	}
}

// NewOrgAdminMiddleware yalnızca kendi tenant'ının yöneticisini geçirir.
// Askıdaki tenant'ın yöneticisi de dashboard'a erişemez.
// AuthMiddleware'den sonra kullanılmalıdır.
func NewOrgAdminMiddleware() fiber.Handler {
	return orgAdminWith(repositories.NewUserRepository(), repositories.NewOrganizationRepository())
}

func orgAdminWith(userRepo repositories.IUserRepository, orgRepo repositories.IOrganizationRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := CurrentUserID(c)
		if userID == 0 {
			return responder.Unauthorized(c)
		}
		user, err := userRepo.FindByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return responder.Unauthorized(c)
			}
			configslog.Log.Error("OrgAdminMiddleware: kullanıcı yüklenemedi", zap.Uint("user_id", userID), zap.Error(err))
			return responder.InternalError(c)
		}
		if user.OrganizationID == nil {
			return responder.Forbidden(c)
		}
		org, err := orgRepo.FindByID(c.UserContext(), *user.OrganizationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return responder.Forbidden(c)
			}
			configslog.Log.Error("OrgAdminMiddleware: tenant yüklenemedi", zap.Uint("org_id", *user.OrganizationID), zap.Error(err))
			return responder.InternalError(c)
		}
		if !services.IsOrganizationAdmin(user, org) {
			return responder.Forbidden(c)
		}
		if org.IsSuspended() {
			return responder.Forbidden(c)
		}
		c.Locals("currentUser", user)
		c.Locals("currentOrg", org)
		return c.Next()
	}
}
