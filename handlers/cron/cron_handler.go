package handlers // handlers/cron paketi

import (
	"kartim.link/configs/configslog"
	"kartim.link/pkg/responder"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CronHandler harici zamanlayıcının tetiklediği bakım uç noktalarını yönetir.
// Uç noktalar NewCronAuthMiddleware (CRON_SECRET) arkasındadır.
type CronHandler struct {
	service services.IMaintenanceService
}

// NewCronHandler yeni bir CronHandler örneği oluşturur.
func NewCronHandler() *CronHandler {
	return &CronHandler{service: services.NewMaintenanceService()}
}

// PurgeTokens süresi dolmuş token'ları kalıcı siler.
func (h *CronHandler) PurgeTokens(c *fiber.Ctx) error {
	purged, err := h.service.PurgeExpiredTokens(c.UserContext())
	if err != nil {
		configslog.Log.Error("Token purge başarısız", zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"purged": purged})
}

// TrialNotices trial süresi bitmek üzere olan kullanıcılara hatırlatma
// gönderir. Her abonelik en fazla bir kez bilgilendirilir.
func (h *CronHandler) TrialNotices(c *fiber.Ctx) error {
	notified, err := h.service.SendTrialEndingNotices(c.UserContext())
	if err != nil {
		configslog.Log.Error("Trial hatırlatmaları başarısız", zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"notified": notified})
}
