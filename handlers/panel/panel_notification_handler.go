package handlers // handlers/panel paketi

import (
	"errors"
	"strconv"

	"kartim.link/configs/configslog"
	"kartim.link/middlewares"
	"kartim.link/pkg/responder"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelNotificationHandler kullanıcıya görünen bildirim uç noktalarını yönetir.
type PanelNotificationHandler struct {
	service services.INotificationService
}

// NewPanelNotificationHandler yeni bir PanelNotificationHandler örneği oluşturur.
func NewPanelNotificationHandler() *PanelNotificationHandler {
	return &PanelNotificationHandler{service: services.NewNotificationService()}
}

// List kullanıcının görebildiği bildirimleri okunma durumuyla döner.
func (h *PanelNotificationHandler) List(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	items, err := h.service.ListForUser(c.UserContext(), userID, middlewares.CurrentOrgID(c))
	if err != nil {
		configslog.Log.Error("Bildirimler listelenemedi", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"notifications": items})
}

// MarkRead bildirimi okundu işaretler. İşlem idempotenttir; tekrar eden
// çağrı da başarı döner.
func (h *PanelNotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}
	notificationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return responder.BadRequest(c, "Geçersiz bildirim ID.")
	}

	if err := h.service.MarkRead(c.UserContext(), userID, uint(notificationID), middlewares.CurrentOrgID(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrNotificationNotFound):
			return responder.NotFound(c, err.Error())
		case errors.Is(err, services.ErrNotificationForbidden):
			return responder.Forbidden(c)
		}
		configslog.Log.Error("Bildirim okundu işaretlenemedi", zap.Uint("notification_id", uint(notificationID)), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{})
}
