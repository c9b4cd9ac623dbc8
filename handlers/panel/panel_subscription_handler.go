package handlers // handlers/panel paketi

import (
	"errors"

	"kartim.link/configs/configslog"
	"kartim.link/middlewares"
	"kartim.link/pkg/responder"
	"kartim.link/pkg/validation"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelSubscriptionHandler abonelik uç noktalarını yönetir.
type PanelSubscriptionHandler struct {
	service services.ISubscriptionService
}

// NewPanelSubscriptionHandler yeni bir PanelSubscriptionHandler örneği oluşturur.
func NewPanelSubscriptionHandler() *PanelSubscriptionHandler {
	return &PanelSubscriptionHandler{service: services.NewSubscriptionService()}
}

type cancelRequestRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Show oturum sahibinin aboneliğini plan bilgisiyle döner.
func (h *PanelSubscriptionHandler) Show(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	sub, err := h.service.GetForUser(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrSubscriptionNotFound) {
			return responder.NotFound(c, err.Error())
		}
		configslog.Log.Error("Abonelik okunamadı", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"subscription": sub})
}

// Cancel iptal talebi açar. Aynı kullanıcının açık talebi varken 409 döner.
func (h *PanelSubscriptionHandler) Cancel(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	var req cancelRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	cr, err := h.service.OpenCancelRequest(c.UserContext(), userID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubscriptionNotFound):
			return responder.NotFound(c, err.Error())
		case errors.Is(err, services.ErrCancelRequestExists):
			return responder.Conflict(c, err.Error())
		}
		configslog.Log.Error("İptal talebi açılamadı", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.Created(c, fiber.Map{"cancelRequest": cr})
}
