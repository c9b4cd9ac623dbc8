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

// PanelQrHandler QR sayfası uç noktalarını yönetir.
type PanelQrHandler struct {
	service services.IQrService
}

// NewPanelQrHandler yeni bir PanelQrHandler örneği oluşturur.
func NewPanelQrHandler() *PanelQrHandler {
	return &PanelQrHandler{service: services.NewQrService()}
}

type qrSaveRequest struct {
	Slug       string `json:"slug" validate:"required,slug"`
	TargetMode string `json:"targetMode" validate:"required,oneof=profile url"`
	TargetURL  string `json:"targetUrl" validate:"omitempty,url,max=500"`
	IsEnabled  bool   `json:"isEnabled"`
}

// Show oturum sahibinin QR sayfasını döner (henüz yoksa 404).
func (h *PanelQrHandler) Show(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	page, err := h.service.GetForUser(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrQrPageNotFound) {
			return responder.NotFound(c, err.Error())
		}
		configslog.Log.Error("QR sayfası okunamadı", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"qrPage": page, "sealLabel": services.SealLabel()})
}

// Save QR sayfasını oluşturur veya günceller (tek kayıt, upsert).
func (h *PanelQrHandler) Save(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	var req qrSaveRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	page, err := h.service.Save(c.UserContext(), userID, services.QrSaveData{
		Slug:       req.Slug,
		TargetMode: req.TargetMode,
		TargetURL:  req.TargetURL,
		IsEnabled:  req.IsEnabled,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQrSlugInvalid), errors.Is(err, services.ErrQrTargetURLMissing):
			return responder.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrQrSlugTaken):
			return responder.Conflict(c, err.Error())
		}
		configslog.Log.Error("QR sayfası kaydedilemedi", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"qrPage": page})
}
