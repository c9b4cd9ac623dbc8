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

// PanelProfileHandler oturum sahibinin kartvizit profili uç noktalarını yönetir.
type PanelProfileHandler struct {
	service services.IProfileService
}

// NewPanelProfileHandler yeni bir PanelProfileHandler örneği oluşturur.
func NewPanelProfileHandler() *PanelProfileHandler {
	return &PanelProfileHandler{service: services.NewProfileService()}
}

type profileUpdateRequest struct {
	DisplayName string `json:"displayName" validate:"required,min=2,max=100"`
	Title       string `json:"title" validate:"max=100"`
	Company     string `json:"company" validate:"max=100"`
	Bio         string `json:"bio" validate:"max=500"`
	Phone       string `json:"phone" validate:"max=30"`
	Website     string `json:"website" validate:"omitempty,url,max=255"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,url,max=255"`
	Slug        string `json:"slug" validate:"required,slug"`
	IsPublic    bool   `json:"isPublic"`
}

// Show oturum sahibinin profilini döner.
func (h *PanelProfileHandler) Show(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	profile, err := h.service.GetByUserID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return responder.NotFound(c, err.Error())
		}
		configslog.Log.Error("Profil okunamadı", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"profile": profile})
}

// Update profili günceller. Slug değişimi benzersizlik çatışmasında 409 döner.
func (h *PanelProfileHandler) Update(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	profile, err := h.service.Update(c.UserContext(), userID, services.ProfileUpdateData{
		DisplayName: req.DisplayName,
		Title:       req.Title,
		Company:     req.Company,
		Bio:         req.Bio,
		Phone:       req.Phone,
		Website:     req.Website,
		AvatarURL:   req.AvatarURL,
		Slug:        req.Slug,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfileNotFound):
			return responder.NotFound(c, err.Error())
		case errors.Is(err, services.ErrSlugInvalid):
			return responder.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrSlugTaken):
			return responder.Conflict(c, err.Error())
		}
		configslog.Log.Error("Profil güncellenemedi", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"profile": profile})
}
