package handlers // handlers/panel paketi

import (
	"errors"
	"strconv"

	"kartim.link/configs/configslog"
	"kartim.link/middlewares"
	"kartim.link/pkg/responder"
	"kartim.link/pkg/validation"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelLinkHandler profil linki uç noktalarını yönetir.
type PanelLinkHandler struct {
	service services.ILinkService
}

// NewPanelLinkHandler yeni bir PanelLinkHandler örneği oluşturur.
func NewPanelLinkHandler() *PanelLinkHandler {
	return &PanelLinkHandler{service: services.NewLinkService()}
}

type linkCreateRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=sns custom"`
	Label string `json:"label" validate:"required,min=1,max=60"`
	URL   string `json:"url" validate:"required,url,max=500"`
}

type linkUpdateRequest struct {
	Label string `json:"label" validate:"required,min=1,max=60"`
	URL   string `json:"url" validate:"required,url,max=500"`
}

// List oturum sahibinin linklerini görüntü sırasına göre döner.
func (h *PanelLinkHandler) List(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	links, err := h.service.ListForUser(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Linkler listelenemedi", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"links": links})
}

// Create yeni link ekler; sıra numarası mevcut maksimumun bir fazlasıdır.
func (h *PanelLinkHandler) Create(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	var req linkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	link, err := h.service.Create(c.UserContext(), userID, services.LinkCreateData{
		Kind:  req.Kind,
		Label: req.Label,
		URL:   req.URL,
	})
	if err != nil {
		if errors.Is(err, services.ErrLinkLimitReached) {
			return responder.BadRequest(c, err.Error())
		}
		configslog.Log.Error("Link oluşturulamadı", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.Created(c, fiber.Map{"link": link})
}

// Update sahiplik kontrolünden geçen linki günceller.
func (h *PanelLinkHandler) Update(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}
	linkID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return responder.BadRequest(c, "Geçersiz link ID.")
	}

	var req linkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	link, err := h.service.Update(c.UserContext(), userID, uint(linkID), services.LinkUpdateData{
		Label: req.Label,
		URL:   req.URL,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLinkNotFound):
			return responder.NotFound(c, err.Error())
		case errors.Is(err, services.ErrLinkForbidden):
			return responder.Forbidden(c)
		}
		configslog.Log.Error("Link güncellenemedi", zap.Uint("link_id", uint(linkID)), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"link": link})
}

// Delete sahiplik kontrolünden geçen linki siler.
func (h *PanelLinkHandler) Delete(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}
	linkID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return responder.BadRequest(c, "Geçersiz link ID.")
	}

	if err := h.service.Delete(c.UserContext(), userID, uint(linkID)); err != nil {
		switch {
		case errors.Is(err, services.ErrLinkNotFound):
			return responder.NotFound(c, err.Error())
		case errors.Is(err, services.ErrLinkForbidden):
			return responder.Forbidden(c)
		}
		configslog.Log.Error("Link silinemedi", zap.Uint("link_id", uint(linkID)), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{})
}
