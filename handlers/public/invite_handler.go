package handlers // handlers/public paketi

import (
	"errors"

	"kartim.link/configs/configslog"
	"kartim.link/pkg/responder"
	"kartim.link/pkg/validation"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InviteHandler davet token'ı ile üyelik akışını yönetir. Uç noktalar
// public'tir; yetki token'ın kendisidir.
type InviteHandler struct {
	service services.IOrganizationService
}

// NewInviteHandler yeni bir InviteHandler örneği oluşturur.
func NewInviteHandler() *InviteHandler {
	return &InviteHandler{service: services.NewOrganizationService()}
}

type inviteAcceptRequest struct {
	Token    string `json:"token" validate:"required"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Preview daveti TÜKETMEDEN özetini döner (e-posta + organizasyon adı).
// Kayıt formu bu bilgiyle açılır; token accept anına kadar geçerli kalır.
func (h *InviteHandler) Preview(c *fiber.Ctx) error {
	preview, err := h.service.PreviewInvite(c.UserContext(), c.Params("token"))
	if err != nil {
		if errors.Is(err, services.ErrInviteTokenInvalid) {
			return responder.NotFound(c, err.Error())
		}
		configslog.Log.Error("Davet önizlemesi başarısız", zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"invite": preview})
}

// Accept daveti kabul eder: yeni kullanıcı + profil oluşturur (veya mevcut
// hesabı tenant'a bağlar) ve token'ı aynı transaction'da tüketir. Token tek
// kullanımlıktır; ikinci deneme 400 alır.
func (h *InviteHandler) Accept(c *fiber.Ctx) error {
	var req inviteAcceptRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	user, err := h.service.AcceptInvite(c.UserContext(), req.Token, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInviteTokenInvalid):
			return responder.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrMemberAlreadyInOrg):
			return responder.Conflict(c, err.Error())
		}
		configslog.Log.Error("Davet kabulü başarısız", zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.Created(c, fiber.Map{"user": user})
}
