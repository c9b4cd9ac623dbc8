package handlers // handlers/dashboard paketi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"kartim.link/configs/configslog"
	"kartim.link/middlewares"
	"kartim.link/models"
	"kartim.link/pkg/responder"
	"kartim.link/pkg/validation"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardMemberHandler tenant yöneticisinin üye yönetimi uç noktalarını yönetir.
// Tüm uç noktalar NewOrgAdminMiddleware arkasındadır; Locals'ta doğrulanmış
// currentUser ve currentOrg bulunur.
type DashboardMemberHandler struct {
	service services.IOrganizationService
}

// NewDashboardMemberHandler yeni bir DashboardMemberHandler örneği oluşturur.
func NewDashboardMemberHandler() *DashboardMemberHandler {
	return &DashboardMemberHandler{service: services.NewOrganizationService()}
}

type inviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func currentOrg(c *fiber.Ctx) *models.Organization {
	org, _ := c.Locals("currentOrg").(*models.Organization)
	return org
}

// List tenant üyelerini döner.
func (h *DashboardMemberHandler) List(c *fiber.Ctx) error {
	org := currentOrg(c)
	if org == nil {
		return responder.Forbidden(c)
	}

	members, err := h.service.ListMembers(c.UserContext(), org.ID)
	if err != nil {
		configslog.Log.Error("Üyeler listelenemedi", zap.Uint("org_id", org.ID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"members": members, "organization": org})
}

// Invite e-posta adresine tek kullanımlık davet token'ı üretip mail atar.
// Aynı adrese açık davet varken 409 döner.
func (h *DashboardMemberHandler) Invite(c *fiber.Ctx) error {
	org := currentOrg(c)
	if org == nil {
		return responder.Forbidden(c)
	}

	var req inviteMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	if err := h.service.InviteMember(c.UserContext(), middlewares.CurrentUserID(c), org.ID, req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrInviteExists):
			return responder.Conflict(c, err.Error())
		case errors.Is(err, services.ErrMemberAlreadyInOrg):
			return responder.Conflict(c, err.Error())
		case errors.Is(err, services.ErrOrgSuspendedErr):
			return responder.Forbidden(c)
		}
		configslog.Log.Error("Davet oluşturulamadı", zap.Uint("org_id", org.ID), zap.String("email", req.Email), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.Created(c, fiber.Map{"message": "Davet gönderildi."})
}

// Remove üyeyi tenant'tan çıkarır. Tenant yöneticisi çıkarılamaz.
func (h *DashboardMemberHandler) Remove(c *fiber.Ctx) error {
	org := currentOrg(c)
	if org == nil {
		return responder.Forbidden(c)
	}
	memberID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return responder.BadRequest(c, "Geçersiz üye ID.")
	}

	if err := h.service.RemoveMember(c.UserContext(), org.ID, uint(memberID)); err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return responder.NotFound(c, err.Error())
		case errors.Is(err, services.ErrCannotRemoveAdmin):
			return responder.BadRequest(c, err.Error())
		}
		configslog.Log.Error("Üye çıkarılamadı", zap.Uint("member_id", uint(memberID)), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{})
}

// Export üye listesini XLSX dosyası olarak indirir.
func (h *DashboardMemberHandler) Export(c *fiber.Ctx) error {
	org := currentOrg(c)
	if org == nil {
		return responder.Forbidden(c)
	}

	data, err := h.service.ExportMembersXLSX(c.UserContext(), org.ID)
	if err != nil {
		configslog.Log.Error("Üye listesi dışa aktarılamadı", zap.Uint("org_id", org.ID), zap.Error(err))
		return responder.InternalError(c)
	}

	filename := fmt.Sprintf("uyeler-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(data)
}
