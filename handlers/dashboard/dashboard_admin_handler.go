package handlers // handlers/dashboard paketi

import (
	"errors"
	"strconv"

	"kartim.link/configs/configslog"
	"kartim.link/middlewares"
	"kartim.link/pkg/queryparams"
	"kartim.link/pkg/responder"
	"kartim.link/pkg/validation"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardAdminHandler platform yöneticisi uç noktalarını yönetir.
// Tüm uç noktalar NewPlatformAdminMiddleware arkasındadır.
type DashboardAdminHandler struct {
	orgService          services.IOrganizationService
	notificationService services.INotificationService
	subscriptionService services.ISubscriptionService
}

// NewDashboardAdminHandler yeni bir DashboardAdminHandler örneği oluşturur.
func NewDashboardAdminHandler() *DashboardAdminHandler {
	return &DashboardAdminHandler{
		orgService:          services.NewOrganizationService(),
		notificationService: services.NewNotificationService(),
		subscriptionService: services.NewSubscriptionService(),
	}
}

type announcementCreateRequest struct {
	Title string `json:"title" validate:"required,min=2,max=150"`
	Body  string `json:"body" validate:"required,min=2,max=2000"`
}

// ListOrganizations tüm tenant'ları sayfalı listeler.
func (h *DashboardAdminHandler) ListOrganizations(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		return responder.BadRequest(c, "Geçersiz sorgu parametreleri.")
	}
	params.Validate()

	result, err := h.orgService.ListAll(c.UserContext(), params)
	if err != nil {
		configslog.Log.Error("Organizasyonlar listelenemedi", zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"organizations": result.Data, "meta": result.Meta})
}

// SuspendOrganization tenant'ı askıya alır. Askıdaki tenant'ın yöneticisi
// dashboard'a giremez; üye profilleri yayında kalır.
func (h *DashboardAdminHandler) SuspendOrganization(c *fiber.Ctx) error {
	return h.setOrganizationStatus(c, "suspended")
}

// ActivateOrganization askıdaki tenant'ı yeniden aktifleştirir.
func (h *DashboardAdminHandler) ActivateOrganization(c *fiber.Ctx) error {
	return h.setOrganizationStatus(c, "active")
}

func (h *DashboardAdminHandler) setOrganizationStatus(c *fiber.Ctx, status string) error {
	orgID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return responder.BadRequest(c, "Geçersiz organizasyon ID.")
	}

	if err := h.orgService.SetStatus(c.UserContext(), middlewares.CurrentUserID(c), uint(orgID), status); err != nil {
		if errors.Is(err, services.ErrOrgNotFound) {
			return responder.NotFound(c, err.Error())
		}
		configslog.Log.Error("Organizasyon durumu güncellenemedi",
			zap.Uint("org_id", uint(orgID)), zap.String("status", status), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{})
}

// CreateAnnouncement tüm kullanıcılara görünen platform duyurusu yayınlar.
func (h *DashboardAdminHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var req announcementCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	n, err := h.notificationService.CreateAnnouncement(c.UserContext(), middlewares.CurrentUserID(c), req.Title, req.Body)
	if err != nil {
		configslog.Log.Error("Duyuru oluşturulamadı", zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.Created(c, fiber.Map{"notification": n})
}

// ListCancelRequests açık abonelik iptal taleplerini listeler.
func (h *DashboardAdminHandler) ListCancelRequests(c *fiber.Ctx) error {
	items, err := h.subscriptionService.ListOpenCancelRequests(c.UserContext())
	if err != nil {
		configslog.Log.Error("İptal talepleri listelenemedi", zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"cancelRequests": items})
}
