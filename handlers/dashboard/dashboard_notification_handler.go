package handlers // handlers/dashboard paketi

import (
	"kartim.link/configs/configslog"
	"kartim.link/middlewares"
	"kartim.link/pkg/responder"
	"kartim.link/pkg/validation"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardNotificationHandler tenant yöneticisinin kendi üyelerine
// bildirim yayınlamasını sağlar.
type DashboardNotificationHandler struct {
	service services.INotificationService
}

// NewDashboardNotificationHandler yeni bir DashboardNotificationHandler örneği oluşturur.
func NewDashboardNotificationHandler() *DashboardNotificationHandler {
	return &DashboardNotificationHandler{service: services.NewNotificationService()}
}

type notificationCreateRequest struct {
	Title string `json:"title" validate:"required,min=2,max=150"`
	Body  string `json:"body" validate:"required,min=2,max=2000"`
}

// Create tenant üyelerine görünen bir bildirim yayınlar.
func (h *DashboardNotificationHandler) Create(c *fiber.Ctx) error {
	org := currentOrg(c)
	if org == nil {
		return responder.Forbidden(c)
	}

	var req notificationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	n, err := h.service.CreateForOrganization(c.UserContext(), middlewares.CurrentUserID(c), org.ID, req.Title, req.Body)
	if err != nil {
		configslog.Log.Error("Tenant bildirimi oluşturulamadı", zap.Uint("org_id", org.ID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.Created(c, fiber.Map{"notification": n})
}
