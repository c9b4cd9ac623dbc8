package handlers // handlers/public paketi

import (
	"encoding/json"
	"errors"
	"time"

	"kartim.link/configs/configslog"
	"kartim.link/configs/configsredis"
	"kartim.link/models"
	"kartim.link/pkg/responder"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Public payload cache süresi. Slug/içerik değişiminde servis katmanı
// anahtarı zaten düşürür; TTL yalnızca emniyet payıdır.
const publicCacheTTL = 5 * time.Minute

// PublicPageHandler oturum gerektirmeyen public uç noktaları yönetir:
// profil sayfası, QR yönlendirme sayfası ve slug uygunluk kontrolü.
type PublicPageHandler struct {
	profileService services.IProfileService
	qrService      services.IQrService
	slugService    services.ISlugService
}

// NewPublicPageHandler yeni bir PublicPageHandler örneği oluşturur.
func NewPublicPageHandler() *PublicPageHandler {
	return &PublicPageHandler{
		profileService: services.NewProfileService(),
		qrService:      services.NewQrService(),
		slugService:    services.NewSlugService(),
	}
}

// ShowProfile public profil sayfasını döner. Private profil var/yok
// ayrımı sızdırmadan 404 alır. Redis açıksa payload read-through
// cache'ten servis edilir.
func (h *PublicPageHandler) ShowProfile(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if !models.IsValidSlug(slug) {
		return responder.NotFound(c, "Sayfa bulunamadı.")
	}

	cacheKey := services.PublicProfileCacheKey(slug)
	if cached, ok := cacheGet(c, cacheKey); ok {
		return serveCached(c, cached)
	}

	profile, err := h.profileService.GetPublicBySlug(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return responder.NotFound(c, "Sayfa bulunamadı.")
		}
		configslog.Log.Error("Public profil okunamadı", zap.String("slug", slug), zap.Error(err))
		return responder.InternalError(c)
	}

	payload := fiber.Map{"success": true, "profile": profile}
	cacheSet(c, cacheKey, payload)
	return c.Status(fiber.StatusOK).JSON(payload)
}

// ShowQr public QR sayfasını döner. Kapalı sayfa 404 alır. Cevaba aktif
// mühür etiketi de eklenir (özellik bayrağına göre ad değişir).
func (h *PublicPageHandler) ShowQr(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if !models.IsValidSlug(slug) {
		return responder.NotFound(c, "Sayfa bulunamadı.")
	}

	cacheKey := services.PublicQrCacheKey(slug)
	if cached, ok := cacheGet(c, cacheKey); ok {
		return serveCached(c, cached)
	}

	page, err := h.qrService.GetPublicBySlug(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, services.ErrQrPageNotFound) {
			return responder.NotFound(c, "Sayfa bulunamadı.")
		}
		configslog.Log.Error("Public QR sayfası okunamadı", zap.String("slug", slug), zap.Error(err))
		return responder.InternalError(c)
	}

	payload := fiber.Map{"success": true, "qrPage": page, "sealLabel": services.SealLabel()}
	cacheSet(c, cacheKey, payload)
	return c.Status(fiber.StatusOK).JSON(payload)
}

// CheckSlug slug format + uygunluk ipucu döner. Cevap bir UX ipucudur;
// asıl karar yazma anında unique index'tedir.
func (h *PublicPageHandler) CheckSlug(c *fiber.Ctx) error {
	result, err := h.slugService.CheckSlug(c.UserContext(), c.Query("slug"))
	if err != nil {
		configslog.Log.Error("Slug kontrolü başarısız", zap.Error(err))
		return responder.InternalError(c)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func cacheGet(c *fiber.Ctx, key string) (string, bool) {
	if !configsredis.Enabled() {
		return "", false
	}
	return configsredis.GetString(c.UserContext(), key)
}

func cacheSet(c *fiber.Ctx, key string, payload fiber.Map) {
	if !configsredis.Enabled() {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	configsredis.SetString(c.UserContext(), key, string(raw), publicCacheTTL)
}

func serveCached(c *fiber.Ctx, raw string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).SendString(raw)
}
