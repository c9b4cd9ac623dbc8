package handlers // handlers/auth paketi

import (
	"errors"
	"time"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/middlewares"
	"kartim.link/pkg/responder"
	"kartim.link/pkg/validation"
	"kartim.link/services"
	"kartim.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// signupFlowCookie kayıt akışının sürdüğünü işaretleyen kısa ömürlü cookie.
const (
	signupFlowCookie = "signup_flow"
	signupFlowTTL    = 5 * time.Minute
)

// AuthHandler kimlik uç noktalarını yönetir.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{service: services.NewAuthService()}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type passwordRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// StartSignup kayıt akışı başlangıcını işaretleyen cookie'yi set eder.
// İstemci kayıt formunu açtığında çağırır; cookie 5 dakika yaşar.
func (h *AuthHandler) StartSignup(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     signupFlowCookie,
		Value:    "1",
		HTTPOnly: true,
		Secure:   configs.Get().IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(signupFlowTTL.Seconds()),
	})
	return responder.OK(c, fiber.Map{})
}

// Register yeni kullanıcı kaydı oluşturur (kullanıcı + profil + trial
// aboneliği tek transaction'da).
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	user, err := h.service.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return responder.Conflict(c, err.Error())
		}
		configslog.Log.Error("Register error", zap.String("email", req.Email), zap.Error(err))
		return responder.InternalError(c)
	}

	// Kayıt akışı tamamlandı; işaret cookie'sini düşür.
	c.ClearCookie(signupFlowCookie)

	return responder.Created(c, fiber.Map{"user": user})
}

// Login e-posta/şifre doğrular ve oturum JWT'sini cookie + gövde ile döner.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	user, err := h.service.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrUserSuspended) {
			return responder.Error(c, fiber.StatusUnauthorized, err.Error())
		}
		configslog.Log.Error("Login error", zap.String("email", req.Email), zap.Error(err))
		return responder.InternalError(c)
	}

	token, err := utils.GenerateSessionToken(configs.Get().JWTSecret, user.ID, user.Email, user.IsSystem, user.OrganizationID)
	if err != nil {
		configslog.Log.Error("Oturum token'ı üretilemedi", zap.Uint("user_id", user.ID), zap.Error(err))
		return responder.InternalError(c)
	}

	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   configs.Get().IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(utils.SessionTTL.Seconds()),
	})

	return responder.OK(c, fiber.Map{"user": user, "token": token})
}

// Logout oturum cookie'sini düşürür.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(utils.SessionCookieName)
	return responder.OK(c, fiber.Map{})
}

// Me oturum sahibinin kullanıcı ve profil bilgisini döner.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	user, profile, err := h.service.GetMe(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return responder.Unauthorized(c)
		}
		configslog.Log.Error("Me error", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"user": user, "profile": profile})
}

// RequestPasswordReset sıfırlama maili tetikler. Hesap var olsun olmasın
// aynı cevabı döner.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req passwordRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	if err := h.service.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		configslog.Log.Error("RequestPasswordReset error", zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"message": "Adres kayıtlıysa sıfırlama bağlantısı gönderildi."})
}

// ResetPassword token ile yeni şifreyi uygular. Token tek kullanımlıktır;
// ikinci deneme ve süresi dolmuş token 400 alır.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req passwordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	if err := h.service.ResetPassword(c.UserContext(), req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrTokenInvalid) {
			return responder.BadRequest(c, err.Error())
		}
		configslog.Log.Error("ResetPassword error", zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"message": "Şifreniz güncellendi, giriş yapabilirsiniz."})
}

// UpdatePassword oturum açmış kullanıcının şifresini değiştirir.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)
	if userID == 0 {
		return responder.Unauthorized(c)
	}

	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return responder.BadRequest(c, "Geçersiz istek gövdesi.")
	}
	if msg := validation.FirstError(req); msg != "" {
		return responder.BadRequest(c, msg)
	}

	if err := h.service.UpdatePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return responder.BadRequest(c, err.Error())
		}
		// Oturum geçerli ama kullanıcı satırı artık yok (silinmiş hesap).
		if errors.Is(err, services.ErrUserNotFound) {
			return responder.Unauthorized(c)
		}
		configslog.Log.Error("UpdatePassword error", zap.Uint("user_id", userID), zap.Error(err))
		return responder.InternalError(c)
	}
	return responder.OK(c, fiber.Map{"message": "Şifreniz güncellendi."})
}
