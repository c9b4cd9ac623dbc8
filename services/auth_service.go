package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/pkg/mailer"
	"kartim.link/repositories"
	"kartim.link/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrEmailTaken          AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrInvalidCredentials  AuthServiceError = "e-posta veya şifre hatalı"
	ErrUserSuspended       AuthServiceError = "hesabınız askıya alınmış"
	ErrUserNotFound        AuthServiceError = "kullanıcı bulunamadı"
	ErrTokenInvalid        AuthServiceError = "geçersiz veya süresi dolmuş token"
	ErrRegistrationFailed  AuthServiceError = "kayıt tamamlanamadı"
	ErrPasswordResetFailed AuthServiceError = "şifre sıfırlanamadı"
	ErrWrongPassword       AuthServiceError = "mevcut şifre hatalı"
)

// Şifre sıfırlama token'ı 1 saat, trial süresi 14 gün geçerlidir.
const (
	passwordResetTTL = time.Hour
	trialDuration    = 14 * 24 * time.Hour
)

// MailSender servislerin mail bağımlılığı. pkg/mailer.Mailer bu arayüzü sağlar;
// testler sahte bir gönderici enjekte eder.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// IAuthService kimlik işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetMe(ctx context.Context, userID uint) (*models.User, *models.Profile, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, tokenStr, newPassword string) error
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo    repositories.IUserRepository
	profileRepo repositories.IProfileRepository
	tokenRepo   repositories.ITokenRepository
	mail        MailSender
	db          *gorm.DB
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return &AuthService{
		userRepo:    repositories.NewUserRepository(),
		profileRepo: repositories.NewProfileRepository(),
		tokenRepo:   repositories.NewTokenRepository(),
		mail:        mailer.New(configs.Get()),
		db:          configs.GetDB(),
	}
}

// NewAuthServiceWith bağımlılık enjeksiyonu ile örnek oluşturur (testler için).
func NewAuthServiceWith(userRepo repositories.IUserRepository, profileRepo repositories.IProfileRepository, tokenRepo repositories.ITokenRepository, mail MailSender, db *gorm.DB) IAuthService {
	return &AuthService{userRepo: userRepo, profileRepo: profileRepo, tokenRepo: tokenRepo, mail: mail, db: db}
}

// Register kullanıcı + profil + trial aboneliğini TEK BİR TRANSACTION
// içinde oluşturur. E-posta çakışması unique index üzerinden yakalanır.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := utils.HashPassword(password)
	if err != nil {
		configslog.Log.Error("Şifre hash'lenemedi", zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	var createdUser *models.User
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := repositories.NewUserRepositoryTx(tx)
		profileRepo := repositories.NewProfileRepositoryTx(tx)
		subRepo := repositories.NewSubscriptionRepositoryTx(tx)

		user := &models.User{
			Email:        email,
			PasswordHash: hash,
			Name:         name,
			Status:       models.UserStatusPending,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrEmailTaken
			}
			return err
		}

		// İşlemi yapan kullanıcı artık belli; audit kolonları için context'e ekle.
		txCtx := context.WithValue(ctx, models.CtxUserIDKey, user.ID)

		profile := &models.Profile{
			UserID:      user.ID,
			Slug:        initialSlugFor(email),
			DisplayName: name,
		}
		if err := profileRepo.Create(txCtx, profile); err != nil {
			// Üretilen slug'ın çakışması pratikte rastgele son ek yüzünden
			// beklenmez; yine de bir kez daha denenir.
			if repositories.IsDuplicateKeyError(err) {
				profile.Slug = initialSlugFor(email)
				if err2 := profileRepo.Create(txCtx, profile); err2 != nil {
					return err2
				}
			} else {
				return err
			}
		}

		plan, err := subRepo.FindPlanByCode(ctx, models.PlanCodePersonal)
		if err != nil {
			return err
		}
		trialEnd := time.Now().Add(trialDuration)
		sub := &models.Subscription{
			UserID:      user.ID,
			PlanID:      plan.ID,
			Status:      models.SubscriptionStatusTrialing,
			TrialEndsAt: &trialEnd,
		}
		if err := subRepo.Create(txCtx, sub); err != nil {
			return err
		}

		createdUser = user
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		configslog.Log.Error("Kayıt transaction'ı başarısız", zap.String("email", email), zap.Error(txErr))
		return nil, ErrRegistrationFailed
	}

	// Mail hatası kaydı geri almaz; yalnızca loglanır.
	welcome := fmt.Sprintf("Merhaba %s,\n\nkartim.link hesabınız oluşturuldu. 14 günlük deneme süreniz başladı.", name)
	if err := s.mail.Send(ctx, email, "kartim.link'e hoş geldiniz", welcome); err != nil {
		configslog.Log.Warn("Hoş geldin maili gönderilemedi", zap.String("email", email), zap.Error(err))
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydı: %s (ID %d)", email, createdUser.ID)
	return createdUser, nil
}

// Authenticate e-posta/şifre doğrulaması yapar.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrUserSuspended
	}
	return user, nil
}

// GetMe oturum sahibinin kullanıcı ve profil kaydını döndürür.
func (s *AuthService) GetMe(ctx context.Context, userID uint) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	return user, profile, nil
}

// RequestPasswordReset sıfırlama token'ı üretir ve mailler. Hesap
// bulunamazsa da başarı döner (hesap varlığı sızdırılmaz).
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.SLog.Debugf("Şifre sıfırlama: kayıtlı olmayan adres %s", email)
			return nil
		}
		return err
	}

	token := &models.Token{
		Token:     utils.NewOpaqueToken(),
		Purpose:   models.TokenPurposePasswordReset,
		UserID:    &user.ID,
		Email:     email,
		ExpiresAt: time.Now().Add(passwordResetTTL),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		configslog.Log.Error("Sıfırlama token'ı oluşturulamadı", zap.Uint("user_id", user.ID), zap.Error(err))
		return err
	}

	resetURL := fmt.Sprintf("%s/auth/password/reset?token=%s", configs.Get().AppBaseURL, token.Token)
	body := fmt.Sprintf("Şifrenizi sıfırlamak için bağlantıya tıklayın (1 saat geçerlidir):\n\n%s", resetURL)
	if err := s.mail.Send(ctx, email, "kartim.link şifre sıfırlama", body); err != nil {
		configslog.Log.Warn("Sıfırlama maili gönderilemedi", zap.String("email", email), zap.Error(err))
	}
	return nil
}

// ResetPassword token'ı tüketir ve yeni şifreyi TEK BİR TRANSACTION içinde
// yazar. Token tam olarak bir kez kullanılabilir: silme aynı transaction'da
// gerçekleşir, ikinci deneme token'ı bulamaz. Süresi dolmuş token her
// durumda reddedilir.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		configslog.Log.Error("Şifre hash'lenemedi", zap.Error(err))
		return ErrPasswordResetFailed
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		tokenRepo := repositories.NewTokenRepositoryTx(tx)
		userRepo := repositories.NewUserRepositoryTx(tx)

		token, err := tokenRepo.FindByToken(ctx, models.TokenPurposePasswordReset, tokenStr)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenInvalid
			}
			return err
		}
		if token.IsExpired(time.Now()) {
			return ErrTokenInvalid
		}
		if token.UserID == nil {
			return ErrTokenInvalid
		}

		txCtx := context.WithValue(ctx, models.CtxUserIDKey, *token.UserID)
		if err := userRepo.Update(txCtx, *token.UserID, map[string]interface{}{
			"password_hash": hash,
			"status":        models.UserStatusActive,
		}); err != nil {
			return err
		}
		// Aynı token'la yarışan ikinci istek burada ErrRecordNotFound alır
		// ve tüm transaction geri döner.
		if err := tokenRepo.HardDelete(ctx, token.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenInvalid
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrTokenInvalid) {
			return ErrTokenInvalid
		}
		configslog.Log.Error("Şifre sıfırlama transaction'ı başarısız", zap.Error(txErr))
		return ErrPasswordResetFailed
	}
	return nil
}

// UpdatePassword oturum açmış kullanıcının şifresini değiştirir.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !utils.CheckPassword(user.PasswordHash, currentPassword) {
		return ErrWrongPassword
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	txCtx := context.WithValue(ctx, models.CtxUserIDKey, userID)
	return s.userRepo.Update(txCtx, userID, map[string]interface{}{"password_hash": hash})
}

// initialSlugFor kayıt anındaki profil için e-postadan slug adayı türetir.
// Kullanıcı daha sonra panelden değiştirebilir.
func initialSlugFor(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if len(base) > 12 {
		base = base[:12]
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	slug := base + "-" + suffix
	if len(slug) > 20 {
		slug = slug[:20]
	}
	if !models.IsValidSlug(slug) {
		// Local kısım tamamen elendiyse yalnızca rastgele kısım kalır.
		slug = "kart-" + suffix
	}
	return slug
}

// Arayüz uyumluluğu kontrolü
var _ IAuthService = (*AuthService)(nil)
