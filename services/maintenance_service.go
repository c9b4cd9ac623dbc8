package services

import (
	"context"
	"fmt"
	"time"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/pkg/mailer"
	"kartim.link/repositories"

	"go.uber.org/zap"
)

// Trial bitişine bu kadar süre kala hatırlatma gönderilir.
const trialNoticeWindow = 3 * 24 * time.Hour

// IMaintenanceService periyodik bakım işleri. Harici cron'un tetiklediği
// HTTP endpoint'leri ve (açıksa) süreç içi zamanlayıcı aynı metodları
// çağırır. İşler fire-and-forget'tir: başarısız tur yalnızca loglanır,
// bir sonraki tetiklemede yeniden denenir.
type IMaintenanceService interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
	SendTrialEndingNotices(ctx context.Context) (int, error)
}

// MaintenanceService IMaintenanceService arayüzünü uygular.
type MaintenanceService struct {
	tokenRepo repositories.ITokenRepository
	subRepo   repositories.ISubscriptionRepository
	userRepo  repositories.IUserRepository
	mail      MailSender
}

// NewMaintenanceService yeni bir MaintenanceService örneği oluşturur.
func NewMaintenanceService() IMaintenanceService {
	return &MaintenanceService{
		tokenRepo: repositories.NewTokenRepository(),
		subRepo:   repositories.NewSubscriptionRepository(),
		userRepo:  repositories.NewUserRepository(),
		mail:      mailer.New(configs.Get()),
	}
}

// NewMaintenanceServiceWith bağımlılık enjeksiyonu ile örnek oluşturur (testler için).
func NewMaintenanceServiceWith(tokenRepo repositories.ITokenRepository, subRepo repositories.ISubscriptionRepository, userRepo repositories.IUserRepository, mail MailSender) IMaintenanceService {
	return &MaintenanceService{tokenRepo: tokenRepo, subRepo: subRepo, userRepo: userRepo, mail: mail}
}

// PurgeExpiredTokens süresi dolmuş token'ları kalıcı siler.
// Süresi dolan token zaten okuma anında reddedilir; bu iş yalnızca
// tabloyu temiz tutar (tembel purge).
func (s *MaintenanceService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	purged, err := s.tokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	configslog.SLog.Infof("Token purge tamamlandı: %d satır silindi", purged)
	return purged, nil
}

// SendTrialEndingNotices trial süresi 3 gün içinde bitecek kullanıcılara
// hatırlatma maili gönderir. Her abonelik için en fazla bir kez.
func (s *MaintenanceService) SendTrialEndingNotices(ctx context.Context) (int, error) {
	now := time.Now()
	subs, err := s.subRepo.ListTrialsEndingBetween(ctx, now, now.Add(trialNoticeWindow))
	if err != nil {
		return 0, err
	}

	notified := 0
	for _, sub := range subs {
		user, err := s.userRepo.FindByID(ctx, sub.UserID)
		if err != nil {
			configslog.Log.Warn("Trial hatırlatması: kullanıcı yüklenemedi", zap.Uint("user_id", sub.UserID), zap.Error(err))
			continue
		}

		body := fmt.Sprintf("Merhaba %s,\n\nkartim.link deneme süreniz %s tarihinde sona eriyor. Kesintisiz kullanım için bir plan seçin.",
			user.Name, sub.TrialEndsAt.Format("02.01.2006"))
		if err := s.mail.Send(ctx, user.Email, "Deneme süreniz bitmek üzere", body); err != nil {
			// Damga basılmaz; bir sonraki turda yeniden denenir.
			configslog.Log.Warn("Trial hatırlatma maili gönderilemedi", zap.String("email", user.Email), zap.Error(err))
			continue
		}
		if err := s.subRepo.StampTrialNotice(ctx, sub.ID, now); err != nil {
			configslog.Log.Warn("Trial hatırlatma damgası basılamadı", zap.Uint("subscription_id", sub.ID), zap.Error(err))
			continue
		}
		notified++
	}

	configslog.SLog.Infof("Trial hatırlatmaları tamamlandı: %d mail gönderildi", notified)
	return notified, nil
}

// Arayüz uyumluluğu kontrolü
var _ IMaintenanceService = (*MaintenanceService)(nil)
