package services

import (
	"context"
	"errors"

	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubscriptionServiceError özel servis hataları
type SubscriptionServiceError string

func (e SubscriptionServiceError) Error() string { return string(e) }

const (
	ErrSubscriptionNotFound SubscriptionServiceError = "abonelik bulunamadı"
	ErrCancelRequestExists  SubscriptionServiceError = "açık bir iptal talebiniz zaten var"
	ErrCancelRequestFailed  SubscriptionServiceError = "iptal talebi oluşturulamadı"
)

// ISubscriptionService abonelik işlemleri için arayüz. Durum geçişleri
// harici fatura sağlayıcısı tarafından sürülür; burada okuma ve iptal
// talebi kaydı vardır.
type ISubscriptionService interface {
	GetForUser(ctx context.Context, userID uint) (*models.Subscription, error)
	OpenCancelRequest(ctx context.Context, userID uint, reason string) (*models.CancelRequest, error)
	ListOpenCancelRequests(ctx context.Context) ([]models.CancelRequest, error)
}

// SubscriptionService ISubscriptionService arayüzünü uygular.
type SubscriptionService struct {
	repo repositories.ISubscriptionRepository
}

// NewSubscriptionService yeni bir SubscriptionService örneği oluşturur.
func NewSubscriptionService() ISubscriptionService {
	return &SubscriptionService{repo: repositories.NewSubscriptionRepository()}
}

// NewSubscriptionServiceWith bağımlılık enjeksiyonu ile örnek oluşturur (testler için).
func NewSubscriptionServiceWith(repo repositories.ISubscriptionRepository) ISubscriptionService {
	return &SubscriptionService{repo: repo}
}

// GetForUser kullanıcının aboneliğini plan bilgisiyle döndürür.
func (s *SubscriptionService) GetForUser(ctx context.Context, userID uint) (*models.Subscription, error) {
	sub, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// OpenCancelRequest iptal talebi açar. Aynı abonelik için ikinci açık
// talep çakışma döner.
func (s *SubscriptionService) OpenCancelRequest(ctx context.Context, userID uint, reason string) (*models.CancelRequest, error) {
	sub, err := s.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.OpenCancelRequestExists(ctx, sub.ID)
	if err != nil {
		return nil, ErrCancelRequestFailed
	}
	if exists {
		return nil, ErrCancelRequestExists
	}

	req := &models.CancelRequest{
		SubscriptionID: sub.ID,
		Reason:         reason,
		Status:         models.CancelRequestStatusOpen,
	}
	txCtx := context.WithValue(ctx, models.CtxUserIDKey, userID)
	if err := s.repo.CreateCancelRequest(txCtx, req); err != nil {
		configslog.Log.Error("İptal talebi oluşturulamadı", zap.Uint("subscription_id", sub.ID), zap.Error(err))
		return nil, ErrCancelRequestFailed
	}

	configslog.SLog.Infof("İptal talebi açıldı: abonelik %d (kullanıcı %d)", sub.ID, userID)
	return req, nil
}

// ListOpenCancelRequests açık iptal taleplerini listeler (platform admin).
func (s *SubscriptionService) ListOpenCancelRequests(ctx context.Context) ([]models.CancelRequest, error) {
	return s.repo.ListOpenCancelRequests(ctx)
}

// Arayüz uyumluluğu kontrolü
var _ ISubscriptionService = (*SubscriptionService)(nil)
