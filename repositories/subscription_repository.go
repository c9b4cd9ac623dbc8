package repositories

import (
	"context"
	"errors"
	"time"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISubscriptionRepository abonelik/plan/iptal talebi işlemleri için arayüz.
type ISubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	FindByUserID(ctx context.Context, userID uint) (*models.Subscription, error)
	FindPlanByCode(ctx context.Context, code string) (*models.Plan, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error

	CreateCancelRequest(ctx context.Context, req *models.CancelRequest) error
	OpenCancelRequestExists(ctx context.Context, subscriptionID uint) (bool, error)
	ListOpenCancelRequests(ctx context.Context) ([]models.CancelRequest, error)

	ListTrialsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error)
	StampTrialNotice(ctx context.Context, id uint, at time.Time) error
}

// SubscriptionRepository ISubscriptionRepository arayüzünü uygular.
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository yeni bir SubscriptionRepository örneği oluşturur.
func NewSubscriptionRepository() ISubscriptionRepository {
	return &SubscriptionRepository{db: configs.GetDB()}
}

// NewSubscriptionRepositoryTx transaction içinde çalışan bir örnek oluşturur.
func NewSubscriptionRepositoryTx(tx *gorm.DB) ISubscriptionRepository {
	return &SubscriptionRepository{db: tx}
}

func (r *SubscriptionRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir abonelik kaydı oluşturur.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if sub == nil {
		return errors.New("oluşturulacak abonelik nil olamaz")
	}
	return r.getDB(ctx).Create(sub).Error
}

// FindByUserID kullanıcının aboneliğini plan bilgisiyle bulur.
func (r *SubscriptionRepository) FindByUserID(ctx context.Context, userID uint) (*models.Subscription, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	var sub models.Subscription
	err := r.getDB(ctx).Preload("Plan").Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("SubscriptionRepository.FindByUserID: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &sub, nil
}

// FindPlanByCode plan koduyla planı bulur.
func (r *SubscriptionRepository) FindPlanByCode(ctx context.Context, code string) (*models.Plan, error) {
	if code == "" {
		return nil, errors.New("aranacak plan kodu boş olamaz")
	}
	var plan models.Plan
	err := r.getDB(ctx).Where("code = ?", code).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("SubscriptionRepository.FindPlanByCode: DB error", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return &plan, nil
}

// Update abonelik alanlarını map ile günceller.
func (r *SubscriptionRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return errors.New("güncellenecek abonelik ID'si geçersiz")
	}
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	result := r.getDB(ctx).Model(&models.Subscription{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.getDB(ctx).Model(&models.Subscription{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// CreateCancelRequest yeni bir iptal talebi oluşturur.
func (r *SubscriptionRepository) CreateCancelRequest(ctx context.Context, req *models.CancelRequest) error {
	if req == nil {
		return errors.New("oluşturulacak iptal talebi nil olamaz")
	}
	return r.getDB(ctx).Create(req).Error
}

// OpenCancelRequestExists abonelik için açık bir iptal talebi var mı kontrol eder.
func (r *SubscriptionRepository) OpenCancelRequestExists(ctx context.Context, subscriptionID uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.CancelRequest{}).
		Where("subscription_id = ? AND status = ?", subscriptionID, models.CancelRequestStatusOpen).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("SubscriptionRepository.OpenCancelRequestExists: DB error", zap.Uint("subscription_id", subscriptionID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// ListOpenCancelRequests açık iptal taleplerini listeler (platform admin ekranı).
func (r *SubscriptionRepository) ListOpenCancelRequests(ctx context.Context) ([]models.CancelRequest, error) {
	var reqs []models.CancelRequest
	err := r.getDB(ctx).
		Preload("Subscription").Preload("Subscription.Plan").
		Where("status = ?", models.CancelRequestStatusOpen).
		Order("created_at asc").
		Find(&reqs).Error
	if err != nil {
		configslog.Log.Error("SubscriptionRepository.ListOpenCancelRequests: DB error", zap.Error(err))
		return nil, err
	}
	return reqs, nil
}

// ListTrialsEndingBetween trial süresi verilen aralıkta biten ve henüz
// hatırlatma gönderilmemiş abonelikleri listeler.
func (r *SubscriptionRepository) ListTrialsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.getDB(ctx).
		Where("status = ? AND trial_ends_at IS NOT NULL AND trial_ends_at BETWEEN ? AND ? AND trial_notice_sent_at IS NULL",
			models.SubscriptionStatusTrialing, from, to).
		Find(&subs).Error
	if err != nil {
		configslog.Log.Error("SubscriptionRepository.ListTrialsEndingBetween: DB error", zap.Error(err))
		return nil, err
	}
	return subs, nil
}

// StampTrialNotice hatırlatma gönderildi damgasını basar.
func (r *SubscriptionRepository) StampTrialNotice(ctx context.Context, id uint, at time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{"trial_notice_sent_at": at})
}

// Arayüz uyumluluğu kontrolü
var _ ISubscriptionRepository = (*SubscriptionRepository)(nil)
