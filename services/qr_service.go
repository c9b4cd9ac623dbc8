package services

import (
	"context"
	"errors"
	"fmt"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/configs/configsredis"
	"kartim.link/models"
	"kartim.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QrServiceError özel servis hataları
type QrServiceError string

func (e QrServiceError) Error() string { return string(e) }

const (
	ErrQrPageNotFound     QrServiceError = "QR sayfası bulunamadı"
	ErrQrSlugTaken        QrServiceError = "bu slug zaten kullanımda"
	ErrQrSlugInvalid      QrServiceError = "slug formatı geçersiz"
	ErrQrPageSaveFailed   QrServiceError = "QR sayfası kaydedilemedi"
	ErrQrTargetURLMissing QrServiceError = "url hedefi için targetUrl zorunludur"
)

// QR özelliğinin payload etiketi. Ürün özelliği yeniden adlandırıldı;
// geçiş tamamlanana kadar eski ad bayrakla sunulmaya devam eder.
const (
	sealLabelLegacy = "touch seal"
	sealLabelNew    = "one-tap seal"
)

// SealLabel aktif özellik adını döndürür (FEATURE_ONE_TAP_SEAL bayrağı).
func SealLabel() string {
	if configs.Get().FeatureOneTapSeal {
		return sealLabelNew
	}
	return sealLabelLegacy
}

// QrSaveData QR sayfası claim/güncelleme girdisi.
type QrSaveData struct {
	Slug       string
	TargetMode string // profile | url
	TargetURL  string
	IsEnabled  bool
}

// IQrService QR sayfası işlemleri için arayüz.
type IQrService interface {
	GetForUser(ctx context.Context, userID uint) (*models.QrCodePage, error)
	Save(ctx context.Context, userID uint, data QrSaveData) (*models.QrCodePage, error)
	GetPublicBySlug(ctx context.Context, slug string) (*models.QrCodePage, error)
}

// QrService IQrService arayüzünü uygular.
type QrService struct {
	repo repositories.IQrCodeRepository
}

// NewQrService yeni bir QrService örneği oluşturur.
func NewQrService() IQrService {
	return &QrService{repo: repositories.NewQrCodeRepository()}
}

// NewQrServiceWith bağımlılık enjeksiyonu ile örnek oluşturur (testler için).
func NewQrServiceWith(repo repositories.IQrCodeRepository) IQrService {
	return &QrService{repo: repo}
}

// PublicQrCacheKey public QR payload'ının redis anahtarı.
func PublicQrCacheKey(slug string) string {
	return fmt.Sprintf("public:qr:%s", slug)
}

// GetForUser kullanıcının QR sayfasını döndürür.
func (s *QrService) GetForUser(ctx context.Context, userID uint) (*models.QrCodePage, error) {
	page, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

// Save QR sayfasını oluşturur veya günceller. Slug benzersizliğinin asıl
// kaynağı unique index'tir; çakışma ErrQrSlugTaken (409) olarak döner.
func (s *QrService) Save(ctx context.Context, userID uint, data QrSaveData) (*models.QrCodePage, error) {
	if !models.IsValidSlug(data.Slug) {
		return nil, ErrQrSlugInvalid
	}
	if data.TargetMode != models.QrTargetURL {
		data.TargetMode = models.QrTargetProfile
	}
	if data.TargetMode == models.QrTargetURL && data.TargetURL == "" {
		return nil, ErrQrTargetURLMissing
	}

	txCtx := context.WithValue(ctx, models.CtxUserIDKey, userID)

	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing == nil {
		page := &models.QrCodePage{
			UserID:     userID,
			Slug:       data.Slug,
			TargetMode: data.TargetMode,
			TargetURL:  data.TargetURL,
			IsEnabled:  data.IsEnabled,
		}
		if err := s.repo.Create(txCtx, page); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return nil, ErrQrSlugTaken
			}
			configslog.Log.Error("QR sayfası oluşturulamadı", zap.Uint("user_id", userID), zap.Error(err))
			return nil, ErrQrPageSaveFailed
		}
		configslog.SLog.Infof("QR sayfası oluşturuldu: %s (kullanıcı %d)", page.Slug, userID)
		return page, nil
	}

	oldSlug := existing.Slug
	updates := map[string]interface{}{
		"slug":        data.Slug,
		"target_mode": data.TargetMode,
		"target_url":  data.TargetURL,
		"is_enabled":  data.IsEnabled,
	}
	if err := s.repo.Update(txCtx, existing.ID, updates); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrQrSlugTaken
		}
		configslog.Log.Error("QR sayfası güncellenemedi", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrQrPageSaveFailed
	}

	configsredis.Invalidate(ctx, PublicQrCacheKey(oldSlug), PublicQrCacheKey(data.Slug))

	existing.Slug = data.Slug
	existing.TargetMode = data.TargetMode
	existing.TargetURL = data.TargetURL
	existing.IsEnabled = data.IsEnabled
	return existing, nil
}

// GetPublicBySlug public QR sayfasını döndürür. Kapalı sayfalar dışarıya
// "bulunamadı" olarak görünür.
func (s *QrService) GetPublicBySlug(ctx context.Context, slug string) (*models.QrCodePage, error) {
	page, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQrPageNotFound
		}
		return nil, err
	}
	if !page.IsEnabled {
		return nil, ErrQrPageNotFound
	}
	return page, nil
}

// Arayüz uyumluluğu kontrolü
var _ IQrService = (*QrService)(nil)
