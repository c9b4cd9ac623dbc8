package repositories

import (
	"context"
	"errors"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IQrCodeRepository QR sayfası veritabanı işlemleri için arayüz.
type IQrCodeRepository interface {
	Create(ctx context.Context, page *models.QrCodePage) error
	FindByUserID(ctx context.Context, userID uint) (*models.QrCodePage, error)
	FindBySlug(ctx context.Context, slug string) (*models.QrCodePage, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
}

// QrCodeRepository IQrCodeRepository arayüzünü uygular.
type QrCodeRepository struct {
	db *gorm.DB
}

// NewQrCodeRepository yeni bir QrCodeRepository örneği oluşturur.
func NewQrCodeRepository() IQrCodeRepository {
	return &QrCodeRepository{db: configs.GetDB()}
}

// NewQrCodeRepositoryTx transaction içinde çalışan bir örnek oluşturur.
func NewQrCodeRepositoryTx(tx *gorm.DB) IQrCodeRepository {
	return &QrCodeRepository{db: tx}
}

func (r *QrCodeRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir QR sayfası kaydı oluşturur. Slug çakışması duplicate
// key hatası olarak döner.
func (r *QrCodeRepository) Create(ctx context.Context, page *models.QrCodePage) error {
	if page == nil {
		return errors.New("oluşturulacak QR sayfası nil olamaz")
	}
	return r.getDB(ctx).Create(page).Error
}

// FindByUserID kullanıcının QR sayfasını bulur.
func (r *QrCodeRepository) FindByUserID(ctx context.Context, userID uint) (*models.QrCodePage, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	var page models.QrCodePage
	err := r.getDB(ctx).Where("user_id = ?", userID).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("QrCodeRepository.FindByUserID: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &page, nil
}

// FindBySlug public slug ile QR sayfasını bulur.
func (r *QrCodeRepository) FindBySlug(ctx context.Context, slug string) (*models.QrCodePage, error) {
	if slug == "" {
		return nil, errors.New("aranacak slug boş olamaz")
	}
	var page models.QrCodePage
	err := r.getDB(ctx).Where("slug = ?", slug).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("QrCodeRepository.FindBySlug: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &page, nil
}

// SlugExists slug'ın QR tablosunda kullanımda olup olmadığını kontrol eder.
func (r *QrCodeRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.QrCodePage{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		configslog.Log.Error("QrCodeRepository.SlugExists: DB error", zap.String("slug", slug), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// Update QR sayfası alanlarını map ile günceller.
func (r *QrCodeRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return errors.New("güncellenecek QR sayfası ID'si geçersiz")
	}
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	result := r.getDB(ctx).Model(&models.QrCodePage{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.getDB(ctx).Model(&models.QrCodePage{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IQrCodeRepository = (*QrCodeRepository)(nil)
