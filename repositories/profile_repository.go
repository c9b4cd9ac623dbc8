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

// IProfileRepository profil veritabanı işlemleri için arayüz.
type IProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	FindBySlug(ctx context.Context, slug string) (*models.Profile, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
}

// ProfileRepository IProfileRepository arayüzünü uygular.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository yeni bir ProfileRepository örneği oluşturur.
func NewProfileRepository() IProfileRepository {
	return &ProfileRepository{db: configs.GetDB()}
}

// NewProfileRepositoryTx transaction içinde çalışan bir örnek oluşturur.
func NewProfileRepositoryTx(tx *gorm.DB) IProfileRepository {
	return &ProfileRepository{db: tx}
}

func (r *ProfileRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir profil kaydı oluşturur. Slug çakışması duplicate key
// hatası olarak döner; çeviri servis katmanında yapılır.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		return errors.New("oluşturulacak profil nil olamaz")
	}
	return r.getDB(ctx).Create(profile).Error
}

// FindByUserID kullanıcının profilini bulur.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	var profile models.Profile
	err := r.getDB(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("ProfileRepository.FindByUserID: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

// FindBySlug public slug ile profili bulur (linkleri display_order sırasıyla yükler).
func (r *ProfileRepository) FindBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	if slug == "" {
		return nil, errors.New("aranacak slug boş olamaz")
	}
	var profile models.Profile
	err := r.getDB(ctx).
		Preload("Links", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Where("slug = ?", slug).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("ProfileRepository.FindBySlug: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

// SlugExists slug'ın profil tablosunda kullanımda olup olmadığını kontrol eder.
func (r *ProfileRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Profile{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		configslog.Log.Error("ProfileRepository.SlugExists: DB error", zap.String("slug", slug), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// Update profil alanlarını map ile günceller.
func (r *ProfileRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return errors.New("güncellenecek profil ID'si geçersiz")
	}
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	result := r.getDB(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.getDB(ctx).Model(&models.Profile{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IProfileRepository = (*ProfileRepository)(nil)
