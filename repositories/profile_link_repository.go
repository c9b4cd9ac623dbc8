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

// IProfileLinkRepository profil linki veritabanı işlemleri için arayüz.
type IProfileLinkRepository interface {
	Create(ctx context.Context, link *models.ProfileLink) error
	FindByID(ctx context.Context, id uint) (*models.ProfileLink, error)
	ListByUser(ctx context.Context, userID uint) ([]models.ProfileLink, error)
	MaxDisplayOrder(ctx context.Context, userID uint) (int, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
	Delete(ctx context.Context, link *models.ProfileLink) error
}

// ProfileLinkRepository IProfileLinkRepository arayüzünü uygular.
type ProfileLinkRepository struct {
	db *gorm.DB
}

// NewProfileLinkRepository yeni bir ProfileLinkRepository örneği oluşturur.
func NewProfileLinkRepository() IProfileLinkRepository {
	return &ProfileLinkRepository{db: configs.GetDB()}
}

// NewProfileLinkRepositoryTx transaction içinde çalışan bir örnek oluşturur.
func NewProfileLinkRepositoryTx(tx *gorm.DB) IProfileLinkRepository {
	return &ProfileLinkRepository{db: tx}
}

func (r *ProfileLinkRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir link satırı oluşturur. DisplayOrder ataması servis
// katmanında yapılır (mevcut max + 1).
func (r *ProfileLinkRepository) Create(ctx context.Context, link *models.ProfileLink) error {
	if link == nil {
		return errors.New("oluşturulacak link nil olamaz")
	}
	return r.getDB(ctx).Create(link).Error
}

// FindByID ID ile link satırını bulur.
func (r *ProfileLinkRepository) FindByID(ctx context.Context, id uint) (*models.ProfileLink, error) {
	if id == 0 {
		return nil, errors.New("geçersiz link ID")
	}
	var link models.ProfileLink
	err := r.getDB(ctx).First(&link, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("ProfileLinkRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &link, nil
}

// ListByUser kullanıcının linklerini display_order sırasıyla listeler.
func (r *ProfileLinkRepository) ListByUser(ctx context.Context, userID uint) ([]models.ProfileLink, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	var links []models.ProfileLink
	err := r.getDB(ctx).Where("user_id = ?", userID).Order("display_order asc").Find(&links).Error
	if err != nil {
		configslog.Log.Error("ProfileLinkRepository.ListByUser: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return links, nil
}

// MaxDisplayOrder kullanıcının mevcut en büyük sıra numarasını döndürür (hiç link yoksa 0).
func (r *ProfileLinkRepository) MaxDisplayOrder(ctx context.Context, userID uint) (int, error) {
	if userID == 0 {
		return 0, errors.New("geçersiz kullanıcı ID")
	}
	var max int
	err := r.getDB(ctx).Model(&models.ProfileLink{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&max).Error
	if err != nil {
		configslog.Log.Error("ProfileLinkRepository.MaxDisplayOrder: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return 0, err
	}
	return max, nil
}

// CountByUser kullanıcının link sayısını döndürür (plan limiti kontrolü için).
func (r *ProfileLinkRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.ProfileLink{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		configslog.Log.Error("ProfileLinkRepository.CountByUser: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// Update link alanlarını map ile günceller.
func (r *ProfileLinkRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return errors.New("güncellenecek link ID'si geçersiz")
	}
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	result := r.getDB(ctx).Model(&models.ProfileLink{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.getDB(ctx).Model(&models.ProfileLink{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Delete link satırını siler (soft delete).
func (r *ProfileLinkRepository) Delete(ctx context.Context, link *models.ProfileLink) error {
	if link == nil || link.ID == 0 {
		return errors.New("silinecek link geçerli değil")
	}
	result := r.getDB(ctx).Delete(link)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IProfileLinkRepository = (*ProfileLinkRepository)(nil)
