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

// ITokenRepository tek kullanımlık token işlemleri için arayüz.
type ITokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	FindByToken(ctx context.Context, purpose, tokenStr string) (*models.Token, error)
	HardDelete(ctx context.Context, id uint) error
	OpenInviteExists(ctx context.Context, email string, orgID uint, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenRepository ITokenRepository arayüzünü uygular.
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository yeni bir TokenRepository örneği oluşturur.
func NewTokenRepository() ITokenRepository {
	return &TokenRepository{db: configs.GetDB()}
}

// NewTokenRepositoryTx transaction içinde çalışan bir örnek oluşturur.
// Token tüketimi her zaman etkisiyle aynı transaction'da yapılır.
func NewTokenRepositoryTx(tx *gorm.DB) ITokenRepository {
	return &TokenRepository{db: tx}
}

func (r *TokenRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir token kaydı oluşturur.
func (r *TokenRepository) Create(ctx context.Context, token *models.Token) error {
	if token == nil {
		return errors.New("oluşturulacak token nil olamaz")
	}
	return r.getDB(ctx).Create(token).Error
}

// FindByToken amaç ve token string'i ile kaydı bulur. Süre kontrolü
// çağıranın sorumluluğundadır (okuma anında expires_at < now reddedilir).
func (r *TokenRepository) FindByToken(ctx context.Context, purpose, tokenStr string) (*models.Token, error) {
	if tokenStr == "" {
		return nil, errors.New("aranacak token boş olamaz")
	}
	var token models.Token
	err := r.getDB(ctx).Where("purpose = ? AND token = ?", purpose, tokenStr).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("TokenRepository.FindByToken: DB error", zap.String("purpose", purpose), zap.Error(err))
		return nil, err
	}
	return &token, nil
}

// HardDelete token'ı kalıcı olarak siler. Tek kullanımlık token'lar
// soft delete ile bekletilmez; tüketildiği anda kaybolur.
func (r *TokenRepository) HardDelete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("silinecek token ID'si geçersiz")
	}
	result := r.getDB(ctx).Unscoped().Delete(&models.Token{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// OpenInviteExists aynı adres ve tenant için süresi geçmemiş bir davet
// olup olmadığını kontrol eder (mükerrer davet önleme; UX ön kontrolü).
func (r *TokenRepository) OpenInviteExists(ctx context.Context, email string, orgID uint, now time.Time) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Token{}).
		Where("purpose = ? AND email = ? AND organization_id = ? AND expires_at > ?",
			models.TokenPurposeInvite, email, orgID, now).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("TokenRepository.OpenInviteExists: DB error", zap.String("email", email), zap.Uint("org_id", orgID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// DeleteExpired süresi dolmuş tüm token'ları kalıcı siler ve silinen
// satır sayısını döndürür. Periyodik purge işi tarafından çağrılır.
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.getDB(ctx).Unscoped().Where("expires_at < ?", now).Delete(&models.Token{})
	if result.Error != nil {
		configslog.Log.Error("TokenRepository.DeleteExpired: DB error", zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Arayüz uyumluluğu kontrolü
var _ ITokenRepository = (*TokenRepository)(nil)
