package services

import (
	"context"
	"errors"
	"fmt"

	"kartim.link/configs/configslog"
	"kartim.link/configs/configsredis"
	"kartim.link/models"
	"kartim.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileServiceError özel servis hataları
type ProfileServiceError string

func (e ProfileServiceError) Error() string { return string(e) }

const (
	ErrProfileNotFound     ProfileServiceError = "profil bulunamadı"
	ErrProfileUpdateFailed ProfileServiceError = "profil güncellenemedi"
	ErrSlugTaken           ProfileServiceError = "bu slug zaten kullanımda"
	ErrSlugInvalid         ProfileServiceError = "slug formatı geçersiz"
)

// ProfileUpdateData panel profil güncellemesinin alanları.
// Sunucu yönetimli alanlar (zaman damgaları, audit) burada yer almaz;
// yazılan alanlar geri okumada aynen döner.
type ProfileUpdateData struct {
	DisplayName string
	Title       string
	Company     string
	Bio         string
	Phone       string
	Website     string
	AvatarURL   string
	Slug        string
	IsPublic    bool
}

// IProfileService profil işlemleri için arayüz.
type IProfileService interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetPublicBySlug(ctx context.Context, slug string) (*models.Profile, error)
	Update(ctx context.Context, userID uint, data ProfileUpdateData) (*models.Profile, error)
}

// ProfileService IProfileService arayüzünü uygular.
type ProfileService struct {
	repo repositories.IProfileRepository
}

// NewProfileService yeni bir ProfileService örneği oluşturur.
func NewProfileService() IProfileService {
	return &ProfileService{repo: repositories.NewProfileRepository()}
}

// NewProfileServiceWith bağımlılık enjeksiyonu ile örnek oluşturur (testler için).
func NewProfileServiceWith(repo repositories.IProfileRepository) IProfileService {
	return &ProfileService{repo: repo}
}

// PublicProfileCacheKey public profil payload'ının redis anahtarı.
func PublicProfileCacheKey(slug string) string {
	return fmt.Sprintf("public:profile:%s", slug)
}

// GetByUserID kullanıcının kendi profilini döndürür.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetPublicBySlug public profili döndürür. Gizli profiller dışarıya
// "bulunamadı" olarak görünür.
func (s *ProfileService) GetPublicBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	profile, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if !profile.IsPublic {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// Update profil alanlarını günceller. Slug değişiyorsa format kontrolü
// yapılır; benzersizliğin asıl kaynağı unique index'tir, çakışma
// ErrSlugTaken (409) olarak döner.
func (s *ProfileService) Update(ctx context.Context, userID uint, data ProfileUpdateData) (*models.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if data.Slug != "" && data.Slug != profile.Slug {
		if !models.IsValidSlug(data.Slug) {
			return nil, ErrSlugInvalid
		}
	} else {
		data.Slug = profile.Slug
	}

	oldSlug := profile.Slug
	updates := map[string]interface{}{
		"display_name": data.DisplayName,
		"title":        data.Title,
		"company":      data.Company,
		"bio":          data.Bio,
		"phone":        data.Phone,
		"website":      data.Website,
		"avatar_url":   data.AvatarURL,
		"slug":         data.Slug,
		"is_public":    data.IsPublic,
	}

	txCtx := context.WithValue(ctx, models.CtxUserIDKey, userID)
	if err := s.repo.Update(txCtx, profile.ID, updates); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrSlugTaken
		}
		configslog.Log.Error("Profil güncellenemedi", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrProfileUpdateFailed
	}

	// Public payload cache'ini tazele (eski slug da dahil).
	configsredis.Invalidate(ctx, PublicProfileCacheKey(oldSlug), PublicProfileCacheKey(data.Slug))

	updated, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrProfileUpdateFailed
	}
	return updated, nil
}

// Arayüz uyumluluğu kontrolü
var _ IProfileService = (*ProfileService)(nil)
