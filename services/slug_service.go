package services

import (
	"context"

	"kartim.link/models"
	"kartim.link/repositories"
)

// SlugCheckResult /check-slug endpoint'inin cevabı.
// Bu kontrol yalnızca bir UX ipucudur: asıl doğruluk kaynağı, claim
// anındaki unique index'tir (yarışta kaybeden 409 alır).
type SlugCheckResult struct {
	IsValid     bool   `json:"isValid"`
	IsAvailable bool   `json:"isAvailable"`
	Message     string `json:"message"`
}

// ISlugService slug format ve uygunluk kontrolleri için arayüz.
type ISlugService interface {
	CheckSlug(ctx context.Context, slug string) (SlugCheckResult, error)
}

// SlugService ISlugService arayüzünü uygular. Profil ve QR slug'ları
// ayrı tablolarda yaşar; uygunluk ipucu iki tabloya da bakar.
type SlugService struct {
	profileRepo repositories.IProfileRepository
	qrRepo      repositories.IQrCodeRepository
}

// NewSlugService yeni bir SlugService örneği oluşturur.
func NewSlugService() ISlugService {
	return &SlugService{
		profileRepo: repositories.NewProfileRepository(),
		qrRepo:      repositories.NewQrCodeRepository(),
	}
}

// NewSlugServiceWith bağımlılık enjeksiyonu ile örnek oluşturur (testler için).
func NewSlugServiceWith(profileRepo repositories.IProfileRepository, qrRepo repositories.IQrCodeRepository) ISlugService {
	return &SlugService{profileRepo: profileRepo, qrRepo: qrRepo}
}

// CheckSlug format ve uygunluk kontrolü yapar. Format hatası DB'ye gitmez.
func (s *SlugService) CheckSlug(ctx context.Context, slug string) (SlugCheckResult, error) {
	if !models.IsValidSlug(slug) {
		return SlugCheckResult{
			IsValid:     false,
			IsAvailable: false,
			Message:     "Slug yalnızca küçük harf, rakam ve tire içerebilir (3-20 karakter).",
		}, nil
	}

	inProfiles, err := s.profileRepo.SlugExists(ctx, slug)
	if err != nil {
		return SlugCheckResult{}, err
	}
	inQrPages, err := s.qrRepo.SlugExists(ctx, slug)
	if err != nil {
		return SlugCheckResult{}, err
	}

	if inProfiles || inQrPages {
		return SlugCheckResult{
			IsValid:     true,
			IsAvailable: false,
			Message:     "Bu slug zaten kullanımda.",
		}, nil
	}
	return SlugCheckResult{
		IsValid:     true,
		IsAvailable: true,
		Message:     "Slug kullanılabilir.",
	}, nil
}

// Arayüz uyumluluğu kontrolü
var _ ISlugService = (*SlugService)(nil)
