package services

import (
	"context"
	"errors"

	"kartim.link/configs/configslog"
	"kartim.link/configs/configsredis"
	"kartim.link/models"
	"kartim.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LinkServiceError özel servis hataları
type LinkServiceError string

func (e LinkServiceError) Error() string { return string(e) }

const (
	ErrLinkNotFound       LinkServiceError = "link bulunamadı"
	ErrLinkForbidden      LinkServiceError = "bu link üzerinde yetkiniz yok"
	ErrLinkCreationFailed LinkServiceError = "link oluşturulamadı"
	ErrLinkUpdateFailed   LinkServiceError = "link güncellenemedi"
	ErrLinkDeletionFailed LinkServiceError = "link silinemedi"
	ErrLinkLimitReached   LinkServiceError = "plan link limitine ulaştınız"
)

// Abonelik kaydı bulunamazsa uygulanan varsayılan link limiti.
const defaultMaxLinks = 10

// LinkCreateData yeni link girdisi.
type LinkCreateData struct {
	Kind  string
	Label string
	URL   string
}

// LinkUpdateData link güncelleme girdisi.
type LinkUpdateData struct {
	Label string
	URL   string
}

// ILinkService profil linki işlemleri için arayüz.
type ILinkService interface {
	ListForUser(ctx context.Context, userID uint) ([]models.ProfileLink, error)
	Create(ctx context.Context, userID uint, data LinkCreateData) (*models.ProfileLink, error)
	Update(ctx context.Context, userID, linkID uint, data LinkUpdateData) (*models.ProfileLink, error)
	Delete(ctx context.Context, userID, linkID uint) error
}

// LinkService ILinkService arayüzünü uygular.
type LinkService struct {
	repo        repositories.IProfileLinkRepository
	profileRepo repositories.IProfileRepository
	subRepo     repositories.ISubscriptionRepository
}

// NewLinkService yeni bir LinkService örneği oluşturur.
func NewLinkService() ILinkService {
	return &LinkService{
		repo:        repositories.NewProfileLinkRepository(),
		profileRepo: repositories.NewProfileRepository(),
		subRepo:     repositories.NewSubscriptionRepository(),
	}
}

// NewLinkServiceWith bağımlılık enjeksiyonu ile örnek oluşturur (testler için).
func NewLinkServiceWith(repo repositories.IProfileLinkRepository, profileRepo repositories.IProfileRepository, subRepo repositories.ISubscriptionRepository) ILinkService {
	return &LinkService{repo: repo, profileRepo: profileRepo, subRepo: subRepo}
}

// ListForUser kullanıcının linklerini sıra numarasına göre döndürür.
func (s *LinkService) ListForUser(ctx context.Context, userID uint) ([]models.ProfileLink, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create yeni bir link oluşturur. DisplayOrder "mevcut max + 1" olarak
// atanır; kullanıcının ilk linki 1 alır. Plan limiti aşılırsa hata döner.
func (s *LinkService) Create(ctx context.Context, userID uint, data LinkCreateData) (*models.ProfileLink, error) {
	maxLinks := s.maxLinksFor(ctx, userID)
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, ErrLinkCreationFailed
	}
	if count >= int64(maxLinks) {
		return nil, ErrLinkLimitReached
	}

	maxOrder, err := s.repo.MaxDisplayOrder(ctx, userID)
	if err != nil {
		return nil, ErrLinkCreationFailed
	}

	kind := data.Kind
	if kind != models.LinkKindSNS {
		kind = models.LinkKindCustom
	}

	link := &models.ProfileLink{
		UserID:       userID,
		Kind:         kind,
		Label:        data.Label,
		URL:          data.URL,
		DisplayOrder: maxOrder + 1,
	}

	txCtx := context.WithValue(ctx, models.CtxUserIDKey, userID)
	if err := s.repo.Create(txCtx, link); err != nil {
		configslog.Log.Error("Link oluşturulamadı", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrLinkCreationFailed
	}

	s.invalidateProfileCache(ctx, userID)
	configslog.SLog.Infof("Link oluşturuldu: ID %d, sıra %d (kullanıcı %d)", link.ID, link.DisplayOrder, userID)
	return link, nil
}

// Update link alanlarını günceller. Yalnızca sahibi güncelleyebilir.
func (s *LinkService) Update(ctx context.Context, userID, linkID uint, data LinkUpdateData) (*models.ProfileLink, error) {
	link, err := s.findOwned(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	txCtx := context.WithValue(ctx, models.CtxUserIDKey, userID)
	updates := map[string]interface{}{"label": data.Label, "url": data.URL}
	if err := s.repo.Update(txCtx, link.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		configslog.Log.Error("Link güncellenemedi", zap.Uint("link_id", linkID), zap.Error(err))
		return nil, ErrLinkUpdateFailed
	}

	s.invalidateProfileCache(ctx, userID)
	link.Label = data.Label
	link.URL = data.URL
	return link, nil
}

// Delete linki siler. Yalnızca sahibi silebilir. Kalan linklerin sıra
// numaraları yeniden düzenlenmez (boşluk doldurma yok).
func (s *LinkService) Delete(ctx context.Context, userID, linkID uint) error {
	link, err := s.findOwned(ctx, userID, linkID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, link); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		configslog.Log.Error("Link silinemedi", zap.Uint("link_id", linkID), zap.Error(err))
		return ErrLinkDeletionFailed
	}

	s.invalidateProfileCache(ctx, userID)
	return nil
}

// findOwned linki bulur ve sahiplik kontrolü yapar.
func (s *LinkService) findOwned(ctx context.Context, userID, linkID uint) (*models.ProfileLink, error) {
	link, err := s.repo.FindByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	if link.UserID != userID {
		return nil, ErrLinkForbidden
	}
	return link, nil
}

// maxLinksFor kullanıcının plan limitini döndürür; abonelik yoksa varsayılan.
func (s *LinkService) maxLinksFor(ctx context.Context, userID uint) int {
	sub, err := s.subRepo.FindByUserID(ctx, userID)
	if err != nil || sub.Plan.MaxLinks <= 0 {
		return defaultMaxLinks
	}
	return sub.Plan.MaxLinks
}

// invalidateProfileCache link mutasyonu sonrası public profil cache'ini düşürür.
func (s *LinkService) invalidateProfileCache(ctx context.Context, userID uint) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return
	}
	configsredis.Invalidate(ctx, PublicProfileCacheKey(profile.Slug))
}

// Arayüz uyumluluğu kontrolü
var _ ILinkService = (*LinkService)(nil)
