package services

import (
	"context"
	"errors"
	"time"

	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationServiceError özel servis hataları
type NotificationServiceError string

func (e NotificationServiceError) Error() string { return string(e) }

const (
	ErrNotificationNotFound     NotificationServiceError = "bildirim bulunamadı"
	ErrNotificationCreateFailed NotificationServiceError = "bildirim oluşturulamadı"
	ErrNotificationForbidden    NotificationServiceError = "bu bildirime erişim yetkiniz yok"
)

// INotificationService bildirim işlemleri için arayüz.
type INotificationService interface {
	ListForUser(ctx context.Context, userID uint, orgID *uint) ([]repositories.NotificationWithRead, error)
	MarkRead(ctx context.Context, userID uint, notificationID uint, orgID *uint) error
	CreateForOrganization(ctx context.Context, creatorUserID, orgID uint, title, body string) (*models.Notification, error)
	CreateAnnouncement(ctx context.Context, creatorUserID uint, title, body string) (*models.Notification, error)
}

// NotificationService INotificationService arayüzünü uygular.
type NotificationService struct {
	repo repositories.INotificationRepository
}

// NewNotificationService yeni bir NotificationService örneği oluşturur.
func NewNotificationService() INotificationService {
	return &NotificationService{repo: repositories.NewNotificationRepository()}
}

// NewNotificationServiceWith bağımlılık enjeksiyonu ile örnek oluşturur (testler için).
func NewNotificationServiceWith(repo repositories.INotificationRepository) INotificationService {
	return &NotificationService{repo: repo}
}

// ListForUser kullanıcının görebileceği bildirimleri okundu bilgisiyle listeler.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint, orgID *uint) ([]repositories.NotificationWithRead, error) {
	return s.repo.ListForUser(ctx, userID, orgID)
}

// MarkRead bildirimi okundu işaretler (idempotent). Kullanıcının
// göremeyeceği bir bildirim "bulunamadı" olarak döner.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint, notificationID uint, orgID *uint) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}

	// Görünürlük kontrolü: org bildirimi yalnızca o tenant'ın üyesine görünür.
	if n.Audience == models.NotificationAudienceOrg {
		if orgID == nil || n.OrganizationID == nil || *n.OrganizationID != *orgID {
			return ErrNotificationNotFound
		}
	}

	txCtx := context.WithValue(ctx, models.CtxUserIDKey, userID)
	return s.repo.MarkRead(txCtx, notificationID, userID, time.Now())
}

// CreateForOrganization tenant üyelerine yönelik bildirim oluşturur.
func (s *NotificationService) CreateForOrganization(ctx context.Context, creatorUserID, orgID uint, title, body string) (*models.Notification, error) {
	n := &models.Notification{
		Title:          title,
		Body:           body,
		Audience:       models.NotificationAudienceOrg,
		OrganizationID: &orgID,
	}
	txCtx := context.WithValue(ctx, models.CtxUserIDKey, creatorUserID)
	if err := s.repo.Create(txCtx, n); err != nil {
		configslog.Log.Error("Tenant bildirimi oluşturulamadı", zap.Uint("org_id", orgID), zap.Error(err))
		return nil, ErrNotificationCreateFailed
	}
	return n, nil
}

// CreateAnnouncement tüm kullanıcılara yönelik platform duyurusu oluşturur.
func (s *NotificationService) CreateAnnouncement(ctx context.Context, creatorUserID uint, title, body string) (*models.Notification, error) {
	n := &models.Notification{
		Title:    title,
		Body:     body,
		Audience: models.NotificationAudienceAll,
	}
	txCtx := context.WithValue(ctx, models.CtxUserIDKey, creatorUserID)
	if err := s.repo.Create(txCtx, n); err != nil {
		configslog.Log.Error("Duyuru oluşturulamadı", zap.Error(err))
		return nil, ErrNotificationCreateFailed
	}
	configslog.SLog.Infof("Platform duyurusu oluşturuldu: %q (ID %d)", title, n.ID)
	return n, nil
}

// Arayüz uyumluluğu kontrolü
var _ INotificationService = (*NotificationService)(nil)
