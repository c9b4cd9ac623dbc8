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

// NotificationWithRead bildirim + kullanıcı bazlı okundu bilgisi.
type NotificationWithRead struct {
	models.Notification
	ReadAt *time.Time `json:"readAt,omitempty"`
}

// INotificationRepository bildirim veritabanı işlemleri için arayüz.
type INotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	ListForUser(ctx context.Context, userID uint, orgID *uint) ([]NotificationWithRead, error)
	MarkRead(ctx context.Context, notificationID, userID uint, now time.Time) error
}

// NotificationRepository INotificationRepository arayüzünü uygular.
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository yeni bir NotificationRepository örneği oluşturur.
func NewNotificationRepository() INotificationRepository {
	return &NotificationRepository{db: configs.GetDB()}
}

// NewNotificationRepositoryTx transaction içinde çalışan bir örnek oluşturur.
func NewNotificationRepositoryTx(tx *gorm.DB) INotificationRepository {
	return &NotificationRepository{db: tx}
}

func (r *NotificationRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir bildirim oluşturur.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n == nil {
		return errors.New("oluşturulacak bildirim nil olamaz")
	}
	return r.getDB(ctx).Create(n).Error
}

// FindByID ID ile bildirimi bulur.
func (r *NotificationRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	if id == 0 {
		return nil, errors.New("geçersiz bildirim ID")
	}
	var n models.Notification
	err := r.getDB(ctx).First(&n, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("NotificationRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &n, nil
}

// ListForUser kullanıcının görebileceği bildirimleri (platform duyuruları +
// kendi tenant'ının bildirimleri) okundu bilgisiyle birlikte listeler.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID uint, orgID *uint) ([]NotificationWithRead, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}

	db := r.getDB(ctx)
	query := db.Model(&models.Notification{}).
		Select("notifications.*, notification_reads.read_at AS read_at").
		Joins("LEFT JOIN notification_reads ON notification_reads.notification_id = notifications.id AND notification_reads.user_id = ? AND notification_reads.deleted_at IS NULL", userID).
		Order("notifications.created_at desc")

	if orgID != nil {
		query = query.Where("notifications.audience = ? OR (notifications.audience = ? AND notifications.organization_id = ?)",
			models.NotificationAudienceAll, models.NotificationAudienceOrg, *orgID)
	} else {
		query = query.Where("notifications.audience = ?", models.NotificationAudienceAll)
	}

	var rows []NotificationWithRead
	if err := query.Scan(&rows).Error; err != nil {
		configslog.Log.Error("NotificationRepository.ListForUser: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// MarkRead okundu satırını oluşturur. (notification_id, user_id) çifti
// benzersizdir; tekrar çağrı mevcut satırı bulur ve no-op olur (idempotent).
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID uint, now time.Time) error {
	if notificationID == 0 || userID == 0 {
		return errors.New("geçersiz bildirim veya kullanıcı ID")
	}
	read := models.NotificationRead{
		NotificationID: notificationID,
		UserID:         userID,
		ReadAt:         now,
	}
	err := r.getDB(ctx).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		FirstOrCreate(&read).Error
	if err != nil {
		// Yarışta kaybeden unique index hatası alır; satır zaten var demektir.
		if IsDuplicateKeyError(err) {
			return nil
		}
		configslog.Log.Error("NotificationRepository.MarkRead: DB error",
			zap.Uint("notification_id", notificationID), zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ INotificationRepository = (*NotificationRepository)(nil)
