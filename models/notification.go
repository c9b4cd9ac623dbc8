package models

import "time"

// Bildirim hedef kitleleri.
const (
	NotificationAudienceAll = "all" // Tüm kullanıcılar (platform duyurusu)
	NotificationAudienceOrg = "org" // Tek bir tenant'ın üyeleri
)

// Notification yöneticiler tarafından oluşturulan bildirim.
type Notification struct {
	BaseModel
	Title          string `gorm:"type:varchar(200);not null" json:"title"`
	Body           string `gorm:"type:text;not null" json:"body"`
	Audience       string `gorm:"type:varchar(10);not null;default:'all';index" json:"audience"`
	OrganizationID *uint  `gorm:"index" json:"organizationId,omitempty"` // audience=org ise dolu
}

// NotificationRead kullanıcı başına okundu bilgisini tutan join satırı.
// (notification_id, user_id) çifti benzersizdir; mark-read idempotent'tir.
type NotificationRead struct {
	BaseModel
	NotificationID uint      `gorm:"not null;uniqueIndex:idx_notification_reads_pair" json:"notificationId"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_notification_reads_pair" json:"userId"`
	ReadAt         time.Time `gorm:"type:timestamptz;not null" json:"readAt"`
}
