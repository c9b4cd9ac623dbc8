package models

// İptal talebi durumları.
const (
	CancelRequestStatusOpen      = "open"
	CancelRequestStatusProcessed = "processed"
)

// CancelRequest kullanıcının abonelik iptal talebi. Asıl iptal harici
// fatura sağlayıcısında gerçekleşir; burada yalnızca talep kaydı tutulur.
type CancelRequest struct {
	BaseModel
	SubscriptionID uint   `gorm:"not null;index" json:"subscriptionId"`
	Reason         string `gorm:"type:text" json:"reason"`
	Status         string `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`

	// GORM İlişkileri
	Subscription Subscription `gorm:"foreignKey:SubscriptionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
