package models

// QR sayfası hedef modları: kullanıcının profili veya serbest URL.
const (
	QrTargetProfile = "profile"
	QrTargetURL     = "url"
)

// QrCodePage kullanıcının QR kod açılış sayfası kaydı (1:1 user).
// Slug global olarak benzersizdir ve public URL'i adresler (/q/:slug).
// QR görselinin üretimi bu servisin dışındadır; burada yalnızca
// slug ve hedef yönetimi yapılır.
type QrCodePage struct {
	BaseModel
	UserID     uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Slug       string `gorm:"type:varchar(20);uniqueIndex;not null" json:"slug"`
	TargetMode string `gorm:"type:varchar(10);not null;default:'profile'" json:"targetMode"`
	TargetURL  string `gorm:"type:varchar(500)" json:"targetUrl"`
	IsEnabled  bool   `gorm:"default:true;index" json:"isEnabled"`
}
