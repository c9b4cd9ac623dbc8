package models

import "time"

// Token amaçları. Aynı tablo hem şifre sıfırlama hem kurumsal davet
// token'ları için kullanılır.
const (
	TokenPurposePasswordReset = "password_reset"
	TokenPurposeInvite        = "invite"
)

// Token tek kullanımlık, süreli opak anahtar. Tüketim ve etkisi
// (şifre belirleme, davet kabulü) aynı transaction içinde gerçekleşir;
// süresi dolan token'lar okuma anında reddedilir ve periyodik purge
// işi tarafından tembel (lazy) silinir.
type Token struct {
	BaseModel
	Token          string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	Purpose        string    `gorm:"type:varchar(20);not null;index" json:"purpose"`
	UserID         *uint     `gorm:"index" json:"userId,omitempty"`         // password_reset için
	Email          string    `gorm:"type:varchar(255);index" json:"email"`  // invite için davet edilen adres
	OrganizationID *uint     `gorm:"index" json:"organizationId,omitempty"` // invite için hedef tenant
	ExpiresAt      time.Time `gorm:"type:timestamptz;not null;index" json:"expiresAt"`
}

// IsExpired token süresinin geçip geçmediğini döndürür.
func (t *Token) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
