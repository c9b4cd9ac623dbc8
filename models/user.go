package models

// Kullanıcı durumları.
const (
	UserStatusActive    = "active"
	UserStatusPending   = "pending" // Kayıt tamamlandı ama henüz doğrulanmadı
	UserStatusSuspended = "suspended"
)

// User platform kullanıcısı. Kurumsal üyelikte OrganizationID dolu olur.
type User struct {
	BaseModel
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string `gorm:"type:varchar(255);not null" json:"-"`
	Name           string `gorm:"type:varchar(100);not null" json:"name"`
	Status         string `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	IsSystem       bool   `gorm:"default:false" json:"-"` // Platform yöneticisi bayrağı
	OrganizationID *uint  `gorm:"index" json:"organizationId,omitempty"`

	// GORM İlişkileri
	Organization *Organization `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Profile      *Profile      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// IsActive kullanıcının giriş yapabilir durumda olup olmadığını döndürür.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive || u.Status == UserStatusPending
}
