package models

import "time"

// Kurumsal hesap durumları. Askıya alma bir durum bayrağıdır,
// ayrı bir state machine yoktur.
const (
	OrganizationStatusActive    = "active"
	OrganizationStatusSuspended = "suspended"
)

// Organization birden çok üyeyi tek bir yönetici altında gruplayan
// kurumsal hesap (tenant). Her tenant'ın tam olarak bir yöneticisi vardır.
type Organization struct {
	BaseModel
	Name        string     `gorm:"type:varchar(150);not null" json:"name"`
	Status      string     `gorm:"type:varchar(20);default:'active';index" json:"status"`
	AdminUserID uint       `gorm:"not null;index" json:"adminUserId"`
	TrialEndsAt *time.Time `gorm:"type:timestamptz;index" json:"trialEndsAt,omitempty"`

	// GORM İlişkileri
	Members []User `gorm:"foreignKey:OrganizationID" json:"-"`
}

// IsSuspended tenant'ın askıda olup olmadığını döndürür.
func (o *Organization) IsSuspended() bool {
	return o.Status == OrganizationStatusSuspended
}
