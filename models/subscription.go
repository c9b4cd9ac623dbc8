package models

import "time"

// Abonelik durumları. Durum geçişleri harici fatura sağlayıcısının
// olaylarıyla sürülür; bu uygulama yalnızca okur, trial açar ve
// iptal taleplerini kaydeder.
const (
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// Seed edilen plan kodları.
const (
	PlanCodeFree     = "free"
	PlanCodePersonal = "personal"
	PlanCodeCorp     = "corporate"
)

// Plan abonelik planı tanımı (seed ile yüklenir).
type Plan struct {
	BaseModel
	Code         string `gorm:"type:varchar(30);uniqueIndex;not null" json:"code"`
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	MonthlyPrice int    `gorm:"not null;default:0" json:"monthlyPrice"` // Kuruş cinsinden
	MaxLinks     int    `gorm:"not null;default:10" json:"maxLinks"`
}

// Subscription kullanıcının abonelik kaydı.
type Subscription struct {
	BaseModel
	UserID           uint       `gorm:"uniqueIndex;not null" json:"userId"`
	PlanID           uint       `gorm:"not null;index" json:"planId"`
	Status           string     `gorm:"type:varchar(20);not null;default:'trialing';index" json:"status"`
	TrialEndsAt      *time.Time `gorm:"type:timestamptz;index" json:"trialEndsAt,omitempty"`
	CurrentPeriodEnd *time.Time `gorm:"type:timestamptz" json:"currentPeriodEnd,omitempty"`
	// Trial bitiş hatırlatması en fazla bir kez gönderilir.
	TrialNoticeSentAt *time.Time `gorm:"type:timestamptz" json:"-"`

	// GORM İlişkileri
	Plan Plan `gorm:"foreignKey:PlanID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"plan"`
}
