package models

import (
	"time"

	"gorm.io/gorm"
)

// CtxUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// BaseModel hook'larına taşımak için kullanılan anahtar.
type ctxKey string

const CtxUserIDKey ctxKey = "user_id"

// BaseModel tüm tablolara gömülen ortak alanlar: ID, zaman damgaları,
// soft delete ve audit kolonları (kim oluşturdu/güncelledi/sildi).
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// userIDFromContext context'teki user_id değerini okur (yoksa 0).
func userIDFromContext(tx *gorm.DB) uint {
	if tx == nil || tx.Statement == nil || tx.Statement.Context == nil {
		return 0
	}
	if uid, ok := tx.Statement.Context.Value(CtxUserIDKey).(uint); ok {
		return uid
	}
	return 0
}

// BeforeCreate CreatedBy alanını context'teki kullanıcı ile doldurur.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if uid := userIDFromContext(tx); uid != 0 {
		m.CreatedBy = &uid
	}
	return nil
}

// BeforeUpdate UpdatedBy alanını context'teki kullanıcı ile doldurur.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if uid := userIDFromContext(tx); uid != 0 {
		m.UpdatedBy = &uid
	}
	return nil
}
