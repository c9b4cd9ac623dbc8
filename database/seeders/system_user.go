package seeders

import (
	"context"
	"errors"
	"os"

	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedSystemUser platform yöneticisi hesabını oluşturur veya günceller.
// Kimlik bilgileri SYSTEM_ADMIN_EMAIL / SYSTEM_ADMIN_PASSWORD ortam
// değişkenlerinden okunur.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_ADMIN_EMAIL")
	password := os.Getenv("SYSTEM_ADMIN_PASSWORD")
	if email == "" || password == "" {
		configslog.SLog.Warn("SYSTEM_ADMIN_EMAIL/SYSTEM_ADMIN_PASSWORD tanımlı değil, sistem kullanıcısı seed edilmiyor.")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		// Mevcut hesabın yönetici bayrağı ve şifresi güncel tutulur.
		updates := map[string]interface{}{
			"password_hash": hash,
			"is_system":     true,
			"status":        models.UserStatusActive,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı '%s' güncellendi (ID: %d).", email, existing.ID)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Sistem Yöneticisi",
		Status:       models.UserStatusActive,
		IsSystem:     true,
	}
	ctx := context.WithValue(context.Background(), models.CtxUserIDKey, uint(1))
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Sistem kullanıcısı '%s' oluşturuldu (ID: %d).", email, user.ID)
	return nil
}
