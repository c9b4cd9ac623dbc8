package migrations

import (
	"kartim.link/configs/configslog"
	"kartim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateQrCodePagesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating qr_code_pages table...")
	err := db.AutoMigrate(&models.QrCodePage{})
	if err != nil {
		configslog.Log.Error("Failed to migrate qr_code_pages table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Qr_code_pages table migrated successfully")
	return nil
}
