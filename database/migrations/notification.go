package migrations

import (
	"kartim.link/configs/configslog"
	"kartim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateNotificationsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating notifications & notification_reads tables...")
	err := db.AutoMigrate(&models.Notification{}, &models.NotificationRead{})
	if err != nil {
		configslog.Log.Error("Failed to migrate notifications & notification_reads tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Notifications & notification_reads tables migrated successfully")
	return nil
}
