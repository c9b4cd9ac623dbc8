package migrations

import (
	"kartim.link/configs/configslog"
	"kartim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateTokensTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating tokens table...")
	err := db.AutoMigrate(&models.Token{})
	if err != nil {
		configslog.Log.Error("Failed to migrate tokens table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Tokens table migrated successfully")
	return nil
}
