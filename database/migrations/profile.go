package migrations

import (
	"kartim.link/configs/configslog"
	"kartim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateProfilesTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating profiles & profile_links tables...")
	err := db.AutoMigrate(&models.Profile{}, &models.ProfileLink{})
	if err != nil {
		configslog.Log.Error("Failed to migrate profiles & profile_links tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Profiles & profile_links tables migrated successfully")
	return nil
}
