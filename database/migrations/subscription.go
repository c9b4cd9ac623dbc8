package migrations

import (
	"kartim.link/configs/configslog"
	"kartim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateSubscriptionsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating plans, subscriptions & cancel_requests tables...")
	err := db.AutoMigrate(&models.Plan{}, &models.Subscription{}, &models.CancelRequest{})
	if err != nil {
		configslog.Log.Error("Failed to migrate plans, subscriptions & cancel_requests tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Plans, subscriptions & cancel_requests tables migrated successfully")
	return nil
}
