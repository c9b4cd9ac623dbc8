package seeders

import (
	"context"
	"errors"

	"kartim.link/configs/configslog"
	"kartim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedPlans abonelik planlarını yükler. Mevcut plan kodları atlanır.
func SeedPlans(db *gorm.DB) error {
	systemUserID := uint(1)
	ctx := context.WithValue(context.Background(), models.CtxUserIDKey, systemUserID)

	plansToSeed := []models.Plan{
		{Code: models.PlanCodeFree, Name: "Ücretsiz", MonthlyPrice: 0, MaxLinks: 3},
		{Code: models.PlanCodePersonal, Name: "Bireysel", MonthlyPrice: 4900, MaxLinks: 10},
		{Code: models.PlanCodeCorp, Name: "Kurumsal", MonthlyPrice: 19900, MaxLinks: 25},
	}

	configslog.SLog.Info("Plan seed işlemi başlıyor...")

	for _, planToSeed := range plansToSeed {
		var existingPlan models.Plan
		result := db.Where("code = ?", planToSeed.Code).First(&existingPlan)

		if result.Error == nil {
			configslog.SLog.Debugf("Plan '%s' zaten mevcut, oluşturma atlanıyor.", planToSeed.Code)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Plan kontrol edilirken veritabanı hatası",
				zap.String("plan_code", planToSeed.Code),
				zap.Error(result.Error),
			)
			return result.Error
		}

		configslog.SLog.Infof("Plan '%s' oluşturuluyor...", planToSeed.Code)
		if err := db.WithContext(ctx).Create(&planToSeed).Error; err != nil {
			configslog.Log.Error("Plan oluşturulamadı",
				zap.String("plan_code", planToSeed.Code),
				zap.Error(err),
			)
			return err
		}
		configslog.SLog.Infof("Plan '%s' başarıyla oluşturuldu (ID: %d).", planToSeed.Code, planToSeed.ID)
	}

	configslog.SLog.Info("Plan seed işlemi tamamlandı.")
	return nil
}
