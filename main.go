package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"kartim.link/configs"
	"kartim.link/configs/configsdatabase"
	"kartim.link/configs/configslog"
	"kartim.link/configs/configsredis"
	"kartim.link/jobs"
	"kartim.link/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.Load()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	// Redis opsiyoneldir; adres tanımlı değilse cache devre dışı kalır.
	configsredis.InitRedis(cfg.RedisAddr, cfg.RedisPassword)
	defer configsredis.CloseRedis()

	app := fiber.New(fiber.Config{
		AppName:      "kartim.link",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	routes.SetupRoutes(app)

	// Harici cron yerine süreç içi zamanlayıcı tercih edildiyse başlat.
	var scheduler *jobs.Scheduler
	if cfg.CronInProcess {
		scheduler = jobs.NewScheduler()
		if err := scheduler.Start(); err != nil {
			configslog.Log.Fatal("Zamanlayıcı başlatılamadı", zap.Error(err))
		}
	}

	// Graceful shutdown: SIGINT/SIGTERM geldiğinde açık istekler bitirilir.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if scheduler != nil {
			scheduler.Stop()
		}
		if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu %s portunda dinlemeye başlıyor...", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
