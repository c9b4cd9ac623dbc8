package jobs

import (
	"context"
	"time"

	"kartim.link/configs/configslog"
	"kartim.link/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Her iş tetiklemesine verilen üst süre.
const jobTimeout = 5 * time.Minute

// Scheduler süreç içi zamanlayıcı. Harici cron kullanılmayan kurulumlarda
// (CRON_IN_PROCESS=true) /cron endpoint'leriyle aynı bakım işlerini çalıştırır.
type Scheduler struct {
	cron    *cron.Cron
	service services.IMaintenanceService
}

// NewScheduler yeni bir Scheduler örneği oluşturur.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: services.NewMaintenanceService(),
	}
}

// Start bakım işlerini kaydeder ve zamanlayıcıyı başlatır.
// Token purge her saat başı, trial hatırlatmaları her gün 09:00'da çalışır.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 * * * *", s.runPurgeTokens); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 9 * * *", s.runTrialNotices); err != nil {
		return err
	}
	s.cron.Start()
	configslog.SLog.Info("Süreç içi zamanlayıcı başlatıldı.")
	return nil
}

// Stop çalışan işlerin bitmesini bekleyerek zamanlayıcıyı durdurur.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	configslog.SLog.Info("Süreç içi zamanlayıcı durduruldu.")
}

func (s *Scheduler) runPurgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.service.PurgeExpiredTokens(ctx); err != nil {
		configslog.Log.Error("Zamanlanmış token purge başarısız", zap.Error(err))
	}
}

func (s *Scheduler) runTrialNotices() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.service.SendTrialEndingNotices(ctx); err != nil {
		configslog.Log.Error("Zamanlanmış trial hatırlatmaları başarısız", zap.Error(err))
	}
}
