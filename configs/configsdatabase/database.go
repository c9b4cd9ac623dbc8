package configsdatabase

import (
	"os"
	"time"

	"kartim.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB Postgres bağlantısını kurar ve havuz ayarlarını yapar.
// DATABASE_URL ortam değişkeni zorunludur.
func InitDB() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		configslog.Log.Fatal("DATABASE_URL tanımlı değil")
	}

	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true, // gorm.ErrDuplicatedKey gibi hataların çevrilmesi için
	}

	conn, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("Veritabanı havuzu alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db = conn
	configslog.SLog.Info("Veritabanı bağlantısı kuruldu.")
}

// GetDB aktif bağlantıyı döndürür.
func GetDB() *gorm.DB {
	return db
}

// SetDB test amaçlı bağlantı enjeksiyonu için kullanılır (sqlmock vb.).
func SetDB(conn *gorm.DB) {
	db = conn
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Veritabanı kapatılırken hata", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı kapatılamadı", zap.Error(err))
	}
}
