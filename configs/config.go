package configs

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"kartim.link/configs/configsdatabase"
	"kartim.link/configs/configslog"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// App uygulamanın ortam değişkenlerinden türetilen konfigürasyonu.
type App struct {
	Env         string // development | production
	Port        string
	AppBaseURL  string // Public linkler ve mail içerikleri için
	DatabaseURL string

	JWTSecret  string
	CronSecret string // Harici zamanlayıcının /cron endpoint'leri için bearer secret'ı

	RedisAddr     string // Boşsa cache devre dışı
	RedisPassword string

	MailAPIURL string // Boşsa mail gönderimi no-op
	MailAPIKey string
	MailFrom   string

	AdminEmails []string // Platform admin allow-list (virgülle ayrılmış)

	// "touch seal" özelliğinin yeni adıyla ("one-tap seal") sunulup
	// sunulmayacağını belirleyen geçiş bayrağı.
	FeatureOneTapSeal bool

	// Bakım işlerinin süreç içi cron ile de çalıştırılıp çalıştırılmayacağı.
	CronInProcess bool
}

var (
	app     *App
	loadOnce sync.Once
)

// Load .env dosyasını (varsa) okur ve App konfigürasyonunu doldurur.
// main başlangıcında bir kez çağrılır; Get() her yerden erişim sağlar.
func Load() *App {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			// .env yoksa sorun değil, ortam değişkenleri yeterli.
			configslog.SLog.Debug(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
		}

		app = &App{
			Env:               getEnv("APP_ENV", "development"),
			Port:              getEnv("PORT", "3000"),
			AppBaseURL:        getEnv("APP_BASE_URL", "http://localhost:3000"),
			DatabaseURL:       os.Getenv("DATABASE_URL"),
			JWTSecret:         getEnv("JWT_SECRET", "dev-secret-change-me"),
			CronSecret:        os.Getenv("CRON_SECRET"),
			RedisAddr:         os.Getenv("REDIS_ADDR"),
			RedisPassword:     os.Getenv("REDIS_PASSWORD"),
			MailAPIURL:        os.Getenv("MAIL_API_URL"),
			MailAPIKey:        os.Getenv("MAIL_API_KEY"),
			MailFrom:          getEnv("MAIL_FROM", "no-reply@kartim.link"),
			AdminEmails:       splitList(os.Getenv("ADMIN_EMAILS")),
			FeatureOneTapSeal: getEnvBool("FEATURE_ONE_TAP_SEAL", false),
			CronInProcess:     getEnvBool("CRON_IN_PROCESS", false),
		}
	})
	return app
}

// Get yüklenmiş konfigürasyonu döndürür (gerekirse yükler).
func Get() *App {
	if app == nil {
		return Load()
	}
	return app
}

// IsProduction ortamın production olup olmadığını döndürür.
func (a *App) IsProduction() bool { return a.Env == "production" }

// GetDB aktif GORM bağlantısını döndürür (configsdatabase'e delege eder).
// Repository'ler bu fonksiyon üzerinden bağlantı alır.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(strings.ToLower(p)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
