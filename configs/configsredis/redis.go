package configsredis

import (
	"context"
	"time"

	"kartim.link/configs/configslog"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// client nil ise cache devre dışıdır; tüm fonksiyonlar no-op çalışır.
// Cache bir doğruluk mekanizması değil, public sayfa okumaları için bir hızlandırıcıdır.
var client *redis.Client

// InitRedis REDIS_ADDR doluysa bağlantıyı kurar. Bağlantı kurulamazsa
// uygulama cache'siz devam eder; hata fatal değildir.
func InitRedis(addr, password string) {
	if addr == "" {
		configslog.SLog.Info("REDIS_ADDR tanımlı değil, public sayfa cache'i devre dışı.")
		return
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		configslog.Log.Warn("Redis'e bağlanılamadı, cache devre dışı bırakıldı", zap.String("addr", addr), zap.Error(err))
		return
	}

	client = c
	configslog.SLog.Info("Redis bağlantısı kuruldu.")
}

// Enabled cache'in aktif olup olmadığını döndürür.
func Enabled() bool { return client != nil }

// GetString anahtarı okur. Anahtar yoksa veya cache kapalıysa ("", false) döner.
func GetString(ctx context.Context, key string) (string, bool) {
	if client == nil {
		return "", false
	}
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			configslog.Log.Warn("Redis okuma hatası", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return val, true
}

// SetString anahtarı TTL ile yazar. Cache kapalıysa no-op.
func SetString(ctx context.Context, key, value string, ttl time.Duration) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, key, value, ttl).Err(); err != nil {
		configslog.Log.Warn("Redis yazma hatası", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate verilen anahtarları siler. Mutasyon sonrası cache tazeliği için çağrılır.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		configslog.Log.Warn("Redis silme hatası", zap.Strings("keys", keys), zap.Error(err))
	}
}

// CloseRedis bağlantıyı kapatır.
func CloseRedis() {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		configslog.Log.Error("Redis kapatılamadı", zap.Error(err))
	}
	client = nil
}
