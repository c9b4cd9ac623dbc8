package utils

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword şifreyi bcrypt ile hash'ler.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword şifreyi hash ile karşılaştırır.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewOpaqueToken şifre sıfırlama / davet akışları için opak, tahmin
// edilemez bir token string'i üretir.
func NewOpaqueToken() string {
	// İki UUID art arda: 64 karakterlik tireli-siz opak değer.
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
