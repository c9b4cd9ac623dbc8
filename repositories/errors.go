package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKeyError hatanın unique index ihlali olup olmadığını kontrol eder.
// Slug/davet yarışlarında kazananı veritabanının unique constraint'i belirler;
// kaybeden bu hatayı alır ve servis katmanı bunu çakışma (409) cevabına çevirir.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// TranslateError kapalı sürücülerde ham Postgres mesajı döner.
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
