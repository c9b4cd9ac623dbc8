package models

import "regexp"

// slugPattern profil ve QR sayfası slug'larının ortak formatı:
// küçük harf, rakam ve tire; 3-20 karakter.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]{3,20}$`)

// IsValidSlug slug'ın formata uyup uymadığını kontrol eder.
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
