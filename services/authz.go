package services

import (
	"strings"

	"kartim.link/models"
)

// IsPlatformAdmin kullanıcının platform yöneticisi olup olmadığını belirleyen
// saf predicate. Kullanıcı satırındaki IsSystem bayrağı VEYA konfigürasyondaki
// e-posta allow-list'i yeterlidir. Veri erişiminden bağımsızdır; çağıran
// kullanıcıyı yüklemiş olmalıdır.
func IsPlatformAdmin(user *models.User, adminEmails []string) bool {
	if user == nil {
		return false
	}
	if user.IsSystem {
		return true
	}
	email := strings.ToLower(user.Email)
	for _, allowed := range adminEmails {
		if email == allowed {
			return true
		}
	}
	return false
}

// IsOrganizationAdmin kullanıcının verilen tenant'ın yöneticisi olup
// olmadığını belirleyen saf predicate.
func IsOrganizationAdmin(user *models.User, org *models.Organization) bool {
	if user == nil || org == nil {
		return false
	}
	return org.AdminUserID == user.ID
}
