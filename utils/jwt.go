package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName oturum JWT'sinin taşındığı HTTP-only cookie adı.
const SessionCookieName = "kartim_session"

// SessionTTL oturum token'ının geçerlilik süresi.
const SessionTTL = 24 * time.Hour

// SessionClaims oturum JWT'sinin içeriği.
type SessionClaims struct {
	UserID         uint   `json:"uid"`
	Email          string `json:"eml"`
	IsSystem       bool   `json:"sys"`
	OrganizationID *uint  `json:"org,omitempty"`
	jwt.RegisteredClaims
}

var ErrInvalidSessionToken = errors.New("geçersiz oturum token'ı")

// GenerateSessionToken kullanıcı için HS256 imzalı oturum JWT'si üretir.
func GenerateSessionToken(secret string, userID uint, email string, isSystem bool, orgID *uint) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:         userID,
		Email:          email,
		IsSystem:       isSystem,
		OrganizationID: orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			Issuer:    "kartim.link",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken token'ı doğrular ve claim'leri döndürür.
// Süresi dolmuş veya imzası bozuk token'lar ErrInvalidSessionToken üretir.
func ParseSessionToken(secret, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("beklenmeyen imza metodu: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}
