package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"kartim.link/models"
	"kartim.link/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServiceForTest() (IAuthService, *fakeUserRepo, *fakeTokenRepo, *fakeMailer) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	mail := &fakeMailer{}
	svc := NewAuthServiceWith(userRepo, newFakeProfileRepo(), tokenRepo, mail, nil)
	return svc, userRepo, tokenRepo, mail
}

func seedUser(repo *fakeUserRepo, id uint, email, password, status string) *models.User {
	hash, _ := utils.HashPassword(password)
	user := &models.User{Email: email, PasswordHash: hash, Name: "Test", Status: status}
	user.ID = id
	repo.users[id] = user
	return user
}

func TestAuthenticate(t *testing.T) {
	svc, userRepo, _, _ := newAuthServiceForTest()
	seedUser(userRepo, 1, "ahmet@example.com", "gizli-sifre", models.UserStatusActive)

	t.Run("doğru bilgiler", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "ahmet@example.com", "gizli-sifre")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("büyük harfli e-posta normalize edilir", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "  AHMET@example.com ", "gizli-sifre")
		require.NoError(t, err)
	})

	t.Run("yanlış şifre", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "ahmet@example.com", "yanlis")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("bilinmeyen adres", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "yok@example.com", "gizli-sifre")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthenticate_SuspendedUser(t *testing.T) {
	svc, userRepo, _, _ := newAuthServiceForTest()
	seedUser(userRepo, 2, "askida@example.com", "gizli-sifre", models.UserStatusSuspended)

	_, err := svc.Authenticate(context.Background(), "askida@example.com", "gizli-sifre")
	assert.ErrorIs(t, err, ErrUserSuspended)
}

func TestRequestPasswordReset(t *testing.T) {
	svc, userRepo, tokenRepo, mail := newAuthServiceForTest()
	seedUser(userRepo, 1, "ahmet@example.com", "gizli-sifre", models.UserStatusActive)

	t.Run("kayıtlı adres token üretir ve mailler", func(t *testing.T) {
		err := svc.RequestPasswordReset(context.Background(), "ahmet@example.com")
		require.NoError(t, err)
		assert.Len(t, tokenRepo.tokens, 1)
		assert.Equal(t, []string{"ahmet@example.com"}, mail.sent)
	})

	t.Run("kayıtsız adres de başarı döner", func(t *testing.T) {
		err := svc.RequestPasswordReset(context.Background(), "yok@example.com")
		require.NoError(t, err)
		// Token üretilmez, mail gitmez.
		assert.Len(t, tokenRepo.tokens, 1)
		assert.Len(t, mail.sent, 1)
	})
}

func TestUpdatePassword(t *testing.T) {
	svc, userRepo, _, _ := newAuthServiceForTest()
	seedUser(userRepo, 1, "ahmet@example.com", "eski-sifre", models.UserStatusActive)

	t.Run("yanlış mevcut şifre", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), 1, "hatali", "yeni-sifre-123")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("doğru mevcut şifre", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), 1, "eski-sifre", "yeni-sifre-123")
		require.NoError(t, err)
	})

	t.Run("olmayan kullanıcı", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), 99, "x", "yeni-sifre-123")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestResetPassword_SecondUseInvalid(t *testing.T) {
	// Token tüketimi etkisiyle aynı transaction'da gerçekleşir: ilk çağrı
	// şifreyi yazar ve token'ı siler, aynı token'la ikinci çağrı geçersizdir.
	gdb, mock := newMockDB(t)
	svc := NewAuthServiceWith(newFakeUserRepo(), newFakeProfileRepo(), newFakeTokenRepo(), &fakeMailer{}, gdb)

	userID := uint(42)
	tokenRows := sqlmock.NewRows([]string{"id", "token", "purpose", "user_id", "expires_at"}).
		AddRow(7, "tek-kullanim", models.TokenPurposePasswordReset, userID, time.Now().Add(time.Hour))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tokens"`)).WillReturnRows(tokenRows)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tokens"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.ResetPassword(context.Background(), "tek-kullanim", "yeni-sifre-123"))

	// İkinci kullanım: token artık yok, transaction geri alınır.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tokens"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.ResetPassword(context.Background(), "tek-kullanim", "baska-sifre-123")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewAuthServiceWith(newFakeUserRepo(), newFakeProfileRepo(), newFakeTokenRepo(), &fakeMailer{}, gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tokens"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "purpose", "user_id", "expires_at"}).
			AddRow(8, "gec-kalan", models.TokenPurposePasswordReset, 42, time.Now().Add(-time.Minute)))
	mock.ExpectRollback()

	err := svc.ResetPassword(context.Background(), "gec-kalan", "yeni-sifre-123")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitialSlugFor(t *testing.T) {
	testCases := []struct {
		name  string
		email string
	}{
		{"normal adres", "ahmet.yilmaz@example.com"},
		{"kısa local", "ab@example.com"},
		{"yalnızca özel karakter", "!!!@example.com"},
		{"uzun local", "cok-uzun-bir-eposta-adresi@example.com"},
	}

	seen := map[string]bool{}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slug := initialSlugFor(tc.email)
			assert.True(t, models.IsValidSlug(slug), "üretilen slug geçerli olmalı: %q", slug)
			assert.False(t, seen[slug], "slug'lar çakışmamalı")
			seen[slug] = true
		})
	}
}
