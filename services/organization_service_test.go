package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"kartim.link/models"
	"kartim.link/pkg/queryparams"
	"kartim.link/repositories"
	"kartim.link/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOrgRepo struct {
	orgs map[uint]*models.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: map[uint]*models.Organization{}}
}

func (f *fakeOrgRepo) Create(ctx context.Context, org *models.Organization) error {
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeOrgRepo) FindByID(ctx context.Context, id uint) (*models.Organization, error) {
	o, ok := f.orgs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOrgRepo) ListPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Organization, int64, error) {
	var out []models.Organization
	for _, o := range f.orgs {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrgRepo) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	o, ok := f.orgs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := data["status"].(string); ok {
		o.Status = status
	}
	return nil
}

var _ repositories.IOrganizationRepository = (*fakeOrgRepo)(nil)

func newOrgServiceForTest() (IOrganizationService, *fakeOrgRepo, *fakeUserRepo, *fakeTokenRepo, *fakeMailer) {
	orgRepo := newFakeOrgRepo()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	mail := &fakeMailer{}
	svc := NewOrganizationServiceWith(orgRepo, userRepo, tokenRepo, mail, nil)
	return svc, orgRepo, userRepo, tokenRepo, mail
}

func seedOrg(repo *fakeOrgRepo, id, adminID uint, status string) *models.Organization {
	org := &models.Organization{Name: "Acme", AdminUserID: adminID, Status: status}
	org.ID = id
	repo.orgs[id] = org
	return org
}

func TestInviteMember(t *testing.T) {
	svc, orgRepo, _, tokenRepo, mail := newOrgServiceForTest()
	seedOrg(orgRepo, 3, 1, models.OrganizationStatusActive)

	t.Run("davet token üretir ve mailler", func(t *testing.T) {
		err := svc.InviteMember(context.Background(), 1, 3, "Davetli@example.com")
		require.NoError(t, err)
		assert.Len(t, tokenRepo.tokens, 1)
		// Adres normalize edilir.
		assert.Equal(t, []string{"davetli@example.com"}, mail.sent)
	})

	t.Run("açık davet varken 409 semantiği", func(t *testing.T) {
		err := svc.InviteMember(context.Background(), 1, 3, "davetli@example.com")
		assert.ErrorIs(t, err, ErrInviteExists)
	})

	t.Run("olmayan tenant", func(t *testing.T) {
		err := svc.InviteMember(context.Background(), 1, 99, "yeni@example.com")
		assert.ErrorIs(t, err, ErrOrgNotFound)
	})
}

func TestInviteMember_SuspendedOrg(t *testing.T) {
	svc, orgRepo, _, _, _ := newOrgServiceForTest()
	seedOrg(orgRepo, 3, 1, models.OrganizationStatusSuspended)

	err := svc.InviteMember(context.Background(), 1, 3, "davetli@example.com")
	assert.ErrorIs(t, err, ErrOrgSuspendedErr)
}

func TestInviteMember_AlreadyMember(t *testing.T) {
	svc, orgRepo, userRepo, _, _ := newOrgServiceForTest()
	seedOrg(orgRepo, 3, 1, models.OrganizationStatusActive)

	otherOrg := uint(9)
	member := seedUser(userRepo, 5, "uye@example.com", "sifre", models.UserStatusActive)
	member.OrganizationID = &otherOrg

	err := svc.InviteMember(context.Background(), 1, 3, "uye@example.com")
	assert.ErrorIs(t, err, ErrMemberAlreadyInOrg)
}

func TestRemoveMember(t *testing.T) {
	svc, orgRepo, userRepo, _, _ := newOrgServiceForTest()
	orgID := uint(3)
	seedOrg(orgRepo, orgID, 1, models.OrganizationStatusActive)

	admin := seedUser(userRepo, 1, "admin@example.com", "sifre", models.UserStatusActive)
	admin.OrganizationID = &orgID
	member := seedUser(userRepo, 5, "uye@example.com", "sifre", models.UserStatusActive)
	member.OrganizationID = &orgID

	t.Run("yönetici çıkarılamaz", func(t *testing.T) {
		err := svc.RemoveMember(context.Background(), orgID, 1)
		assert.ErrorIs(t, err, ErrCannotRemoveAdmin)
	})

	t.Run("üye çıkarılır", func(t *testing.T) {
		err := svc.RemoveMember(context.Background(), orgID, 5)
		require.NoError(t, err)
	})

	t.Run("başka tenant'ın üyesi bulunamadı alır", func(t *testing.T) {
		foreignOrg := uint(9)
		outsider := seedUser(userRepo, 7, "baska@example.com", "sifre", models.UserStatusActive)
		outsider.OrganizationID = &foreignOrg

		err := svc.RemoveMember(context.Background(), orgID, 7)
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestPreviewInvite(t *testing.T) {
	svc, orgRepo, _, tokenRepo, _ := newOrgServiceForTest()
	orgID := uint(3)
	seedOrg(orgRepo, orgID, 1, models.OrganizationStatusActive)

	valid := &models.Token{
		Token:          utils.NewOpaqueToken(),
		Purpose:        models.TokenPurposeInvite,
		Email:          "davetli@example.com",
		OrganizationID: &orgID,
		ExpiresAt:      time.Now().Add(time.Hour),
	}
	valid.ID = 1
	tokenRepo.tokens[valid.Token] = valid

	expired := &models.Token{
		Token:          utils.NewOpaqueToken(),
		Purpose:        models.TokenPurposeInvite,
		Email:          "gec@example.com",
		OrganizationID: &orgID,
		ExpiresAt:      time.Now().Add(-time.Hour),
	}
	expired.ID = 2
	tokenRepo.tokens[expired.Token] = expired

	t.Run("geçerli davet önizlenir ve tüketilmez", func(t *testing.T) {
		preview, err := svc.PreviewInvite(context.Background(), valid.Token)
		require.NoError(t, err)
		assert.Equal(t, "davetli@example.com", preview.Email)
		assert.Equal(t, "Acme", preview.OrganizationName)
		// Önizleme token'ı silmez.
		assert.Contains(t, tokenRepo.tokens, valid.Token)
	})

	t.Run("süresi dolmuş davet", func(t *testing.T) {
		_, err := svc.PreviewInvite(context.Background(), expired.Token)
		assert.ErrorIs(t, err, ErrInviteTokenInvalid)
	})

	t.Run("bilinmeyen token", func(t *testing.T) {
		_, err := svc.PreviewInvite(context.Background(), "yok-boyle-token")
		assert.ErrorIs(t, err, ErrInviteTokenInvalid)
	})
}

func TestAcceptInvite_SecondUseInvalid(t *testing.T) {
	// Davet kabulü token'ı etkisiyle aynı transaction'da tüketir: mevcut
	// hesap tenant'a bağlanır ve token silinir, ikinci kullanım geçersizdir.
	gdb, mock := newMockDB(t)
	svc := NewOrganizationServiceWith(newFakeOrgRepo(), newFakeUserRepo(), newFakeTokenRepo(), &fakeMailer{}, gdb)

	orgID := uint(3)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tokens"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "token", "purpose", "email", "organization_id", "expires_at"}).
			AddRow(7, "davet-tek", models.TokenPurposeInvite, "uye@example.com", orgID, time.Now().Add(time.Hour)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "organizations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "admin_user_id"}).
			AddRow(orgID, "Acme", models.OrganizationStatusActive, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "status"}).
			AddRow(5, "uye@example.com", models.UserStatusActive))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tokens"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	member, err := svc.AcceptInvite(context.Background(), "davet-tek", "Üye", "gizli-sifre")
	require.NoError(t, err)
	assert.Equal(t, uint(5), member.ID)
	require.NotNil(t, member.OrganizationID)
	assert.Equal(t, orgID, *member.OrganizationID)

	// İkinci kullanım: token artık yok, transaction geri alınır.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tokens"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err = svc.AcceptInvite(context.Background(), "davet-tek", "Üye", "gizli-sifre")
	assert.ErrorIs(t, err, ErrInviteTokenInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatus(t *testing.T) {
	svc, orgRepo, _, _, _ := newOrgServiceForTest()
	org := seedOrg(orgRepo, 3, 1, models.OrganizationStatusActive)

	t.Run("askıya alma", func(t *testing.T) {
		require.NoError(t, svc.SetStatus(context.Background(), 1, 3, models.OrganizationStatusSuspended))
		assert.True(t, org.IsSuspended())
	})

	t.Run("yeniden aktifleştirme", func(t *testing.T) {
		require.NoError(t, svc.SetStatus(context.Background(), 1, 3, models.OrganizationStatusActive))
		assert.False(t, org.IsSuspended())
	})

	t.Run("geçersiz durum", func(t *testing.T) {
		err := svc.SetStatus(context.Background(), 1, 3, "garip")
		assert.ErrorIs(t, err, ErrOrgUpdateFailed)
	})

	t.Run("olmayan tenant", func(t *testing.T) {
		err := svc.SetStatus(context.Background(), 1, 99, models.OrganizationStatusSuspended)
		assert.ErrorIs(t, err, ErrOrgNotFound)
	})
}

func TestExportMembersXLSX(t *testing.T) {
	svc, orgRepo, userRepo, _, _ := newOrgServiceForTest()
	orgID := uint(3)
	seedOrg(orgRepo, orgID, 1, models.OrganizationStatusActive)
	member := seedUser(userRepo, 5, "uye@example.com", "sifre", models.UserStatusActive)
	member.OrganizationID = &orgID

	data, err := svc.ExportMembersXLSX(context.Background(), orgID)
	require.NoError(t, err)
	// XLSX bir zip konteyneridir; "PK" imzasıyla başlar.
	require.Greater(t, len(data), 4)
	assert.Equal(t, byte('P'), data[0])
	assert.Equal(t, byte('K'), data[1])
}
