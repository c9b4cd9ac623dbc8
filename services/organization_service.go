package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/pkg/mailer"
	"kartim.link/pkg/queryparams"
	"kartim.link/repositories"
	"kartim.link/utils"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrganizationServiceError özel servis hataları
type OrganizationServiceError string

func (e OrganizationServiceError) Error() string { return string(e) }

const (
	ErrOrgNotFound          OrganizationServiceError = "organizasyon bulunamadı"
	ErrOrgForbidden         OrganizationServiceError = "bu organizasyon üzerinde yetkiniz yok"
	ErrOrgSuspendedErr      OrganizationServiceError = "organizasyon askıya alınmış"
	ErrInviteExists         OrganizationServiceError = "bu adrese açık bir davet zaten var"
	ErrInviteFailed         OrganizationServiceError = "davet oluşturulamadı"
	ErrInviteTokenInvalid   OrganizationServiceError = "geçersiz veya süresi dolmuş davet"
	ErrMemberNotFound       OrganizationServiceError = "üye bulunamadı"
	ErrCannotRemoveAdmin    OrganizationServiceError = "tenant yöneticisi üyelikten çıkarılamaz"
	ErrMemberAlreadyInOrg   OrganizationServiceError = "kullanıcı zaten bir organizasyona üye"
	ErrOrgExportFailed      OrganizationServiceError = "üye listesi dışa aktarılamadı"
	ErrOrgUpdateFailed      OrganizationServiceError = "organizasyon güncellenemedi"
)

// Davet token'ı 72 saat geçerlidir.
const inviteTTL = 72 * time.Hour

// InvitePreview /invite/:token cevabı: davet edilen adres ve tenant adı.
type InvitePreview struct {
	Email            string `json:"email"`
	OrganizationName string `json:"organizationName"`
}

// IOrganizationService tenant işlemleri için arayüz.
type IOrganizationService interface {
	GetByID(ctx context.Context, orgID uint) (*models.Organization, error)
	ListMembers(ctx context.Context, orgID uint) ([]models.User, error)
	InviteMember(ctx context.Context, inviterUserID, orgID uint, email string) error
	RemoveMember(ctx context.Context, orgID, memberUserID uint) error
	PreviewInvite(ctx context.Context, tokenStr string) (*InvitePreview, error)
	AcceptInvite(ctx context.Context, tokenStr, name, password string) (*models.User, error)
	ExportMembersXLSX(ctx context.Context, orgID uint) ([]byte, error)

	// Platform admin işlemleri
	ListAll(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	SetStatus(ctx context.Context, adminUserID, orgID uint, status string) error
}

// OrganizationService IOrganizationService arayüzünü uygular.
type OrganizationService struct {
	repo      repositories.IOrganizationRepository
	userRepo  repositories.IUserRepository
	tokenRepo repositories.ITokenRepository
	mail      MailSender
	db        *gorm.DB
}

// NewOrganizationService yeni bir OrganizationService örneği oluşturur.
func NewOrganizationService() IOrganizationService {
	return &OrganizationService{
		repo:      repositories.NewOrganizationRepository(),
		userRepo:  repositories.NewUserRepository(),
		tokenRepo: repositories.NewTokenRepository(),
		mail:      mailer.New(configs.Get()),
		db:        configs.GetDB(),
	}
}

// NewOrganizationServiceWith bağımlılık enjeksiyonu ile örnek oluşturur (testler için).
func NewOrganizationServiceWith(repo repositories.IOrganizationRepository, userRepo repositories.IUserRepository, tokenRepo repositories.ITokenRepository, mail MailSender, db *gorm.DB) IOrganizationService {
	return &OrganizationService{repo: repo, userRepo: userRepo, tokenRepo: tokenRepo, mail: mail, db: db}
}

// GetByID tenant'ı döndürür.
func (s *OrganizationService) GetByID(ctx context.Context, orgID uint) (*models.Organization, error) {
	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	return org, nil
}

// ListMembers tenant üyelerini listeler.
func (s *OrganizationService) ListMembers(ctx context.Context, orgID uint) ([]models.User, error) {
	return s.userRepo.ListByOrganization(ctx, orgID)
}

// InviteMember verilen adrese davet token'ı üretir ve mailler.
// Aynı adrese açık (süresi geçmemiş) davet varsa çakışma döner.
// Ön kontrol bir UX ipucudur; yarışta kaybeden unique olmayan bu senaryoda
// ikinci bir davet satırı üretebilir, kabul anında ilk tüketilen kazanır.
func (s *OrganizationService) InviteMember(ctx context.Context, inviterUserID, orgID uint, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	org, err := s.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org.IsSuspended() {
		return ErrOrgSuspendedErr
	}

	// Zaten üye olan bir adrese davet gönderilmez.
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		if existing.OrganizationID != nil {
			return ErrMemberAlreadyInOrg
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	exists, err := s.tokenRepo.OpenInviteExists(ctx, email, orgID, time.Now())
	if err != nil {
		return err
	}
	if exists {
		return ErrInviteExists
	}

	token := &models.Token{
		Token:          utils.NewOpaqueToken(),
		Purpose:        models.TokenPurposeInvite,
		Email:          email,
		OrganizationID: &orgID,
		ExpiresAt:      time.Now().Add(inviteTTL),
	}
	txCtx := context.WithValue(ctx, models.CtxUserIDKey, inviterUserID)
	if err := s.tokenRepo.Create(txCtx, token); err != nil {
		configslog.Log.Error("Davet token'ı oluşturulamadı", zap.String("email", email), zap.Uint("org_id", orgID), zap.Error(err))
		return ErrInviteFailed
	}

	inviteURL := fmt.Sprintf("%s/invite/%s", configs.Get().AppBaseURL, token.Token)
	body := fmt.Sprintf("%s sizi kartim.link üzerindeki ekibine davet etti.\n\nDaveti kabul etmek için (72 saat geçerlidir):\n%s", org.Name, inviteURL)
	if err := s.mail.Send(ctx, email, fmt.Sprintf("%s ekibine davet", org.Name), body); err != nil {
		configslog.Log.Warn("Davet maili gönderilemedi", zap.String("email", email), zap.Error(err))
	}

	configslog.SLog.Infof("Davet oluşturuldu: %s -> org %d (davet eden %d)", email, orgID, inviterUserID)
	return nil
}

// RemoveMember üyeyi tenant'tan çıkarır. Tenant'ın tek yöneticisi çıkarılamaz.
func (s *OrganizationService) RemoveMember(ctx context.Context, orgID, memberUserID uint) error {
	org, err := s.GetByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org.AdminUserID == memberUserID {
		return ErrCannotRemoveAdmin
	}

	member, err := s.userRepo.FindByID(ctx, memberUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if member.OrganizationID == nil || *member.OrganizationID != orgID {
		return ErrMemberNotFound
	}

	return s.userRepo.Update(ctx, memberUserID, map[string]interface{}{"organization_id": nil})
}

// PreviewInvite token'ı doğrular ve davet bilgisini döndürür (tüketmez).
func (s *OrganizationService) PreviewInvite(ctx context.Context, tokenStr string) (*InvitePreview, error) {
	token, err := s.tokenRepo.FindByToken(ctx, models.TokenPurposeInvite, tokenStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteTokenInvalid
		}
		return nil, err
	}
	if token.IsExpired(time.Now()) || token.OrganizationID == nil {
		return nil, ErrInviteTokenInvalid
	}
	org, err := s.GetByID(ctx, *token.OrganizationID)
	if err != nil {
		return nil, ErrInviteTokenInvalid
	}
	return &InvitePreview{Email: token.Email, OrganizationName: org.Name}, nil
}

// AcceptInvite daveti TEK BİR TRANSACTION içinde tüketir: kullanıcı
// oluşturulur (veya mevcut hesap tenant'a bağlanır) ve token silinir.
// Token tam olarak bir kez tüketilebilir.
func (s *OrganizationService) AcceptInvite(ctx context.Context, tokenStr, name, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, ErrInviteFailed
	}

	var member *models.User
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		tokenRepo := repositories.NewTokenRepositoryTx(tx)
		userRepo := repositories.NewUserRepositoryTx(tx)
		profileRepo := repositories.NewProfileRepositoryTx(tx)
		orgRepo := repositories.NewOrganizationRepositoryTx(tx)

		token, err := tokenRepo.FindByToken(ctx, models.TokenPurposeInvite, tokenStr)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInviteTokenInvalid
			}
			return err
		}
		if token.IsExpired(time.Now()) || token.OrganizationID == nil {
			return ErrInviteTokenInvalid
		}

		org, err := orgRepo.FindByID(ctx, *token.OrganizationID)
		if err != nil {
			return ErrInviteTokenInvalid
		}
		if org.IsSuspended() {
			return ErrOrgSuspendedErr
		}

		existing, err := userRepo.FindByEmail(ctx, token.Email)
		switch {
		case err == nil:
			// Mevcut hesap tenant'a bağlanır; şifresi değişmez.
			if existing.OrganizationID != nil {
				return ErrMemberAlreadyInOrg
			}
			txCtx := context.WithValue(ctx, models.CtxUserIDKey, existing.ID)
			if err := userRepo.Update(txCtx, existing.ID, map[string]interface{}{"organization_id": org.ID}); err != nil {
				return err
			}
			existing.OrganizationID = &org.ID
			member = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			user := &models.User{
				Email:          token.Email,
				PasswordHash:   hash,
				Name:           name,
				Status:         models.UserStatusActive,
				OrganizationID: &org.ID,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				return err
			}
			txCtx := context.WithValue(ctx, models.CtxUserIDKey, user.ID)
			profile := &models.Profile{
				UserID:      user.ID,
				Slug:        initialSlugFor(token.Email),
				DisplayName: name,
				Company:     org.Name,
			}
			if err := profileRepo.Create(txCtx, profile); err != nil {
				return err
			}
			member = user
		default:
			return err
		}

		// Aynı token'la yarışan ikinci istek burada kaybeder.
		if err := tokenRepo.HardDelete(ctx, token.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInviteTokenInvalid
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		var serviceErr OrganizationServiceError
		if errors.As(txErr, &serviceErr) {
			return nil, serviceErr
		}
		configslog.Log.Error("Davet kabul transaction'ı başarısız", zap.Error(txErr))
		return nil, ErrInviteFailed
	}

	configslog.SLog.Infof("Davet kabul edildi: %s (kullanıcı %d)", member.Email, member.ID)
	return member, nil
}

// ExportMembersXLSX üye listesini XLSX olarak üretir (dashboard indirme).
func (s *OrganizationService) ExportMembersXLSX(ctx context.Context, orgID uint) ([]byte, error) {
	members, err := s.ListMembers(ctx, orgID)
	if err != nil {
		return nil, ErrOrgExportFailed
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Üyeler"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, ErrOrgExportFailed
	}

	headers := []string{"ID", "Ad", "E-posta", "Durum", "Katılım"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, m := range members {
		values := []interface{}{m.ID, m.Name, m.Email, m.Status, m.CreatedAt.Format("2006-01-02")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		configslog.Log.Error("XLSX yazılamadı", zap.Uint("org_id", orgID), zap.Error(err))
		return nil, ErrOrgExportFailed
	}
	return buf.Bytes(), nil
}

// ListAll tüm tenant'ları sayfalayarak listeler (platform admin).
func (s *OrganizationService) ListAll(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}
	orgs, total, err := s.repo.ListPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: orgs,
		Meta: queryparams.NewMeta(params, total),
	}, nil
}

// SetStatus tenant durumunu değiştirir (askıya alma / aktifleştirme).
// Askıya alma tenant satırındaki durum bayrağıdır, ayrı bir state machine yok.
func (s *OrganizationService) SetStatus(ctx context.Context, adminUserID, orgID uint, status string) error {
	if status != models.OrganizationStatusActive && status != models.OrganizationStatusSuspended {
		return ErrOrgUpdateFailed
	}
	txCtx := context.WithValue(ctx, models.CtxUserIDKey, adminUserID)
	if err := s.repo.Update(txCtx, orgID, map[string]interface{}{"status": status}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrgNotFound
		}
		configslog.Log.Error("Tenant durumu güncellenemedi", zap.Uint("org_id", orgID), zap.String("status", status), zap.Error(err))
		return ErrOrgUpdateFailed
	}
	configslog.SLog.Infof("Tenant durumu güncellendi: org %d -> %s (admin %d)", orgID, status, adminUserID)
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IOrganizationService = (*OrganizationService)(nil)
