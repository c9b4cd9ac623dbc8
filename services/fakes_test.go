package services

import (
	"context"
	"os"
	"testing"
	"time"

	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// newMockDB transaction içinde token tüketen servis akışları için
// sqlmock destekli bir GORM bağlantısı kurar.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

// --- Fake repository'ler ---

// errDuplicateKey repositories.IsDuplicateKeyError tarafından tanınan hata.
var errDuplicateKey = gorm.ErrDuplicatedKey

type fakeProfileRepo struct {
	profiles map[uint]*models.Profile // userID -> profil
	slugs    map[string]bool
	err      error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uint]*models.Profile{}, slugs: map[string]bool{}}
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if f.err != nil {
		return f.err
	}
	f.profiles[profile.UserID] = profile
	f.slugs[profile.Slug] = true
	return nil
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) FindBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.profiles {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.slugs[slug], nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	for _, p := range f.profiles {
		if p.ID != id {
			continue
		}
		if v, ok := data["display_name"].(string); ok {
			p.DisplayName = v
		}
		if v, ok := data["title"].(string); ok {
			p.Title = v
		}
		if v, ok := data["company"].(string); ok {
			p.Company = v
		}
		if v, ok := data["bio"].(string); ok {
			p.Bio = v
		}
		if v, ok := data["phone"].(string); ok {
			p.Phone = v
		}
		if v, ok := data["website"].(string); ok {
			p.Website = v
		}
		if v, ok := data["avatar_url"].(string); ok {
			p.AvatarURL = v
		}
		if v, ok := data["slug"].(string); ok && v != p.Slug {
			if f.slugs[v] {
				return errDuplicateKey
			}
			delete(f.slugs, p.Slug)
			p.Slug = v
			f.slugs[v] = true
		}
		if v, ok := data["is_public"].(bool); ok {
			p.IsPublic = v
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

type fakeQrRepo struct {
	pages map[uint]*models.QrCodePage // userID -> sayfa
	slugs map[string]bool
	err   error
}

func newFakeQrRepo() *fakeQrRepo {
	return &fakeQrRepo{pages: map[uint]*models.QrCodePage{}, slugs: map[string]bool{}}
}

func (f *fakeQrRepo) Create(ctx context.Context, page *models.QrCodePage) error {
	if f.err != nil {
		return f.err
	}
	f.pages[page.UserID] = page
	f.slugs[page.Slug] = true
	return nil
}

func (f *fakeQrRepo) FindByUserID(ctx context.Context, userID uint) (*models.QrCodePage, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.pages[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeQrRepo) FindBySlug(ctx context.Context, slug string) (*models.QrCodePage, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQrRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.slugs[slug], nil
}

func (f *fakeQrRepo) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	return f.err
}

type fakeLinkRepo struct {
	links  map[uint]*models.ProfileLink // linkID -> link
	nextID uint
	err    error
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: map[uint]*models.ProfileLink{}, nextID: 1}
}

func (f *fakeLinkRepo) Create(ctx context.Context, link *models.ProfileLink) error {
	if f.err != nil {
		return f.err
	}
	link.ID = f.nextID
	f.nextID++
	f.links[link.ID] = link
	return nil
}

func (f *fakeLinkRepo) FindByID(ctx context.Context, id uint) (*models.ProfileLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.links[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (f *fakeLinkRepo) ListByUser(ctx context.Context, userID uint) ([]models.ProfileLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ProfileLink
	for _, l := range f.links {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLinkRepo) MaxDisplayOrder(ctx context.Context, userID uint) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	max := 0
	for _, l := range f.links {
		if l.UserID == userID && l.DisplayOrder > max {
			max = l.DisplayOrder
		}
	}
	return max, nil
}

func (f *fakeLinkRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, l := range f.links {
		if l.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLinkRepo) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.links[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f *fakeLinkRepo) Delete(ctx context.Context, link *models.ProfileLink) error {
	if f.err != nil {
		return f.err
	}
	delete(f.links, link.ID)
	return nil
}

type fakeSubRepo struct {
	subs         map[uint]*models.Subscription // userID -> abonelik
	cancelOpen   map[uint]bool                 // subscriptionID -> açık talep var mı
	cancels      []models.CancelRequest
	trialStamped map[uint]time.Time
	err          error
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{
		subs:         map[uint]*models.Subscription{},
		cancelOpen:   map[uint]bool{},
		trialStamped: map[uint]time.Time{},
	}
}

func (f *fakeSubRepo) Create(ctx context.Context, sub *models.Subscription) error {
	if f.err != nil {
		return f.err
	}
	f.subs[sub.UserID] = sub
	return nil
}

func (f *fakeSubRepo) FindByUserID(ctx context.Context, userID uint) (*models.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.subs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeSubRepo) FindPlanByCode(ctx context.Context, code string) (*models.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Plan{Code: code, MaxLinks: 10}, nil
}

func (f *fakeSubRepo) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	return f.err
}

func (f *fakeSubRepo) CreateCancelRequest(ctx context.Context, req *models.CancelRequest) error {
	if f.err != nil {
		return f.err
	}
	f.cancels = append(f.cancels, *req)
	f.cancelOpen[req.SubscriptionID] = true
	return nil
}

func (f *fakeSubRepo) OpenCancelRequestExists(ctx context.Context, subscriptionID uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.cancelOpen[subscriptionID], nil
}

func (f *fakeSubRepo) ListOpenCancelRequests(ctx context.Context) ([]models.CancelRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cancels, nil
}

func (f *fakeSubRepo) ListTrialsEndingBetween(ctx context.Context, from, to time.Time) ([]models.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Subscription
	for _, s := range f.subs {
		if s.Status != models.SubscriptionStatusTrialing || s.TrialEndsAt == nil || s.TrialNoticeSentAt != nil {
			continue
		}
		if s.TrialEndsAt.After(from) && s.TrialEndsAt.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) StampTrialNotice(ctx context.Context, id uint, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.trialStamped[id] = at
	for _, s := range f.subs {
		if s.ID == id {
			stamped := at
			s.TrialNoticeSentAt = &stamped
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uint]*models.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f *fakeUserRepo) ListByOrganization(ctx context.Context, orgID uint) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.users {
		if u.OrganizationID != nil && *u.OrganizationID == orgID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	delete(f.users, user.ID)
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*models.Token
	err    error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*models.Token{}}
}

func (f *fakeTokenRepo) Create(ctx context.Context, token *models.Token) error {
	if f.err != nil {
		return f.err
	}
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenRepo) FindByToken(ctx context.Context, purpose, tokenStr string) (*models.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tokens[tokenStr]
	if !ok || t.Purpose != purpose {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTokenRepo) HardDelete(ctx context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	for key, t := range f.tokens {
		if t.ID == id {
			delete(f.tokens, key)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeTokenRepo) OpenInviteExists(ctx context.Context, email string, orgID uint, now time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, t := range f.tokens {
		if t.Purpose == models.TokenPurposeInvite && t.Email == email &&
			t.OrganizationID != nil && *t.OrganizationID == orgID && !t.IsExpired(now) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var deleted int64
	for key, t := range f.tokens {
		if t.IsExpired(now) {
			delete(f.tokens, key)
			deleted++
		}
	}
	return deleted, nil
}

// fakeMailer gönderilen mailleri kaydeder.
type fakeMailer struct {
	sent []string // alıcı adresleri
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

// Arayüz uyumluluğu kontrolleri
var (
	_ repositories.IProfileRepository      = (*fakeProfileRepo)(nil)
	_ repositories.IQrCodeRepository       = (*fakeQrRepo)(nil)
	_ repositories.IProfileLinkRepository  = (*fakeLinkRepo)(nil)
	_ repositories.ISubscriptionRepository = (*fakeSubRepo)(nil)
	_ repositories.IUserRepository         = (*fakeUserRepo)(nil)
	_ repositories.ITokenRepository        = (*fakeTokenRepo)(nil)
	_ MailSender                           = (*fakeMailer)(nil)
)
