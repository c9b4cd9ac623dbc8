package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// --- Fake servisler ---

type fakeProfileService struct {
	public map[string]*models.Profile
}

func (f *fakeProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return nil, services.ErrProfileNotFound
}

func (f *fakeProfileService) GetPublicBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	p, ok := f.public[slug]
	if !ok {
		return nil, services.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileService) Update(ctx context.Context, userID uint, data services.ProfileUpdateData) (*models.Profile, error) {
	return nil, services.ErrProfileUpdateFailed
}

type fakeQrService struct {
	public map[string]*models.QrCodePage
}

func (f *fakeQrService) GetForUser(ctx context.Context, userID uint) (*models.QrCodePage, error) {
	return nil, services.ErrQrPageNotFound
}

func (f *fakeQrService) Save(ctx context.Context, userID uint, data services.QrSaveData) (*models.QrCodePage, error) {
	return nil, services.ErrQrPageSaveFailed
}

func (f *fakeQrService) GetPublicBySlug(ctx context.Context, slug string) (*models.QrCodePage, error) {
	p, ok := f.public[slug]
	if !ok {
		return nil, services.ErrQrPageNotFound
	}
	return p, nil
}

type fakeSlugService struct {
	result services.SlugCheckResult
}

func (f *fakeSlugService) CheckSlug(ctx context.Context, slug string) (services.SlugCheckResult, error) {
	return f.result, nil
}

func newPublicTestApp(h *PublicPageHandler) *fiber.App {
	app := fiber.New()
	app.Get("/check-slug", h.CheckSlug)
	app.Get("/p/:slug", h.ShowProfile)
	app.Get("/q/:slug", h.ShowQr)
	return app
}

func TestShowProfile(t *testing.T) {
	profile := &models.Profile{Slug: "ahmet-y", DisplayName: "Ahmet", IsPublic: true}
	h := &PublicPageHandler{
		profileService: &fakeProfileService{public: map[string]*models.Profile{"ahmet-y": profile}},
		qrService:      &fakeQrService{},
		slugService:    &fakeSlugService{},
	}
	app := newPublicTestApp(h)

	t.Run("yayındaki profil döner", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/p/ahmet-y", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Success bool            `json:"success"`
			Profile *models.Profile `json:"profile"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, "ahmet-y", body.Profile.Slug)
	})

	t.Run("bilinmeyen slug 404", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/p/bilinmeyen", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("geçersiz format DB sorgusuna gitmeden 404", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/p/AB", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestShowQr(t *testing.T) {
	page := &models.QrCodePage{Slug: "qr-sayfam", TargetMode: models.QrTargetProfile, IsEnabled: true}
	h := &PublicPageHandler{
		profileService: &fakeProfileService{},
		qrService:      &fakeQrService{public: map[string]*models.QrCodePage{"qr-sayfam": page}},
		slugService:    &fakeSlugService{},
	}
	app := newPublicTestApp(h)

	resp, err := app.Test(httptest.NewRequest("GET", "/q/qr-sayfam", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success   bool   `json:"success"`
		SealLabel string `json:"sealLabel"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.SealLabel)
}

func TestCheckSlug_ResponseShape(t *testing.T) {
	h := &PublicPageHandler{
		profileService: &fakeProfileService{},
		qrService:      &fakeQrService{},
		slugService: &fakeSlugService{result: services.SlugCheckResult{
			IsValid:     true,
			IsAvailable: false,
			Message:     "Bu slug zaten kullanımda.",
		}},
	}
	app := newPublicTestApp(h)

	resp, err := app.Test(httptest.NewRequest("GET", "/check-slug?slug=ahmet-y", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["isValid"])
	assert.Equal(t, false, body["isAvailable"])
	assert.NotEmpty(t, body["message"])
}
