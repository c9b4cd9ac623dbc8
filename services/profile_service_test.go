package services

import (
	"context"
	"testing"

	"kartim.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProfile(repo *fakeProfileRepo, id, userID uint, slug string) *models.Profile {
	p := &models.Profile{UserID: userID, Slug: slug, DisplayName: "Ahmet", IsPublic: true}
	p.ID = id
	repo.profiles[userID] = p
	repo.slugs[slug] = true
	return p
}

func TestProfileUpdate_RoundTrip(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileServiceWith(repo)
	seedProfile(repo, 1, 42, "eski-slug")

	written := ProfileUpdateData{
		DisplayName: "Ahmet Yılmaz",
		Title:       "Yazılım Mühendisi",
		Company:     "Acme",
		Bio:         "Kısa bir tanıtım.",
		Phone:       "+90 555 000 00 00",
		Website:     "https://ahmet.example.com",
		AvatarURL:   "https://cdn.example.com/a.png",
		Slug:        "ahmet-yilmaz",
		IsPublic:    true,
	}

	updated, err := svc.Update(context.Background(), 42, written)
	require.NoError(t, err)

	// Yazılan alanlar geri okumada aynen döner.
	assert.Equal(t, written.DisplayName, updated.DisplayName)
	assert.Equal(t, written.Title, updated.Title)
	assert.Equal(t, written.Company, updated.Company)
	assert.Equal(t, written.Bio, updated.Bio)
	assert.Equal(t, written.Phone, updated.Phone)
	assert.Equal(t, written.Website, updated.Website)
	assert.Equal(t, written.AvatarURL, updated.AvatarURL)
	assert.Equal(t, written.Slug, updated.Slug)
	assert.Equal(t, written.IsPublic, updated.IsPublic)

	reread, err := svc.GetByUserID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, updated, reread)
}

func TestProfileUpdate_SlugRules(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewProfileServiceWith(repo)
	seedProfile(repo, 1, 42, "eski-slug")
	seedProfile(repo, 2, 43, "dolu-slug")

	t.Run("geçersiz format", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 42, ProfileUpdateData{DisplayName: "Ahmet", Slug: "AB"})
		assert.ErrorIs(t, err, ErrSlugInvalid)
	})

	t.Run("dolu slug çakışma döner", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 42, ProfileUpdateData{DisplayName: "Ahmet", Slug: "dolu-slug"})
		assert.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("boş slug mevcut değeri korur", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), 42, ProfileUpdateData{DisplayName: "Ahmet", IsPublic: true})
		require.NoError(t, err)
		assert.Equal(t, "eski-slug", updated.Slug)
	})

	t.Run("profili olmayan kullanıcı", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 99, ProfileUpdateData{DisplayName: "Kimse"})
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}
