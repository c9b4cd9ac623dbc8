package services

import (
	"context"
	"testing"
	"time"

	"kartim.link/models"
	"kartim.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotificationRepo struct {
	notifications map[uint]*models.Notification
	reads         map[[2]uint]int // {notificationID, userID} -> MarkRead çağrı sayısı
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifications: map[uint]*models.Notification{},
		reads:         map[[2]uint]int{},
		nextID:        1,
	}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	n.ID = f.nextID
	f.nextID++
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (f *fakeNotificationRepo) ListForUser(ctx context.Context, userID uint, orgID *uint) ([]repositories.NotificationWithRead, error) {
	var out []repositories.NotificationWithRead
	for _, n := range f.notifications {
		visible := n.Audience == models.NotificationAudienceAll ||
			(orgID != nil && n.OrganizationID != nil && *n.OrganizationID == *orgID)
		if visible {
			out = append(out, repositories.NotificationWithRead{Notification: *n})
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, notificationID, userID uint, now time.Time) error {
	// Gerçek repo FirstOrCreate ile idempotenttir; fake de tekrar çağrıda hata dönmez.
	f.reads[[2]uint{notificationID, userID}]++
	return nil
}

var _ repositories.INotificationRepository = (*fakeNotificationRepo)(nil)

func TestNotificationMarkRead_Idempotent(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationServiceWith(repo)

	n, err := svc.CreateAnnouncement(context.Background(), 1, "Duyuru", "İçerik")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(context.Background(), 5, n.ID, nil))
	require.NoError(t, svc.MarkRead(context.Background(), 5, n.ID, nil))
	assert.Equal(t, 2, repo.reads[[2]uint{n.ID, 5}])
}

func TestNotificationMarkRead_Visibility(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationServiceWith(repo)

	orgID := uint(3)
	n, err := svc.CreateForOrganization(context.Background(), 1, orgID, "Tenant duyurusu", "İçerik")
	require.NoError(t, err)

	t.Run("tenant üyesi işaretleyebilir", func(t *testing.T) {
		err := svc.MarkRead(context.Background(), 5, n.ID, &orgID)
		require.NoError(t, err)
	})

	t.Run("tenant dışı kullanıcı bulunamadı alır", func(t *testing.T) {
		otherOrg := uint(9)
		err := svc.MarkRead(context.Background(), 6, n.ID, &otherOrg)
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})

	t.Run("org üyeliği olmayan kullanıcı bulunamadı alır", func(t *testing.T) {
		err := svc.MarkRead(context.Background(), 7, n.ID, nil)
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})

	t.Run("olmayan bildirim", func(t *testing.T) {
		err := svc.MarkRead(context.Background(), 5, 999, &orgID)
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})
}

func TestListForUser_AudienceFiltering(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationServiceWith(repo)

	orgID := uint(3)
	_, err := svc.CreateAnnouncement(context.Background(), 1, "Genel", "Herkese")
	require.NoError(t, err)
	_, err = svc.CreateForOrganization(context.Background(), 1, orgID, "Özel", "Tenant'a")
	require.NoError(t, err)

	t.Run("tenant üyesi ikisini de görür", func(t *testing.T) {
		items, err := svc.ListForUser(context.Background(), 5, &orgID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("bireysel kullanıcı yalnızca genel duyuruyu görür", func(t *testing.T) {
		items, err := svc.ListForUser(context.Background(), 6, nil)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}
