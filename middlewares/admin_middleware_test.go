package middlewares

import (
	"context"
	"net/http/httptest"
	"testing"

	"kartim.link/models"
	"kartim.link/pkg/queryparams"
	"kartim.link/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Fake repository'ler ---

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	return nil
}

func (f *fakeUserRepo) ListByOrganization(ctx context.Context, orgID uint) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, user *models.User) error { return nil }

type fakeOrgRepo struct {
	orgs map[uint]*models.Organization
}

func (f *fakeOrgRepo) Create(ctx context.Context, org *models.Organization) error { return nil }

func (f *fakeOrgRepo) FindByID(ctx context.Context, id uint) (*models.Organization, error) {
	o, ok := f.orgs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOrgRepo) ListPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Organization, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrgRepo) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	return nil
}

var (
	_ repositories.IUserRepository         = (*fakeUserRepo)(nil)
	_ repositories.IOrganizationRepository = (*fakeOrgRepo)(nil)
)

// withSessionUser AuthMiddleware'in yazacağı oturum kimliğini taklit eder.
func withSessionUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func seedTestUser(repo *fakeUserRepo, id uint, isSystem bool, orgID *uint) *models.User {
	u := &models.User{Status: models.UserStatusActive, IsSystem: isSystem, OrganizationID: orgID}
	u.ID = id
	u.Email = "kullanici@example.com"
	repo.users[id] = u
	return u
}

func TestPlatformAdminMiddleware(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[uint]*models.User{}}
	seedTestUser(userRepo, 1, true, nil)
	seedTestUser(userRepo, 2, false, nil)

	newApp := func(userID uint) *fiber.App {
		app := fiber.New()
		app.Get("/admin", withSessionUser(userID), platformAdminWith(userRepo), func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"success": true})
		})
		return app
	}

	t.Run("sistem kullanıcısı geçer", func(t *testing.T) {
		resp, err := newApp(1).Test(httptest.NewRequest("GET", "/admin", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("normal kullanıcı 403", func(t *testing.T) {
		resp, err := newApp(2).Test(httptest.NewRequest("GET", "/admin", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("silinmiş kullanıcının oturumu 401", func(t *testing.T) {
		resp, err := newApp(99).Test(httptest.NewRequest("GET", "/admin", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestOrgAdminMiddleware(t *testing.T) {
	activeOrg := uint(3)
	suspendedOrg := uint(4)

	userRepo := &fakeUserRepo{users: map[uint]*models.User{}}
	seedTestUser(userRepo, 1, false, &activeOrg)    // aktif tenant'ın yöneticisi
	seedTestUser(userRepo, 5, false, &activeOrg)    // sıradan üye
	seedTestUser(userRepo, 6, false, nil)           // tenant üyeliği yok
	seedTestUser(userRepo, 7, false, &suspendedOrg) // askıdaki tenant'ın yöneticisi

	orgRepo := &fakeOrgRepo{orgs: map[uint]*models.Organization{}}
	active := &models.Organization{Name: "Acme", AdminUserID: 1, Status: models.OrganizationStatusActive}
	active.ID = activeOrg
	orgRepo.orgs[activeOrg] = active
	suspended := &models.Organization{Name: "Durmuş AŞ", AdminUserID: 7, Status: models.OrganizationStatusSuspended}
	suspended.ID = suspendedOrg
	orgRepo.orgs[suspendedOrg] = suspended

	newApp := func(userID uint) *fiber.App {
		app := fiber.New()
		app.Get("/org", withSessionUser(userID), orgAdminWith(userRepo, orgRepo), func(c *fiber.Ctx) error {
			org := c.Locals("currentOrg").(*models.Organization)
			return c.JSON(fiber.Map{"success": true, "org": org.Name})
		})
		return app
	}

	t.Run("tenant yöneticisi geçer", func(t *testing.T) {
		resp, err := newApp(1).Test(httptest.NewRequest("GET", "/org", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("sıradan üye 403", func(t *testing.T) {
		resp, err := newApp(5).Test(httptest.NewRequest("GET", "/org", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("tenant üyeliği olmayan kullanıcı 403", func(t *testing.T) {
		resp, err := newApp(6).Test(httptest.NewRequest("GET", "/org", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("askıdaki tenant'ın yöneticisi 403", func(t *testing.T) {
		resp, err := newApp(7).Test(httptest.NewRequest("GET", "/org", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
