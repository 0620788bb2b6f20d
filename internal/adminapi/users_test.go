package adminapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edmarcres18/mhrhci-backend/config"
	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/mailer"
	"github.com/edmarcres18/mhrhci-backend/internal/repository"
	"github.com/edmarcres18/mhrhci-backend/internal/stats"
	"github.com/edmarcres18/mhrhci-backend/internal/storage"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
)

func testAdminAPI(t *testing.T) (*AdminAPI, *echo.Echo, *gorm.DB, string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	workdir := t.TempDir()
	cfg := config.DefaultAppConfig
	api := NewAdminAPI(
		cfg,
		db,
		cache.NewMemoryStore(),
		storage.NewDisk(workdir, "http://localhost:8000"),
		mailer.NewMailer(config.MailConfig{Enable: false}, "http://localhost:8000"),
		stats.NewAggregator(db),
		repository.NewGormBlogRepository(db, EventBus.New()),
		repository.NewGormProductRepository(db, EventBus.New()),
		repository.NewGormPrincipalRepository(db, EventBus.New()),
		repository.NewGormAnnouncementRepository(db, EventBus.New()),
		repository.NewGormNewsletterRepository(db),
		repository.NewGormUserRepository(db),
		repository.NewGormInvitationRepository(db),
		repository.NewGormHeroBackgroundRepository(db, EventBus.New()),
	)
	return api, webserver.NewWebServer(cfg).Echo(), db, workdir
}

func seedUser(t *testing.T, db *gorm.DB, id int64, role domain.UserRole) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:    id,
		Name:  "Test User",
		Email: "user" + string(rune('a'+id)) + "@example.com",
		Role:  role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func requestAs(e *echo.Echo, actor *domain.User, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("current_user", actor)
	return c, rec
}

func TestRoleGuardMatrix(t *testing.T) {
	api, e, db, _ := testAdminAPI(t)

	sysadmin := seedUser(t, db, 1, domain.RoleSystemAdmin)
	admin := seedUser(t, db, 2, domain.RoleAdmin)
	otherAdmin := seedUser(t, db, 3, domain.RoleAdmin)
	seedUser(t, db, 4, domain.RoleStaff)

	t.Run("AdminCannotViewSystemAdmin", func(t *testing.T) {
		c, rec := requestAs(e, admin, http.MethodGet, "/admin/api/users/1", "")
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, api.getUser(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminCannotUpdateSystemAdmin", func(t *testing.T) {
		c, rec := requestAs(e, admin, http.MethodPut, "/admin/api/users/1", "name=hax")
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, api.updateUser(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminCannotGrantSystemAdminRole", func(t *testing.T) {
		c, rec := requestAs(e, admin, http.MethodPut, "/admin/api/users/4", "role=system_admin")
		c.SetParamNames("id")
		c.SetParamValues("4")
		require.NoError(t, api.updateUser(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminCannotDeleteSystemAdmin", func(t *testing.T) {
		c, rec := requestAs(e, admin, http.MethodDelete, "/admin/api/users/1", "")
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, api.deleteUser(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminCannotDeleteFellowAdmin", func(t *testing.T) {
		c, rec := requestAs(e, admin, http.MethodDelete, "/admin/api/users/3", "")
		c.SetParamNames("id")
		c.SetParamValues("3")
		require.NoError(t, api.deleteUser(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("SelfDeleteIsValidationError", func(t *testing.T) {
		c, rec := requestAs(e, sysadmin, http.MethodDelete, "/admin/api/users/1", "")
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, api.deleteUser(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("SystemAdminMayDeleteAdmin", func(t *testing.T) {
		c, rec := requestAs(e, sysadmin, http.MethodDelete, "/admin/api/users/3", "")
		c.SetParamNames("id")
		c.SetParamValues("3")
		require.NoError(t, api.deleteUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var count int64
		require.NoError(t, db.Model(&domain.User{}).Where("id = ?", otherAdmin.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("AdminMayDeleteStaff", func(t *testing.T) {
		c, rec := requestAs(e, admin, http.MethodDelete, "/admin/api/users/4", "")
		c.SetParamNames("id")
		c.SetParamValues("4")
		require.NoError(t, api.deleteUser(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestUserListHidesSystemAdminsFromPlainAdmins(t *testing.T) {
	api, e, db, _ := testAdminAPI(t)

	sysadmin := seedUser(t, db, 1, domain.RoleSystemAdmin)
	admin := seedUser(t, db, 2, domain.RoleAdmin)
	seedUser(t, db, 3, domain.RoleStaff)

	c, rec := requestAs(e, admin, http.MethodGet, "/admin/api/users", "")
	require.NoError(t, api.listUsers(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), sysadmin.Email)
	assert.Contains(t, rec.Body.String(), admin.Email)

	c, rec = requestAs(e, sysadmin, http.MethodGet, "/admin/api/users", "")
	require.NoError(t, api.listUsers(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), sysadmin.Email)
}

func TestCreateUserRoleEscalationBlocked(t *testing.T) {
	api, e, db, _ := testAdminAPI(t)
	admin := seedUser(t, db, 2, domain.RoleAdmin)

	c, rec := requestAs(e, admin, http.MethodPost, "/admin/api/users",
		"name=New&email=new%40example.com&password=secret123&role=system_admin")
	require.NoError(t, api.createUser(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = requestAs(e, admin, http.MethodPost, "/admin/api/users",
		"name=New&email=new%40example.com&password=secret123&role=staff")
	require.NoError(t, api.createUser(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
