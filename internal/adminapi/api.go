// Package adminapi serves the session-authenticated admin console API:
// content CRUD, user management, dashboard statistics and cache control.
package adminapi

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/config"
	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/mailer"
	"github.com/edmarcres18/mhrhci-backend/internal/repository"
	"github.com/edmarcres18/mhrhci-backend/internal/stats"
	"github.com/edmarcres18/mhrhci-backend/internal/storage"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// AdminAPI bundles the dependencies of the admin handlers.
type AdminAPI struct {
	cfg           *config.AppConfig
	db            *gorm.DB
	store         cache.Store
	disk          *storage.Disk
	mail          *mailer.Mailer
	stats         *stats.Aggregator
	blogs         repository.BlogRepository
	products      repository.ProductRepository
	principals    repository.PrincipalRepository
	announcements repository.AnnouncementRepository
	newsletter    repository.NewsletterRepository
	users         repository.UserRepository
	invitations   repository.InvitationRepository
	heroes        repository.HeroBackgroundRepository
}

// NewAdminAPI builds the admin API handler set.
func NewAdminAPI(
	cfg *config.AppConfig,
	db *gorm.DB,
	store cache.Store,
	disk *storage.Disk,
	mail *mailer.Mailer,
	aggregator *stats.Aggregator,
	blogs repository.BlogRepository,
	products repository.ProductRepository,
	principals repository.PrincipalRepository,
	announcements repository.AnnouncementRepository,
	newsletter repository.NewsletterRepository,
	users repository.UserRepository,
	invitations repository.InvitationRepository,
	heroes repository.HeroBackgroundRepository,
) *AdminAPI {
	return &AdminAPI{
		cfg:           cfg,
		db:            db,
		store:         store,
		disk:          disk,
		mail:          mail,
		stats:         aggregator,
		blogs:         blogs,
		products:      products,
		principals:    principals,
		announcements: announcements,
		newsletter:    newsletter,
		users:         users,
		invitations:   invitations,
		heroes:        heroes,
	}
}

// InitRouter attaches the admin routes. Everything behind /admin/api requires
// an authenticated session; content and user management additionally require
// admin privileges.
func (a *AdminAPI) InitRouter(e *echo.Echo) {
	e.POST("/admin/api/login", a.login, webserver.PerMinute(10))
	e.POST("/admin/api/logout", a.logout)
	e.POST("/admin/api/invitations/accept", a.acceptInvitation, webserver.PerMinute(10))

	g := e.Group("/admin/api", webserver.RequireAuth)

	dash := webserver.PerMinute(120)
	g.GET("/dashboard/stats", a.dashboardStats, dash)
	g.GET("/dashboard/overview", a.dashboardOverview, dash)
	g.GET("/dashboard/recent-activity", a.dashboardRecent, dash)
	g.POST("/dashboard/clear-cache", a.clearDashboardCache, webserver.RequireAdmin, webserver.PerMinute(10))

	admin := g.Group("", webserver.RequireAdmin)

	admin.GET("/products", a.listProducts)
	admin.GET("/products/:id", a.getProduct)
	admin.POST("/products", a.createProduct)
	admin.PUT("/products/:id", a.updateProduct)
	admin.DELETE("/products/:id", a.deleteProduct)

	admin.GET("/blogs", a.listBlogs)
	admin.GET("/blogs/:id", a.getBlog)
	admin.POST("/blogs", a.createBlog)
	admin.PUT("/blogs/:id", a.updateBlog)
	admin.DELETE("/blogs/:id", a.deleteBlog)

	admin.GET("/principals", a.listPrincipals)
	admin.GET("/principals/:id", a.getPrincipal)
	admin.POST("/principals", a.createPrincipal)
	admin.PUT("/principals/:id", a.updatePrincipal)
	admin.DELETE("/principals/:id", a.deletePrincipal)

	admin.GET("/announcements", a.listAnnouncements)
	admin.GET("/announcements/:id", a.getAnnouncement)
	admin.POST("/announcements", a.createAnnouncement)
	admin.PUT("/announcements/:id", a.updateAnnouncement)
	admin.DELETE("/announcements/:id", a.deleteAnnouncement)

	admin.GET("/users", a.listUsers)
	admin.GET("/users/:id", a.getUser)
	admin.POST("/users", a.createUser)
	admin.PUT("/users/:id", a.updateUser)
	admin.DELETE("/users/:id", a.deleteUser)

	admin.GET("/hero-backgrounds", a.listHeroBackgrounds)
	admin.POST("/hero-backgrounds", a.uploadHeroBackgrounds)
	admin.DELETE("/hero-backgrounds/:id", a.deleteHeroBackground)

	admin.GET("/newsletter/subscriptions", a.listSubscriptions)
	admin.POST("/invitations", a.issueInvitation)
}

// oprLog appends an audit row for an admin mutation. Failures are logged,
// never surfaced.
func (a *AdminAPI) oprLog(c echo.Context, action, desc string) {
	name := ""
	if u := webserver.CurrentUser(c); u != nil {
		name = u.Name
	}
	row := &domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   name,
		OprIP:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := a.db.Create(row).Error; err != nil {
		zap.L().Warn("operation log write failed", zap.String("action", action), zap.Error(err))
	}
}
