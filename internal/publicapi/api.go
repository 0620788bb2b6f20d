// Package publicapi serves the unauthenticated /api/v1 read surface. Read
// endpoints are read-through cached: the producer builds and serializes the
// full response envelope once, subsequent hits reply with the stored bytes.
package publicapi

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"

	"github.com/edmarcres18/mhrhci-backend/config"
	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/mailer"
	"github.com/edmarcres18/mhrhci-backend/internal/repository"
	"github.com/edmarcres18/mhrhci-backend/internal/storage"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PublicAPI bundles the dependencies of the public read handlers.
type PublicAPI struct {
	cfg           *config.AppConfig
	store         cache.Store
	disk          *storage.Disk
	mail          *mailer.Mailer
	blogs         repository.BlogRepository
	products      repository.ProductRepository
	principals    repository.PrincipalRepository
	announcements repository.AnnouncementRepository
	newsletter    repository.NewsletterRepository
	registrations repository.RegistrationRepository
	heroes        repository.HeroBackgroundRepository
}

// NewPublicAPI builds the public API handler set.
func NewPublicAPI(
	cfg *config.AppConfig,
	store cache.Store,
	disk *storage.Disk,
	mail *mailer.Mailer,
	blogs repository.BlogRepository,
	products repository.ProductRepository,
	principals repository.PrincipalRepository,
	announcements repository.AnnouncementRepository,
	newsletter repository.NewsletterRepository,
	registrations repository.RegistrationRepository,
	heroes repository.HeroBackgroundRepository,
) *PublicAPI {
	return &PublicAPI{
		cfg:           cfg,
		store:         store,
		disk:          disk,
		mail:          mail,
		blogs:         blogs,
		products:      products,
		principals:    principals,
		announcements: announcements,
		newsletter:    newsletter,
		registrations: registrations,
		heroes:        heroes,
	}
}

// InitRouter attaches the /api/v1 routes with their per-class rate limits.
func (a *PublicAPI) InitRouter(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	list := webserver.PerMinute(60)
	read := webserver.PerMinute(100)
	submit := webserver.PerMinute(20)

	v1.GET("/blogs", a.listBlogs, list)
	v1.GET("/blogs/latest", a.latestBlogs, read)
	v1.GET("/blogs/:id", a.showBlog, read)
	v1.GET("/blogs/:id/related", a.relatedBlogs, read)

	v1.GET("/products", a.listProducts, list)
	v1.GET("/products/latest", a.latestProducts, read)
	v1.GET("/products/featured", a.featuredProducts, read)

	v1.GET("/principals", a.listPrincipals, list)
	v1.GET("/principals/featured", a.featuredPrincipals, read)
	v1.GET("/principals/:id/products", a.principalProducts, read)

	v1.GET("/announcements", a.listAnnouncements, list)
	v1.GET("/announcements/latest", a.latestAnnouncements, read)
	v1.GET("/announcements/:id", a.showAnnouncement, read)

	v1.GET("/hero-backgrounds", a.listHeroBackgrounds, read)

	v1.GET("/customer-registrations", a.listRegistrations, webserver.RequireAdmin, list)
	v1.POST("/customer-registrations", a.createRegistration, submit)
	v1.GET("/customer-registrations/:id", a.showRegistration, webserver.RequireAdmin, read)
	v1.DELETE("/customer-registrations/:id", a.deleteRegistration, webserver.RequireAdmin)

	v1.POST("/newsletter/subscribe", a.subscribe, submit)
	v1.GET("/newsletter/unsubscribe", a.unsubscribe, submit)
}

// cached runs the read-through cycle and replies with the stored envelope
// bytes. Producers return a fully built webserver.Response.
func (a *PublicAPI) cached(c echo.Context, key string, ttl time.Duration, produce func() (*webserver.Response, error)) error {
	body, err := a.store.Remember(key, ttl, func() ([]byte, error) {
		resp, err := produce()
		if err != nil {
			return nil, err
		}
		return json.Marshal(resp)
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}
