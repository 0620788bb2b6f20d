package publicapi

import (
	"github.com/labstack/echo/v4"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/storage"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
)

// listHeroBackgrounds serves the landing-page hero image URLs, oldest first.
func (a *PublicAPI) listHeroBackgrounds(c echo.Context) error {
	return a.cached(c, cache.KeyHeroBackgrounds, cache.TTLHero, func() (*webserver.Response, error) {
		rows, err := a.heroes.List(c.Request().Context())
		if err != nil {
			return nil, err
		}
		urls := make([]string, 0, len(rows))
		for _, hero := range rows {
			urls = append(urls, a.disk.URL(hero.ImagePath))
		}
		return &webserver.Response{
			Success: true,
			Data:    urls,
			Meta:    echo.Map{"count": len(urls), "max": storage.MaxImages},
		}, nil
	})
}
