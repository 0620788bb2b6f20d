package publicapi

import (
	"github.com/labstack/echo/v4"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
)

var productSortable = map[string]bool{"created_at": true, "updated_at": true, "name": true}

func (a *PublicAPI) listProducts(c echo.Context) error {
	params, errs := listParams(c, productSortable, "created_at", true)
	if errs != nil {
		return webserver.FailValidation(c, errs)
	}
	ctx := c.Request().Context()
	baseURL := c.Request().URL.Path
	return a.cached(c, cache.ListKey("products", params), cache.TTLList, func() (*webserver.Response, error) {
		products, total, err := a.products.List(ctx, toListQuery(params))
		if err != nil {
			return nil, err
		}
		meta := webserver.NewPageMeta(params.Page, params.PerPage, len(products), total)
		return &webserver.Response{
			Success: true,
			Data:    a.productViews(products),
			Meta:    meta,
			Links:   webserver.NewPageLinks(baseURL, meta),
		}, nil
	})
}

func (a *PublicAPI) latestProducts(c echo.Context) error {
	limit, errs := latestLimit(c)
	if errs != nil {
		return webserver.FailValidation(c, errs)
	}
	ctx := c.Request().Context()
	return a.cached(c, cache.LatestKey("products", limit), cache.TTLLatest, func() (*webserver.Response, error) {
		products, err := a.products.Latest(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: a.productViews(products)}, nil
	})
}

func (a *PublicAPI) featuredProducts(c echo.Context) error {
	limit, errs := latestLimit(c)
	if errs != nil {
		return webserver.FailValidation(c, errs)
	}
	ctx := c.Request().Context()
	return a.cached(c, cache.FeaturedKey("products", limit), cache.TTLLatest, func() (*webserver.Response, error) {
		products, err := a.products.Featured(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: a.productViews(products)}, nil
	})
}
