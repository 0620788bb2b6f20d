package publicapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
)

func (a *PublicAPI) listPrincipals(c echo.Context) error {
	ctx := c.Request().Context()
	return a.cached(c, cache.KeyPrincipals, cache.TTLList, func() (*webserver.Response, error) {
		principals, err := a.principals.All(ctx)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: a.principalViews(principals)}, nil
	})
}

func (a *PublicAPI) featuredPrincipals(c echo.Context) error {
	ctx := c.Request().Context()
	return a.cached(c, cache.KeyPrincipalsFeatured, cache.TTLList, func() (*webserver.Response, error) {
		principals, err := a.principals.Featured(ctx)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: a.principalViews(principals)}, nil
	})
}

func (a *PublicAPI) principalProducts(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "Principal not found")
	}
	ctx := c.Request().Context()
	err := a.cached(c, cache.PrincipalProductsKey(id), cache.TTLList, func() (*webserver.Response, error) {
		principal, err := a.principals.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		products, err := a.products.ByPrincipal(ctx, principal.ID)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{
			Success: true,
			Data: map[string]interface{}{
				"principal": a.principalView(principal),
				"products":  a.productViews(products),
			},
		}, nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Principal not found")
	}
	return err
}
