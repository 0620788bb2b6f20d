package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

func (a *AdminAPI) listPrincipals(c echo.Context) error {
	principals, err := a.principals.All(c.Request().Context())
	if err != nil {
		return err
	}
	return webserver.OK(c, principals)
}

func (a *AdminAPI) getPrincipal(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Principal not found")
	}
	principal, err := a.principals.GetByID(c.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Principal not found")
	}
	if err != nil {
		return err
	}
	return webserver.OK(c, principal)
}

func (a *AdminAPI) createPrincipal(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return webserver.FailValidation(c, webserver.FieldError("name", "The name field is required"))
	}

	logo := ""
	if file, err := c.FormFile("logo"); err == nil && file != nil {
		saved, err := a.disk.Save("principals", file)
		if err != nil {
			return err
		}
		logo = saved
	}

	principal := &domain.Principal{
		ID:          common.UUIDint64(),
		Name:        name,
		Description: c.FormValue("description"),
		Logo:        logo,
		IsFeatured:  c.FormValue("is_featured") == "true" || c.FormValue("is_featured") == "1",
	}
	if err := a.principals.Create(c.Request().Context(), principal); err != nil {
		if logo != "" {
			a.disk.RemoveAll([]string{logo})
		}
		return err
	}
	a.oprLog(c, "principal.create", "created principal "+principal.Name)
	return webserver.Created(c, principal, "Principal created")
}

func (a *AdminAPI) updatePrincipal(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Principal not found")
	}
	ctx := c.Request().Context()
	principal, err := a.principals.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Principal not found")
	}
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(c.FormValue("name")); name != "" {
		principal.Name = name
	}
	if values, _ := c.FormParams(); values.Has("description") {
		principal.Description = c.FormValue("description")
	}
	if raw := c.FormValue("is_featured"); raw != "" {
		principal.IsFeatured = raw == "true" || raw == "1"
	}

	oldLogo := principal.Logo
	if c.FormValue("remove_logo") == "true" {
		principal.Logo = ""
	}
	if file, err := c.FormFile("logo"); err == nil && file != nil {
		saved, err := a.disk.Save("principals", file)
		if err != nil {
			return err
		}
		principal.Logo = saved
	}

	if err := a.principals.Update(ctx, principal); err != nil {
		if principal.Logo != oldLogo && principal.Logo != "" {
			a.disk.RemoveAll([]string{principal.Logo})
		}
		return err
	}
	if oldLogo != "" && principal.Logo != oldLogo {
		a.disk.RemoveAll([]string{oldLogo})
	}
	a.oprLog(c, "principal.update", "updated principal "+principal.Name)
	return webserver.OK(c, principal)
}

func (a *AdminAPI) deletePrincipal(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Principal not found")
	}
	ctx := c.Request().Context()
	principal, err := a.principals.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Principal not found")
	}
	if err != nil {
		return err
	}
	if err := a.principals.Delete(ctx, id); err != nil {
		return err
	}
	if principal.Logo != "" {
		a.disk.RemoveAll([]string{principal.Logo})
	}
	a.oprLog(c, "principal.delete", "deleted principal "+principal.Name)
	return webserver.OKMessage(c, "Principal deleted")
}
