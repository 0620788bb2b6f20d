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

type announcementPayload struct {
	Title       string `json:"title" form:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" form:"description" validate:"required"`
}

func (a *AdminAPI) listAnnouncements(c echo.Context) error {
	items, err := a.announcements.List(c.Request().Context(), 100)
	if err != nil {
		return err
	}
	return webserver.OK(c, items)
}

func (a *AdminAPI) getAnnouncement(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Announcement not found")
	}
	item, err := a.announcements.GetByID(c.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Announcement not found")
	}
	if err != nil {
		return err
	}
	return webserver.OK(c, item)
}

func (a *AdminAPI) createAnnouncement(c echo.Context) error {
	var payload announcementPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Malformed request payload")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.FailValidation(c, webserver.ValidationFields(err))
	}

	item := &domain.Announcement{
		ID:          common.UUIDint64(),
		Title:       strings.TrimSpace(payload.Title),
		Description: payload.Description,
	}
	if err := a.announcements.Create(c.Request().Context(), item); err != nil {
		return err
	}
	a.notifyNewContent("Announcement: "+item.Title, item.Description)
	a.oprLog(c, "announcement.create", "created announcement "+item.Title)
	return webserver.Created(c, item, "Announcement created")
}

func (a *AdminAPI) updateAnnouncement(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Announcement not found")
	}
	ctx := c.Request().Context()
	item, err := a.announcements.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Announcement not found")
	}
	if err != nil {
		return err
	}

	var payload announcementPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Malformed request payload")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.FailValidation(c, webserver.ValidationFields(err))
	}
	item.Title = strings.TrimSpace(payload.Title)
	item.Description = payload.Description

	if err := a.announcements.Update(ctx, item); err != nil {
		return err
	}
	a.oprLog(c, "announcement.update", "updated announcement "+item.Title)
	return webserver.OK(c, item)
}

func (a *AdminAPI) deleteAnnouncement(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Announcement not found")
	}
	if err := a.announcements.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	a.oprLog(c, "announcement.delete", "deleted announcement "+strconv.FormatInt(id, 10))
	return webserver.OKMessage(c, "Announcement deleted")
}
