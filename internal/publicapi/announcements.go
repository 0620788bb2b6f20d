package publicapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
)

const latestAnnouncementCount = 10

func (a *PublicAPI) listAnnouncements(c echo.Context) error {
	limit := maxPerPage
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPerPage {
			return webserver.FailValidation(c, webserver.FieldError("limit",
				"The limit field must be an integer between 1 and 100"))
		}
		limit = n
	}
	ctx := c.Request().Context()
	return a.cached(c, cache.LatestKey("announcements", limit), cache.TTLList, func() (*webserver.Response, error) {
		items, err := a.announcements.List(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: announcementViews(items)}, nil
	})
}

func (a *PublicAPI) latestAnnouncements(c echo.Context) error {
	ctx := c.Request().Context()
	return a.cached(c, cache.LatestKey("announcements", latestAnnouncementCount), cache.TTLLatest, func() (*webserver.Response, error) {
		items, err := a.announcements.List(ctx, latestAnnouncementCount)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: announcementViews(items)}, nil
	})
}

func (a *PublicAPI) showAnnouncement(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "Announcement not found")
	}
	ctx := c.Request().Context()
	err := a.cached(c, cache.ShowKey("announcement", id), cache.TTLLatest, func() (*webserver.Response, error) {
		item, err := a.announcements.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: announcementView(item)}, nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Announcement not found")
	}
	return err
}
