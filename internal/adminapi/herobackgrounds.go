package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/storage"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

type heroView struct {
	ID        int64     `json:"id,string"`
	ImagePath string    `json:"image_path"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *AdminAPI) heroViews(rows []domain.HeroBackground) []heroView {
	views := make([]heroView, 0, len(rows))
	for _, hero := range rows {
		views = append(views, heroView{
			ID:        hero.ID,
			ImagePath: hero.ImagePath,
			URL:       a.disk.URL(hero.ImagePath),
			CreatedAt: hero.CreatedAt,
		})
	}
	return views
}

func (a *AdminAPI) heroResponse(c echo.Context, status int, message string) error {
	rows, err := a.heroes.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(status, webserver.Response{
		Success: true,
		Message: message,
		Data:    a.heroViews(rows),
		Meta:    echo.Map{"count": len(rows), "max": storage.MaxImages},
	})
}

func (a *AdminAPI) listHeroBackgrounds(c echo.Context) error {
	return a.heroResponse(c, http.StatusOK, "")
}

func (a *AdminAPI) uploadHeroBackgrounds(c echo.Context) error {
	ctx := c.Request().Context()

	files, ferrs := formImages(c, "images")
	if ferrs != nil {
		return webserver.FailValidation(c, ferrs)
	}
	if len(files) == 0 {
		return webserver.FailValidation(c, webserver.FieldError("images", "At least one image is required"))
	}
	existing, err := a.heroes.Count(ctx)
	if err != nil {
		return err
	}
	if int(existing)+len(files) > storage.MaxImages {
		return webserver.FailValidation(c, webserver.FieldError("images",
			fmt.Sprintf("Upload limit exceeded: a maximum of %d images is allowed", storage.MaxImages)))
	}

	saved, err := a.disk.SaveAll("hero-bg", files)
	if err != nil {
		return err
	}
	created := make([]int64, 0, len(saved))
	for _, rel := range saved {
		hero := &domain.HeroBackground{ID: common.UUIDint64(), ImagePath: rel}
		if err := a.heroes.Create(ctx, hero); err != nil {
			for _, id := range created {
				_ = a.heroes.Delete(ctx, id)
			}
			a.disk.RemoveAll(saved)
			return err
		}
		created = append(created, hero.ID)
	}

	a.oprLog(c, "hero.upload", fmt.Sprintf("uploaded %d hero background(s)", len(saved)))
	return a.heroResponse(c, http.StatusCreated, "Images uploaded successfully")
}

func (a *AdminAPI) deleteHeroBackground(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Image not found")
	}
	ctx := c.Request().Context()
	hero, err := a.heroes.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Image not found")
	}
	if err != nil {
		return err
	}
	if err := a.heroes.Delete(ctx, id); err != nil {
		return err
	}
	a.disk.RemoveAll([]string{hero.ImagePath})
	a.oprLog(c, "hero.delete", "deleted hero background "+strconv.FormatInt(id, 10))
	return a.heroResponse(c, http.StatusOK, "Image deleted successfully")
}
