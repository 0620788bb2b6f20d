package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/storage"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

func (a *AdminAPI) listBlogs(c echo.Context) error {
	q := parseAdminList(c, map[string]bool{"created_at": true, "updated_at": true, "title": true})
	blogs, total, err := a.blogs.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	meta := webserver.NewPageMeta(q.Page, q.PerPage, len(blogs), total)
	return c.JSON(http.StatusOK, webserver.Response{Success: true, Data: blogs, Meta: meta})
}

func (a *AdminAPI) getBlog(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	blog, err := a.blogs.GetByID(c.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	if err != nil {
		return err
	}
	return webserver.OK(c, blog)
}

func (a *AdminAPI) createBlog(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	content := c.FormValue("content")

	errs := map[string][]string{}
	if title == "" {
		errs["title"] = append(errs["title"], "The title field is required")
	}
	if strings.TrimSpace(content) == "" {
		errs["content"] = append(errs["content"], "The content field is required")
	}
	files, ferrs := formImages(c, "images")
	for k, v := range ferrs {
		errs[k] = append(errs[k], v...)
	}
	if len(errs) > 0 {
		return webserver.FailValidation(c, errs)
	}

	images, err := a.disk.SaveAll("blogs", files)
	if err != nil {
		return err
	}
	blog := &domain.Blog{
		ID:      common.UUIDint64(),
		Title:   title,
		Content: content,
		Images:  images,
	}
	if err := a.blogs.Create(c.Request().Context(), blog); err != nil {
		a.disk.RemoveAll(images)
		return err
	}
	a.oprLog(c, "blog.create", "created blog "+blog.Title)
	return webserver.Created(c, blog, "Blog created")
}

func (a *AdminAPI) updateBlog(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	ctx := c.Request().Context()
	blog, err := a.blogs.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	if err != nil {
		return err
	}

	if title := strings.TrimSpace(c.FormValue("title")); title != "" {
		blog.Title = title
	}
	if values, _ := c.FormParams(); values.Has("content") {
		blog.Content = c.FormValue("content")
	}

	keep := c.FormValue("keep_existing_images") != "false"
	files, ferrs := formImages(c, "images")
	if ferrs != nil {
		return webserver.FailValidation(c, ferrs)
	}
	if keep && len(blog.Images)+len(files) > storage.MaxImages {
		return webserver.FailValidation(c, webserver.FieldError("images",
			fmt.Sprintf("A maximum of %d images is allowed", storage.MaxImages)))
	}

	added, err := a.disk.SaveAll("blogs", files)
	if err != nil {
		return err
	}
	var replaced domain.StringList
	if keep {
		blog.Images = append(blog.Images, added...)
	} else if len(files) > 0 {
		replaced = blog.Images
		blog.Images = added
	}

	if err := a.blogs.Update(ctx, blog); err != nil {
		a.disk.RemoveAll(added)
		return err
	}
	a.disk.RemoveAll(replaced)
	a.oprLog(c, "blog.update", "updated blog "+blog.Title)
	return webserver.OK(c, blog)
}

func (a *AdminAPI) deleteBlog(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	ctx := c.Request().Context()
	blog, err := a.blogs.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	if err != nil {
		return err
	}
	if err := a.blogs.Delete(ctx, id); err != nil {
		return err
	}
	a.disk.RemoveAll(blog.Images)
	a.oprLog(c, "blog.delete", "deleted blog "+blog.Title)
	return webserver.OKMessage(c, "Blog deleted")
}
