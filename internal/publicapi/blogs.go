package publicapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
)

var blogSortable = map[string]bool{"created_at": true, "updated_at": true, "title": true}

func (a *PublicAPI) listBlogs(c echo.Context) error {
	params, errs := listParams(c, blogSortable, "created_at", false)
	if errs != nil {
		return webserver.FailValidation(c, errs)
	}
	ctx := c.Request().Context()
	baseURL := c.Request().URL.Path
	return a.cached(c, cache.ListKey("blogs", params), cache.TTLList, func() (*webserver.Response, error) {
		blogs, total, err := a.blogs.List(ctx, toListQuery(params))
		if err != nil {
			return nil, err
		}
		meta := webserver.NewPageMeta(params.Page, params.PerPage, len(blogs), total)
		return &webserver.Response{
			Success: true,
			Data:    a.blogViews(blogs),
			Meta:    meta,
			Links:   webserver.NewPageLinks(baseURL, meta),
		}, nil
	})
}

func (a *PublicAPI) latestBlogs(c echo.Context) error {
	limit, errs := latestLimit(c)
	if errs != nil {
		return webserver.FailValidation(c, errs)
	}
	ctx := c.Request().Context()
	return a.cached(c, cache.LatestKey("blogs", limit), cache.TTLLatest, func() (*webserver.Response, error) {
		blogs, err := a.blogs.Latest(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: a.blogViews(blogs)}, nil
	})
}

func (a *PublicAPI) showBlog(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	ctx := c.Request().Context()
	err := a.cached(c, cache.ShowKey("blog", id), cache.TTLLatest, func() (*webserver.Response, error) {
		blog, err := a.blogs.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: a.blogDetailView(blog)}, nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	return err
}

func (a *PublicAPI) relatedBlogs(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	ctx := c.Request().Context()
	err := a.cached(c, cache.RelatedKey("blog", id), cache.TTLRelated, func() (*webserver.Response, error) {
		blog, err := a.blogs.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		related, err := a.blogs.Related(ctx, blog, defaultLatest)
		if err != nil {
			return nil, err
		}
		return &webserver.Response{Success: true, Data: a.blogViews(related)}, nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Blog not found")
	}
	return err
}
