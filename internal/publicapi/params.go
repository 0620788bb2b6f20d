package publicapi

import (
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/repository"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
	defaultLatest  = 3
)

var sortOrders = map[string]bool{"asc": true, "desc": true}

// listParams parses and validates the shared list query parameters. Field
// errors accumulate so a single response reports every invalid parameter.
// Defaults are substituted here, before any cache key is derived.
func listParams(c echo.Context, sortable map[string]bool, defaultSort string, withProductType bool) (cache.ListParams, map[string][]string) {
	errs := map[string][]string{}
	p := cache.ListParams{
		Search:    strings.TrimSpace(c.QueryParam("search")),
		PerPage:   defaultPerPage,
		Page:      1,
		SortBy:    defaultSort,
		SortOrder: "desc",
	}

	if raw := c.QueryParam("perPage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPerPage {
			errs["perPage"] = append(errs["perPage"], "The perPage field must be an integer between 1 and 100")
		} else {
			p.PerPage = n
		}
	}
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errs["page"] = append(errs["page"], "The page field must be a positive integer")
		} else {
			p.Page = n
		}
	}
	if raw := c.QueryParam("sortBy"); raw != "" {
		if !sortable[raw] {
			errs["sortBy"] = append(errs["sortBy"], "The sortBy field must be one of: "+joinKeys(sortable))
		} else {
			p.SortBy = raw
		}
	}
	if raw := c.QueryParam("sortOrder"); raw != "" {
		if !sortOrders[raw] {
			errs["sortOrder"] = append(errs["sortOrder"], "The sortOrder field must be asc or desc")
		} else {
			p.SortOrder = raw
		}
	}
	if withProductType {
		if raw := c.QueryParam("product_type"); raw != "" {
			if !domain.ProductType(raw).Valid() {
				errs["product_type"] = append(errs["product_type"], "The product_type field must be medical_supplies or medical_equipment")
			} else {
				p.ProductType = raw
			}
		}
	}

	if len(errs) > 0 {
		return p, errs
	}
	return p, nil
}

// latestLimit parses the limit parameter of latest/featured endpoints.
func latestLimit(c echo.Context) (int, map[string][]string) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return defaultLatest, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > cache.MaxLatestLimit {
		return 0, map[string][]string{
			"limit": {"The limit field must be an integer between 1 and 50"},
		}
	}
	return n, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// toListQuery maps validated cache parameters onto a repository query.
func toListQuery(p cache.ListParams) repository.ListQuery {
	return repository.ListQuery{
		Search:      p.Search,
		ProductType: p.ProductType,
		Page:        p.Page,
		PerPage:     p.PerPage,
		SortBy:      p.SortBy,
		SortOrder:   p.SortOrder,
	}
}

func joinKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
