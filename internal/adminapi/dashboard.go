package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edmarcres18/mhrhci-backend/internal/cache"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
)

// cachedDashboard runs the read-through cycle for a dashboard endpoint.
func (a *AdminAPI) cachedDashboard(c echo.Context, key string, produce func() (interface{}, error)) error {
	body, err := a.store.Remember(key, cache.TTLDashboard, func() ([]byte, error) {
		data, err := produce()
		if err != nil {
			return nil, err
		}
		return json.Marshal(&webserver.Response{Success: true, Data: data})
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

func (a *AdminAPI) dashboardStats(c echo.Context) error {
	ctx := c.Request().Context()
	return a.cachedDashboard(c, cache.KeyDashboardStats, func() (interface{}, error) {
		return a.stats.Stats(ctx)
	})
}

func (a *AdminAPI) dashboardOverview(c echo.Context) error {
	ctx := c.Request().Context()
	return a.cachedDashboard(c, cache.KeyDashboardOverview, func() (interface{}, error) {
		return a.stats.Overview(ctx)
	})
}

func (a *AdminAPI) dashboardRecent(c echo.Context) error {
	ctx := c.Request().Context()
	return a.cachedDashboard(c, cache.KeyDashboardRecentActivity, func() (interface{}, error) {
		return a.stats.Recent(ctx)
	})
}

// clearDashboardCache drops the three dashboard keys so the next reads
// recompute.
func (a *AdminAPI) clearDashboardCache(c echo.Context) error {
	for _, key := range []string{
		cache.KeyDashboardStats,
		cache.KeyDashboardOverview,
		cache.KeyDashboardRecentActivity,
	} {
		if err := a.store.Forget(key); err != nil {
			return err
		}
	}
	a.oprLog(c, "dashboard.clear-cache", "dashboard cache cleared")
	return webserver.OKMessage(c, "Dashboard cache cleared")
}
