package adminapi

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

func TestUploadHeroBackgrounds(t *testing.T) {
	api, e, db, workdir := testAdminAPI(t)

	c, rec := multipartRequest(t, e, http.MethodPost, "/admin/api/hero-backgrounds",
		nil, map[string][]string{"images": {"a.png", "b.png"}})
	require.NoError(t, api.uploadHeroBackgrounds(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var rows []domain.HeroBackground
	require.NoError(t, db.Order("created_at ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, row := range rows {
		_, err := os.Stat(filepath.Join(workdir, "public", "storage", filepath.FromSlash(row.ImagePath)))
		assert.NoError(t, err)
	}

	t.Run("CapBlocksOverfill", func(t *testing.T) {
		c, rec := multipartRequest(t, e, http.MethodPost, "/admin/api/hero-backgrounds",
			nil, map[string][]string{"images": {"c.png", "d.png", "e.png", "f.png"}})
		require.NoError(t, api.uploadHeroBackgrounds(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var n int64
		require.NoError(t, db.Model(&domain.HeroBackground{}).Count(&n).Error)
		assert.Equal(t, int64(2), n)
	})

	t.Run("EmptyUploadRejected", func(t *testing.T) {
		c, rec := multipartRequest(t, e, http.MethodPost, "/admin/api/hero-backgrounds",
			map[string]string{"noop": "1"}, nil)
		require.NoError(t, api.uploadHeroBackgrounds(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestDeleteHeroBackground(t *testing.T) {
	api, e, db, workdir := testAdminAPI(t)

	c, rec := multipartRequest(t, e, http.MethodPost, "/admin/api/hero-backgrounds",
		nil, map[string][]string{"images": {"a.png"}})
	require.NoError(t, api.uploadHeroBackgrounds(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var row domain.HeroBackground
	require.NoError(t, db.First(&row).Error)
	abs := filepath.Join(workdir, "public", "storage", filepath.FromSlash(row.ImagePath))

	req := httptest.NewRequest(http.MethodDelete, "/admin/api/hero-backgrounds/1", nil)
	rec = httptest.NewRecorder()
	dc := e.NewContext(req, rec)
	dc.SetParamNames("id")
	dc.SetParamValues(strconv.FormatInt(row.ID, 10))
	require.NoError(t, api.deleteHeroBackground(dc))
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := os.Stat(abs)
	assert.True(t, os.IsNotExist(err))
	var n int64
	require.NoError(t, db.Model(&domain.HeroBackground{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	t.Run("UnknownIDIs404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/admin/api/hero-backgrounds/999", nil)
		rec := httptest.NewRecorder()
		dc := e.NewContext(req, rec)
		dc.SetParamNames("id")
		dc.SetParamValues("999")
		require.NoError(t, api.deleteHeroBackground(dc))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
