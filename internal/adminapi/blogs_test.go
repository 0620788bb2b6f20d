package adminapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

// multipartRequest builds a form request carrying the given fields plus one
// uploaded file per name in files.
func multipartRequest(t *testing.T, e *echo.Echo, method, target string, fields map[string]string, files map[string][]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, names := range files {
		for _, name := range names {
			fw, err := w.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = fw.Write([]byte("fake image bytes"))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seedStoredFile(t *testing.T, workdir, rel string) string {
	t.Helper()
	abs := filepath.Join(workdir, "public", "storage", filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte("stored"), 0o644))
	return abs
}

func TestUpdateBlogFailedUpdateKeepsOldImages(t *testing.T) {
	api, e, db, workdir := testAdminAPI(t)

	oldAbs := seedStoredFile(t, workdir, "blogs/old.png")
	require.NoError(t, db.Create(&domain.Blog{
		ID: 7, Title: "Sterile Gloves Guide", Content: "sizing and materials",
		Images: domain.StringList{"blogs/old.png"},
	}).Error)
	require.NoError(t, db.Exec(
		`CREATE TRIGGER block_blog_updates BEFORE UPDATE ON blogs
		 BEGIN SELECT RAISE(ABORT, 'update blocked'); END;`).Error)

	c, _ := multipartRequest(t, e, http.MethodPut, "/admin/api/blogs/7",
		map[string]string{"keep_existing_images": "false"},
		map[string][]string{"images": {"replacement.png"}})
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.Error(t, api.updateBlog(c))

	_, err := os.Stat(oldAbs)
	assert.NoError(t, err, "old image must survive a failed update")

	var blog domain.Blog
	require.NoError(t, db.First(&blog, 7).Error)
	assert.Equal(t, domain.StringList{"blogs/old.png"}, blog.Images)

	entries, err := os.ReadDir(filepath.Join(workdir, "public", "storage", "blogs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "the file written for the failed update must be removed")
}

func TestUpdateBlogReplacesImagesOnSuccess(t *testing.T) {
	api, e, db, workdir := testAdminAPI(t)

	oldAbs := seedStoredFile(t, workdir, "blogs/old.png")
	require.NoError(t, db.Create(&domain.Blog{
		ID: 8, Title: "Nebulizer Care", Content: "cleaning steps",
		Images: domain.StringList{"blogs/old.png"},
	}).Error)

	c, rec := multipartRequest(t, e, http.MethodPut, "/admin/api/blogs/8",
		map[string]string{"keep_existing_images": "false"},
		map[string][]string{"images": {"replacement.png"}})
	c.SetParamNames("id")
	c.SetParamValues("8")
	require.NoError(t, api.updateBlog(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := os.Stat(oldAbs)
	assert.True(t, os.IsNotExist(err), "replaced image must be removed after a successful update")

	var blog domain.Blog
	require.NoError(t, db.First(&blog, 8).Error)
	require.Len(t, blog.Images, 1)
	assert.NotEqual(t, "blogs/old.png", blog.Images[0])
}

func TestParseAdminListPageSizeAllowList(t *testing.T) {
	e := echo.New()
	sortable := map[string]bool{"created_at": true}

	for query, want := range map[string]int{
		"perPage=10":  10,
		"perPage=25":  25,
		"perPage=50":  50,
		"perPage=100": 100,
		"perPage=33":  10,
		"perPage=0":   10,
		"":            10,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin/api/blogs?"+query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		q := parseAdminList(c, sortable)
		assert.Equal(t, want, q.PerPage, "query %q", query)
	}
}
