package adminapi

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/repository"
	"github.com/edmarcres18/mhrhci-backend/internal/storage"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

// formImages collects uploaded image file headers from a multipart request,
// enforcing the per-entity cap.
func formImages(c echo.Context, field string) ([]*multipart.FileHeader, map[string][]string) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 {
		files = form.File[field+"[]"]
	}
	if len(files) > storage.MaxImages {
		return nil, webserver.FieldError(field,
			fmt.Sprintf("A maximum of %d images is allowed", storage.MaxImages))
	}
	return files, nil
}

// formValues returns repeated form values under name or name[].
func formValues(c echo.Context, name string) []string {
	values, _ := c.FormParams()
	if vs := values[name]; len(vs) > 0 {
		return vs
	}
	return values[name+"[]"]
}

// adminPageSizes is the page-size allow-list of the admin listing UI.
var adminPageSizes = map[int]bool{10: true, 25: true, 50: true, 100: true}

func parseAdminList(c echo.Context, sortable map[string]bool) repository.ListQuery {
	q := repository.ListQuery{
		Search:    strings.TrimSpace(c.QueryParam("search")),
		Page:      1,
		PerPage:   10,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		q.Page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && adminPageSizes[n] {
		q.PerPage = n
	}
	if s := c.QueryParam("sortBy"); sortable[s] {
		q.SortBy = s
	}
	if o := c.QueryParam("sortOrder"); o == "asc" || o == "desc" {
		q.SortOrder = o
	}
	return q
}

func (a *AdminAPI) listProducts(c echo.Context) error {
	q := parseAdminList(c, map[string]bool{"created_at": true, "updated_at": true, "name": true})
	if t := c.QueryParam("product_type"); t != "" && domain.ProductType(t).Valid() {
		q.ProductType = t
	}
	products, total, err := a.products.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	meta := webserver.NewPageMeta(q.Page, q.PerPage, len(products), total)
	return c.JSON(http.StatusOK, webserver.Response{Success: true, Data: products, Meta: meta})
}

func (a *AdminAPI) getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Product not found")
	}
	product, err := a.products.GetByID(c.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	return webserver.OK(c, product)
}

func (a *AdminAPI) createProduct(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	productType := domain.ProductType(c.FormValue("product_type"))

	errs := map[string][]string{}
	if name == "" {
		errs["name"] = append(errs["name"], "The name field is required")
	}
	if !productType.Valid() {
		errs["product_type"] = append(errs["product_type"], "The product_type field must be medical_supplies or medical_equipment")
	}
	files, ferrs := formImages(c, "images")
	for k, v := range ferrs {
		errs[k] = append(errs[k], v...)
	}
	if len(errs) > 0 {
		return webserver.FailValidation(c, errs)
	}

	images, err := a.disk.SaveAll("products", files)
	if err != nil {
		return err
	}

	var principalID *int64
	if raw := c.FormValue("principal_id"); raw != "" {
		pid, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			principalID = &pid
		}
	}
	product := &domain.Product{
		ID:          common.UUIDint64(),
		Name:        name,
		ProductType: productType,
		Description: c.FormValue("description"),
		Images:      images,
		Features:    formValues(c, "features"),
		IsFeatured:  c.FormValue("is_featured") == "true" || c.FormValue("is_featured") == "1",
		PrincipalID: principalID,
	}
	if err := a.products.Create(c.Request().Context(), product); err != nil {
		a.disk.RemoveAll(images)
		return err
	}

	a.notifyNewContent("New product: "+product.Name, product.Description)
	a.oprLog(c, "product.create", "created product "+product.Name)
	return webserver.Created(c, product, "Product created")
}

func (a *AdminAPI) updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Product not found")
	}
	ctx := c.Request().Context()
	product, err := a.products.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(c.FormValue("name")); name != "" {
		product.Name = name
	}
	if raw := c.FormValue("product_type"); raw != "" {
		t := domain.ProductType(raw)
		if !t.Valid() {
			return webserver.FailValidation(c, webserver.FieldError("product_type",
				"The product_type field must be medical_supplies or medical_equipment"))
		}
		product.ProductType = t
	}
	if values, _ := c.FormParams(); values.Has("description") {
		product.Description = c.FormValue("description")
	}
	if raw := c.FormValue("is_featured"); raw != "" {
		product.IsFeatured = raw == "true" || raw == "1"
	}
	if raw := c.FormValue("principal_id"); raw != "" {
		if raw == "0" {
			product.PrincipalID = nil
		} else if pid, err := strconv.ParseInt(raw, 10, 64); err == nil {
			product.PrincipalID = &pid
		}
	}
	if features := formValues(c, "features"); features != nil {
		product.Features = features
	}

	keep := c.FormValue("keep_existing_images") != "false"
	files, ferrs := formImages(c, "images")
	if ferrs != nil {
		return webserver.FailValidation(c, ferrs)
	}
	if keep && len(product.Images)+len(files) > storage.MaxImages {
		return webserver.FailValidation(c, webserver.FieldError("images",
			fmt.Sprintf("A maximum of %d images is allowed", storage.MaxImages)))
	}

	added, err := a.disk.SaveAll("products", files)
	if err != nil {
		return err
	}
	var replaced domain.StringList
	if keep {
		product.Images = append(product.Images, added...)
	} else if len(files) > 0 {
		replaced = product.Images
		product.Images = added
	}

	if err := a.products.Update(ctx, product); err != nil {
		a.disk.RemoveAll(added)
		return err
	}
	a.disk.RemoveAll(replaced)
	a.oprLog(c, "product.update", "updated product "+product.Name)
	return webserver.OK(c, product)
}

func (a *AdminAPI) deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "Product not found")
	}
	ctx := c.Request().Context()
	product, err := a.products.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	if err := a.products.Delete(ctx, id); err != nil {
		return err
	}
	a.disk.RemoveAll(product.Images)
	a.oprLog(c, "product.delete", "deleted product "+product.Name)
	return webserver.OKMessage(c, "Product deleted")
}

// notifyNewContent announces new public content to active newsletter
// subscribers, best effort.
func (a *AdminAPI) notifyNewContent(subject, body string) {
	subs, err := a.newsletter.Active(context.Background())
	if err != nil {
		zap.L().Warn("subscriber lookup failed", zap.Error(err))
		return
	}
	a.mail.NotifySubscribers(subs, subject, body)
}
