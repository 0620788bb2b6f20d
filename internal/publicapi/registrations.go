package publicapi

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

var (
	entryNumberPattern = regexp.MustCompile(`^[0-9]{1,10}$`)
	mobilePattern      = regexp.MustCompile(`^09[0-9]{9}$`)
	emailPattern       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type registrationForm struct {
	EntryNumber      string `json:"entry_number" form:"entry_number"`
	Name             string `json:"name" form:"name"`
	Hospital         string `json:"hospital" form:"hospital"`
	Address          string `json:"address" form:"address"`
	Position         string `json:"position" form:"position"`
	ContactNumber    string `json:"contact_number" form:"contact_number"`
	Email            string `json:"email" form:"email"`
	ProductsInterest string `json:"products_interest" form:"products_interest"`
}

func (f *registrationForm) validate() map[string][]string {
	errs := map[string][]string{}
	if !entryNumberPattern.MatchString(f.EntryNumber) {
		errs["entry_number"] = append(errs["entry_number"], "The entry_number field must be 1 to 10 digits")
	}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = append(errs["name"], "The name field is required")
	}
	if strings.TrimSpace(f.Hospital) == "" {
		errs["hospital"] = append(errs["hospital"], "The hospital field is required")
	}
	if !mobilePattern.MatchString(f.ContactNumber) {
		errs["contact_number"] = append(errs["contact_number"], "The contact_number field must be a valid mobile number starting with 09")
	}
	if !emailPattern.MatchString(f.Email) {
		errs["email"] = append(errs["email"], "The email field must be a valid email address")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (a *PublicAPI) listRegistrations(c echo.Context) error {
	items, err := a.registrations.List(c.Request().Context(), maxPerPage)
	if err != nil {
		return err
	}
	return webserver.OK(c, items)
}

func (a *PublicAPI) createRegistration(c echo.Context) error {
	form := new(registrationForm)
	if err := c.Bind(form); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Malformed request payload")
	}
	if errs := form.validate(); errs != nil {
		return webserver.FailValidation(c, errs)
	}
	reg := &domain.CustomerRegistration{
		ID:               common.UUIDint64(),
		EntryNumber:      form.EntryNumber,
		Name:             strings.TrimSpace(form.Name),
		Hospital:         strings.TrimSpace(form.Hospital),
		Address:          strings.TrimSpace(form.Address),
		Position:         strings.TrimSpace(form.Position),
		ContactNumber:    form.ContactNumber,
		Email:            common.NormalizeEmail(form.Email),
		ProductsInterest: strings.TrimSpace(form.ProductsInterest),
	}
	if err := a.registrations.Create(c.Request().Context(), reg); err != nil {
		return err
	}
	return webserver.Created(c, reg, "Registration submitted")
}

func (a *PublicAPI) showRegistration(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "Registration not found")
	}
	reg, err := a.registrations.GetByID(c.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Registration not found")
	}
	if err != nil {
		return err
	}
	return webserver.OK(c, reg)
}

func (a *PublicAPI) deleteRegistration(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "Registration not found")
	}
	if err := a.registrations.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return webserver.OKMessage(c, "Registration deleted")
}
