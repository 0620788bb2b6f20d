package publicapi

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

// disposableDomainPattern rejects throwaway mailbox providers at subscribe
// time.
var disposableDomainPattern = regexp.MustCompile(`(?i)@(mailinator\.com|guerrillamail\.com|10minutemail\.com|tempmail\.com|temp-mail\.org|throwawaymail\.com|yopmail\.com|fakeinbox\.com|sharklasers\.com|getairmail\.com|dispostable\.com|maildrop\.cc|trashmail\.com|getnada\.com|mintemail\.com)$`)

type subscribeForm struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
}

func (f *subscribeForm) validate() map[string][]string {
	errs := map[string][]string{}
	if strings.TrimSpace(f.FirstName) == "" {
		errs["first_name"] = append(errs["first_name"], "The first_name field is required")
	}
	if !emailPattern.MatchString(f.Email) {
		errs["email"] = append(errs["email"], "The email field must be a valid email address")
	} else if disposableDomainPattern.MatchString(f.Email) {
		errs["email"] = append(errs["email"], "Disposable email addresses are not accepted")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (a *PublicAPI) subscribe(c echo.Context) error {
	form := new(subscribeForm)
	if err := c.Bind(form); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Malformed request payload")
	}
	if errs := form.validate(); errs != nil {
		return webserver.FailValidation(c, errs)
	}

	ctx := c.Request().Context()
	email := common.NormalizeEmail(form.Email)

	existing, err := a.newsletter.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return webserver.FailValidation(c, webserver.FieldError("email",
			"This email address is already subscribed"))
	}

	sub := &domain.NewsletterSubscription{
		ID:               common.UUIDint64(),
		FirstName:        strings.TrimSpace(form.FirstName),
		LastName:         strings.TrimSpace(form.LastName),
		Email:            email,
		UnsubscribeToken: common.UUID(),
	}
	if err := a.newsletter.Create(ctx, sub); err != nil {
		return err
	}

	a.mail.SendSubscribed(sub)
	return webserver.Created(c, sub, "Subscribed to the newsletter")
}

// unsubscribe is an idempotent capability transition: a valid token always
// ends in the unsubscribed state, already-unsubscribed included.
func (a *PublicAPI) unsubscribe(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return webserver.FailValidation(c, webserver.FieldError("token", "The token field is required"))
	}

	ctx := c.Request().Context()
	sub, err := a.newsletter.GetByToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Invalid unsubscribe token")
	}
	if err != nil {
		return err
	}
	if sub.Unsubscribed() {
		return webserver.OKMessage(c, "You are already unsubscribed")
	}
	if err := a.newsletter.MarkUnsubscribed(ctx, sub, time.Now()); err != nil {
		return err
	}
	return webserver.OKMessage(c, "You have been unsubscribed")
}
