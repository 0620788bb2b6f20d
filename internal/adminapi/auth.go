package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

const invitationLifetime = 72 * time.Hour

type loginPayload struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (a *AdminAPI) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Malformed request payload")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.FailValidation(c, webserver.ValidationFields(err))
	}

	ctx := c.Request().Context()
	user, err := a.users.GetByEmail(ctx, common.NormalizeEmail(payload.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return webserver.Fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	user.LastLogin = time.Now()
	if err := a.users.Update(ctx, user); err != nil {
		zap.L().Warn("last login update failed", zap.Int64("user", user.ID), zap.Error(err))
	}
	if err := webserver.SignIn(c, user); err != nil {
		return err
	}
	return webserver.OK(c, user)
}

func (a *AdminAPI) logout(c echo.Context) error {
	if err := webserver.SignOut(c); err != nil {
		return err
	}
	return webserver.OKMessage(c, "Signed out")
}

type invitationPayload struct {
	Email string `json:"email" form:"email" validate:"required,email"`
	Role  string `json:"role" form:"role" validate:"required"`
}

func (a *AdminAPI) issueInvitation(c echo.Context) error {
	var payload invitationPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Malformed request payload")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.FailValidation(c, webserver.ValidationFields(err))
	}

	role := domain.UserRole(payload.Role)
	if !role.Valid() {
		return webserver.FailValidation(c, webserver.FieldError("role", "The role field must be a valid role"))
	}
	actor := webserver.CurrentUser(c)
	if role == domain.RoleSystemAdmin && !actor.IsSystemAdmin() {
		return webserver.Fail(c, http.StatusForbidden, "Only a system admin may invite a system admin")
	}

	inv := &domain.Invitation{
		ID:        common.UUIDint64(),
		Email:     common.NormalizeEmail(payload.Email),
		Token:     common.UUID(),
		Role:      role,
		InviterID: actor.ID,
		ExpiresAt: time.Now().Add(invitationLifetime),
	}
	if err := a.invitations.Create(c.Request().Context(), inv); err != nil {
		return err
	}

	a.mail.SendInvitation(inv)
	a.oprLog(c, "invitation.create", "invited "+inv.Email+" as "+string(inv.Role))
	return webserver.Created(c, inv, "Invitation sent")
}

type acceptInvitationPayload struct {
	Token    string `json:"token" form:"token" validate:"required"`
	Name     string `json:"name" form:"name" validate:"required,min=1,max=200"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

func (a *AdminAPI) acceptInvitation(c echo.Context) error {
	var payload acceptInvitationPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Malformed request payload")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.FailValidation(c, webserver.ValidationFields(err))
	}

	ctx := c.Request().Context()
	inv, err := a.invitations.GetByToken(ctx, payload.Token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "Invalid invitation token")
	}
	if err != nil {
		return err
	}
	if !inv.Usable(time.Now()) {
		return webserver.Fail(c, http.StatusGone, "This invitation has expired or was already used")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &domain.User{
		ID:       common.UUIDint64(),
		Name:     strings.TrimSpace(payload.Name),
		Email:    inv.Email,
		Password: string(hash),
		Role:     inv.Role,
	}
	if err := a.users.Create(ctx, user); err != nil {
		return err
	}
	if err := a.invitations.MarkUsed(ctx, inv); err != nil {
		return err
	}
	return webserver.Created(c, user, "Account created")
}
