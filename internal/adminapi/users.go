package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/repository"
	"github.com/edmarcres18/mhrhci-backend/internal/webserver"
	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

type userPayload struct {
	Name     string `json:"name" form:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	Role     string `json:"role" form:"role" validate:"required"`
}

type userUpdatePayload struct {
	Name     *string `json:"name" form:"name" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email"`
	Password *string `json:"password" form:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" form:"role"`
}

// canTouch applies the role visibility rule: plain admins never act on
// system_admin accounts.
func canTouch(actor, target *domain.User) bool {
	return actor.IsSystemAdmin() || !target.IsSystemAdmin()
}

func (a *AdminAPI) listUsers(c echo.Context) error {
	actor := webserver.CurrentUser(c)
	q := repository.UserQuery{
		Search:  strings.TrimSpace(c.QueryParam("search")),
		Page:    1,
		PerPage: 20,
	}
	if !actor.IsSystemAdmin() {
		q.ExcludeRole = domain.RoleSystemAdmin
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		q.Page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && n > 0 && n <= 100 {
		q.PerPage = n
	}
	users, total, err := a.users.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	meta := webserver.NewPageMeta(q.Page, q.PerPage, len(users), total)
	return c.JSON(http.StatusOK, webserver.Response{Success: true, Data: users, Meta: meta})
}

func (a *AdminAPI) getUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "User not found")
	}
	user, err := a.users.GetByID(c.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	if !canTouch(webserver.CurrentUser(c), user) {
		return webserver.Fail(c, http.StatusForbidden, "You may not view this account")
	}
	return webserver.OK(c, user)
}

func (a *AdminAPI) createUser(c echo.Context) error {
	var payload userPayload
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
		return webserver.Fail(c, http.StatusForbidden, "Only a system admin may create a system admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &domain.User{
		ID:       common.UUIDint64(),
		Name:     strings.TrimSpace(payload.Name),
		Email:    common.NormalizeEmail(payload.Email),
		Password: string(hash),
		Role:     role,
	}
	if err := a.users.Create(c.Request().Context(), user); err != nil {
		return err
	}
	a.oprLog(c, "user.create", "created user "+user.Email)
	return webserver.Created(c, user, "User created")
}

func (a *AdminAPI) updateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "User not found")
	}
	ctx := c.Request().Context()
	user, err := a.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	actor := webserver.CurrentUser(c)
	if !canTouch(actor, user) {
		return webserver.Fail(c, http.StatusForbidden, "You may not modify this account")
	}

	var payload userUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "Malformed request payload")
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.FailValidation(c, webserver.ValidationFields(err))
	}

	if payload.Role != nil {
		role := domain.UserRole(*payload.Role)
		if !role.Valid() {
			return webserver.FailValidation(c, webserver.FieldError("role", "The role field must be a valid role"))
		}
		if role == domain.RoleSystemAdmin && !actor.IsSystemAdmin() {
			return webserver.Fail(c, http.StatusForbidden, "Only a system admin may grant the system admin role")
		}
		user.Role = role
	}
	if payload.Name != nil {
		user.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		user.Email = common.NormalizeEmail(*payload.Email)
	}
	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
	}

	if err := a.users.Update(ctx, user); err != nil {
		return err
	}
	a.oprLog(c, "user.update", "updated user "+user.Email)
	return webserver.OK(c, user)
}

func (a *AdminAPI) deleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "User not found")
	}
	actor := webserver.CurrentUser(c)
	if actor.ID == id {
		return webserver.FailValidation(c, webserver.FieldError("id", "You cannot delete your own account"))
	}

	ctx := c.Request().Context()
	user, err := a.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return webserver.Fail(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	if !canTouch(actor, user) {
		return webserver.Fail(c, http.StatusForbidden, "You may not delete this account")
	}
	if user.IsAdmin() && !actor.IsSystemAdmin() {
		return webserver.Fail(c, http.StatusForbidden, "Only a system admin may delete an admin account")
	}

	if err := a.users.Delete(ctx, id); err != nil {
		return err
	}
	a.oprLog(c, "user.delete", "deleted user "+user.Email)
	return webserver.OKMessage(c, "User deleted")
}

func (a *AdminAPI) listSubscriptions(c echo.Context) error {
	subs, err := a.newsletter.List(c.Request().Context(), 1000)
	if err != nil {
		return err
	}
	return webserver.OK(c, subs)
}
