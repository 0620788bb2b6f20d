package webserver

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

const (
	SessionName    = "mhrhci_session"
	sessionUserKey = "user_id"
	ctxUserKey     = "current_user"
)

// UserLoader resolves a session user id to its record.
type UserLoader interface {
	LoadUser(id int64) (*domain.User, error)
}

// SignIn binds the user to the session cookie.
func SignIn(c echo.Context, user *domain.User) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Options.HttpOnly = true
	sess.Options.Path = "/"
	sess.Options.MaxAge = 86400 * 7
	sess.Values[sessionUserKey] = user.ID
	return sess.Save(c.Request(), c.Response())
}

// SignOut clears the session cookie.
func SignOut(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	delete(sess.Values, sessionUserKey)
	return sess.Save(c.Request(), c.Response())
}

// CurrentUser returns the authenticated user placed by LoadUser, or nil.
func CurrentUser(c echo.Context) *domain.User {
	if u, ok := c.Get(ctxUserKey).(*domain.User); ok {
		return u
	}
	return nil
}

// LoadUser resolves the session user on every request. Missing or stale
// sessions pass through unauthenticated; guards decide what that means.
func LoadUser(loader UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.Get(SessionName, c)
			if err != nil {
				return next(c)
			}
			id, ok := sess.Values[sessionUserKey].(int64)
			if !ok {
				return next(c)
			}
			user, err := loader.LoadUser(id)
			if err != nil || user == nil {
				return next(c)
			}
			c.Set(ctxUserKey, user)
			return next(c)
		}
	}
}

// RequireAuth rejects unauthenticated requests.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return Fail(c, http.StatusUnauthorized, "Authentication required")
		}
		return next(c)
	}
}

// RequireAdmin rejects users without admin privileges.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return Fail(c, http.StatusUnauthorized, "Authentication required")
		}
		if !user.Role.HasAdminPrivileges() {
			return Fail(c, http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}
