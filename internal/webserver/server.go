// Package webserver hosts the echo HTTP server: middleware, validation,
// sessions, rate limits and the shared response envelope.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/edmarcres18/mhrhci-backend/config"
)

// PayloadValidator adapts go-playground validation to echo.
type PayloadValidator struct {
	validate *validator.Validate
}

func (v *PayloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// ValidationFields flattens validator errors into the field-keyed payload of
// the 422 envelope.
func ValidationFields(err error) map[string][]string {
	fields := map[string][]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			field := fe.Field()
			fields[field] = append(fields[field],
				fmt.Sprintf("The %s field failed %s validation", field, fe.Tag()))
		}
		return fields
	}
	fields["payload"] = []string{err.Error()}
	return fields
}

// WebServer wraps echo with the application middleware stack.
type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
}

// NewWebServer builds the server: recovery, request logging, cookie sessions
// and the payload validator.
func NewWebServer(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &PayloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.Secret))))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	e.HTTPErrorHandler = errorHandler(cfg.System.Debug)

	return &WebServer{cfg: cfg, root: e}
}

// Echo exposes the underlying router for route registration.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// Start serves until the listener fails or Shutdown is called.
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.L().Info("web server starting", zap.String("addr", addr))
	err := s.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// errorHandler converts any error escaping a handler into the envelope
// shape. Unexpected errors become a sanitized 500; detail is only surfaced
// when the debug flag is set.
func errorHandler(debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if he, ok := err.(*echo.HTTPError); ok {
			message := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				message = m
			}
			_ = Fail(c, he.Code, message)
			return
		}

		zap.L().Error("unhandled request error",
			zap.String("uri", c.Request().RequestURI), zap.Error(err))
		message := "An unexpected error occurred"
		if debug {
			message = err.Error()
		}
		_ = Fail(c, http.StatusInternalServerError, message)
	}
}

// PerMinute builds a fixed-window style rate limiter allowing n requests per
// minute per client IP. Exhausted quotas answer 429 in the envelope shape.
func PerMinute(n int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(float64(n) / 60.0),
			Burst: n,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return Fail(c, http.StatusForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return Fail(c, http.StatusTooManyRequests, "Too many requests")
		},
	})
}
