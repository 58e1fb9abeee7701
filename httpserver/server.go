package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"moviecast/cast"
	"moviecast/errs"
	"moviecast/pkg/config"
	"moviecast/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// Requests per second per client, 0 disables rate limiting
	RateLimit int

	Logger *slog.Logger

	CastService cast.Service
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: cfg.Origins(),
		RateLimit:    cfg.RateLimit,
		Logger:       slog.Default(),
	}
	if cfg.Port != 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.httpErrorHandler
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")
	s.RegisterCastRoutes(api)
	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	if s.RateLimit > 0 {
		s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.RateLimit))))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// httpErrorHandler maps errors to responses. Client errors answer with
// {"message"}, server errors with {"error"}.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		s.respondError(c, he.Code, message, err)
		return
	}

	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		s.respondError(c, http.StatusBadRequest, errs.ErrorMessage(err), err)
	case errs.ENOTIMPLEMENTED:
		s.respondError(c, http.StatusNotImplemented, errs.ErrorMessage(err), err)
	default:
		s.respondError(c, http.StatusInternalServerError, internalMessage(err), err)
	}
}

func (s *Server) respondError(c echo.Context, status int, message string, cause error) {
	var werr error
	if status >= http.StatusInternalServerError {
		s.Logger.ErrorContext(c.Request().Context(), "request failed",
			"request_id", requestID(c),
			"path", c.Path(),
			"error", cause,
		)
		sentry.WithContext(c).Error(cause)
		werr = writeError(c, status, message)
	} else {
		werr = writeMessage(c, status, message)
	}
	if werr != nil {
		s.Logger.Error("cannot write error response", "error", werr)
	}
}

// internalMessage returns the text sent with a 500 response.
func internalMessage(err error) string {
	var appErr *errs.Error
	msg := err.Error()
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	if msg == "" {
		return defaultErrorMessage
	}
	return msg
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
