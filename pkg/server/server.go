package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backendprobe/pkg/log"
	"backendprobe/pkg/users"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	shutdownTimeout = 10 * time.Second
	// DefaultTokenTTL mirrors the backend's default access token lifetime.
	DefaultTokenTTL = 60 * time.Minute
	// Version is reported by the health endpoint.
	Version = "1.0.0"
)

// StubServer serves the health and auth endpoints the probe consumes.
type StubServer struct {
	echo     *echo.Echo
	users    *users.Store
	version  string
	tokenTTL time.Duration
}

// NewStubServer creates a stub backend over the given user store.
func NewStubServer(store *users.Store, version string, tokenTTL time.Duration) *StubServer {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	srv := &StubServer{
		echo:     echo.New(),
		users:    store,
		version:  version,
		tokenTTL: tokenTTL,
	}
	srv.setupRoutes()
	return srv
}

// Handler exposes the router, mainly for httptest.
func (srv *StubServer) Handler() http.Handler {
	return srv.echo
}

// Start serves on addr until SIGINT or SIGTERM, then shuts down gracefully.
func (srv *StubServer) Start(addr string) error {
	go func() {
		log.Info().
			Str("addr", addr).
			Str("version", srv.version).
			Msg("Starting stub backend")

		if err := srv.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return srv.Shutdown()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (srv *StubServer) Shutdown() error {
	log.Info().Msg("Shutting down stub backend...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Stub backend stopped")
	return nil
}

func (srv *StubServer) setupRoutes() {
	srv.echo.HideBanner = true
	srv.echo.HidePort = true

	srv.echo.Use(middleware.RequestID())
	srv.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("Request")
			return nil
		},
	}))
	srv.echo.Use(middleware.Recover())
	srv.echo.Use(middleware.CORS())

	srv.echo.GET("/", srv.root)
	srv.echo.GET("/health", srv.health)
	srv.echo.POST("/api/v1/auth/register", srv.register)
	srv.echo.POST("/api/v1/auth/login", srv.login)
}
