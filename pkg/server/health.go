package server

import (
	"net/http"

	"backendprobe/pkg/log"
	"backendprobe/pkg/models"

	"github.com/labstack/echo/v4"
)

const healthyStatus = "healthy"

// health handles GET /health.
func (srv *StubServer) health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, models.HealthResponse{
		Status:  healthyStatus,
		Version: srv.version,
	})
}

// root handles GET /. The user count is -1 when the store cannot be read.
func (srv *StubServer) root(ctx echo.Context) error {
	count, err := srv.users.Count(ctx.Request().Context())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count users")
		count = -1
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"message": "Backend probe stub API",
		"version": srv.version,
		"users":   count,
	})
}
