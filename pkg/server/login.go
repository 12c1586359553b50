package server

import (
	"errors"
	"net/http"

	"backendprobe/pkg/log"
	"backendprobe/pkg/models"
	"backendprobe/pkg/users"

	"github.com/labstack/echo/v4"
)

// login handles POST /api/v1/auth/login.
// Unknown emails and wrong passwords get the same 401.
func (srv *StubServer) login(ctx echo.Context) error {
	var input models.LoginInput
	if err := ctx.Bind(&input); err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, models.APIError{Detail: "Invalid request body"})
	}

	user, err := srv.users.GetByEmail(ctx.Request().Context(), input.Email)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		return ctx.JSON(http.StatusUnauthorized, models.APIError{Detail: "Invalid credentials"})
	case err != nil:
		log.Error().Err(err).Str("email", input.Email).Msg("Failed to look up user")
		return ctx.JSON(http.StatusInternalServerError, models.APIError{Detail: "Internal server error"})
	}

	if !user.CheckPassword(input.Password) {
		return ctx.JSON(http.StatusUnauthorized, models.APIError{Detail: "Invalid credentials"})
	}
	if !user.IsActive {
		return ctx.JSON(http.StatusForbidden, models.APIError{Detail: "User account is inactive"})
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Msg("User logged in")

	return srv.authResponse(ctx, http.StatusOK, user)
}
