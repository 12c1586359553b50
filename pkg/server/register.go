package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"backendprobe/pkg/log"
	"backendprobe/pkg/models"
	"backendprobe/pkg/users"

	"github.com/labstack/echo/v4"
)

const (
	tokenBytes = 32
	tokenType  = "bearer"
	// Naive UTC timestamp, as the backend serializes created_at.
	createdAtLayout = "2006-01-02T15:04:05.000000"
)

// register handles POST /api/v1/auth/register.
func (srv *StubServer) register(ctx echo.Context) error {
	var input models.RegistrationInput
	if err := ctx.Bind(&input); err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, models.APIError{Detail: "Invalid request body"})
	}

	user, err := srv.users.Create(ctx.Request().Context(), input.Email, input.Password, input.Name)
	switch {
	case errors.Is(err, users.ErrUserExists):
		return ctx.JSON(http.StatusConflict, models.APIError{Detail: "Email already registered"})
	case users.IsValidationError(err):
		return ctx.JSON(http.StatusUnprocessableEntity, models.APIError{Detail: err.Error()})
	case err != nil:
		log.Error().Err(err).Str("email", input.Email).Msg("Failed to create user")
		return ctx.JSON(http.StatusInternalServerError, models.APIError{Detail: "Internal server error"})
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Msg("User registered")

	return srv.authResponse(ctx, http.StatusCreated, user)
}

// authResponse issues a token for user and writes the shared register/login body.
func (srv *StubServer) authResponse(ctx echo.Context, status int, user *users.User) error {
	token, err := newAccessToken()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate access token")
		return ctx.JSON(http.StatusInternalServerError, models.APIError{Detail: "Internal server error"})
	}

	return ctx.JSON(status, models.AuthResponse{
		Success: true,
		Data: &models.AuthData{
			User: &models.User{
				ID:        user.ID,
				Email:     user.Email,
				Name:      user.Name,
				IsActive:  user.IsActive,
				CreatedAt: user.CreatedAt.UTC().Format(createdAtLayout),
			},
			AccessToken: token,
			TokenType:   tokenType,
			ExpiresIn:   int(srv.tokenTTL.Seconds()),
		},
	})
}

// newAccessToken returns an opaque bearer token. Tokens are never checked.
func newAccessToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
