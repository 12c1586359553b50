package models

import "github.com/google/uuid"

// Default form values of the registration screen.
const (
	DefaultEmail    = "test@example.com"
	DefaultPassword = "password123"
	DefaultName     = "Test User"

	// FallbackUserName is used when a successful registration omits the user name.
	FallbackUserName = "User"
)

// RegistrationInput is the body of POST /api/v1/auth/register.
type RegistrationInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// DefaultRegistrationInput returns the prefilled registration form.
func DefaultRegistrationInput() RegistrationInput {
	return RegistrationInput{
		Email:    DefaultEmail,
		Password: DefaultPassword,
		Name:     DefaultName,
	}
}

// User is the user representation served by the auth endpoints.
// CreatedAt carries no zone offset.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
}

// AuthData is the payload under "data" of a successful register or login.
type AuthData struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// AuthResponse is the body served by a successful register or login.
type AuthResponse struct {
	Success bool      `json:"success"`
	Data    *AuthData `json:"data"`
}

// LoginInput is the body of POST /api/v1/auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the part of a successful registration body the client
// reads. Keys other than data.user.name are ignored whatever their type.
type Registration struct {
	Data *RegisteredData `json:"data"`
}

type RegisteredData struct {
	User *RegisteredUser `json:"user"`
}

type RegisteredUser struct {
	Name *string `json:"name"`
}

// DisplayName returns data.user.name or FallbackUserName when absent.
func (r *Registration) DisplayName() string {
	if r == nil || r.Data == nil || r.Data.User == nil || r.Data.User.Name == nil {
		return FallbackUserName
	}
	return *r.Data.User.Name
}

// APIError is the error body returned by the backend on 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}
