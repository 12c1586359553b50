package users

import "errors"

var (
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = errors.New("email already registered")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidEmail is returned when the email has no local part or domain.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrPasswordTooShort is returned when the password is shorter than MinPasswordLength.
	ErrPasswordTooShort = errors.New("password too short")

	// ErrInvalidName is returned when the name is empty or longer than MaxNameLength.
	ErrInvalidName = errors.New("invalid name")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("database error")
)

// IsValidationError reports whether err was caused by invalid input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrInvalidName)
}
