package screen

import "errors"

var (
	// ErrUnknownField is returned when setting a form field that does not exist.
	ErrUnknownField = errors.New("unknown form field")

	// ErrUnknownCommand is returned for an unrecognised interactive command.
	ErrUnknownCommand = errors.New("unknown command")
)
