package client

import (
	"errors"
	"strconv"

	"backendprobe/pkg/models"
)

var (
	// ErrNotJSONObject is returned when a response body is valid JSON but not an object.
	ErrNotJSONObject = errors.New("response is not a JSON object")

	// ErrResponseTooLarge is returned when a response body exceeds the read limit.
	ErrResponseTooLarge = errors.New("response too large")

	// ErrInvalidBaseURL is returned by New when the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("base URL must start with http:// or https://")
)

// TransportError wraps a failure to complete the round trip: DNS, refused
// connections, timeouts, or a request that could not be encoded.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a response whose status code was not the expected one.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	msg := "unexpected status " + strconv.Itoa(e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ParseError reports a response body that is not the expected JSON shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid response body: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind classifies err into the error taxonomy rendered by the screen.
func Kind(err error) models.ErrorKind {
	var statusErr *StatusError
	var parseErr *ParseError

	switch {
	case err == nil:
		return models.KindNone
	case errors.As(err, &statusErr):
		return models.KindHTTP
	case errors.As(err, &parseErr):
		return models.KindParse
	default:
		return models.KindTransport
	}
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}
