package models

// ErrorKind classifies why a request flow failed.
type ErrorKind string

const (
	// KindNone marks a successful round trip.
	KindNone ErrorKind = ""
	// KindTransport covers network, DNS, timeout and request-encoding failures.
	KindTransport ErrorKind = "transport"
	// KindHTTP covers responses with an unexpected status code.
	KindHTTP ErrorKind = "http"
	// KindParse covers bodies that are not the expected JSON shape.
	KindParse ErrorKind = "parse"
)

// DefaultStatusMessage is shown before any request has completed.
const DefaultStatusMessage = "Not tested"

// ConnectionState is the connected flag and status message rendered by the screen.
type ConnectionState struct {
	IsConnected   bool      `json:"is_connected"`
	StatusMessage string    `json:"status_message"`
	Kind          ErrorKind `json:"kind,omitempty"`
}

// DefaultConnectionState returns the state of a freshly created screen.
func DefaultConnectionState() ConnectionState {
	return ConnectionState{StatusMessage: DefaultStatusMessage}
}

// Failed reports whether the state was produced by a failed request.
func (s ConnectionState) Failed() bool {
	return s.Kind != KindNone
}
