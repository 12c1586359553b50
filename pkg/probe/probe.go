package probe

import (
	"context"
	"strconv"

	"backendprobe/pkg/client"
	"backendprobe/pkg/log"
	"backendprobe/pkg/models"
)

const (
	connectedPrefix   = "Connected! Status: "
	connectionFailed  = "Connection failed"
	registeredPrefix  = "Registered successfully! Welcome "
	registerFailedFmt = "Registration failed (status: "
	errorPrefix       = "Error: "
)

// Backend is the subset of the backend client used by the flows.
type Backend interface {
	Health(ctx context.Context) (*models.HealthStatus, error)
	Register(ctx context.Context, input models.RegistrationInput) (*models.Registration, error)
}

// Probe turns backend round trips into connection states. Errors never
// escape; they are folded into the returned state.
type Probe struct {
	backend Backend
}

// New creates a Probe over backend.
func New(backend Backend) *Probe {
	return &Probe{backend: backend}
}

// CheckHealth issues one GET /health and reports the outcome.
func (p *Probe) CheckHealth(ctx context.Context) models.ConnectionState {
	health, err := p.backend.Health(ctx)
	if err != nil {
		kind := client.Kind(err)
		log.Debug().Err(err).Str("kind", string(kind)).Msg("Health check failed")

		if kind == models.KindHTTP {
			return models.ConnectionState{StatusMessage: connectionFailed, Kind: kind}
		}
		return errorState(err, kind)
	}

	return models.ConnectionState{
		IsConnected:   true,
		StatusMessage: connectedPrefix + health.StatusLabel(),
	}
}

// RegisterUser issues one POST /api/v1/auth/register and reports the outcome.
// Every failure clears the connected flag.
func (p *Probe) RegisterUser(ctx context.Context, input models.RegistrationInput) models.ConnectionState {
	registration, err := p.backend.Register(ctx, input)
	if err != nil {
		kind := client.Kind(err)
		log.Debug().Err(err).Str("kind", string(kind)).Str("email", input.Email).Msg("Registration failed")

		if code, ok := client.StatusCode(err); ok {
			return models.ConnectionState{
				StatusMessage: registerFailedFmt + strconv.Itoa(code) + ")",
				Kind:          kind,
			}
		}
		return errorState(err, kind)
	}

	return models.ConnectionState{
		IsConnected:   true,
		StatusMessage: registeredPrefix + registration.DisplayName(),
	}
}

func errorState(err error, kind models.ErrorKind) models.ConnectionState {
	return models.ConnectionState{
		StatusMessage: errorPrefix + err.Error(),
		Kind:          kind,
	}
}
