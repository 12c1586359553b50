package screen

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"backendprobe/pkg/log"
	"backendprobe/pkg/models"
	"backendprobe/pkg/state"
	"backendprobe/pkg/view"
)

// Flows are the two request flows a screen can trigger.
type Flows interface {
	CheckHealth(ctx context.Context) models.ConnectionState
	RegisterUser(ctx context.Context, input models.RegistrationInput) models.ConnectionState
}

// Screen is the backend test screen: a registration form plus two actions
// whose results are handed to the state owner.
type Screen struct {
	flows   Flows
	owner   *state.Owner
	mu      sync.Mutex
	form    models.RegistrationInput
	actions sync.WaitGroup
}

// New creates a screen. The owner's Run loop must already be running.
func New(flows Flows, owner *state.Owner, form models.RegistrationInput) *Screen {
	return &Screen{
		flows: flows,
		owner: owner,
		form:  form,
	}
}

// TestConnection starts one health check in the background.
func (s *Screen) TestConnection(ctx context.Context) {
	s.spawn(ctx, "test_connection", s.flows.CheckHealth)
}

// Register starts one registration with the current form values in the background.
func (s *Screen) Register(ctx context.Context) {
	input := s.Form()
	s.spawn(ctx, "register", func(ctx context.Context) models.ConnectionState {
		return s.flows.RegisterUser(ctx, input)
	})
}

// spawn runs action on its own goroutine and applies exactly one update.
// Presses are not coordinated; whichever finishes last wins.
func (s *Screen) spawn(ctx context.Context, name string, action func(context.Context) models.ConnectionState) {
	s.actions.Add(1)
	go func() {
		defer s.actions.Done()

		result := action(ctx)
		if err := s.owner.Apply(ctx, result); err != nil {
			log.Warn().Err(err).Str("action", name).Msg("Dropped state update")
			return
		}

		log.Debug().
			Str("action", name).
			Bool("connected", result.IsConnected).
			Str("kind", string(result.Kind)).
			Msg("Action finished")
	}()
}

// Wait blocks until every started action has applied its update.
func (s *Screen) Wait() {
	s.actions.Wait()
}

// Form returns the current registration form values.
func (s *Screen) Form() models.RegistrationInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetField updates one registration form field by name.
func (s *Screen) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.ToLower(field) {
	case "email":
		s.form.Email = value
	case "password":
		s.form.Password = value
	case "name":
		s.form.Name = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Model returns what the screen currently shows.
func (s *Screen) Model(ctx context.Context) (view.Model, error) {
	current, err := s.owner.Snapshot(ctx)
	if err != nil {
		return view.Model{}, err
	}
	return view.Model{State: current, Form: s.Form()}, nil
}
