package state

import (
	"context"
	"errors"

	"backendprobe/pkg/log"
	"backendprobe/pkg/models"
)

// ErrStopped is returned once the owner's Run loop has exited.
var ErrStopped = errors.New("state owner stopped")

type command func(*owned)

type owned struct {
	current     models.ConnectionState
	updates     uint64
	subscribers []chan models.ConnectionState
}

// Owner is the single writer of the screen's ConnectionState. Concurrent
// actions hand their results to it; it applies them one at a time in arrival
// order, so the last update to arrive wins.
type Owner struct {
	commands chan command
	done     chan struct{}
}

// New creates an Owner holding the default state. Run must be started before
// any other method is used.
func New() *Owner {
	return &Owner{
		commands: make(chan command),
		done:     make(chan struct{}),
	}
}

// Run serializes all reads and writes until ctx is done.
func (o *Owner) Run(ctx context.Context) {
	state := &owned{current: models.DefaultConnectionState()}
	defer func() {
		for _, sub := range state.subscribers {
			close(sub)
		}
		close(o.done)
		log.Debug().Uint64("updates", state.updates).Msg("State owner stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-o.commands:
			cmd(state)
		}
	}
}

// Done is closed when Run has exited.
func (o *Owner) Done() <-chan struct{} {
	return o.done
}

// Apply replaces the current state and notifies subscribers.
func (o *Owner) Apply(ctx context.Context, next models.ConnectionState) error {
	return o.do(ctx, func(s *owned) {
		s.set(next)
	})
}

// Reset restores the default state, as when the screen is created.
func (o *Owner) Reset(ctx context.Context) error {
	return o.Apply(ctx, models.DefaultConnectionState())
}

// Snapshot returns the current state.
func (o *Owner) Snapshot(ctx context.Context) (models.ConnectionState, error) {
	reply := make(chan models.ConnectionState, 1)
	if err := o.do(ctx, func(s *owned) {
		reply <- s.current
	}); err != nil {
		return models.ConnectionState{}, err
	}

	select {
	case current := <-reply:
		return current, nil
	case <-ctx.Done():
		return models.ConnectionState{}, ctx.Err()
	}
}

// Subscribe returns a channel that receives the current state followed by
// every later update. Slow readers only see the latest value. The channel is
// closed when Run exits.
func (o *Owner) Subscribe(ctx context.Context) (<-chan models.ConnectionState, error) {
	sub := make(chan models.ConnectionState, 1)
	if err := o.do(ctx, func(s *owned) {
		s.subscribers = append(s.subscribers, sub)
		sub <- s.current
	}); err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe stops updates to a channel returned by Subscribe and closes it.
// Unknown channels are ignored.
func (o *Owner) Unsubscribe(ctx context.Context, updates <-chan models.ConnectionState) error {
	return o.do(ctx, func(s *owned) {
		for i, sub := range s.subscribers {
			if sub == updates {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				close(sub)
				return
			}
		}
	})
}

func (o *Owner) do(ctx context.Context, cmd command) error {
	select {
	case o.commands <- cmd:
		return nil
	case <-o.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *owned) set(next models.ConnectionState) {
	s.current = next
	s.updates++

	for _, sub := range s.subscribers {
		// The owner is the only sender, so after draining there is room.
		select {
		case sub <- next:
		default:
			select {
			case <-sub:
			default:
			}
			sub <- next
		}
	}
}
