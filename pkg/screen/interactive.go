package screen

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"backendprobe/pkg/log"
	"backendprobe/pkg/models"
	"backendprobe/pkg/state"
	"backendprobe/pkg/view"
)

const helpText = `commands:
  test                                   check backend health
  register [email] [password] [name...]  register a user (defaults to form values)
  set <email|password|name> <value>      edit a form field
  show                                   draw the whole screen
  wait                                   wait for in-flight requests
  help                                   show this help
  quit                                   exit
`

// lockedWriter serializes writes from the prompt loop and the renderer.
type lockedWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

// Interact reads commands from in, one per line, until quit or EOF. Every
// state change is drawn to out as it arrives. In-flight actions are awaited
// before returning.
func (s *Screen) Interact(ctx context.Context, in io.Reader, out io.Writer, opts view.Options) error {
	writer := &lockedWriter{out: out}

	updates, err := s.owner.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.owner.Unsubscribe(context.WithoutCancel(ctx), updates); err != nil && !errors.Is(err, state.ErrStopped) {
			log.Warn().Err(err).Msg("Failed to unsubscribe from state updates")
		}
	}()

	renderCtx, stopRender := context.WithCancel(ctx)
	defer stopRender()
	renderDone := make(chan struct{})
	go func() {
		defer close(renderDone)
		renderUpdates(renderCtx, updates, writer, opts)
	}()

	loopErr := s.readCommands(ctx, in, writer, opts)

	s.Wait()
	// The snapshot round-trips through the owner, so every applied update
	// has reached the subscription before rendering stops.
	if _, err := s.owner.Snapshot(ctx); err != nil && loopErr == nil {
		loopErr = err
	}
	stopRender()
	<-renderDone

	return loopErr
}

func renderUpdates(ctx context.Context, updates <-chan models.ConnectionState, out io.Writer, opts view.Options) {
	draw := func(current models.ConnectionState) {
		if err := view.Render(out, current, opts); err != nil {
			log.Warn().Err(err).Msg("Failed to render state")
		}
	}

	for {
		select {
		case current, ok := <-updates:
			if !ok {
				return
			}
			draw(current)
		case <-ctx.Done():
			select {
			case current, ok := <-updates:
				if ok {
					draw(current)
				}
			default:
			}
			return
		}
	}
}

func (s *Screen) readCommands(ctx context.Context, in io.Reader, out io.Writer, opts view.Options) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		quit, err := s.execute(ctx, scanner.Text(), out, opts)
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// execute runs one command line and reports whether the loop should end.
func (s *Screen) execute(ctx context.Context, line string, out io.Writer, opts view.Options) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "test":
		s.TestConnection(ctx)
	case "register":
		if err := s.applyRegisterArgs(fields[1:]); err != nil {
			return false, err
		}
		s.Register(ctx)
	case "set":
		if len(fields) < 3 {
			return false, fmt.Errorf("usage: set <email|password|name> <value>")
		}
		return false, s.SetField(fields[1], strings.Join(fields[2:], " "))
	case "show":
		model, err := s.Model(ctx)
		if err != nil {
			return false, err
		}
		return false, view.RenderScreen(out, model, opts)
	case "wait":
		s.Wait()
	case "help", "?":
		_, err := io.WriteString(out, helpText)
		return false, err
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	return false, nil
}

func (s *Screen) applyRegisterArgs(args []string) error {
	names := []string{"email", "password"}
	for i, arg := range args {
		if i >= len(names) {
			return s.SetField("name", strings.Join(args[i:], " "))
		}
		if err := s.SetField(names[i], arg); err != nil {
			return err
		}
	}
	return nil
}
