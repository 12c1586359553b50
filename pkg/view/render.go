package view

import (
	"fmt"
	"io"
	"os"
	"strings"

	"backendprobe/pkg/models"

	"github.com/mattn/go-isatty"
)

const (
	indicator  = "●"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiReset  = "\033[0m"
	maskedChar = "•"
)

// Options controls how states are drawn.
type Options struct {
	Color    bool
	ShowKind bool
}

// OptionsFor enables colour when w is an interactive terminal.
func OptionsFor(w io.Writer) Options {
	file, ok := w.(*os.File)
	if !ok {
		return Options{}
	}
	fd := file.Fd()
	return Options{Color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

// Model is everything the backend test screen shows.
type Model struct {
	State models.ConnectionState
	Form  models.RegistrationInput
}

// Indicator returns the connection dot, coloured green or red when enabled.
func Indicator(connected bool, opts Options) string {
	if !opts.Color {
		return indicator
	}
	if connected {
		return ansiGreen + indicator + ansiReset
	}
	return ansiRed + indicator + ansiReset
}

// StatusLine formats the indicator followed by the status message.
func StatusLine(state models.ConnectionState, opts Options) string {
	line := Indicator(state.IsConnected, opts) + " " + state.StatusMessage
	if opts.ShowKind && state.Kind != models.KindNone {
		line += " [" + string(state.Kind) + "]"
	}
	return line
}

// Render writes the status line.
func Render(w io.Writer, state models.ConnectionState, opts Options) error {
	_, err := fmt.Fprintln(w, StatusLine(state, opts))
	return err
}

// RenderScreen writes the whole backend test screen: the indicator, the
// registration form with the password masked, and the status line.
func RenderScreen(w io.Writer, model Model, opts Options) error {
	var b strings.Builder

	connection := "Disconnected"
	if model.State.IsConnected {
		connection = "Connected"
	}

	fmt.Fprintf(&b, "Backend Test  %s %s\n", Indicator(model.State.IsConnected, opts), connection)
	fmt.Fprintf(&b, "  email:    %s\n", model.Form.Email)
	fmt.Fprintf(&b, "  password: %s\n", strings.Repeat(maskedChar, len([]rune(model.Form.Password))))
	fmt.Fprintf(&b, "  name:     %s\n", model.Form.Name)
	fmt.Fprintf(&b, "%s\n", StatusLine(model.State, opts))

	_, err := io.WriteString(w, b.String())
	return err
}
