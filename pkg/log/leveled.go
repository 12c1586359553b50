package log

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Leveled adapts the package logger to the key/value leveled logging
// interface used by HTTP client libraries such as go-retryablehttp.
type Leveled struct {
	component string
}

// NewLeveled returns a Leveled logger tagging each event with component.
func NewLeveled(component string) *Leveled {
	return &Leveled{component: component}
}

func (l *Leveled) Error(msg string, keysAndValues ...interface{}) {
	l.emit(Logger.Error(), msg, keysAndValues)
}

func (l *Leveled) Warn(msg string, keysAndValues ...interface{}) {
	l.emit(Logger.Warn(), msg, keysAndValues)
}

func (l *Leveled) Info(msg string, keysAndValues ...interface{}) {
	l.emit(Logger.Info(), msg, keysAndValues)
}

// Debug events are the bulk of retryablehttp output ("performing request").
func (l *Leveled) Debug(msg string, keysAndValues ...interface{}) {
	l.emit(Logger.Debug(), msg, keysAndValues)
}

func (l *Leveled) emit(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	if event == nil {
		return
	}

	if l.component != "" {
		event = event.Str("component", l.component)
	}

	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 >= len(keysAndValues) {
			event = event.Str(key, "(missing)")
			break
		}
		switch value := keysAndValues[i+1].(type) {
		case error:
			event = event.AnErr(key, value)
		case fmt.Stringer:
			event = event.Stringer(key, value)
		default:
			event = event.Interface(key, value)
		}
	}

	event.Msg(msg)
}
