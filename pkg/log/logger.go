package log

import (
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// First line of a stack dump is "goroutine 123 [running]:".
	stackBufSize       = 32
	minStackTraceLen   = 12
	goroutinePrefixLen = len("goroutine ")
	consoleTimeFormat  = "15:04:05"
	unknownGoroutineID = "unknown"
)

var (
	Logger   zerolog.Logger
	stackBuf = sync.Pool{New: func() interface{} { return make([]byte, stackBufSize) }}
)

// goroutineID reads the current goroutine id from the top of its stack.
func goroutineID() string {
	buf, ok := stackBuf.Get().([]byte)
	if !ok {
		return unknownGoroutineID
	}
	defer stackBuf.Put(buf) //nolint:staticcheck // slices are fine here

	n := runtime.Stack(buf, false)
	if n < minStackTraceLen {
		return unknownGoroutineID
	}

	end := goroutinePrefixLen
	for end < n && buf[end] >= '0' && buf[end] <= '9' {
		end++
	}
	if end == goroutinePrefixLen {
		return unknownGoroutineID
	}

	return string(buf[goroutinePrefixLen:end])
}

var goroutineHook = zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("goid", goroutineID())
})

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger().
		Hook(goroutineHook)
}

func init() {
	Logger = newLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: consoleTimeFormat}, zerolog.InfoLevel)
	log.Logger = Logger
}

// SetOutput redirects log output, keeping the current level.
func SetOutput(out io.Writer) {
	Logger = newLogger(out, Logger.GetLevel())
	log.Logger = Logger
}

// SetDebugMode switches the logger to debug level.
func SetDebugMode() {
	Logger = Logger.Level(zerolog.DebugLevel)
	log.Logger = Logger
}

// Info starts a new info event.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Error starts a new error event.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Warn starts a new warning event.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Debug starts a new debug event.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Fatal starts a new fatal event; Msg exits the process.
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}
