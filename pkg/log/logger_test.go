package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

// LoggerTestSuite tests the log package
type LoggerTestSuite struct {
	suite.Suite
	originalLogger zerolog.Logger
	output         *bytes.Buffer
}

func (s *LoggerTestSuite) SetupTest() {
	s.originalLogger = Logger
	s.output = &bytes.Buffer{}
	Logger = newLogger(s.output, zerolog.DebugLevel)
}

func (s *LoggerTestSuite) TearDownTest() {
	Logger = s.originalLogger
}

func (s *LoggerTestSuite) lines() []map[string]interface{} {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(s.output.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		s.Require().NoError(json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func (s *LoggerTestSuite) TestGoroutineIDIsNumeric() {
	id := goroutineID()

	s.NotEmpty(id)
	s.NotEqual(unknownGoroutineID, id)
	for _, char := range id {
		s.True(char >= '0' && char <= '9', "goroutine id should be numeric")
	}
}

func (s *LoggerTestSuite) TestGoroutineIDDiffersAcrossGoroutines() {
	done := make(chan string, 1)
	go func() {
		done <- goroutineID()
	}()

	s.NotEqual(goroutineID(), <-done)
}

func (s *LoggerTestSuite) TestLevelsAndGoroutineField() {
	Debug().Msg("debug message")
	Info().Msg("info message")
	Warn().Msg("warn message")
	Error().Msg("error message")

	entries := s.lines()
	s.Require().Len(entries, 4)

	expected := []string{"debug", "info", "warn", "error"}
	for i, entry := range entries {
		s.Equal(expected[i], entry["level"])
		s.Equal(expected[i]+" message", entry["message"])
		s.NotEmpty(entry["goid"])
	}
}

func (s *LoggerTestSuite) TestSetOutputKeepsLevel() {
	Logger = Logger.Level(zerolog.WarnLevel)
	other := &bytes.Buffer{}

	SetOutput(other)
	Info().Msg("dropped")
	Warn().Msg("kept")

	s.Equal(zerolog.WarnLevel, Logger.GetLevel())
	s.NotContains(other.String(), "dropped")
	s.Contains(other.String(), "kept")
}

func (s *LoggerTestSuite) TestSetDebugMode() {
	Logger = Logger.Level(zerolog.InfoLevel)

	SetDebugMode()

	s.Equal(zerolog.DebugLevel, Logger.GetLevel())
}

func (s *LoggerTestSuite) TestLeveledKeyValues() {
	leveled := NewLeveled("http")

	leveled.Debug("performing request", "method", "GET", "url", "http://localhost/health")
	leveled.Warn("odd pair", "dangling")

	entries := s.lines()
	s.Require().Len(entries, 2)

	s.Equal("http", entries[0]["component"])
	s.Equal("GET", entries[0]["method"])
	s.Equal("http://localhost/health", entries[0]["url"])
	s.Equal("warn", entries[1]["level"])
	s.Equal("(missing)", entries[1]["dangling"])
}

func (s *LoggerTestSuite) TestLeveledRespectsLevel() {
	Logger = Logger.Level(zerolog.ErrorLevel)

	NewLeveled("http").Info("quiet")

	s.Empty(s.output.String())
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
