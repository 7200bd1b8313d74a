// Package logging provides the default console sink for pipeline events.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// Console writes pipeline events through zerolog.
type Console struct {
	logger zerolog.Logger
}

// zerologLevel maps a client log level onto zerolog. Warnings are printed
// whenever errors are.
func zerologLevel(level zaius.LogLevel) zerolog.Level {
	switch level {
	case zaius.LogLevelDebug:
		return zerolog.DebugLevel
	case zaius.LogLevelInfo:
		return zerolog.InfoLevel
	case zaius.LogLevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.Disabled
	}
}

// NewConsole returns a human-readable sink on out gated by level. Colour is
// enabled when out is a terminal.
func NewConsole(out io.Writer, level zaius.LogLevel) *Console {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(out),
	}

	return &Console{
		logger: zerolog.New(output).Level(zerologLevel(level)).With().Timestamp().Logger(),
	}
}

// NewJSON returns a sink writing one JSON document per event.
func NewJSON(out io.Writer, level zaius.LogLevel) *Console {
	return &Console{
		logger: zerolog.New(out).Level(zerologLevel(level)).With().Timestamp().Logger(),
	}
}

// Default returns the console sink on stderr, or nil when level disables
// logging.
func Default(level zaius.LogLevel) zaius.Logger {
	if level == zaius.LogLevelNone {
		return nil
	}

	return NewConsole(os.Stderr, level)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Debug logs a debug message.
func (c *Console) Debug(msg string, fields map[string]interface{}) {
	c.logger.Debug().Fields(fields).Msg(msg)
}

// Info logs an info message.
func (c *Console) Info(msg string, fields map[string]interface{}) {
	c.logger.Info().Fields(fields).Msg(msg)
}

// Warn logs a warning message.
func (c *Console) Warn(msg string, fields map[string]interface{}) {
	c.logger.Warn().Fields(fields).Msg(msg)
}

// Error logs an error message.
func (c *Console) Error(msg string, fields map[string]interface{}) {
	c.logger.Error().Fields(fields).Msg(msg)
}
