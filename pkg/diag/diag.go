// Package diag defines the diagnostic sink the skeletal graph engine
// reports through.
//
// The engine never fails an operation because of a recoverable oddity
// (a malformed field in an imported file, a skipped edge, a safety cap
// tripping); it reports those through an injected [Sink] instead. The
// default sink discards everything; applications register a real one at
// startup, typically [NewLogSink] backed by charmbracelet/log.
package diag

import (
	"io"

	"github.com/charmbracelet/log"
)

// Sink receives diagnostics emitted by the engine.
type Sink interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Noop is a Sink that discards all diagnostics.
type Noop struct{}

func (Noop) Debugf(string, ...any) {}
func (Noop) Infof(string, ...any)  {}
func (Noop) Warnf(string, ...any)  {}
func (Noop) Errorf(string, ...any) {}

// LogSink is a Sink backed by a charmbracelet logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink builds a LogSink writing to w at the given level, with the
// timestamp format used across skelgraph tools.
func NewLogSink(w io.Writer, level log.Level) *LogSink {
	return &LogSink{logger: log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})}
}

// WrapLogger builds a LogSink around an existing logger.
func WrapLogger(l *log.Logger) *LogSink {
	return &LogSink{logger: l}
}

func (s *LogSink) Debugf(format string, args ...any) { s.logger.Debugf(format, args...) }
func (s *LogSink) Infof(format string, args ...any)  { s.logger.Infof(format, args...) }
func (s *LogSink) Warnf(format string, args ...any)  { s.logger.Warnf(format, args...) }
func (s *LogSink) Errorf(format string, args ...any) { s.logger.Errorf(format, args...) }
