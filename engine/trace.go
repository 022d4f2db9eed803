package engine

import (
	"log/slog"

	"github.com/google/uuid"
)

// traceLogger returns the logger to emit trace events on, or nil when
// tracing is off.
func (e *Engine) traceLogger() *slog.Logger {
	if !e.config.Trace {
		return nil
	}
	if e.config.Logger != nil {
		return e.config.Logger
	}
	return slog.Default()
}

// newRunID stamps one forward run, backward query, or fired activation
// so interleaved runs stay distinguishable in a shared log sink.
func newRunID() string {
	return uuid.NewString()
}
