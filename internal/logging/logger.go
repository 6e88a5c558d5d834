// Package logging holds the *slog.Logger used for extraction debug output.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger installs sl as the package logger. nil restores the discard logger.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = slog.New(slog.DiscardHandler)
	}
	logger.Store(sl)
}

// Logger returns the package logger, discarding output until SetLogger is called.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = slog.New(slog.DiscardHandler)
		logger.Store(l)
	}
	return l
}

// NewTextLogger returns a text logger writing to w at debug level when
// verbose is set, warnings otherwise.
func NewTextLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
